// internal/coordinator/runner.go
package coordinator

import (
	"context"
	"errors"
	"time"
)

// Run refreshes once immediately, then on every UpdateInterval tick.
// It returns when ctx is done or the coordinator is closed.
// No overlap. Failures are logged; the loop keeps going.
func (c *Coordinator) Run(ctx context.Context) {
	if !c.tick(ctx) {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.tick(ctx) {
				return
			}
		}
	}
}

func (c *Coordinator) tick(ctx context.Context) bool {
	err := c.Refresh(ctx)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrClosed):
		return false
	case ctx.Err() != nil:
		return false
	default:
		c.log.Warn("update failed", "err", err)
		return true
	}
}

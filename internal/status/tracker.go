// internal/status/tracker.go
package status

import (
	"sync"
	"time"
)

// Tracker folds poll outcomes into a Snapshot.
type Tracker struct {
	mu   sync.Mutex
	snap Snapshot
}

// Observe records one poll outcome. An empty failureKey means success.
// It reports whether Health or LastFailure changed.
func (t *Tracker) Observe(failureKey string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := false

	if failureKey == "" {
		// Recovery / OK
		if t.snap.Health != HealthOK {
			t.snap.Health = HealthOK
			changed = true
		}
		if t.snap.LastFailure != "" {
			t.snap.LastFailure = ""
			changed = true
		}
		t.snap.ErrorSince = time.Time{}
		t.snap.ConsecutiveFailures = 0
		t.snap.LastSuccess = now
		return changed
	}

	// Error
	if t.snap.Health != HealthError {
		t.snap.Health = HealthError
		t.snap.ErrorSince = now
		changed = true
	}
	if t.snap.LastFailure != failureKey {
		t.snap.LastFailure = failureKey
		changed = true
	}
	t.snap.ConsecutiveFailures++
	return changed
}

// Snapshot returns the current health.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

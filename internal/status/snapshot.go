// internal/status/snapshot.go
package status

import "time"

// Snapshot is the poll health at one point in time.
// It holds current state only, no history.
type Snapshot struct {
	Health Health

	// LastFailure is the translation key of the most recent failure.
	// Cleared on recovery.
	LastFailure string

	// ErrorSince is the time of the first failure in the current streak.
	ErrorSince time.Time

	// LastSuccess is the time of the last successful poll.
	LastSuccess time.Time

	ConsecutiveFailures int
}

// InErrorFor returns how long the device has been failing, 0 when healthy.
func (s Snapshot) InErrorFor(now time.Time) time.Duration {
	if s.Health != HealthError || s.ErrorSince.IsZero() {
		return 0
	}
	return now.Sub(s.ErrorSince)
}

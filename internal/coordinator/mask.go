// internal/coordinator/mask.go
package coordinator

import "time"

// pendingWrite is a write the device may not have applied yet.
type pendingWrite struct {
	value        float64
	blockedUntil time.Time
}

// writeMask holds one pending write per key.
// Not safe for concurrent use; the coordinator guards it.
type writeMask struct {
	entries map[string]pendingWrite
}

func newWriteMask() *writeMask {
	return &writeMask{entries: make(map[string]pendingWrite)}
}

// block masks reads of key until the given time, replacing any earlier entry.
func (m *writeMask) block(key string, value float64, until time.Time) {
	m.entries[key] = pendingWrite{value: value, blockedUntil: until}
}

// blocked returns the pending value for key while its window is open.
// An expired entry is removed on first observation.
func (m *writeMask) blocked(key string, now time.Time) (float64, bool) {
	if len(m.entries) == 0 {
		return 0, false
	}
	p, ok := m.entries[key]
	if !ok {
		return 0, false
	}
	if !now.Before(p.blockedUntil) {
		delete(m.entries, key)
		return 0, false
	}
	return p.value, true
}

func (m *writeMask) len() int { return len(m.entries) }

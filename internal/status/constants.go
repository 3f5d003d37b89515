// internal/status/constants.go
package status

// Health is the poll health of the device.
type Health uint16

// ---- HEALTH CODES ----

// HealthUnknown represents the state before the first poll.
const HealthUnknown Health = 0

// HealthOK represents a successful last poll.
const HealthOK Health = 1

// HealthError represents a failed last poll.
const HealthError Health = 2

// String returns the lowercase health name.
func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	default:
		return "unknown"
	}
}

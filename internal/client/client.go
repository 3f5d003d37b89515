// internal/client/client.go
package client

import (
	"context"
	"time"

	"github.com/tamzrod/xtherma-fp/internal/entity"
)

// Client is the data source behind the coordinator.
// Implementations: rest (Fernportal cloud, read-only) and modbus (local TCP).
type Client interface {
	// UpdateInterval is the fixed polling cadence for this transport.
	UpdateInterval() time.Duration

	// Connect and Disconnect are idempotent. Disconnect must be safe
	// after a failed or partial Connect.
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error

	// FetchAll reads every known key and returns scaled values.
	// Failures are *Error.
	FetchAll(ctx context.Context) (map[string]float64, error)

	// WriteOne writes one engineering value. Failures are *Error.
	WriteOne(ctx context.Context, desc entity.Descriptor, value float64) error

	// Descriptors returns the same static list on every call.
	Descriptors() []entity.Descriptor
}

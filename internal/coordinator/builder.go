// internal/coordinator/builder.go
package coordinator

import (
	"fmt"
	"log/slog"

	"github.com/tamzrod/xtherma-fp/internal/client"
	"github.com/tamzrod/xtherma-fp/internal/client/modbus"
	"github.com/tamzrod/xtherma-fp/internal/client/rest"
	"github.com/tamzrod/xtherma-fp/internal/config"
)

// BuildClient constructs the client variant selected by x.Transport.
// No connection is made.
// Assumes config has already passed Validate and Normalize.
func BuildClient(x config.XthermaConfig, logger *slog.Logger) (client.Client, error) {
	switch x.Transport {
	case config.TransportREST:
		return rest.New(rest.Config{
			URL:          x.REST.URL,
			APIKey:       x.REST.APIKey,
			SerialNumber: x.REST.SerialNumber,
			Timeout:      x.REST.Timeout(),
			Logger:       logger,
		})
	case config.TransportModbus:
		return modbus.New(modbus.Config{
			Endpoint: x.Modbus.Endpoint,
			UnitID:   x.Modbus.UnitID,
			Timeout:  x.Modbus.Timeout(),
			Interval: x.Modbus.Interval(),
			Logger:   logger,
		})
	default:
		return nil, fmt.Errorf("coordinator: unsupported transport %q", x.Transport)
	}
}

// Build constructs the client and its coordinator.
// Call Setup before the first Refresh and Close when done.
func Build(x config.XthermaConfig, logger *slog.Logger) (*Coordinator, error) {
	c, err := BuildClient(x, logger)
	if err != nil {
		return nil, err
	}
	return New(Config{Name: x.Name, Logger: logger}, c)
}

// internal/config/normalize.go
package config

import (
	"github.com/tamzrod/xtherma-fp/internal/client/modbus"
	"github.com/tamzrod/xtherma-fp/internal/client/rest"
)

// DefaultName is used when xtherma.name is empty.
const DefaultName = "xtherma"

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	x := &cfg.Xtherma

	if x.Name == "" {
		x.Name = DefaultName
	}
	if x.Log.Level == "" {
		x.Log.Level = "info"
	}

	// REST
	if x.REST.URL == "" {
		x.REST.URL = rest.DefaultURL
	}
	if x.REST.TimeoutMs == 0 {
		x.REST.TimeoutMs = int(rest.DefaultTimeout.Milliseconds())
	}

	// MODBUS
	if x.Modbus.UnitID == 0 {
		x.Modbus.UnitID = 1
	}
	if x.Modbus.TimeoutMs == 0 {
		x.Modbus.TimeoutMs = int(modbus.DefaultTimeout.Milliseconds())
	}
	if x.Modbus.IntervalMs == 0 {
		x.Modbus.IntervalMs = int(modbus.DefaultInterval.Milliseconds())
	}
}

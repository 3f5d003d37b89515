// internal/config/validate.go
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	x := cfg.Xtherma

	switch x.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: must be one of debug, info, warn, error", x.Log.Level)
	}

	switch x.Transport {
	case TransportREST:
		return validateREST(x.REST)
	case TransportModbus:
		return validateModbus(x.Modbus)
	case "":
		return fmt.Errorf("transport is required (rest or modbus)")
	default:
		return fmt.Errorf("transport %q: must be rest or modbus", x.Transport)
	}
}

func validateREST(r RESTConfig) error {
	if r.APIKey == "" {
		return fmt.Errorf("rest.api_key is required")
	}
	if r.SerialNumber == "" {
		return fmt.Errorf("rest.serial_number is required")
	}
	if r.URL != "" {
		u, err := url.Parse(r.URL)
		if err != nil {
			return fmt.Errorf("rest.url %q: %w", r.URL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("rest.url %q: scheme must be http or https", r.URL)
		}
		if u.Host == "" {
			return fmt.Errorf("rest.url %q: host is required", r.URL)
		}
	}
	if r.TimeoutMs < 0 {
		return fmt.Errorf("rest.timeout_ms must be >= 0")
	}
	return nil
}

func validateModbus(m ModbusConfig) error {
	if m.Endpoint == "" {
		return fmt.Errorf("modbus.endpoint is required")
	}
	host, port, err := net.SplitHostPort(m.Endpoint)
	if err != nil {
		return fmt.Errorf("modbus.endpoint %q: %w", m.Endpoint, err)
	}
	if host == "" {
		return fmt.Errorf("modbus.endpoint %q: host is required", m.Endpoint)
	}
	if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("modbus.endpoint %q: invalid port", m.Endpoint)
	}

	// 0 is broadcast, 248+ reserved
	if m.UnitID > 247 {
		return fmt.Errorf("modbus.unit_id %d: must be 1..247", m.UnitID)
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("modbus.timeout_ms must be >= 0")
	}
	if m.IntervalMs < 0 {
		return fmt.Errorf("modbus.interval_ms must be >= 0")
	}
	return nil
}

// internal/config/config.go
package config

import (
	"log/slog"
	"time"
)

type Config struct {
	Xtherma XthermaConfig `yaml:"xtherma"`
}

// Transport names accepted in xtherma.transport.
const (
	TransportREST   = "rest"
	TransportModbus = "modbus"
)

type XthermaConfig struct {
	Name      string       `yaml:"name"`
	Transport string       `yaml:"transport"`
	REST      RESTConfig   `yaml:"rest"`
	Modbus    ModbusConfig `yaml:"modbus"`
	Log       LogConfig    `yaml:"log"`
}

// ---- REST (Fernportal) ----

type RESTConfig struct {
	URL          string `yaml:"url"`
	APIKey       string `yaml:"api_key"`
	SerialNumber string `yaml:"serial_number"`
	TimeoutMs    int    `yaml:"timeout_ms"`
}

func (r RESTConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

// ---- MODBUS/TCP ----

type ModbusConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	IntervalMs int    `yaml:"interval_ms"`
}

func (m ModbusConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}

func (m ModbusConfig) Interval() time.Duration {
	return time.Duration(m.IntervalMs) * time.Millisecond
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// SlogLevel maps Level onto slog. Unknown levels are rejected by Validate.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

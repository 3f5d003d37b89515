// internal/coordinator/builder_test.go
package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/xtherma-fp/internal/client/modbus"
	"github.com/tamzrod/xtherma-fp/internal/client/rest"
	"github.com/tamzrod/xtherma-fp/internal/config"
)

func TestBuild_REST(t *testing.T) {
	cfg := &config.Config{Xtherma: config.XthermaConfig{
		Transport: config.TransportREST,
		REST:      config.RESTConfig{APIKey: "k", SerialNumber: "FP-04-1"},
	}}
	require.NoError(t, config.Validate(cfg))
	config.Normalize(cfg)

	co, err := Build(cfg.Xtherma, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &rest.Client{}, co.client)
	assert.Equal(t, rest.RateLimit, co.UpdateInterval())
	assert.Equal(t, config.DefaultName, co.name)
}

func TestBuild_Modbus(t *testing.T) {
	cfg := &config.Config{Xtherma: config.XthermaConfig{
		Name:      "basement",
		Transport: config.TransportModbus,
		Modbus:    config.ModbusConfig{Endpoint: "127.0.0.1:502", IntervalMs: 2500},
	}}
	require.NoError(t, config.Validate(cfg))
	config.Normalize(cfg)

	co, err := Build(cfg.Xtherma, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &modbus.Client{}, co.client)
	assert.Equal(t, 2500*time.Millisecond, co.UpdateInterval())
	assert.NotEmpty(t, co.Descriptors())
}

func TestBuildClient_UnknownTransport(t *testing.T) {
	_, err := BuildClient(config.XthermaConfig{Transport: "mqtt"}, quietLogger())
	assert.Error(t, err)
}

// internal/coordinator/failure_test.go
package coordinator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tamzrod/xtherma-fp/internal/client"
)

func TestClassifyUpdate(t *testing.T) {
	cause := errors.New("cause")

	cases := []struct {
		name string
		err  error
		key  string
		ph   map[string]string
	}{
		{"modbus busy", client.New(client.TransportModbus, client.KindBusy, cause), KeyModbusReadBusy, nil},
		{"rest busy", client.New(client.TransportREST, client.KindBusy, cause), KeyRestReadBusy, nil},
		{"timeout", client.New(client.TransportREST, client.KindTimeout, cause), KeyTimeout, nil},
		{"not connected", client.New(client.TransportModbus, client.KindNotConnected, cause), KeyNotConnected, nil},
		{"rest api", client.NewProtocol(client.TransportREST, 401, cause), KeyRestAPI, map[string]string{"error": "401"}},
		{"modbus exception", client.NewProtocol(client.TransportModbus, 2, cause), KeyModbusRead, map[string]string{"error": "2"}},
		{"modbus empty", client.New(client.TransportModbus, client.KindEmptyData, nil), KeyModbusDataEmpty, nil},
		{"rest empty", client.New(client.TransportREST, client.KindEmptyData, nil), KeyRestDataEmpty, nil},
		{"general", client.New(client.TransportREST, client.KindGeneral, cause), KeyGeneral, nil},
		{"foreign error", cause, KeyGeneral, map[string]string{"error": "cause"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uf := classifyUpdate(tc.err)
			assert.Equal(t, tc.key, uf.TranslationKey)
			assert.ErrorIs(t, uf, tc.err)
			if tc.ph != nil {
				assert.Equal(t, tc.ph, uf.Placeholders)
			}
		})
	}
}

func TestClassifyUpdate_GeneralCarriesMessage(t *testing.T) {
	err := client.New(client.TransportModbus, client.KindGeneral, errors.New("bad frame"))
	uf := classifyUpdate(err)
	assert.Equal(t, err.Error(), uf.Placeholders[PlaceholderError])
}

func TestClassifyWrite(t *testing.T) {
	cases := []struct {
		name string
		err  error
		key  string
		ph   map[string]string
	}{
		{
			"read only",
			client.New(client.TransportREST, client.KindReadOnly, nil),
			KeyRestReadOnly,
			map[string]string{"entity_id": "hc1_tvl_max"},
		},
		{
			"modbus read only",
			client.New(client.TransportModbus, client.KindReadOnly, errors.New("key ta is not writable")),
			KeyGeneralWrite,
			map[string]string{"entity_id": "hc1_tvl_max", "error": "modbus: read-only: key ta is not writable"},
		},
		{
			"busy",
			client.New(client.TransportModbus, client.KindBusy, nil),
			KeyModbusWriteBusy,
			map[string]string{"entity_id": "hc1_tvl_max"},
		},
		{
			"exception",
			client.NewProtocol(client.TransportModbus, 3, nil),
			KeyModbusWrite,
			map[string]string{"entity_id": "hc1_tvl_max", "error": "3"},
		},
		{
			"foreign",
			errors.New("boom"),
			KeyGeneralWrite,
			map[string]string{"entity_id": "hc1_tvl_max", "error": "boom"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wf := classifyWrite(tc.err, "hc1_tvl_max")
			assert.Equal(t, tc.key, wf.TranslationKey)
			assert.Equal(t, tc.ph, wf.Placeholders)
			assert.Equal(t, "hc1_tvl_max", wf.EntityID)
			assert.ErrorIs(t, wf, tc.err)
		})
	}
}

func TestFailure_ErrorString(t *testing.T) {
	wf := classifyWrite(client.NewProtocol(client.TransportModbus, 3, nil), "sg")
	assert.Contains(t, wf.Error(), "write failed: modbus_write_error")
	assert.Contains(t, wf.Error(), `entity_id="sg"`)
	assert.Contains(t, wf.Error(), `error="3"`)

	uf := classifyUpdate(client.New(client.TransportREST, client.KindTimeout, nil))
	assert.Contains(t, uf.Error(), "update failed: timeout_error")
}

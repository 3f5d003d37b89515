// internal/coordinator/failure.go
package coordinator

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tamzrod/xtherma-fp/internal/client"
)

// Translation keys for poll failures.
const (
	KeyModbusReadBusy  = "modbus_read_busy_error"
	KeyRestReadBusy    = "rest_read_busy_error"
	KeyTimeout         = "timeout_error"
	KeyNotConnected    = "not_connected_error"
	KeyRestAPI         = "rest_api_error"
	KeyModbusRead      = "modbus_read_error"
	KeyModbusDataEmpty = "modbus_data_empty_error"
	KeyRestDataEmpty   = "rest_data_empty_error"
	KeyGeneral         = "general_error"
)

// Translation keys for write failures.
const (
	KeyRestReadOnly    = "rest_read_only_error"
	KeyModbusWriteBusy = "modbus_write_busy_error"
	KeyModbusWrite     = "modbus_write_error"
	KeyGeneralWrite    = "general_write_error"
)

// Placeholder names.
const (
	PlaceholderError    = "error"
	PlaceholderEntityID = "entity_id"
)

// UpdateFailed reports a failed poll cycle (or a failed setup).
// TranslationKey is stable; detail lives in Placeholders.
type UpdateFailed struct {
	TranslationKey string
	Placeholders   map[string]string
	Err            error
}

func (e *UpdateFailed) Error() string {
	return describe("update failed", e.TranslationKey, e.Placeholders, e.Err)
}

func (e *UpdateFailed) Unwrap() error { return e.Err }

// WriteFailed reports a failed write for one entity.
type WriteFailed struct {
	TranslationKey string
	Placeholders   map[string]string
	EntityID       string
	Err            error
}

func (e *WriteFailed) Error() string {
	return describe("write failed", e.TranslationKey, e.Placeholders, e.Err)
}

func (e *WriteFailed) Unwrap() error { return e.Err }

func describe(prefix, key string, placeholders map[string]string, cause error) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(": ")
	b.WriteString(key)

	if len(placeholders) > 0 {
		names := make([]string, 0, len(placeholders))
		for k := range placeholders {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(&b, " %s=%q", k, placeholders[k])
		}
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}

// classifyUpdate maps any error from the client onto a poll failure.
func classifyUpdate(err error) *UpdateFailed {
	var ce *client.Error
	if !errors.As(err, &ce) {
		return generalUpdate(err)
	}

	rest := ce.Transport == client.TransportREST
	switch ce.Kind {
	case client.KindBusy:
		if rest {
			return &UpdateFailed{TranslationKey: KeyRestReadBusy, Err: err}
		}
		return &UpdateFailed{TranslationKey: KeyModbusReadBusy, Err: err}
	case client.KindTimeout:
		return &UpdateFailed{TranslationKey: KeyTimeout, Err: err}
	case client.KindNotConnected:
		return &UpdateFailed{TranslationKey: KeyNotConnected, Err: err}
	case client.KindProtocol:
		key := KeyModbusRead
		if rest {
			key = KeyRestAPI
		}
		return &UpdateFailed{
			TranslationKey: key,
			Placeholders:   map[string]string{PlaceholderError: strconv.Itoa(ce.Code)},
			Err:            err,
		}
	case client.KindEmptyData:
		if rest {
			return &UpdateFailed{TranslationKey: KeyRestDataEmpty, Err: err}
		}
		return &UpdateFailed{TranslationKey: KeyModbusDataEmpty, Err: err}
	default:
		return generalUpdate(err)
	}
}

func generalUpdate(err error) *UpdateFailed {
	return &UpdateFailed{
		TranslationKey: KeyGeneral,
		Placeholders:   map[string]string{PlaceholderError: err.Error()},
		Err:            err,
	}
}

// classifyWrite maps any error from the client onto a write failure for entityID.
// Read-only failures are only reported as rest_read_only_error for the REST
// transport; a read-only Modbus entity is a general write failure.
func classifyWrite(err error, entityID string) *WriteFailed {
	wf := &WriteFailed{
		EntityID:     entityID,
		Placeholders: map[string]string{PlaceholderEntityID: entityID},
		Err:          err,
	}
	transport, code := errorDetail(err)

	switch client.KindOf(err) {
	case client.KindReadOnly:
		if transport == client.TransportModbus {
			wf.TranslationKey = KeyGeneralWrite
			wf.Placeholders[PlaceholderError] = err.Error()
			break
		}
		wf.TranslationKey = KeyRestReadOnly
	case client.KindBusy:
		wf.TranslationKey = KeyModbusWriteBusy
	case client.KindProtocol:
		wf.TranslationKey = KeyModbusWrite
		wf.Placeholders[PlaceholderError] = strconv.Itoa(code)
	default:
		wf.TranslationKey = KeyGeneralWrite
		wf.Placeholders[PlaceholderError] = err.Error()
	}
	return wf
}

// errorDetail returns the transport and numeric code of a client error.
func errorDetail(err error) (client.Transport, int) {
	var ce *client.Error
	if errors.As(err, &ce) {
		return ce.Transport, ce.ErrorCode()
	}
	return "", 0
}

// internal/client/errors.go
package client

import (
	"errors"
	"fmt"
)

// Transport identifies the client variant that produced an error.
type Transport string

const (
	TransportREST   Transport = "rest"
	TransportModbus Transport = "modbus"
)

// Kind classifies a client failure.
type Kind uint8

const (
	KindGeneral Kind = iota
	KindBusy
	KindTimeout
	KindNotConnected
	KindProtocol
	KindEmptyData
	KindReadOnly
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBusy:
		return "busy"
	case KindTimeout:
		return "timeout"
	case KindNotConnected:
		return "not connected"
	case KindProtocol:
		return "protocol error"
	case KindEmptyData:
		return "empty data"
	case KindReadOnly:
		return "read-only"
	default:
		return "general error"
	}
}

// Sentinels for errors.Is.
var (
	ErrGeneral      = &Error{Kind: KindGeneral}
	ErrBusy         = &Error{Kind: KindBusy}
	ErrTimeout      = &Error{Kind: KindTimeout}
	ErrNotConnected = &Error{Kind: KindNotConnected}
	ErrProtocol     = &Error{Kind: KindProtocol}
	ErrEmptyData    = &Error{Kind: KindEmptyData}
	ErrReadOnly     = &Error{Kind: KindReadOnly}
)

// Error is the typed failure returned by every Client method.
// Code is the HTTP status (REST) or Modbus exception code, 0 if none.
type Error struct {
	Kind      Kind
	Transport Transport
	Code      int
	Err       error
}

// New builds an Error of the given kind.
func New(t Transport, k Kind, cause error) *Error {
	return &Error{Kind: k, Transport: t, Err: cause}
}

// NewProtocol builds a protocol Error carrying a numeric code.
func NewProtocol(t Transport, code int, cause error) *Error {
	return &Error{Kind: KindProtocol, Transport: t, Code: code, Err: cause}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Transport != "" {
		msg = string(e.Transport) + ": " + msg
	}
	if e.Kind == KindProtocol && e.Code != 0 {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels above work
// with errors.Is regardless of transport, code or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ErrorCode exposes Code for callers that only know about the interface.
func (e *Error) ErrorCode() int { return e.Code }

// KindOf returns the Kind of err, or KindGeneral if err is not an *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindGeneral
}

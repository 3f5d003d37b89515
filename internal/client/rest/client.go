// internal/client/rest/client.go
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tamzrod/xtherma-fp/internal/client"
	"github.com/tamzrod/xtherma-fp/internal/entity"
	"github.com/tamzrod/xtherma-fp/internal/scale"
)

const (
	// DefaultURL is the Fernportal device endpoint; the serial number is appended.
	DefaultURL = "https://fernportal.xtherma.de/api/device"

	// RateLimit is the minimum spacing between Fernportal requests.
	RateLimit = 61 * time.Second

	// DefaultTimeout bounds one Fernportal request.
	DefaultTimeout = 10 * time.Second
)

// Client reads telemetry and settings from the Fernportal REST API.
// It is read-only: WriteOne always fails.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
	logger *slog.Logger
}

// Config is the minimal REST config.
type Config struct {
	URL          string
	APIKey       string
	SerialNumber string
	Timeout      time.Duration

	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// New creates a REST client. No request is made.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("rest client: api key required")
	}
	if cfg.SerialNumber == "" {
		return nil, errors.New("rest client: serial number required")
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	hc.Timeout = cfg.Timeout

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		url:    strings.TrimRight(cfg.URL, "/") + "/" + cfg.SerialNumber,
		apiKey: cfg.APIKey,
		http:   hc,
		logger: logger.With("transport", "rest"),
	}, nil
}

// ---- client.Client interface ----

func (c *Client) UpdateInterval() time.Duration { return RateLimit }

// Connect is a no-op for REST.
func (c *Client) Connect(context.Context) error { return nil }

// Disconnect is a no-op for REST.
func (c *Client) Disconnect(context.Context) error { return nil }

func (c *Client) Descriptors() []entity.Descriptor { return entity.RestDescriptors() }

// WriteOne always fails: the Fernportal API is read-only.
func (c *Client) WriteOne(_ context.Context, desc entity.Descriptor, _ float64) error {
	c.logger.Debug("cannot write values using REST API connection", "key", desc.Key)
	return client.New(client.TransportREST, client.KindReadOnly, nil)
}

// FetchAll performs one GET and flattens telemetry and settings.
func (c *Client) FetchAll(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, client.New(client.TransportREST, client.KindGeneral, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Debug("API rate limited", "status", resp.StatusCode)
		return nil, client.New(client.TransportREST, client.KindBusy, nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("API error", "status", resp.StatusCode)
		return nil, client.NewProtocol(client.TransportREST, resp.StatusCode, nil)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		if errors.As(err, &typeErr) || errors.As(err, &syntaxErr) ||
			errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			c.logger.Error("REST API response malformed", "err", err)
			return nil, client.New(client.TransportREST, client.KindEmptyData, err)
		}
		return nil, c.classify(fmt.Errorf("decode response: %w", err))
	}
	if body.Telemetry == nil || body.Settings == nil {
		c.logger.Error("REST API response malformed")
		return nil, client.New(client.TransportREST, client.KindEmptyData, errors.New("telemetry or settings missing"))
	}

	result := make(map[string]float64, len(body.Telemetry)+len(body.Settings))
	for _, e := range append(body.Telemetry, body.Settings...) {
		if e.Key == "" || e.Value == nil {
			continue
		}
		factor := scale.Factor(e.InputFactor)
		if factor != "" && !scale.Known(factor) {
			c.logger.Debug("unknown input factor, using raw value", "key", e.Key, "inputfactor", e.InputFactor)
		}
		value := scale.Apply(int64(*e.Value), factor)
		result[e.Key] = value
		c.logger.Debug("value",
			"key", e.Key,
			"raw", *e.Value,
			"value", value,
			"inputfactor", e.InputFactor,
		)
	}
	return result, nil
}

func (c *Client) classify(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		c.logger.Debug("API request timed out")
		return client.New(client.TransportREST, client.KindTimeout, err)
	}
	c.logger.Debug("unknown API error", "err", err)
	return client.New(client.TransportREST, client.KindGeneral, err)
}

// ---- payload ----

type response struct {
	SerialNumber string  `json:"serial_number"`
	Telemetry    []entry `json:"telemetry"`
	Settings     []entry `json:"settings"`
}

type entry struct {
	Key         string    `json:"key"`
	Value       *intValue `json:"value"`
	InputFactor string    `json:"input_factor"`
}

// intValue accepts an integer sent either as a JSON string or number.
// A fractional JSON number is truncated toward zero; a fractional string is rejected.
type intValue int64

func (v *intValue) UnmarshalJSON(b []byte) error {
	raw := string(b)
	s := strings.Trim(raw, `"`)
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		*v = intValue(n)
		return nil
	}
	if s == raw {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil && !math.IsInf(f, 0) {
			*v = intValue(math.Trunc(f))
			return nil
		}
	}
	return fmt.Errorf("value %q: %w", s, err)
}

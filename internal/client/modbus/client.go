// internal/client/modbus/client.go
package modbus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/xtherma-fp/internal/client"
	"github.com/tamzrod/xtherma-fp/internal/entity"
	"github.com/tamzrod/xtherma-fp/internal/scale"
)

const (
	// DefaultInterval is the polling cadence the device comfortably sustains.
	DefaultInterval = 10 * time.Second

	// DefaultTimeout bounds one Modbus request.
	DefaultTimeout = 3 * time.Second

	// maxReadQuantity is the Modbus limit for one holding register read.
	maxReadQuantity = 125
)

// Client reads and writes the Xtherma register map over Modbus TCP.
// It serializes requests because the handler holds one connection.
type Client struct {
	mu        sync.Mutex
	handler   *modbus.TCPClientHandler
	client    modbus.Client
	connected bool

	interval time.Duration
	descs    []entity.Descriptor
	ranges   []entity.RegisterRange
	logger   *slog.Logger
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
	Interval time.Duration

	// Registers overrides entity.RegisterMap (tests).
	Registers []entity.RegisterBlock
	Logger    *slog.Logger
}

// New creates an unconnected client. Call Connect before FetchAll.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus client: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Registers == nil {
		cfg.Registers = entity.RegisterMap
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	return &Client{
		handler:  h,
		client:   modbus.NewClient(h),
		interval: cfg.Interval,
		descs:    entity.Flatten(cfg.Registers),
		ranges:   entity.Ranges(cfg.Registers, maxReadQuantity),
		logger:   logger.With("transport", "modbus", "endpoint", cfg.Endpoint),
	}, nil
}

// ---- client.Client interface ----

func (c *Client) UpdateInterval() time.Duration { return c.interval }

func (c *Client) Descriptors() []entity.Descriptor { return c.descs }

// Connect opens the TCP connection. Calling it again while connected is a no-op.
func (c *Client) Connect(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}
	if err := c.handler.Connect(); err != nil {
		c.logger.Debug("connect failed", "err", err)
		return c.classify(err)
	}
	c.connected = true
	c.logger.Debug("connected")
	return nil
}

// Disconnect closes the TCP connection. Safe to call at any time.
func (c *Client) Disconnect(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.connected = false
	if err := c.handler.Close(); err != nil {
		c.logger.Debug("close failed", "err", err)
	}
	return nil
}

// FetchAll reads every register range and returns scaled values keyed by
// descriptor key. Registers are signed 16-bit.
func (c *Client) FetchAll(context.Context) (map[string]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil, client.New(client.TransportModbus, client.KindNotConnected, nil)
	}

	regs := make(map[uint16]uint16)
	for _, r := range c.ranges {
		data, err := c.client.ReadHoldingRegisters(r.First, r.Quantity())
		if err != nil {
			c.logger.Debug("read failed", "first", r.First, "quantity", r.Quantity(), "err", err)
			return nil, c.classify(err)
		}
		if len(data) < 2*int(r.Quantity()) {
			return nil, client.New(client.TransportModbus, client.KindEmptyData,
				fmt.Errorf("registers %d-%d: got %d bytes", r.First, r.Last, len(data)))
		}
		for i, v := range unpackRegisters(data) {
			regs[r.First+uint16(i)] = v
		}
	}

	result := make(map[string]float64, len(c.descs))
	for _, d := range c.descs {
		raw, ok := regs[d.Register]
		if !ok {
			continue
		}
		signed := int64(int16(raw))
		value := scale.Apply(signed, d.Factor)
		result[d.Key] = value
		c.logger.Debug("value",
			"key", d.Key,
			"register", d.Register,
			"raw", raw,
			"value", value,
			"factor", string(d.Factor),
		)
	}
	return result, nil
}

// WriteOne writes one value to the register of desc.
func (c *Client) WriteOne(_ context.Context, desc entity.Descriptor, value float64) error {
	if !desc.Writable || !desc.HasRegister {
		return client.New(client.TransportModbus, client.KindReadOnly,
			fmt.Errorf("key %s is not writable", desc.Key))
	}

	raw := scale.Reverse(value, desc.Factor)
	if raw < -32768 || raw > 65535 {
		return client.New(client.TransportModbus, client.KindGeneral,
			fmt.Errorf("key %s: value %d out of register range", desc.Key, raw))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return client.New(client.TransportModbus, client.KindNotConnected, nil)
	}

	c.logger.Debug("write", "key", desc.Key, "register", desc.Register, "value", value, "raw", raw)
	if _, err := c.client.WriteSingleRegister(desc.Register, uint16(raw)); err != nil {
		return c.classify(err)
	}
	return nil
}

// classify maps transport errors onto client error kinds.
func (c *Client) classify(err error) error {
	var me *modbus.ModbusError
	if errors.As(err, &me) {
		if me.ExceptionCode == modbus.ExceptionCodeServerDeviceBusy {
			return client.New(client.TransportModbus, client.KindBusy, err)
		}
		return client.NewProtocol(client.TransportModbus, int(me.ExceptionCode), err)
	}

	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return client.New(client.TransportModbus, client.KindTimeout, err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.EOF) {
		return client.New(client.TransportModbus, client.KindNotConnected, err)
	}

	return client.New(client.TransportModbus, client.KindGeneral, err)
}

// ---- helpers ----

// unpackRegisters decodes big-endian register bytes.
func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}

// internal/coordinator/coordinator.go
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tamzrod/xtherma-fp/internal/client"
	"github.com/tamzrod/xtherma-fp/internal/entity"
	"github.com/tamzrod/xtherma-fp/internal/status"
)

// DefaultSettleTime is how long the device may take to reflect a write.
const DefaultSettleTime = 30 * time.Second

// ErrClosed is returned by operations on a closed coordinator.
var ErrClosed = errors.New("coordinator: closed")

// Config is the runtime config the coordinator needs.
// Zero values fall back to defaults.
type Config struct {
	Name       string
	SettleTime time.Duration
	Logger     *slog.Logger
	Now        func() time.Time
}

// Snapshot maps entity keys to scaled values from one poll cycle.
type Snapshot map[string]float64

type lifecycle int

const (
	stateNew lifecycle = iota
	stateReady
	stateClosed
)

// Coordinator owns polling of one device and the write mask.
// Poll cycles never overlap. Snapshots are replaced, never mutated.
type Coordinator struct {
	client   client.Client
	name     string
	interval time.Duration
	settle   time.Duration
	now      func() time.Time
	log      *slog.Logger

	// serializes Setup and Refresh
	cycleMu sync.Mutex

	mu        sync.Mutex
	state     lifecycle
	data      Snapshot
	hasData   bool
	lastOK    bool
	lastErr   error
	mask      *writeMask
	listeners map[int]func()
	nextID    int

	closeOnce sync.Once
	health    status.Tracker
}

// New creates a coordinator with immutable config.
// The update interval is taken from the client once, here.
func New(cfg Config, c client.Client) (*Coordinator, error) {
	if c == nil {
		return nil, errors.New("coordinator: client required")
	}
	interval := c.UpdateInterval()
	if interval <= 0 {
		return nil, errors.New("coordinator: update interval must be > 0")
	}
	if cfg.SettleTime < 0 {
		return nil, errors.New("coordinator: settle time must be >= 0")
	}

	co := &Coordinator{
		client:    c,
		name:      cfg.Name,
		interval:  interval,
		settle:    cfg.SettleTime,
		now:       cfg.Now,
		log:       cfg.Logger,
		mask:      newWriteMask(),
		listeners: make(map[int]func()),
	}
	if co.name == "" {
		co.name = "xtherma"
	}
	if co.settle == 0 {
		co.settle = DefaultSettleTime
	}
	if co.now == nil {
		co.now = time.Now
	}
	if co.log == nil {
		co.log = slog.Default()
	}
	co.log = co.log.With("coordinator", co.name)
	return co, nil
}

// Setup connects the client. It succeeds at most once; later calls are no-ops.
// A failed connect is returned as *UpdateFailed and may be retried.
func (c *Coordinator) Setup(ctx context.Context) error {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	c.mu.Lock()
	st := c.state
	c.mu.Unlock()

	switch st {
	case stateReady:
		return nil
	case stateClosed:
		return ErrClosed
	}

	if err := guard(func() error { return c.client.Connect(ctx) }); err != nil {
		uf := classifyUpdate(err)
		c.log.Error("setup failed", "key", uf.TranslationKey, "err", err)
		return uf
	}

	c.mu.Lock()
	if c.state == stateNew {
		c.state = stateReady
	}
	c.mu.Unlock()
	return nil
}

// Close disconnects the client. It is idempotent and never fails.
// An in-flight poll is abandoned; its result is discarded.
func (c *Coordinator) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.state = stateClosed
		c.mu.Unlock()

		if err := guard(func() error { return c.client.Disconnect(ctx) }); err != nil {
			c.log.Debug("disconnect failed", "err", err)
		}
	})
	return nil
}

// Refresh runs one poll cycle.
// On success the new snapshot is published with the write mask applied.
// On failure the previous snapshot is kept and *UpdateFailed is returned.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	if c.closed() {
		return ErrClosed
	}

	c.log.Debug("requesting new data")
	var fetched map[string]float64
	err := guard(func() error {
		var ferr error
		fetched, ferr = c.client.FetchAll(ctx)
		return ferr
	})

	now := c.now()

	if err != nil {
		uf := classifyUpdate(err)
		c.mu.Lock()
		if c.state == stateClosed {
			c.mu.Unlock()
			return ErrClosed
		}
		c.lastOK = false
		c.lastErr = uf
		c.mu.Unlock()

		if c.health.Observe(uf.TranslationKey, now) {
			c.log.Info("health changed", "health", status.HealthError.String(), "key", uf.TranslationKey)
		}
		c.notify()
		return uf
	}

	next := make(Snapshot, len(fetched))

	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return ErrClosed
	}
	for key, v := range fetched {
		if pending, ok := c.mask.blocked(key, now); ok {
			c.log.Debug("skipping update of key due to pending write", "key", key)
			next[key] = pending
			continue
		}
		next[key] = v
	}
	c.data = next
	c.hasData = true
	c.lastOK = true
	c.lastErr = nil
	c.mu.Unlock()

	c.log.Debug("processed values", "processed", len(next), "fetched", len(fetched))

	if c.health.Observe("", now) {
		c.log.Info("health changed", "health", status.HealthOK.String())
	}
	c.notify()
	return nil
}

// Write sends one engineering value to the device.
// On success reads of desc.Key are masked for the settle time.
// On failure *WriteFailed is returned and the mask is unchanged.
func (c *Coordinator) Write(ctx context.Context, desc entity.Descriptor, value float64) error {
	if c.closed() {
		return classifyWrite(ErrClosed, desc.Key)
	}

	err := guard(func() error { return c.client.WriteOne(ctx, desc, value) })
	if err != nil {
		wf := classifyWrite(err, desc.Key)
		c.log.Warn("write failed", "key", desc.Key, "translation_key", wf.TranslationKey, "err", err)
		return wf
	}

	until := c.now().Add(c.settle)
	c.mu.Lock()
	c.mask.block(desc.Key, value, until)
	c.mu.Unlock()

	c.log.Debug("blocking reads of key", "key", desc.Key, "value", value, "for", c.settle)
	return nil
}

// ReadValue returns the published value for key.
// Absent before the first successful poll, after a failed poll, and after Close.
func (c *Coordinator) ReadValue(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateClosed || !c.hasData || !c.lastOK {
		return 0, false
	}
	v, ok := c.data[key]
	if !ok {
		c.log.Error("missing data in coordinator", "key", key)
	}
	return v, ok
}

// Data returns a copy of the last successfully published snapshot.
func (c *Coordinator) Data() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(Snapshot, len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out
}

// LastUpdateSuccess reports whether the most recent poll succeeded.
func (c *Coordinator) LastUpdateSuccess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastOK
}

// LastError returns the failure of the most recent poll, or nil.
func (c *Coordinator) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Status returns the health derived from poll outcomes.
func (c *Coordinator) Status() status.Snapshot {
	return c.health.Snapshot()
}

// UpdateInterval is the cadence captured at construction.
func (c *Coordinator) UpdateInterval() time.Duration { return c.interval }

// Descriptors returns the client's entity descriptors.
func (c *Coordinator) Descriptors() []entity.Descriptor {
	return c.client.Descriptors()
}

// Descriptor looks up one entity descriptor by key.
func (c *Coordinator) Descriptor(key string) (entity.Descriptor, bool) {
	return entity.Find(c.client.Descriptors(), key)
}

// AddListener registers fn to run after every poll cycle.
// The returned func removes it.
func (c *Coordinator) AddListener(fn func()) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Coordinator) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (c *Coordinator) closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateClosed
}

// guard turns a panic inside a client call into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("client panic: %v", r)
		}
	}()
	return fn()
}

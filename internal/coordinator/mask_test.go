// internal/coordinator/mask_test.go
package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteMask_EmptyIsUnblocked(t *testing.T) {
	m := newWriteMask()
	_, ok := m.blocked("tvl", time.Now())
	assert.False(t, ok)
}

func TestWriteMask_BlocksUntilExpiry(t *testing.T) {
	m := newWriteMask()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.block("cc1_active", 0, t0.Add(30*time.Second))

	v, ok := m.blocked("cc1_active", t0)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = m.blocked("cc1_active", t0.Add(30*time.Second-time.Nanosecond))
	assert.True(t, ok)

	_, ok = m.blocked("other", t0)
	assert.False(t, ok)
	assert.Equal(t, 1, m.len())
}

func TestWriteMask_ExpiredEntryRemoved(t *testing.T) {
	m := newWriteMask()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.block("cc1_active", 0, t0.Add(30*time.Second))

	_, ok := m.blocked("cc1_active", t0.Add(30*time.Second))
	assert.False(t, ok)
	assert.Equal(t, 0, m.len())
}

func TestWriteMask_ReplaceExtendsWindow(t *testing.T) {
	m := newWriteMask()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.block("hc1_tvl_max", 40, t0.Add(30*time.Second))
	m.block("hc1_tvl_max", 42.5, t0.Add(50*time.Second))

	v, ok := m.blocked("hc1_tvl_max", t0.Add(40*time.Second))
	assert.True(t, ok)
	assert.Equal(t, 42.5, v)
	assert.Equal(t, 1, m.len())
}

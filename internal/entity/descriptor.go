// internal/entity/descriptor.go
package entity

import (
	"math"

	"github.com/tamzrod/xtherma-fp/internal/scale"
)

// Kind is the host-facing entity type of a key.
type Kind string

const (
	KindSensor       Kind = "sensor"
	KindBinarySensor Kind = "binary_sensor"
	KindNumber       Kind = "number"
	KindSwitch       Kind = "switch"
	KindSelect       Kind = "select"
)

// Descriptor is static, read-only metadata for one key.
// Register is only meaningful when HasRegister is set (Modbus map).
type Descriptor struct {
	Key      string
	Kind     Kind
	Unit     string
	Writable bool
	Factor   scale.Factor

	Register    uint16
	HasRegister bool

	// IntValued entities surface whole numbers only.
	IntValued bool
}

// Align enforces the native value type of the entity.
// Integer-valued entities truncate toward zero.
func (d Descriptor) Align(v float64) float64 {
	if d.IntValued {
		return math.Trunc(v)
	}
	return v
}

// Find returns the descriptor with the given key.
func Find(descs []Descriptor, key string) (Descriptor, bool) {
	for _, d := range descs {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

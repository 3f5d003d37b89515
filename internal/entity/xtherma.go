// internal/entity/xtherma.go
package entity

import "github.com/tamzrod/xtherma-fp/internal/scale"

// Register map of the Xtherma heat pump (holding registers).
// This is device data; keep keys identical to the Fernportal REST keys.

func temp(key string, writable bool) Descriptor {
	return Descriptor{Key: key, Kind: kindFor(writable), Unit: "°C", Writable: writable, Factor: scale.Div10}
}

func onOff(key string) Descriptor {
	return Descriptor{Key: key, Kind: KindSwitch, Writable: true, IntValued: true}
}

func kindFor(writable bool) Kind {
	if writable {
		return KindNumber
	}
	return KindSensor
}

// curve is one heating or cooling curve: active flag, then flow
// temperature bounds and the outdoor temperatures they apply at.
func curve(prefix string) []Descriptor {
	return []Descriptor{
		onOff(prefix + "_active"),
		temp(prefix+"_tvl_min", true),
		temp(prefix+"_tvl_max", true),
		temp(prefix+"_ta_min", true),
		temp(prefix+"_ta_max", true),
	}
}

// RegisterMap is the static Xtherma register map.
var RegisterMap = []RegisterBlock{
	{
		Base: 0,
		Slots: []Descriptor{
			{Key: "mode", Kind: KindSelect, Writable: true, IntValued: true},
			{Key: "sg", Kind: KindSelect, Writable: true, IntValued: true},
			{Key: "hot_water_active", Kind: KindSwitch, Writable: true, IntValued: true},
			temp("hot_water_target", true),
		},
	},
	{Base: 10, Slots: curve("hc1")},
	{Base: 20, Slots: curve("cc1")},
	{Base: 30, Slots: curve("hc2")},
	{Base: 40, Slots: curve("cc2")},
	{
		Base: 100,
		Slots: []Descriptor{
			temp("tvl", false),
			temp("trl", false),
			temp("tw", false),
			temp("ta", false),
			temp("ti", false),
			{},
			{Key: "out_hp", Kind: KindSensor, Unit: "W", Factor: scale.Mul10},
			{Key: "in_hp", Kind: KindSensor, Unit: "W", Factor: scale.Mul10},
			{Key: "vf", Kind: KindSensor, Unit: "Hz"},
			{Key: "ld1", Kind: KindSensor, Unit: "%"},
			{Key: "v", Kind: KindSensor, Unit: "L/min", Factor: scale.Div10},
			{Key: "evu", Kind: KindBinarySensor, IntValued: true},
		},
	},
	{
		Base: 200,
		Slots: []Descriptor{
			{Key: "day_hp_out_h", Kind: KindSensor, Unit: "kWh", Factor: scale.Div100},
			{Key: "day_hp_in_h", Kind: KindSensor, Unit: "kWh", Factor: scale.Div100},
			{Key: "in_total", Kind: KindSensor, Unit: "kWh"},
			{Key: "out_total", Kind: KindSensor, Unit: "kWh"},
		},
	},
}

// ModbusDescriptors returns the descriptors of RegisterMap with register
// numbers assigned.
func ModbusDescriptors() []Descriptor {
	return Flatten(RegisterMap)
}

// RestDescriptors returns the same keys without register numbers.
// Scale factors arrive per value in the REST payload.
func RestDescriptors() []Descriptor {
	descs := Flatten(RegisterMap)
	for i := range descs {
		descs[i].Register = 0
		descs[i].HasRegister = false
	}
	return descs
}

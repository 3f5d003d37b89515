// internal/entity/registers.go
package entity

import "sort"

// RegisterBlock is a run of consecutive holding registers starting at Base.
// Slot i maps to register Base+i; an empty Key marks an unused register.
type RegisterBlock struct {
	Base  uint16
	Slots []Descriptor
}

// RegisterRange is an inclusive span of registers fetched in one request.
type RegisterRange struct {
	First uint16
	Last  uint16
}

// Quantity is the number of registers in the range.
func (r RegisterRange) Quantity() uint16 {
	return r.Last - r.First + 1
}

// Contains reports whether reg lies within the range.
func (r RegisterRange) Contains(reg uint16) bool {
	return reg >= r.First && reg <= r.Last
}

// Flatten assigns register numbers to every used slot and returns the
// resulting descriptors in map order.
func Flatten(blocks []RegisterBlock) []Descriptor {
	var out []Descriptor
	for _, b := range blocks {
		for i, d := range b.Slots {
			if d.Key == "" {
				continue
			}
			d.Register = b.Base + uint16(i)
			d.HasRegister = true
			out = append(out, d)
		}
	}
	return out
}

// Ranges derives the read ranges for a register map.
// Overlapping or touching blocks are merged; no range exceeds maxQty.
func Ranges(blocks []RegisterBlock, maxQty uint16) []RegisterRange {
	var spans []RegisterRange
	for _, b := range blocks {
		if len(b.Slots) == 0 {
			continue
		}
		spans = append(spans, RegisterRange{
			First: b.Base,
			Last:  b.Base + uint16(len(b.Slots)) - 1,
		})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].First < spans[j].First })

	var merged []RegisterRange
	for _, s := range spans {
		if n := len(merged); n > 0 && uint32(s.First) <= uint32(merged[n-1].Last)+1 {
			if s.Last > merged[n-1].Last {
				merged[n-1].Last = s.Last
			}
			continue
		}
		merged = append(merged, s)
	}

	if maxQty == 0 {
		return merged
	}

	var out []RegisterRange
	for _, r := range merged {
		for first := uint32(r.First); first <= uint32(r.Last); first += uint32(maxQty) {
			last := first + uint32(maxQty) - 1
			if last > uint32(r.Last) {
				last = uint32(r.Last)
			}
			out = append(out, RegisterRange{First: uint16(first), Last: uint16(last)})
		}
	}
	return out
}

// internal/scale/factor.go
package scale

import "math"

// Factor names a linear transform between a raw device integer and its
// engineering-unit value. The empty Factor means identity.
type Factor string

// Known factor names. Both spellings of a multiplier occur in device data
// ("1000" from the REST API, "*1000" from the register map) and both must
// be accepted.
const (
	Mul1000    Factor = "*1000"
	Mul100     Factor = "*100"
	Mul10      Factor = "*10"
	Mul1000Alt Factor = "1000"
	Mul100Alt  Factor = "100"
	Mul10Alt   Factor = "10"
	Div1000    Factor = "/1000"
	Div100     Factor = "/100"
	Div10      Factor = "/10"
)

// multipliers maps each factor to its magnitude.
// Divide factors keep their divisor so forward scaling is a true division.
var multipliers = map[Factor]struct {
	n      float64
	divide bool
}{
	Mul1000:    {1000, false},
	Mul100:     {100, false},
	Mul10:      {10, false},
	Mul1000Alt: {1000, false},
	Mul100Alt:  {100, false},
	Mul10Alt:   {10, false},
	Div1000:    {1000, true},
	Div100:     {100, true},
	Div10:      {10, true},
}

// Known reports whether f is one of the recognized factor names.
func Known(f Factor) bool {
	_, ok := multipliers[f]
	return ok
}

// Apply converts a raw (already sign-extended) value to engineering units.
// Unknown or empty factors return raw unchanged.
func Apply(raw int64, f Factor) float64 {
	m, ok := multipliers[f]
	if !ok {
		return float64(raw)
	}
	if m.divide {
		return float64(raw) / m.n
	}
	return float64(raw) * m.n
}

// Reverse converts an engineering value back to the raw integer.
// For known factors the result is rounded to the nearest integer, which
// absorbs float error from the divide factors. Unknown or empty factors
// truncate toward zero.
func Reverse(value float64, f Factor) int64 {
	m, ok := multipliers[f]
	if !ok {
		return int64(math.Trunc(value))
	}
	if m.divide {
		return int64(math.Round(value * m.n))
	}
	return int64(math.Round(value / m.n))
}

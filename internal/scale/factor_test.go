// internal/scale/factor_test.go
package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allFactors = []Factor{
	Mul1000, Mul100, Mul10,
	Mul1000Alt, Mul100Alt, Mul10Alt,
	Div1000, Div100, Div10,
}

func TestApply_Multipliers(t *testing.T) {
	assert.Equal(t, 5000.0, Apply(5, Mul1000))
	assert.Equal(t, 500.0, Apply(5, Mul100))
	assert.Equal(t, 50.0, Apply(5, Mul10))
}

func TestApply_SynonymSpellings(t *testing.T) {
	assert.Equal(t, Apply(7, Mul1000), Apply(7, Mul1000Alt))
	assert.Equal(t, Apply(7, Mul100), Apply(7, Mul100Alt))
	assert.Equal(t, Apply(7, Mul10), Apply(7, Mul10Alt))
}

func TestApply_Divisors(t *testing.T) {
	assert.Equal(t, 1.234, Apply(1234, Div1000))
	assert.Equal(t, 12.34, Apply(1234, Div100))
	assert.Equal(t, 123.4, Apply(1234, Div10))
}

func TestApply_NegativeTemperature(t *testing.T) {
	// 65336 is -200 as 16-bit two's complement; sign extension happens upstream.
	word := uint16(65336)
	raw := int64(int16(word))
	assert.Equal(t, int64(-200), raw)
	assert.Equal(t, -20.0, Apply(raw, Div10))
}

func TestApply_UnknownIsIdentity(t *testing.T) {
	for _, f := range []Factor{"", "x", "*7", "/3", "1"} {
		assert.Equal(t, 42.0, Apply(42, f), "factor %q", f)
		assert.Equal(t, -42.0, Apply(-42, f), "factor %q", f)
	}
}

func TestReverse_RoundTrip(t *testing.T) {
	raws := []int64{0, 1, -1, 7, -200, 215, 1234, -5000, 32767, -32768}
	for _, f := range allFactors {
		for _, r := range raws {
			assert.Equal(t, r, Reverse(Apply(r, f), f), "factor %q raw %d", f, r)
		}
	}
}

func TestReverse_DivideAbsorbsFloatError(t *testing.T) {
	// 0.29 * 100 is 28.999999999999996 in float64.
	assert.Equal(t, int64(29), Reverse(0.29, Div100))
	assert.Equal(t, int64(-200), Reverse(-20.0, Div10))
}

func TestReverse_UnknownTruncates(t *testing.T) {
	assert.Equal(t, int64(3), Reverse(3.9, ""))
	assert.Equal(t, int64(-3), Reverse(-3.9, "bogus"))
	assert.Equal(t, int64(12), Reverse(12, ""))
}

func TestKnown(t *testing.T) {
	for _, f := range allFactors {
		assert.True(t, Known(f), "factor %q", f)
	}
	assert.False(t, Known(""))
	assert.False(t, Known("*2"))
}

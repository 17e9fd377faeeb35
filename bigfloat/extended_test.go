package bigfloat_test

import (
	"testing"

	"github.com/prism-gsmp/actmcreduce/bigfloat"
	"github.com/stretchr/testify/assert"
)

func TestExtended_Normalize(t *testing.T) {
	e := bigfloat.NewExtended(123.45, 0)
	assert.InDelta(t, 1.2345, e.Mantissa, 1e-9)
	assert.Equal(t, 2, e.Exponent)
}

func TestExtended_RoundTrip(t *testing.T) {
	e := bigfloat.ExtendedFromFloat64(6.022e23)
	f, ok := e.Float64()
	assert.True(t, ok)
	assert.InDelta(t, 6.022e23, f, 1e15)
}

func TestExtended_AddAcrossWideRange(t *testing.T) {
	big := bigfloat.NewExtended(1.0, 250)
	tiny := bigfloat.NewExtended(1.0, -250)

	sum := big.Add(tiny)
	// tiny is negligible relative to big at float64 precision.
	assert.Equal(t, 0, sum.Cmp(big))
}

func TestExtended_MulDiv(t *testing.T) {
	a := bigfloat.NewExtended(2.0, 100)
	b := bigfloat.NewExtended(3.0, -50)

	prod := a.Mul(b)
	f, ok := prod.Float64()
	assert.True(t, ok)
	assert.InDelta(t, 6e50, f, 1e45)
	assert.Equal(t, 50, prod.Exponent)

	quot := a.Div(b)
	assert.InDelta(t, 2.0/3.0, quot.Mantissa/10, 1e-9)
	assert.Equal(t, 149, quot.Exponent)
}

func TestExtended_CmpZero(t *testing.T) {
	assert.Equal(t, 0, bigfloat.ExtendedZero.Cmp(bigfloat.ExtendedZero))
	pos := bigfloat.NewExtended(1, 0)
	assert.Equal(t, 1, pos.Cmp(bigfloat.ExtendedZero))
	assert.Equal(t, -1, bigfloat.ExtendedZero.Cmp(pos))
}

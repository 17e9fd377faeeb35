package bigfloat_test

import (
	"testing"

	"github.com/prism-gsmp/actmcreduce/bigfloat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_AddSubMul(t *testing.T) {
	c := bigfloat.NewContext(20)

	a, err := bigfloat.DecimalFromFloat64(1.5)
	require.NoError(t, err)
	b, err := bigfloat.DecimalFromFloat64(2.25)
	require.NoError(t, err)

	sum, err := c.Add(a, b)
	require.NoError(t, err)
	f, err := sum.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 3.75, f, 1e-12)

	diff, err := c.Sub(b, a)
	require.NoError(t, err)
	f, err = diff.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 0.75, f, 1e-12)

	prod, err := c.Mul(a, b)
	require.NoError(t, err)
	f, err = prod.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 3.375, f, 1e-12)
}

func TestContext_QuoByZero(t *testing.T) {
	c := bigfloat.NewContext(20)
	a, _ := bigfloat.DecimalFromFloat64(1.0)
	zero := bigfloat.NewDecimal(0, 0)

	_, err := c.Quo(a, zero)
	assert.ErrorIs(t, err, bigfloat.ErrDivideByZero)
}

func TestAllowedError(t *testing.T) {
	err5 := bigfloat.AllowedError(5)
	f, err := err5.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 1e-5, f, 1e-18)
}

func TestDecimalDigits(t *testing.T) {
	d := bigfloat.NewDecimal(12345, 0)
	assert.Equal(t, 5, bigfloat.DecimalDigits(d))

	small := bigfloat.NewDecimal(1, -5)
	assert.Equal(t, 1, bigfloat.DecimalDigits(small))
}

func TestContext_SqrtViaLn(t *testing.T) {
	c := bigfloat.NewContext(30)
	four, _ := bigfloat.DecimalFromFloat64(4.0)

	root, err := c.Sqrt(four)
	require.NoError(t, err)
	f, err := root.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, f, 1e-9)
}

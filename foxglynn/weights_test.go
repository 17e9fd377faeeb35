package foxglynn_test

import (
	"testing"

	"github.com/prism-gsmp/actmcreduce/bigfloat"
	"github.com/prism-gsmp/actmcreduce/foxglynn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeights_RejectsNonPositiveLambda(t *testing.T) {
	kappa := bigfloat.AllowedError(10)
	_, err := foxglynn.Weights(0, foxglynn.DefaultUnderflow, foxglynn.DefaultOverflow, kappa)
	assert.ErrorIs(t, err, foxglynn.ErrInvalidLambda)
}

func TestWeights_RejectsBadGuard(t *testing.T) {
	kappa := bigfloat.AllowedError(10)
	_, err := foxglynn.Weights(5, foxglynn.DefaultOverflow, foxglynn.DefaultUnderflow, kappa)
	assert.ErrorIs(t, err, foxglynn.ErrInvalidGuard)
}

func TestWeights_WindowContainsMode(t *testing.T) {
	kappa := bigfloat.AllowedError(10)
	res, err := foxglynn.Weights(10, foxglynn.DefaultUnderflow, foxglynn.DefaultOverflow, kappa)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.L, 10)
	assert.GreaterOrEqual(t, res.R, 10)
	assert.True(t, res.R > res.L)
}

func TestWeights_TotalMatchesSum(t *testing.T) {
	kappa := bigfloat.AllowedError(12)
	res, err := foxglynn.Weights(3.5, foxglynn.DefaultUnderflow, foxglynn.DefaultOverflow, kappa)
	require.NoError(t, err)

	sum := bigfloat.ExtendedZero
	for _, w := range res.W {
		sum = sum.Add(w)
	}
	sumF, ok := sum.Float64()
	require.True(t, ok)
	totalF, ok := res.Total.Float64()
	require.True(t, ok)
	assert.InDelta(t, totalF, sumF, totalF*1e-9+1e-12)
}

func TestWeights_AtOutsideWindowIsZero(t *testing.T) {
	kappa := bigfloat.AllowedError(10)
	res, err := foxglynn.Weights(5, foxglynn.DefaultUnderflow, foxglynn.DefaultOverflow, kappa)
	require.NoError(t, err)

	assert.Equal(t, bigfloat.ExtendedZero, res.At(res.L-1))
	assert.Equal(t, bigfloat.ExtendedZero, res.At(res.R+1))
	assert.NotEqual(t, bigfloat.ExtendedZero, res.At(res.L))
}

func TestWeights_LargeLambdaDoesNotOverflowNativeFloat(t *testing.T) {
	kappa := bigfloat.AllowedError(9)
	res, err := foxglynn.Weights(500, foxglynn.DefaultUnderflow, foxglynn.DefaultOverflow, kappa)
	require.NoError(t, err)
	assert.Greater(t, res.R-res.L, 10)
}

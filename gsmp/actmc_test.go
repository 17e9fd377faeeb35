package gsmp_test

import (
	"testing"

	"github.com/prism-gsmp/actmcreduce/gsmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoStateRaceEvents(t *testing.T) []gsmp.Event {
	t.Helper()
	e, err := gsmp.NewEvent("alarm", gsmp.NewDirac(1.0), 2, []int{0, 1},
		map[int]map[int]float64{
			0: {1: 1.0},
			1: {0: 1.0},
		})
	require.NoError(t, err)

	return []gsmp.Event{e}
}

func TestNewACTMC_RejectsOverlappingAlarms(t *testing.T) {
	events := twoStateRaceEvents(t)
	second, err := gsmp.NewEvent("alarm2", gsmp.NewDirac(2.0), 2, []int{0},
		map[int]map[int]float64{0: {1: 1.0}})
	require.NoError(t, err)
	events = append(events, second)

	_, err = gsmp.NewACTMC(2, []map[int]float64{{}, {}}, []int{0}, events)
	assert.ErrorIs(t, err, gsmp.ErrInvalidModel)
}

func TestNewACTMC_AllowsOverlappingExponentials(t *testing.T) {
	exp1, err := gsmp.NewEvent("e1", gsmp.NewExponential(1.0), 2, []int{0}, map[int]map[int]float64{0: {1: 1.0}})
	require.NoError(t, err)
	exp2, err := gsmp.NewEvent("e2", gsmp.NewExponential(2.0), 2, []int{0}, map[int]map[int]float64{0: {1: 1.0}})
	require.NoError(t, err)

	m, err := gsmp.NewACTMC(2, []map[int]float64{{1: 0.5}, {}}, []int{0}, []gsmp.Event{exp1, exp2})
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumStates())
}

func TestACTMC_MaxExitRate(t *testing.T) {
	m, err := gsmp.NewACTMC(2, []map[int]float64{{1: 0.5}, {0: 0.25}}, []int{0}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.MaxExitRate())
}

func TestEvent_SuccDistMustSumToOne(t *testing.T) {
	_, err := gsmp.NewEvent("bad", gsmp.NewDirac(1.0), 2, []int{0}, map[int]map[int]float64{0: {1: 0.5}})
	assert.ErrorIs(t, err, gsmp.ErrInvalidModel)
}

func TestDistribution_ValidateRejectsBadParams(t *testing.T) {
	assert.Error(t, gsmp.NewDirac(-1).Validate())
	assert.Error(t, gsmp.NewExponential(0).Validate())
	assert.Error(t, gsmp.NewErlang(0, 1).Validate())
	assert.Error(t, gsmp.NewUniform(2, 1).Validate())
	assert.NoError(t, gsmp.NewUniform(0, 1).Validate())
}

func TestDistribution_IsPotatoCapable(t *testing.T) {
	assert.True(t, gsmp.NewDirac(1).IsPotatoCapable())
	assert.True(t, gsmp.NewErlang(2, 1).IsPotatoCapable())
	assert.True(t, gsmp.NewUniform(0, 1).IsPotatoCapable())
	assert.False(t, gsmp.NewExponential(1).IsPotatoCapable())
	assert.False(t, gsmp.NewWeibull(1, 1).IsPotatoCapable())
}

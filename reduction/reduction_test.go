package reduction

import (
	"testing"

	"github.com/prism-gsmp/actmcreduce/gsmp"
	"github.com/prism-gsmp/actmcreduce/potato"
	"github.com/stretchr/testify/require"
)

func buildSingleStateDirac(t *testing.T) *gsmp.ACTMC {
	t.Helper()
	e, err := gsmp.NewEvent("alarm", gsmp.NewDirac(2.0), 2, []int{0}, map[int]map[int]float64{0: {1: 1.0}})
	require.NoError(t, err)
	actmc, err := gsmp.NewACTMC(2, []map[int]float64{{}, {}}, []int{0}, []gsmp.Event{e})
	require.NoError(t, err)

	return actmc
}

// TestReduction_SingleStateDirac implements spec.md §8 scenario 1.
func TestReduction_SingleStateDirac(t *testing.T) {
	actmc := buildSingleStateDirac(t)
	rewards, err := gsmp.NewRewardStructure(2, nil)
	require.NoError(t, err)
	settings := gsmp.DefaultSettings()

	red, err := New(actmc, rewards, settings, ModeReachability, potato.NewStateSet(2))
	require.NoError(t, err)

	dtmc, rw, err := red.Build()
	require.NoError(t, err)
	require.NotNil(t, dtmc)
	require.Len(t, rw, 2)

	meta := red.Metadata()["alarm"]
	require.InDelta(t, 2.0, meta.Theta[0], 1e-3)
	require.InDelta(t, 1.0, meta.MeanExit[0][1], 1e-3)
	require.InDelta(t, 0.0, meta.MeanReward[0], 1e-9)
}

// TestReduction_TwoStateRace implements spec.md §8 scenario 3, adapted with
// a third absorbing state so the potato (states {0,1}) has a well-defined
// successor to escape to: the reduction must not drop the exponential
// transition 0->2 at rate 0.5 when combining it with the Dirac alarm's
// oscillation between 0 and 1.
func TestReduction_TwoStateRace(t *testing.T) {
	e, err := gsmp.NewEvent("alarm", gsmp.NewDirac(1.0), 3, []int{0, 1}, map[int]map[int]float64{
		0: {1: 1.0},
		1: {0: 1.0},
	})
	require.NoError(t, err)
	actmc, err := gsmp.NewACTMC(3, []map[int]float64{{2: 0.5}, {}, {}}, []int{0}, []gsmp.Event{e})
	require.NoError(t, err)

	rewards, err := gsmp.NewRewardStructure(3, nil)
	require.NoError(t, err)
	settings := gsmp.DefaultSettings()

	red, err := New(actmc, rewards, settings, ModeReachability, potato.NewStateSet(3))
	require.NoError(t, err)
	dtmc, _, err := red.Build()
	require.NoError(t, err)

	require.Greater(t, dtmc.Rows[0][2], 0.0, "the exponential escape to state 2 must survive the potato collapse")
}

// TestReduction_RewardConservation implements spec.md §8 scenario 4: with a
// unit reward on every potato state, mean-payoff mode should produce a
// reward rate at the entrance approximately equal to 1 (reward accrues at
// unit rate while dwelling in the potato).
func TestReduction_RewardConservation(t *testing.T) {
	actmc := buildSingleStateDirac(t)
	rewards, err := gsmp.NewRewardStructure(2, []float64{1, 0})
	require.NoError(t, err)
	settings := gsmp.DefaultSettings()

	red, err := New(actmc, rewards, settings, ModeMeanPayoff, potato.NewStateSet(2))
	require.NoError(t, err)
	_, rw, err := red.Build()
	require.NoError(t, err)

	require.InDelta(t, 1.0, rw[0], 0.05)
}

// TestReduction_KappaClamping implements spec.md §8 scenario 5.
func TestReduction_KappaClamping(t *testing.T) {
	actmc := buildSingleStateDirac(t)
	rewards, err := gsmp.NewRewardStructure(2, nil)
	require.NoError(t, err)
	settings := gsmp.Settings{Epsilon: 0.01, ComputeKappa: false, ConstantKappaDecimalDigits: 5}

	red, err := New(actmc, rewards, settings, ModeReachability, potato.NewStateSet(2))
	require.NoError(t, err)
	_, _, err = red.Build()
	require.NoError(t, err)

	require.LessOrEqual(t, red.KappaTrace().Kappa, 1e-5)
}

func TestRelevantStates_PureCTMCStatesAlwaysRelevant(t *testing.T) {
	actmc := buildSingleStateDirac(t)
	rewards, err := gsmp.NewRewardStructure(2, nil)
	require.NoError(t, err)
	settings := gsmp.DefaultSettings()

	red, err := New(actmc, rewards, settings, ModeReachability, potato.NewStateSet(2))
	require.NoError(t, err)
	_, _, err = red.Build()
	require.NoError(t, err)

	relevant, err := red.RelevantStates()
	require.NoError(t, err)
	require.True(t, relevant[1], "absorbing non-alarm state is always relevant")
	require.True(t, relevant[0], "state 0 is the alarm's entrance")
}

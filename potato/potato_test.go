package potato

import (
	"testing"

	"github.com/prism-gsmp/actmcreduce/bigfloat"
	"github.com/prism-gsmp/actmcreduce/gsmp"
	"github.com/stretchr/testify/require"
)

// diracModel is a 3-state model: state 0 is a pure-CTMC state racing into
// state 1 at rate 2; state 1 hosts a Dirac(1.0) alarm that, on firing,
// always moves to state 2 (absorbing).
type diracModel struct{}

func (diracModel) NumStates() int       { return 3 }
func (diracModel) InitialStates() []int { return []int{0} }
func (diracModel) Transitions(s int) (map[int]float64, error) {
	switch s {
	case 0:
		return map[int]float64{1: 2.0}, nil
	default:
		return map[int]float64{}, nil
	}
}
func (diracModel) MaxExitRate() float64 { return 2.0 }
func (m diracModel) Events() []gsmp.Event {
	e, _ := gsmp.NewEvent("alarm", gsmp.NewDirac(1.0), 3, []int{1}, map[int]map[int]float64{1: {2: 1.0}})
	return []gsmp.Event{e}
}
func (m diracModel) ActiveEvent(s int) (gsmp.Event, bool) {
	if s != 1 {
		return gsmp.Event{}, false
	}
	return m.Events()[0], true
}

type zeroRewards struct{ n int }

func (z zeroRewards) StateReward(s int) (float64, error) { return 0, nil }
func (z zeroRewards) EventTransitionRewards(s int, eventID string) (map[int]float64, error) {
	return map[int]float64{}, nil
}
func (z zeroRewards) HasTransitionRewards() bool { return false }

func TestComputeStateSets_DiracEvent(t *testing.T) {
	model := diracModel{}
	e := model.Events()[0]
	target := NewStateSet(3)

	sets, err := ComputeStateSets(model, e, target)
	require.NoError(t, err)
	require.True(t, sets.States.Contains(1))
	require.True(t, sets.Entrances.Contains(1), "state 0's transition into 1 makes 1 an entrance")
	require.True(t, sets.Successors.Contains(2), "the alarm's own transition to 2 makes 2 a successor")
}

func TestBuildLocalDTMC_SuccessorRowsAbsorb(t *testing.T) {
	model := diracModel{}
	e := model.Events()[0]
	sets, err := ComputeStateSets(model, e, NewStateSet(3))
	require.NoError(t, err)

	dtmc, err := BuildLocalDTMC(model, sets, model.MaxExitRate())
	require.NoError(t, err)

	for i := 0; i < len(dtmc.ToGlobal); i++ {
		if !dtmc.IsSuccessorLocal(i) {
			continue
		}
		v, err := dtmc.P.At(i, i)
		require.NoError(t, err)
		require.Equal(t, 1.0, v)
	}
}

func TestPotato_Numerics_DiracSingleState(t *testing.T) {
	model := diracModel{}
	rewards := zeroRewards{n: 3}
	e := model.Events()[0]
	kappa := bigfloat.NewDecimal(1, -9)

	p := New(model, rewards, e, NewStateSet(3), model.MaxExitRate(), kappa)

	n, err := p.Numerics(1)
	require.NoError(t, err)
	require.InDelta(t, 1.0, n.MeanExit[2], 1e-6)
	require.Greater(t, n.Theta, 0.0)
}

func TestPotato_Numerics_UnknownEntranceRejected(t *testing.T) {
	model := diracModel{}
	rewards := zeroRewards{n: 3}
	e := model.Events()[0]
	kappa := bigfloat.NewDecimal(1, -9)

	p := New(model, rewards, e, NewStateSet(3), model.MaxExitRate(), kappa)

	_, err := p.Numerics(0)
	require.ErrorIs(t, err, ErrUnknownEntrance)
}

func TestPotato_Invalidate_ClearsCaches(t *testing.T) {
	model := diracModel{}
	rewards := zeroRewards{n: 3}
	e := model.Events()[0]
	kappa := bigfloat.NewDecimal(1, -9)

	p := New(model, rewards, e, NewStateSet(3), model.MaxExitRate(), kappa)
	_, err := p.Numerics(1)
	require.NoError(t, err)

	p.Invalidate()
	require.False(t, p.stateSetsComputed)
	require.False(t, p.dtmcComputed)
	require.Empty(t, p.numerics)
}

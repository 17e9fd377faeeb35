package dtmcsolver

import (
	"testing"

	"github.com/prism-gsmp/actmcreduce/gsmp"
	"github.com/stretchr/testify/require"
)

// twoStateChain is 0 -> 1 (prob 1), 1 absorbing: reach-reward to target={1}
// with rewards all 0 except a unit reward earned at state 1 should give
// V(0) = V(1) = reward at 1, since 0 certainly reaches 1 in one step.
type twoStateChain struct{}

func (twoStateChain) NumStates() int { return 2 }
func (twoStateChain) Row(s int) (map[int]float64, error) {
	if s == 0 {
		return map[int]float64{1: 1.0}, nil
	}
	return map[int]float64{}, nil
}

func TestGaussSeidel_ComputeReachRewards_SimpleChain(t *testing.T) {
	solver := NewGaussSeidel()
	dtmc := twoStateChain{}

	v, err := solver.ComputeReachRewards(dtmc, []float64{0, 5}, []bool{false, true})
	require.NoError(t, err)
	require.InDelta(t, 5.0, v[0], 1e-6)
	require.InDelta(t, 5.0, v[1], 1e-6)
}

func TestGaussSeidel_RejectsMismatchedLengths(t *testing.T) {
	solver := NewGaussSeidel()
	dtmc := twoStateChain{}

	_, err := solver.ComputeReachRewards(dtmc, []float64{0}, []bool{false, true})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGaussSeidel_DidNotConverge_WrapsUnsolvable(t *testing.T) {
	require.ErrorIs(t, ErrDidNotConverge, gsmp.ErrUnsolvable)
}

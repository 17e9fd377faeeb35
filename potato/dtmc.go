package potato

import (
	"fmt"

	"github.com/prism-gsmp/actmcreduce/gsmp"
)

// LocalDTMC is the uniformised DTMC restricted to S = states ∪ successors,
// per spec.md §4.4, with successor states self-absorbing. P is a
// transitionMatrix (this package) — a potato's local chain is a plain
// square stochastic matrix, so no storage beyond the re-indexing maps is
// needed.
type LocalDTMC struct {
	P        *transitionMatrix
	Q        float64 // uniformisation rate used to build P
	ToLocal  map[int]int
	ToGlobal []int
	numStates,
	numSuccessors int // numStates = len(states); first numStates local indices are interior
}

// IsSuccessorLocal reports whether local index i addresses a successor
// (absorbing) row rather than an interior potato state.
func (d *LocalDTMC) IsSuccessorLocal(i int) bool {
	return i >= d.numStates
}

// BuildLocalDTMC implements spec.md §4.4: allocate a local re-indexed
// uniformised DTMC over states∪successors. For interior states, copy the
// ACTMC's exponential-transition row (restricted to S, which by
// construction of StateSets already contains every CTMC successor of an
// interior state). For successor states, install a self-loop at rate q,
// which uniformises to an absorbing row (P[i][i]=1) — successors are not
// re-explored by the potato's own transient analysis.
//
// q is the uniformisation rate to build against; callers pass
// model.MaxExitRate() unless a tighter local maximum is desired.
func BuildLocalDTMC(model gsmp.ModelProvider, sets StateSets, q float64) (*LocalDTMC, error) {
	if q <= 0 {
		return nil, fmt.Errorf("potato.BuildLocalDTMC: uniformisation rate q=%g must be > 0", q)
	}

	interior := sets.States.Slice()
	successors := sets.Successors.Slice()
	toGlobal := make([]int, 0, len(interior)+len(successors))
	toGlobal = append(toGlobal, interior...)
	toGlobal = append(toGlobal, successors...)

	toLocal := make(map[int]int, len(toGlobal))
	for i, g := range toGlobal {
		toLocal[g] = i
	}

	n := len(toGlobal)
	p, err := newTransitionMatrix(n)
	if err != nil {
		return nil, fmt.Errorf("potato.BuildLocalDTMC: %w", err)
	}

	// Interior rows: uniformised exponential transitions.
	for i, g := range interior {
		row, err := model.Transitions(g)
		if err != nil {
			return nil, fmt.Errorf("potato.BuildLocalDTMC: %w", err)
		}
		total := 0.0
		for j, rate := range row {
			if rate <= 0 {
				continue
			}
			total += rate
			lj, ok := toLocal[j]
			if !ok {
				// StateSets guarantees every CTMC successor of an interior
				// state lands in states∪successors; a miss here indicates
				// the caller passed StateSets computed against a different
				// model instance.
				continue
			}
			if err := p.Set(i, lj, rate/q); err != nil {
				return nil, fmt.Errorf("potato.BuildLocalDTMC: %w", err)
			}
		}
		existing, _ := p.At(i, i)
		if err := p.Set(i, i, existing+1-total/q); err != nil {
			return nil, fmt.Errorf("potato.BuildLocalDTMC: %w", err)
		}
	}

	// Successor rows: self-absorbing.
	for k := range successors {
		i := len(interior) + k
		if err := p.Set(i, i, 1.0); err != nil {
			return nil, fmt.Errorf("potato.BuildLocalDTMC: %w", err)
		}
	}

	// Uniformisation must yield a stochastic matrix; a row summing away from
	// 1 means q was too small for some interior state's total exit rate.
	for i := 0; i < n; i++ {
		sum, err := p.RowSum(i)
		if err != nil {
			return nil, fmt.Errorf("potato.BuildLocalDTMC: %w", err)
		}
		if sum < 1-1e-6 || sum > 1+1e-6 {
			return nil, fmt.Errorf("potato.BuildLocalDTMC: row %d sums to %g, q=%g too small: %w", i, sum, q, ErrNonStochasticRow)
		}
	}

	return &LocalDTMC{
		P:             p,
		Q:             q,
		ToLocal:       toLocal,
		ToGlobal:      toGlobal,
		numStates:     len(interior),
		numSuccessors: len(successors),
	}, nil
}

package potato

import (
	"fmt"

	"github.com/prism-gsmp/actmcreduce/gsmp"
)

// StateSets is the classification of a potato's active region relative to
// one event, per spec.md §3/§4.3: the interior states, the entrances
// (states directly reachable from outside the potato, including
// self-re-entry via the event's own transitions), and the successors
// (states reachable in one step from inside, including absorbed targets).
type StateSets struct {
	States     StateSet
	Entrances  StateSet
	Successors StateSet
}

// ComputeStateSets implements spec.md §4.3 steps 1-3 for event e against
// model, with target the (possibly empty) reachability-target set.
//
// Tie-break: a state that is both a target and an entrance is treated as a
// successor — the potato cannot absorb a reachability target. The initial
// state set is consulted as a set (InitialStates), never weighted.
func ComputeStateSets(model gsmp.ModelProvider, e gsmp.Event, target StateSet) (StateSets, error) {
	n := model.NumStates()

	// Step 1: states = active(e) \ target.
	states := NewStateSet(n)
	for _, s := range e.ActiveStates() {
		if !target.Contains(s) {
			states.Add(s)
		}
	}
	if states.Len() == 0 {
		return StateSets{}, fmt.Errorf("potato.ComputeStateSets(%s): %w", e.ID, ErrEmptyActiveSet)
	}

	entrances := NewStateSet(n)
	successors := NewStateSet(n)

	// Step 2a: exponential-row entrances — any state outside active(e) whose
	// CTMC row has positive rate into `states`.
	for s := 0; s < n; s++ {
		if e.IsActiveAt(s) {
			continue
		}
		row, err := model.Transitions(s)
		if err != nil {
			return StateSets{}, fmt.Errorf("potato.ComputeStateSets(%s): %w", e.ID, err)
		}
		for j, rate := range row {
			if rate > 0 && states.Contains(j) {
				entrances.Add(j)
			}
		}
	}

	// Step 2b: other-event-transition entrances — any other event e' whose
	// successor distribution, fired from a state in active(e'), lands in
	// `states`.
	for _, other := range model.Events() {
		if other.ID == e.ID {
			continue
		}
		for _, s := range other.ActiveStates() {
			for succ := range other.SuccDist[s] {
				if states.Contains(succ) {
					entrances.Add(succ)
				}
			}
		}
	}

	// Step 2c: initial-state entrances.
	for _, s := range model.InitialStates() {
		if states.Contains(s) {
			entrances.Add(s)
		}
	}

	// Step 2d: self-re-entry — e's own transitions landing back in `states`.
	for _, s := range e.ActiveStates() {
		if !states.Contains(s) {
			continue
		}
		for succ := range e.SuccDist[s] {
			if states.Contains(succ) {
				entrances.Add(succ)
			}
		}
	}

	// Step 3: successors — states outside `states` reachable in one CTMC
	// step from inside, plus e-transitions to outside, plus absorbed targets.
	for _, s := range states.Slice() {
		row, err := model.Transitions(s)
		if err != nil {
			return StateSets{}, fmt.Errorf("potato.ComputeStateSets(%s): %w", e.ID, err)
		}
		for j, rate := range row {
			if rate > 0 && !states.Contains(j) {
				successors.Add(j)
			}
		}
		for succ := range e.SuccDist[s] {
			if !states.Contains(succ) {
				successors.Add(succ)
			}
		}
	}
	for _, s := range e.ActiveStates() {
		if target.Contains(s) {
			successors.Add(s)
		}
	}

	// Tie-break: a state that is both target and entrance becomes a
	// successor only, never an interior/entrance state.
	for _, s := range target.Slice() {
		if entrances.Contains(s) {
			entrances.Remove(s)
			states.Remove(s)
			successors.Add(s)
		}
	}

	return StateSets{States: states, Entrances: entrances, Successors: successors}, nil
}

package reduction

import (
	"fmt"

	"github.com/prism-gsmp/actmcreduce/dtmcsolver"
	"github.com/prism-gsmp/actmcreduce/gsmp"
	"github.com/prism-gsmp/actmcreduce/potato"
)

// ACTMCReduction owns the event-identifier -> Potato map for one (model,
// rewards, target, mode) tuple, per spec.md §3 "Ownership". It is built
// once via Build and must not be mutated afterward (spec.md §5).
type ACTMCReduction struct {
	actmc    *gsmp.ACTMC
	rewards  *gsmp.RewardStructure
	settings gsmp.Settings
	mode     Mode
	target   potato.StateSet
	solver   dtmcsolver.ReachRewardSolver
	potatoes map[string]*potato.Potato

	built bool
	dtmc  *DTMC
	rw    RewardVector
	meta  map[string]PotatoMetadata
	trace KappaTrace
}

// New constructs an ACTMCReduction over actmc/rewards for the given target
// set and mode, instantiating one Potato per non-exponential (alarm) event.
// No computation happens until Build is called.
func New(actmc *gsmp.ACTMC, rewards *gsmp.RewardStructure, settings gsmp.Settings, mode Mode, target potato.StateSet) (*ACTMCReduction, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("reduction.New: %w", err)
	}

	q := actmc.MaxExitRate()
	if q <= 0 {
		// A model with no exponential transitions at all (every active
		// event is an alarm) has nothing to derive an initial uniformisation
		// rate from; assemble's q-raising rule (spec.md §4.6 step 2) takes
		// over once potato rates 1/theta(s) are known.
		q = 1.0
	}
	potatoes := make(map[string]*potato.Potato)
	for _, e := range actmc.Events() {
		if e.Dist.Kind == gsmp.DistExponential {
			continue
		}
		potatoes[e.ID] = potato.New(actmc, rewards, e, target, q, seedKappa)
	}

	return &ACTMCReduction{
		actmc:    actmc,
		rewards:  rewards,
		settings: settings,
		mode:     mode,
		target:   target,
		solver:   dtmcsolver.NewGaussSeidel(),
		potatoes: potatoes,
	}, nil
}

// WithSolver overrides the inner reach-reward solver used during
// κ-derivation. Must be called before Build.
func (r *ACTMCReduction) WithSolver(solver dtmcsolver.ReachRewardSolver) error {
	if r.built {
		return fmt.Errorf("reduction.ACTMCReduction.WithSolver: %w", ErrAlreadyBuilt)
	}
	r.solver = solver

	return nil
}

// Build derives κ (or uses the constant digit count directly, per
// settings.ComputeKappa), applies it to every potato, and assembles the
// final DTMC and reward vector. Idempotent: a second call returns the
// already-built result without recomputing.
func (r *ACTMCReduction) Build() (*DTMC, RewardVector, error) {
	if r.built {
		return r.dtmc, r.rw, nil
	}

	kappa, trace, err := DeriveKappa(r.actmc, r.rewards, r.settings, r.target, r.potatoes, r.solver, r.mode)
	if err != nil {
		return nil, nil, fmt.Errorf("reduction.ACTMCReduction.Build: %w", err)
	}
	for _, p := range r.potatoes {
		p.SetKappa(kappa)
	}

	dtmc, rw, meta, err := assemble(r.actmc, r.rewards, r.potatoes, r.mode)
	if err != nil {
		return nil, nil, fmt.Errorf("reduction.ACTMCReduction.Build: %w", err)
	}

	r.dtmc = dtmc
	r.rw = rw
	r.meta = meta
	r.trace = trace
	r.built = true

	return r.dtmc, r.rw, nil
}

// Metadata returns the per-event potato metadata from the last Build call.
func (r *ACTMCReduction) Metadata() map[string]PotatoMetadata {
	return r.meta
}

// KappaTrace returns the κ-derivation intermediates from the last Build call.
func (r *ACTMCReduction) KappaTrace() KappaTrace {
	return r.trace
}

// RelevantStates returns the relevant-state bitset (spec.md §4.7) for this
// reduction's model and potatoes.
func (r *ACTMCReduction) RelevantStates() ([]bool, error) {
	return RelevantStates(r.actmc, r.potatoes)
}

package potato

import "errors"

// Sentinel errors for the potato package. Distribution-support failures
// (ErrInvalidPotatoDistribution, ErrUnsupportedDistribution) are gsmp's own
// sentinels, returned directly rather than redeclared here — see numerics.go.
var (
	// ErrEmptyActiveSet indicates an event's active set became empty after
	// subtracting the target set — nothing to build a potato over.
	ErrEmptyActiveSet = errors.New("potato: active set minus target is empty")

	// ErrUnknownEntrance indicates a numerics query named a state that is
	// not among the potato's computed entrances.
	ErrUnknownEntrance = errors.New("potato: state is not a computed entrance")

	// ErrStateSetsNotComputed indicates BuildLocalDTMC or ComputeNumerics
	// was called before ComputeStateSets populated the Potato.
	ErrStateSetsNotComputed = errors.New("potato: state sets not computed yet")

	// ErrDTMCNotBuilt indicates ComputeNumerics was called before
	// BuildLocalDTMC populated the Potato's local DTMC.
	ErrDTMCNotBuilt = errors.New("potato: local dtmc not built yet")

	// ErrRenormalizationFailed indicates an exit distribution's mass could
	// not be renormalised to 1 within the 10*kappa tolerance spec.md §4.5
	// requires.
	ErrRenormalizationFailed = errors.New("potato: exit distribution failed to renormalize within tolerance")

	// ErrNonStochasticRow indicates BuildLocalDTMC's uniformisation produced
	// a row that does not sum to 1, meaning q was smaller than some
	// interior state's total exit rate.
	ErrNonStochasticRow = errors.New("potato: uniformised row is not stochastic")
)

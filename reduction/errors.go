package reduction

import "errors"

// ErrAlreadyBuilt indicates a mutation was attempted on an ACTMCReduction
// that has already produced its DTMC, per spec.md §5: "a reduction that has
// begun producing its DTMC must not be mutated."
var ErrAlreadyBuilt = errors.New("reduction: reduction already built, cannot mutate")

// ErrNoRelevantStates indicates RelevantStates found nothing to reduce over
// (degenerate model), surfaced distinctly from the silent κ-derivation
// fallbacks so callers can detect a genuinely empty model.
var ErrNoRelevantStates = errors.New("reduction: no relevant states in model")

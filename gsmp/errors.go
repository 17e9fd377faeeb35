// Package gsmp defines the data model (Distribution, Event, ACTMC,
// RewardStructure), the external collaborator interfaces the reduction
// engine consumes (ModelProvider, RewardProvider, Settings), and the
// package-wide error taxonomy every downstream package (bigfloat excepted)
// wraps rather than re-declares.
package gsmp

import "errors"

// Sentinel errors, per spec.md §7. errors.Is is the contract; context
// (event id, entrance state, κ in effect) is layered on with fmt.Errorf at
// the call site, never by minting a parallel sentinel for the same fault.
var (
	// ErrInvalidModel covers alarm overlap, malformed distribution
	// parameters, and an empty event active-set.
	ErrInvalidModel = errors.New("gsmp: invalid model")

	// ErrUnsupportedDistribution is returned when a distribution family the
	// reduction cannot process (Weibull, and any future unsupported family)
	// is used as an alarm.
	ErrUnsupportedDistribution = errors.New("gsmp: unsupported distribution")

	// ErrInvalidPotatoDistribution is returned when an Exponential
	// distribution is passed where a potato-building alarm is required —
	// Exponential events are ordinary CTMC transitions, never potatoes.
	ErrInvalidPotatoDistribution = errors.New("gsmp: exponential is not a valid potato distribution")

	// ErrNumericOverflow indicates Fox–Glynn truncation could not be
	// determined within the configured [underflow, overflow] guard range.
	// Recoverable: the caller may widen precision and retry.
	ErrNumericOverflow = errors.New("gsmp: numeric overflow in truncation search")

	// ErrUnsolvable indicates the downstream DTMC solver failed to converge.
	ErrUnsolvable = errors.New("gsmp: dtmc solver failed to converge")
)

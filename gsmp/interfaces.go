package gsmp

import "fmt"

// ModelProvider is the external collaborator surface spec.md §6 describes:
// the minimum a model must expose for the reduction engine to operate. Both
// *ACTMC and any caller-supplied adapter over an external model
// representation satisfy it.
type ModelProvider interface {
	// NumStates returns the number of states in the model.
	NumStates() int

	// InitialStates returns the initial state indices, consulted as a set
	// (not weighted) per spec.md §4.3.
	InitialStates() []int

	// Transitions returns the plain exponential-rate row for state s
	// (event transitions are resolved separately by the potato machinery).
	Transitions(s int) (map[int]float64, error)

	// MaxExitRate returns q, the uniformisation rate.
	MaxExitRate() float64

	// Events returns every racing event (exponential and non-exponential).
	Events() []Event

	// ActiveEvent returns the non-exponential alarm active at s, if any.
	ActiveEvent(s int) (Event, bool)
}

// RewardProvider is the external reward surface spec.md §6 describes.
type RewardProvider interface {
	// StateReward returns the (finite, non-negative) reward attached to s.
	StateReward(s int) (float64, error)

	// EventTransitionRewards returns the reward for each successor of a
	// firing of eventID from s.
	EventTransitionRewards(s int, eventID string) (map[int]float64, error)

	// HasTransitionRewards reports whether any event-transition reward has
	// been configured at all (an all-zero fast path for callers).
	HasTransitionRewards() bool
}

// Settings carries the user-facing knobs spec.md §6 describes.
type Settings struct {
	// Epsilon is the global termination error, in (0, 0.5).
	Epsilon float64

	// ComputeKappa enables the two-stage adaptive κ-derivation of
	// spec.md §4.8. When false, ConstantKappaDecimalDigits is used
	// directly as the κ for every potato.
	ComputeKappa bool

	// ConstantKappaDecimalDigits clamps κ from below
	// (κ >= 10^-ConstantKappaDecimalDigits) and is used directly when
	// ComputeKappa is false. Must be >= 1.
	ConstantKappaDecimalDigits int
}

// DefaultSettings returns Settings with conservative, commonly-used values:
// Epsilon=0.01, adaptive κ enabled, clamped to 10 decimal digits.
func DefaultSettings() Settings {
	return Settings{
		Epsilon:                    0.01,
		ComputeKappa:               true,
		ConstantKappaDecimalDigits: 10,
	}
}

// Validate checks Settings fields hold a valid combination.
func (s Settings) Validate() error {
	if s.Epsilon <= 0 || s.Epsilon >= 0.5 {
		return fmt.Errorf("gsmp: Settings.Epsilon must be in (0,0.5), got %g: %w", s.Epsilon, ErrInvalidModel)
	}
	if s.ConstantKappaDecimalDigits < 1 {
		return fmt.Errorf("gsmp: Settings.ConstantKappaDecimalDigits must be >= 1, got %d: %w", s.ConstantKappaDecimalDigits, ErrInvalidModel)
	}

	return nil
}

package gsmp

import "fmt"

// transitionRewardKey identifies a (state, event, successor) reward entry.
type transitionRewardKey struct {
	state     int
	eventID   string
	successor int
}

// RewardStructure holds per-state rewards and per-event-transition rewards.
// CTMC transition rewards have already been folded into state rewards by
// the caller — this type only ever stores state rewards and event-transition
// rewards, per spec.md §3.
type RewardStructure struct {
	stateReward      []float64
	transitionReward map[transitionRewardKey]float64
	hasTransition    bool
}

// NewRewardStructure constructs a RewardStructure over numStates states.
// stateReward must have length numStates (or be nil, meaning all zero) and
// every entry must be finite and non-negative.
func NewRewardStructure(numStates int, stateReward []float64) (*RewardStructure, error) {
	if stateReward == nil {
		stateReward = make([]float64, numStates)
	}
	if len(stateReward) != numStates {
		return nil, fmt.Errorf("gsmp.NewRewardStructure: len(stateReward)=%d != numStates=%d: %w", len(stateReward), numStates, ErrInvalidModel)
	}
	for s, r := range stateReward {
		if r < 0 {
			return nil, fmt.Errorf("gsmp.NewRewardStructure: negative reward %g at state %d: %w", r, s, ErrInvalidModel)
		}
	}

	cp := make([]float64, numStates)
	copy(cp, stateReward)

	return &RewardStructure{stateReward: cp, transitionReward: make(map[transitionRewardKey]float64)}, nil
}

// SetTransitionReward assigns the reward accrued when eventID fires from
// state and lands on successor. Must be finite and non-negative.
func (r *RewardStructure) SetTransitionReward(state int, eventID string, successor int, reward float64) error {
	if reward < 0 {
		return fmt.Errorf("gsmp.RewardStructure.SetTransitionReward: negative reward %g: %w", reward, ErrInvalidModel)
	}
	r.transitionReward[transitionRewardKey{state: state, eventID: eventID, successor: successor}] = reward
	r.hasTransition = true

	return nil
}

// StateReward implements RewardProvider.
func (r *RewardStructure) StateReward(s int) (float64, error) {
	if s < 0 || s >= len(r.stateReward) {
		return 0, fmt.Errorf("gsmp.RewardStructure.StateReward: state %d out of range: %w", s, ErrInvalidModel)
	}

	return r.stateReward[s], nil
}

// EventTransitionReward returns the reward for (state, eventID, successor),
// defaulting to 0 when unset.
func (r *RewardStructure) EventTransitionReward(state int, eventID string, successor int) float64 {
	return r.transitionReward[transitionRewardKey{state: state, eventID: eventID, successor: successor}]
}

// HasTransitionRewards implements RewardProvider.
func (r *RewardStructure) HasTransitionRewards() bool { return r.hasTransition }

// EventTransitionRewards implements RewardProvider: the transition rewards
// of event eventID firing from s, keyed by successor. Successors with no
// configured reward are absent from the map.
func (r *RewardStructure) EventTransitionRewards(s int, eventID string) (map[int]float64, error) {
	if s < 0 || s >= len(r.stateReward) {
		return nil, fmt.Errorf("gsmp.RewardStructure.EventTransitionRewards: state %d out of range: %w", s, ErrInvalidModel)
	}
	out := make(map[int]float64)
	for k, v := range r.transitionReward {
		if k.state == s && k.eventID == eventID {
			out[k.successor] = v
		}
	}

	return out, nil
}

package gsmp

import "fmt"

// ACTMC is a CTMC (rate matrix over N states plus an initial-state set)
// augmented with a list of racing events. At most one non-exponential
// event may be active per state (the "alarm"); exponential events may
// overlap freely with each other and with the alarm.
type ACTMC struct {
	numStates int
	rates     []map[int]float64 // rates[s][j] = CTMC rate from s to j (exponential transitions only)
	initial   []bool
	events    []Event
	alarm     []int // alarm[s] = index into events for the non-exponential alarm at s, or -1
}

// NewACTMC validates and constructs an ACTMC. rates holds the plain
// exponential-transition rate matrix (sparse, by source state); initial
// lists the initial state indices; events lists every racing event
// (exponential and non-exponential alike).
//
// Validate enforces the ACTMC invariant: at most one non-exponential event
// active per state.
func NewACTMC(numStates int, rates []map[int]float64, initial []int, events []Event) (*ACTMC, error) {
	if numStates <= 0 {
		return nil, fmt.Errorf("gsmp.NewACTMC: numStates %d <= 0: %w", numStates, ErrInvalidModel)
	}
	if len(rates) != numStates {
		return nil, fmt.Errorf("gsmp.NewACTMC: len(rates)=%d != numStates=%d: %w", len(rates), numStates, ErrInvalidModel)
	}

	initSet := make([]bool, numStates)
	for _, s := range initial {
		if s < 0 || s >= numStates {
			return nil, fmt.Errorf("gsmp.NewACTMC: initial state %d out of range: %w", s, ErrInvalidModel)
		}
		initSet[s] = true
	}

	alarm := make([]int, numStates)
	for i := range alarm {
		alarm[i] = -1
	}
	for idx, e := range events {
		if e.Dist.Kind == DistExponential {
			continue // exponential events never count toward the alarm invariant
		}
		for s, on := range e.Active {
			if !on {
				continue
			}
			if alarm[s] != -1 {
				return nil, fmt.Errorf("gsmp.NewACTMC: state %d has more than one non-exponential alarm (%q and %q): %w",
					s, events[alarm[s]].ID, e.ID, ErrInvalidModel)
			}
			alarm[s] = idx
		}
	}

	return &ACTMC{
		numStates: numStates,
		rates:     rates,
		initial:   initSet,
		events:    events,
		alarm:     alarm,
	}, nil
}

// NumStates implements ModelProvider.
func (m *ACTMC) NumStates() int { return m.numStates }

// InitialStates implements ModelProvider, returning sorted indices.
func (m *ACTMC) InitialStates() []int {
	out := make([]int, 0)
	for s, on := range m.initial {
		if on {
			out = append(out, s)
		}
	}

	return out
}

// IsInitial reports whether s is an initial state.
func (m *ACTMC) IsInitial(s int) bool {
	return s >= 0 && s < len(m.initial) && m.initial[s]
}

// Transitions implements ModelProvider: the plain exponential-rate row for
// state s (event transitions are not included — they are resolved by the
// potato machinery, not by the raw CTMC projection).
func (m *ACTMC) Transitions(s int) (map[int]float64, error) {
	if s < 0 || s >= m.numStates {
		return nil, fmt.Errorf("gsmp.ACTMC.Transitions: state %d out of range: %w", s, ErrInvalidModel)
	}

	return m.rates[s], nil
}

// MaxExitRate implements ModelProvider: the uniformisation rate q, the
// maximum total exit rate (sum of outgoing exponential rates) over all
// states.
func (m *ACTMC) MaxExitRate() float64 {
	q := 0.0
	for _, row := range m.rates {
		total := 0.0
		for _, rate := range row {
			total += rate
		}
		if total > q {
			q = total
		}
	}

	return q
}

// Events implements ModelProvider.
func (m *ACTMC) Events() []Event { return m.events }

// ActiveEvent implements ModelProvider: the non-exponential alarm active at
// s, if any.
func (m *ACTMC) ActiveEvent(s int) (Event, bool) {
	if s < 0 || s >= m.numStates {
		return Event{}, false
	}
	idx := m.alarm[s]
	if idx == -1 {
		return Event{}, false
	}

	return m.events[idx], true
}

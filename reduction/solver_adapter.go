package reduction

import "fmt"

// reachModelAdapter adapts a DTMC to dtmcsolver.ReachModel without copying
// its rows.
type reachModelAdapter struct {
	d *DTMC
}

func asReachModel(d *DTMC) reachModelAdapter {
	return reachModelAdapter{d: d}
}

func (a reachModelAdapter) NumStates() int { return a.d.NumStates }

func (a reachModelAdapter) Row(s int) (map[int]float64, error) {
	if s < 0 || s >= a.d.NumStates {
		return nil, fmt.Errorf("reduction.DTMC.Row: state %d out of range [0,%d)", s, a.d.NumStates)
	}

	return a.d.Rows[s], nil
}

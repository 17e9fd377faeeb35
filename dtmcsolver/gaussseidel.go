package dtmcsolver

import "fmt"

// Default tuning for GaussSeidel, mirroring the teacher's single-source-of-
// truth constant block for functional options.
const (
	DefaultEpsilon       = 1e-10
	DefaultMaxIterations = 10000
)

// Option configures a GaussSeidel solver.
type Option func(*GaussSeidel)

// WithEpsilon sets the convergence tolerance: iteration stops once the
// largest per-state delta between sweeps falls below eps.
func WithEpsilon(eps float64) Option {
	return func(g *GaussSeidel) { g.epsilon = eps }
}

// WithMaxIterations bounds the number of sweeps before giving up with
// ErrDidNotConverge.
func WithMaxIterations(n int) Option {
	return func(g *GaussSeidel) { g.maxIterations = n }
}

// GaussSeidel solves the reach-reward fixed point
//
//	V(s) = rewards[s]                          if target[s]
//	V(s) = rewards[s] + Σ_j P(s,j)·V(j)        otherwise
//
// by Gauss-Seidel sweeps (updating V in place within a sweep, so later
// states in the same pass see already-updated values — the standard
// reliability-favoring choice over Jacobi for this kind of fixed point, per
// spec.md §6).
type GaussSeidel struct {
	epsilon       float64
	maxIterations int
}

// NewGaussSeidel builds a GaussSeidel solver with the given options applied
// over DefaultEpsilon/DefaultMaxIterations.
func NewGaussSeidel(opts ...Option) *GaussSeidel {
	g := &GaussSeidel{epsilon: DefaultEpsilon, maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// ComputeReachRewards implements ReachRewardSolver.
func (g *GaussSeidel) ComputeReachRewards(dtmc ReachModel, rewards []float64, target []bool) ([]float64, error) {
	n := dtmc.NumStates()
	if len(rewards) != n || len(target) != n {
		return nil, fmt.Errorf("dtmcsolver.GaussSeidel.ComputeReachRewards: len(rewards)=%d len(target)=%d n=%d: %w", len(rewards), len(target), n, ErrInvalidInput)
	}

	rows := make([]map[int]float64, n)
	for s := 0; s < n; s++ {
		row, err := dtmc.Row(s)
		if err != nil {
			return nil, fmt.Errorf("dtmcsolver.GaussSeidel.ComputeReachRewards: %w", err)
		}
		rows[s] = row
	}

	v := make([]float64, n)
	copy(v, rewards)

	for iter := 0; iter < g.maxIterations; iter++ {
		maxDelta := 0.0
		for s := 0; s < n; s++ {
			if target[s] {
				continue
			}
			sum := rewards[s]
			for j, p := range rows[s] {
				sum += p * v[j]
			}
			delta := sum - v[s]
			if delta < 0 {
				delta = -delta
			}
			if delta > maxDelta {
				maxDelta = delta
			}
			v[s] = sum
		}
		if maxDelta < g.epsilon {
			return v, nil
		}
	}

	return nil, ErrDidNotConverge
}

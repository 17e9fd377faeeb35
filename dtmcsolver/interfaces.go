package dtmcsolver

// ReachModel is the minimal read-only row-stochastic view a solver needs:
// the state count and each state's outgoing distribution. reduction.DTMC
// satisfies this via an adapter in reduction/solver_adapter.go.
type ReachModel interface {
	// NumStates returns the number of states in the chain.
	NumStates() int

	// Row returns state s's outgoing transition probabilities, keyed by
	// successor index. Rows for absorbing/target states may be empty.
	Row(s int) (map[int]float64, error)
}

// ReachRewardSolver computes, for every state s, the expected total reward
// accumulated before (and including, per rewards[s]) first reaching target,
// per spec.md §6. Must support being driven repeatedly with a mutated
// target bitset (transient targeting, as κ-derivation's two stages do).
type ReachRewardSolver interface {
	ComputeReachRewards(dtmc ReachModel, rewards []float64, target []bool) ([]float64, error)
}

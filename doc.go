// Package actmcreduce reduces an Alarm Continuous-Time Markov Chain (ACTMC)
// — a CTMC augmented with at most one non-exponential "alarm" event active
// per state — to a numerically equivalent discrete-time Markov chain (DTMC)
// plus a companion reward structure, accurate to a rigorously derived error
// bound κ.
//
// Under the hood, everything is organized under six subpackages:
//
//	gsmp/       — the data model (ACTMC, Event, Distribution, RewardStructure)
//	             and the external collaborator interfaces the engine consumes
//	bigfloat/   — arbitrary-precision decimal and extended-range float
//	             arithmetic for numerics that would underflow a plain float64
//	foxglynn/   — truncated Poisson weights (Fox & Glynn 1988) in extended-
//	             range arithmetic
//	potato/     — per-event state-set classification, local uniformised DTMC
//	             construction, and the transient sweeps that turn a firing
//	             distribution into mean sojourn time, exit distribution, and
//	             accumulated reward
//	dtmcsolver/ — the minimum DTMC reach-reward solver surface (Gauss-Seidel)
//	             κ-derivation needs to probe empirical bounds
//	reduction/  — ACTMCReduction, the top-level assembly that stitches every
//	             potato's results into one DTMC and reward vector
//
// No file formats, CLI, or network surface: this is a library core, consumed
// by a downstream DTMC model checker that evaluates reachability
// probability, expected reward, or mean payoff over the reduced chain.
package actmcreduce

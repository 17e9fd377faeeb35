// Package potato implements the per-event potato analysis at the heart of
// the ACTMC reduction: for a given non-exponential alarm event, it
// classifies the active region into interior/entrance/successor states
// (ComputeStateSets), builds a local uniformised DTMC over that region
// (BuildLocalDTMC), and — dispatched by firing-time distribution family —
// computes the expected sojourn time, exit distribution, and accumulated
// reward between entry and exit (ComputeNumerics).
//
// A Potato lazily computes state sets, then its local DTMC, then per-entrance
// numerics as each is first requested, and caches every result. SetKappa
// (the governing κ changed) clears only the numerics cache; Invalidate
// clears every cache.
package potato

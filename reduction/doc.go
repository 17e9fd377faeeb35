// Package reduction assembles per-event potato.Potato results into a single
// uniformised DTMC plus companion reward vector, per spec.md §4.6-§4.8: the
// ACTMC→DTMC reduction and the two-stage adaptive κ-derivation that
// guarantees the composed result is within a caller-specified ε.
package reduction

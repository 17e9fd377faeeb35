// Package dtmcsolver defines the minimal "inner DTMC solver" surface
// spec.md §6 describes — the reach-reward computation the κ-derivation
// stage of the reduction engine (and any downstream model-checker) drives
// against a plain row-stochastic DTMC — plus one shipped implementation,
// GaussSeidel, the reliability choice per spec.md §6.
//
// Everything past the DTMC/reward-vector/target-set boundary (parsing,
// property evaluation, the generic model-checking engine itself) is out of
// scope; this package only solves the fixed-point reach-reward equation.
package dtmcsolver

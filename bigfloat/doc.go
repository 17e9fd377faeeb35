// Package bigfloat provides the two numeric abstractions the reduction
// engine needs to stay accurate across extreme dynamic range:
//
//   - Decimal: an arbitrary-precision decimal (backed by cockroachdb/apd/v3)
//     with an explicit precision+rounding Context, used anywhere a result
//     must be auditable against a κ error budget.
//   - Extended: a (mantissa, decimal-exponent) pair used inside Fox–Glynn,
//     where intermediate Poisson probabilities span thousands of orders
//     of magnitude and would underflow or overflow a native float64.
//
// Every Context operation rounds half-up, matching the contract that a
// precision-bearing operation must never silently round toward even or
// down.
package bigfloat

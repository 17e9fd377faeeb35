package foxglynn

import (
	"fmt"
	"math"

	"github.com/prism-gsmp/actmcreduce/bigfloat"
)

// DefaultUnderflow and DefaultOverflow are the guard constants spec.md §4.2
// suggests (1e-300, 1e300), expressed in extended-range form so they remain
// exact regardless of how many orders of magnitude the search window spans.
var (
	DefaultUnderflow = bigfloat.NewExtended(1.0, -300)
	DefaultOverflow  = bigfloat.NewExtended(1.0, 300)
)

// Result is the output of a Fox–Glynn truncation: the window [L,R], the
// (unnormalised, extended-range) weight vector W indexed from L, and the
// total T = sum(W).
type Result struct {
	L, R  int
	W     []bigfloat.Extended
	Total bigfloat.Extended
}

// At returns W[i-L], the weight for Poisson index i, or ExtendedZero if i
// falls outside [L,R].
func (r Result) At(i int) bigfloat.Extended {
	if i < r.L || i > r.R {
		return bigfloat.ExtendedZero
	}

	return r.W[i-r.L]
}

// Weights computes the Fox & Glynn (1988) truncation window and weight
// vector for Poisson(lambda), guaranteeing the tail outside [L,R] is within
// kappa of the total mass, searched within [underflow, overflow].
//
// Algorithm (Fox & Glynn 1988, as adapted for extended-range arithmetic):
//  1. Seed the recursion at the Poisson mode m = floor(lambda) with weight 1.
//  2. Propagate right via W[i+1] = W[i]*lambda/(i+1) until the running right
//     tail contributes less than kappa/2 of the accumulated total, or the
//     overflow guard is reached (failure).
//  3. Propagate left via W[i-1] = W[i]*i/lambda symmetrically.
//  4. T = sum(W[L..R]) is the normalising total; callers needing
//     probabilities divide each W[i] by T.
//
// Complexity: O(R-L) time and space; R-L grows roughly as
// lambda + O(sqrt(lambda)) for the guarantees this function targets.
func Weights(lambda float64, underflow, overflow bigfloat.Extended, kappa bigfloat.Decimal) (Result, error) {
	// Stage 1: Validate inputs.
	if lambda <= 0 {
		return Result{}, fmt.Errorf("foxglynn.Weights: lambda=%g: %w", lambda, ErrInvalidLambda)
	}
	if underflow.Cmp(overflow) >= 0 {
		return Result{}, fmt.Errorf("foxglynn.Weights: underflow >= overflow: %w", ErrInvalidGuard)
	}
	kappaF, err := kappa.Float64()
	if err != nil || kappaF <= 0 {
		return Result{}, fmt.Errorf("foxglynn.Weights: invalid kappa %s: %w", kappa.String(), ErrInvalidGuard)
	}
	halfKappa := kappaF / 2

	// Stage 2: Seed at the mode.
	m := int(math.Floor(lambda))
	if m < 0 {
		m = 0
	}
	weights := map[int]bigfloat.Extended{m: bigfloat.NewExtended(1.0, 0)}
	total := weights[m]

	// Stage 3: Propagate right until the tail is provably negligible.
	r := m
	for {
		cur := weights[r]
		ratioNext := lambda / float64(r+1)
		next := cur.Mul(bigfloat.ExtendedFromFloat64(ratioNext))
		if next.Exceeds(overflow) {
			return Result{}, fmt.Errorf("foxglynn.Weights: lambda=%g right tail hit overflow guard at i=%d: %w", lambda, r+1, ErrOverflow)
		}
		r++
		weights[r] = next
		total = total.Add(next)
		if next.Below(underflow) {
			break
		}
		// Stop once the unconsumed right tail (bounded by a geometric
		// continuation at the current ratio) is within halfKappa of total.
		ratio := lambda / float64(r+1)
		if ratio < 1 {
			boundMantissa := next.Mantissa * ratio / (1 - ratio)
			bound := bigfloat.NewExtended(boundMantissa, next.Exponent)
			tf, ok := bound.Float64()
			totalF, okT := total.Float64()
			if ok && okT && totalF > 0 && tf <= halfKappa*totalF {
				break
			}
		}
	}

	// Stage 4: Propagate left symmetrically.
	l := m
	for l > 0 {
		cur := weights[l]
		next := cur.Mul(bigfloat.NewExtended(float64(l), 0)).Mul(bigfloat.NewExtended(1.0/lambda, 0))
		l--
		weights[l] = next
		total = total.Add(next)
		if next.Below(underflow) {
			break
		}
		ratio := float64(l) / lambda
		if ratio < 1 && l > 0 {
			boundMantissa := next.Mantissa * ratio / (1 - ratio)
			bound := bigfloat.NewExtended(boundMantissa, next.Exponent)
			tf, ok := bound.Float64()
			totalF, okT := total.Float64()
			if ok && okT && totalF > 0 && tf <= halfKappa*totalF {
				break
			}
		}
	}

	// Stage 5: Materialise the dense weight slice [l..r].
	out := make([]bigfloat.Extended, r-l+1)
	for i := l; i <= r; i++ {
		out[i-l] = weights[i]
	}

	return Result{L: l, R: r, W: out, Total: total}, nil
}

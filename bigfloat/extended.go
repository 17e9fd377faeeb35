// Package bigfloat: Extended — a (mantissa, decimal-exponent) floating pair
// that survives the underflow/overflow a native float64 would hit while
// Fox–Glynn evaluates Poisson probabilities across thousands of orders of
// magnitude.
package bigfloat

import "math"

// Extended represents mantissa * 10^exponent, with mantissa kept in
// [1,10) (or exactly 0) after every operation. Unlike Decimal, Extended
// trades precision (it rides on a native float64 mantissa) for the wide
// dynamic range Fox–Glynn needs; Decimal trades range for auditable
// precision. Both exist because the two truncation routines have opposite
// numeric pressures.
type Extended struct {
	Mantissa float64
	Exponent int
}

// ExtendedZero is the additive identity.
var ExtendedZero = Extended{Mantissa: 0, Exponent: 0}

// NewExtended builds an Extended value, normalising the mantissa into
// [1,10) immediately.
func NewExtended(mantissa float64, exponent int) Extended {
	return normalize(mantissa, exponent)
}

// ExtendedFromFloat64 lifts a plain float64 into extended-range form.
func ExtendedFromFloat64(f float64) Extended {
	if f == 0 {
		return ExtendedZero
	}

	return normalize(f, 0)
}

// normalize rescales mantissa into [1,10) (or leaves 0 untouched), folding
// the shift into exponent. Handles negative mantissas by normalising the
// absolute value and restoring the sign.
func normalize(mantissa float64, exponent int) Extended {
	if mantissa == 0 {
		return Extended{Mantissa: 0, Exponent: 0}
	}
	sign := 1.0
	if mantissa < 0 {
		sign = -1.0
		mantissa = -mantissa
	}
	// Stage 1: bring mantissa into [1,10) by shifting the decimal point via
	// math.Log10, then refine with a multiplicative correction loop to
	// absorb floating-point error in the log estimate.
	shift := int(math.Floor(math.Log10(mantissa)))
	mantissa *= math.Pow(10, float64(-shift))
	exponent += shift

	// Stage 2: correction loop — log10 can be off by one near a power of 10
	// due to floating rounding; nudge until strictly inside [1,10).
	for mantissa >= 10 {
		mantissa /= 10
		exponent++
	}
	for mantissa < 1 {
		mantissa *= 10
		exponent--
	}

	return Extended{Mantissa: sign * mantissa, Exponent: exponent}
}

// Add returns x+y in extended-range form.
func (x Extended) Add(y Extended) Extended {
	if x.Mantissa == 0 {
		return y
	}
	if y.Mantissa == 0 {
		return x
	}
	// Align y's mantissa to x's exponent before adding.
	shift := x.Exponent - y.Exponent
	if shift > 18 {
		return x // y is negligible at float64 precision relative to x
	}
	if shift < -18 {
		return y
	}

	return normalize(x.Mantissa+y.Mantissa*math.Pow(10, float64(-shift)), x.Exponent)
}

// Sub returns x-y in extended-range form.
func (x Extended) Sub(y Extended) Extended {
	return x.Add(Extended{Mantissa: -y.Mantissa, Exponent: y.Exponent})
}

// Mul returns x*y in extended-range form.
func (x Extended) Mul(y Extended) Extended {
	if x.Mantissa == 0 || y.Mantissa == 0 {
		return ExtendedZero
	}

	return normalize(x.Mantissa*y.Mantissa, x.Exponent+y.Exponent)
}

// Div returns x/y in extended-range form. Panics-free: callers must check
// y.Mantissa != 0 (the caller always knows y is a Poisson weight or rate,
// never a data-dependent divisor that could legitimately be zero).
func (x Extended) Div(y Extended) Extended {
	if x.Mantissa == 0 {
		return ExtendedZero
	}

	return normalize(x.Mantissa/y.Mantissa, x.Exponent-y.Exponent)
}

// Cmp returns -1, 0, +1 comparing x and y numerically.
func (x Extended) Cmp(y Extended) int {
	switch {
	case x.Mantissa == 0 && y.Mantissa == 0:
		return 0
	case x.Mantissa == 0:
		return -sign(y.Mantissa)
	case y.Mantissa == 0:
		return sign(x.Mantissa)
	}
	if sign(x.Mantissa) != sign(y.Mantissa) {
		return sign(x.Mantissa)
	}
	if x.Exponent != y.Exponent {
		// Same sign here: a larger exponent means a larger magnitude, which
		// is the smaller value when both are negative.
		c := 1
		if x.Exponent < y.Exponent {
			c = -1
		}
		if x.Mantissa < 0 {
			c = -c
		}
		return c
	}
	switch {
	case x.Mantissa < y.Mantissa:
		return -1
	case x.Mantissa > y.Mantissa:
		return 1
	default:
		return 0
	}
}

func sign(f float64) int {
	if f < 0 {
		return -1
	}
	if f > 0 {
		return 1
	}
	return 0
}

// Float64 collapses x back to a native float64, reporting false if the
// magnitude overflows or underflows float64's representable range.
func (x Extended) Float64() (float64, bool) {
	if x.Mantissa == 0 {
		return 0, true
	}
	if x.Exponent > 308 || x.Exponent < -308 {
		return 0, false
	}
	v := x.Mantissa * math.Pow(10, float64(x.Exponent))
	if math.IsInf(v, 0) || v == 0 {
		return 0, false
	}

	return v, true
}

// Exceeds reports whether x >= bound — used against the overflow guard
// O during Fox–Glynn's right-tail search.
func (x Extended) Exceeds(bound Extended) bool {
	return x.Cmp(bound) >= 0
}

// Below reports whether x <= bound — used against the underflow guard
// U during Fox–Glynn's left-tail search.
func (x Extended) Below(bound Extended) bool {
	return x.Cmp(bound) <= 0
}

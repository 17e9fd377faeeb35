// Package bigfloat: Decimal and Context — an auditable arbitrary-precision
// decimal layer over github.com/cockroachdb/apd/v3.
//
// Design goals:
//   - Precision and rounding are threaded explicitly per operation via a
//     Context value, never a process-wide default (Design Notes §9: "Global
//     math context" — prefer explicit configuration objects).
//   - Every binary op rounds half-up, matching apd.RoundHalfUp.
//   - Decimal never carries NaN/Inf; construction and every operation
//     validate the result and return ErrNaN on a non-finite outcome.
package bigfloat

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
)

// DefaultPrecision is used by NewContext's zero-value fallback and by any
// caller that does not have a derived κ yet (e.g. during model validation).
const DefaultPrecision = 50

// Context wraps an apd.Context with this package's half-up rounding policy.
// Context is a value type; copying it is cheap and safe (apd.Context holds
// no pointers into shared state).
type Context struct {
	inner apd.Context
}

// NewContext builds a Context with the given decimal precision (number of
// significant digits) and half-up rounding. precision <= 0 falls back to
// DefaultPrecision rather than erroring, since callers typically derive
// precision from a decimal-digit count that is itself clamped elsewhere.
func NewContext(precision uint32) Context {
	if precision == 0 {
		precision = DefaultPrecision
	}

	return Context{inner: apd.Context{
		Precision:   precision,
		MaxExponent: apd.MaxExponent,
		MinExponent: apd.MinExponent,
		Rounding:    apd.RoundHalfUp,
	}}
}

// Precision returns the number of significant decimal digits this Context
// carries operations to.
func (c Context) Precision() uint32 {
	return c.inner.Precision
}

// Decimal is an arbitrary-precision decimal value, never NaN/Inf.
type Decimal struct {
	d apd.Decimal
}

// NewDecimal constructs a Decimal equal to coeff * 10^exponent.
func NewDecimal(coeff int64, exponent int32) Decimal {
	return Decimal{d: *apd.New(coeff, exponent)}
}

// DecimalFromFloat64 converts a float64 to Decimal exactly (apd.Decimal's
// SetFloat64 is exact for any finite float64 — it captures the binary value,
// not a rounded decimal approximation).
func DecimalFromFloat64(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, fmt.Errorf("DecimalFromFloat64: %w", ErrNaN)
	}
	var d apd.Decimal
	if _, err := d.SetFloat64(f); err != nil {
		return Decimal{}, fmt.Errorf("DecimalFromFloat64: %w", ErrNaN)
	}

	return Decimal{d: d}, nil
}

// Float64 converts back to a float64, reporting an error if the Decimal
// cannot be represented (overflow of the float64 exponent range).
func (x Decimal) Float64() (float64, error) {
	f, err := x.d.Float64()
	if err != nil {
		return 0, fmt.Errorf("Decimal.Float64: %w", err)
	}

	return f, nil
}

// String renders the decimal in scientific-or-plain form, whichever apd
// picks for the stored exponent.
func (x Decimal) String() string {
	return x.d.String()
}

// Cmp returns -1, 0, or +1 as x is numerically less than, equal to, or
// greater than y.
func (x Decimal) Cmp(y Decimal) int {
	return x.d.Cmp(&y.d)
}

// IsZero reports whether x is exactly zero.
func (x Decimal) IsZero() bool {
	return x.d.IsZero()
}

// binOp runs an apd binary Context operation and wraps a non-finite result.
func (c Context) binOp(name string, op func(d, x, y *apd.Decimal) (apd.Condition, error), x, y Decimal) (Decimal, error) {
	var out apd.Decimal
	cond, err := op(&out, &x.d, &y.d)
	if err != nil {
		return Decimal{}, fmt.Errorf("bigfloat.%s: %w", name, err)
	}
	if cond.Any() && (cond&(apd.Overflow|apd.Underflow|apd.DivisionByZero)) != 0 {
		return Decimal{}, fmt.Errorf("bigfloat.%s: condition %s: %w", name, cond.String(), ErrNaN)
	}

	return Decimal{d: out}, nil
}

// Add returns x+y at c's precision, rounded half-up.
func (c Context) Add(x, y Decimal) (Decimal, error) {
	return c.binOp("Add", c.inner.Add, x, y)
}

// Sub returns x-y at c's precision, rounded half-up.
func (c Context) Sub(x, y Decimal) (Decimal, error) {
	return c.binOp("Sub", c.inner.Sub, x, y)
}

// Mul returns x*y at c's precision, rounded half-up.
func (c Context) Mul(x, y Decimal) (Decimal, error) {
	return c.binOp("Mul", c.inner.Mul, x, y)
}

// Quo returns x/y at c's precision, rounded half-up.
// Returns ErrDivideByZero if y is exactly zero.
func (c Context) Quo(x, y Decimal) (Decimal, error) {
	if y.IsZero() {
		return Decimal{}, fmt.Errorf("bigfloat.Quo: %w", ErrDivideByZero)
	}

	return c.binOp("Quo", c.inner.Quo, x, y)
}

// unOp runs an apd unary Context operation and wraps a non-finite result.
func (c Context) unOp(name string, op func(d, x *apd.Decimal) (apd.Condition, error), x Decimal) (Decimal, error) {
	var out apd.Decimal
	cond, err := op(&out, &x.d)
	if err != nil {
		return Decimal{}, fmt.Errorf("bigfloat.%s: %w", name, err)
	}
	if cond.Any() && (cond&(apd.Overflow|apd.Underflow|apd.DivisionByZero)) != 0 {
		return Decimal{}, fmt.Errorf("bigfloat.%s: condition %s: %w", name, cond.String(), ErrNaN)
	}

	return Decimal{d: out}, nil
}

// Exp returns e^x at c's precision.
func (c Context) Exp(x Decimal) (Decimal, error) {
	return c.unOp("Exp", c.inner.Exp, x)
}

// Ln returns the natural logarithm of x at c's precision. x must be > 0.
func (c Context) Ln(x Decimal) (Decimal, error) {
	return c.unOp("Ln", c.inner.Ln, x)
}

// Sqrt returns the square root of x at c's precision, computed as
// exp(ln(x)/2) — the natural-logarithm-based route the spec explicitly
// allows, rather than a dedicated Newton iteration.
func (c Context) Sqrt(x Decimal) (Decimal, error) {
	lnX, err := c.Ln(x)
	if err != nil {
		return Decimal{}, fmt.Errorf("bigfloat.Sqrt: %w", err)
	}
	half := NewDecimal(5, -1) // 0.5
	halved, err := c.Mul(lnX, half)
	if err != nil {
		return Decimal{}, fmt.Errorf("bigfloat.Sqrt: %w", err)
	}

	return c.Exp(halved)
}

// Pow returns x^y at c's precision via exp(y * ln(x)).
func (c Context) Pow(x, y Decimal) (Decimal, error) {
	var out apd.Decimal
	cond, err := c.inner.Pow(&out, &x.d, &y.d)
	if err != nil {
		return Decimal{}, fmt.Errorf("bigfloat.Pow: %w", err)
	}
	if cond.Any() && (cond&(apd.Overflow|apd.Underflow|apd.DivisionByZero)) != 0 {
		return Decimal{}, fmt.Errorf("bigfloat.Pow: condition %s: %w", cond.String(), ErrNaN)
	}

	return Decimal{d: out}, nil
}

// AllowedError returns a Decimal representing 10^(-d), the canonical
// "tolerance at d decimal digits" constant used throughout κ-derivation.
func AllowedError(d int) Decimal {
	return NewDecimal(1, int32(-d))
}

// DecimalDigits returns the number of decimal digits required to represent
// x to unit precision, i.e. the length of its coefficient adjusted by its
// exponent. Used to size a Context's Precision from a value's magnitude.
func DecimalDigits(x Decimal) int {
	coeffLen := len(x.d.Coeff.String())
	digits := coeffLen + int(x.d.Exponent)
	if digits < 1 {
		digits = 1
	}

	return digits
}

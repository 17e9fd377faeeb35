package bigfloat

import "errors"

// Sentinel errors for the bigfloat package. Callers should match with
// errors.Is; context (operand values, precision in effect) is added with
// fmt.Errorf("%s: %w", ...) at the call site, never by redefining a new
// sentinel for the same condition.
var (
	// ErrNaN indicates an operation produced or was given a non-finite
	// Decimal (NaN or ±Infinity), which this package never tolerates.
	ErrNaN = errors.New("bigfloat: NaN or infinite value")

	// ErrNegativePrecision indicates a Context was constructed with a
	// non-positive decimal precision.
	ErrNegativePrecision = errors.New("bigfloat: precision must be > 0")

	// ErrExtendedOverflow indicates an Extended value's mantissa could not
	// be renormalised into [1,10) because the decimal exponent exceeded the
	// representable int range.
	ErrExtendedOverflow = errors.New("bigfloat: extended-range overflow")

	// ErrDivideByZero indicates a division with a zero divisor.
	ErrDivideByZero = errors.New("bigfloat: division by zero")
)

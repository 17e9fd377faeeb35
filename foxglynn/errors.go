package foxglynn

import (
	"errors"
	"fmt"

	"github.com/prism-gsmp/actmcreduce/gsmp"
)

// Sentinel errors for the foxglynn package.
var (
	// ErrInvalidLambda indicates lambda <= 0 was requested.
	ErrInvalidLambda = errors.New("foxglynn: lambda must be > 0")

	// ErrInvalidGuard indicates underflow >= overflow or a non-positive
	// guard value was supplied.
	ErrInvalidGuard = errors.New("foxglynn: invalid underflow/overflow guard")

	// ErrOverflow indicates the truncation search could not bound the tail
	// within [underflow, overflow] before the right tail reached the
	// overflow guard. Wraps gsmp.ErrNumericOverflow, so errors.Is matches
	// either sentinel; this package's own sentinel lets callers distinguish
	// a local search failure from a downstream wrapping concern.
	ErrOverflow = fmt.Errorf("foxglynn: truncation search overflowed: %w", gsmp.ErrNumericOverflow)
)

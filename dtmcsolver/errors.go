package dtmcsolver

import (
	"errors"
	"fmt"

	"github.com/prism-gsmp/actmcreduce/gsmp"
)

// ErrInvalidInput indicates a malformed call: a rewards or target vector
// whose length differs from the model's state count.
var ErrInvalidInput = errors.New("dtmcsolver: invalid input")

// ErrDidNotConverge indicates the iteration exceeded MaxIterations without
// the largest per-state delta falling below epsilon. Wraps gsmp.ErrUnsolvable
// rather than redeclaring a competing sentinel for the same condition.
var ErrDidNotConverge = fmt.Errorf("dtmcsolver: did not converge within MaxIterations: %w", gsmp.ErrUnsolvable)

package potato

import "fmt"

// transitionMatrix is a square row-major matrix of float64 transition
// probabilities, sized to one potato's local state space (states ∪
// successors). Adapted from the teacher's matrix.Dense (flat-slice,
// row-major storage for O(1) indexed access), but trimmed to exactly what
// BuildLocalDTMC/vmMult/mvMult need: a potato's local DTMC is always
// square, is never cloned, resized, or printed, so Clone/String/Cols and
// a general r×c shape are dropped rather than carried over unused.
type transitionMatrix struct {
	n    int
	data []float64 // n*n entries, row-major
}

// newTransitionMatrix allocates an n×n matrix of zeros.
func newTransitionMatrix(n int) (*transitionMatrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("potato: transition matrix dimension n=%d must be > 0", n)
	}

	return &transitionMatrix{n: n, data: make([]float64, n*n)}, nil
}

// Rows returns the matrix's dimension (rows == cols; it is square).
func (m *transitionMatrix) Rows() int {
	return m.n
}

// index computes the flat offset for (row, col), or reports it out of bounds.
func (m *transitionMatrix) index(row, col int) (int, error) {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return 0, fmt.Errorf("potato: transition matrix index (%d,%d) out of bounds for n=%d", row, col, m.n)
	}

	return row*m.n + col, nil
}

// At retrieves the probability at (row, col).
func (m *transitionMatrix) At(row, col int) (float64, error) {
	idx, err := m.index(row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns the probability v at (row, col).
func (m *transitionMatrix) Set(row, col int, v float64) error {
	idx, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// RowSum returns the sum of row's entries, used by BuildLocalDTMC to assert
// a uniformised row is stochastic (sums to 1) after construction.
func (m *transitionMatrix) RowSum(row int) (float64, error) {
	if row < 0 || row >= m.n {
		return 0, fmt.Errorf("potato: transition matrix row %d out of bounds for n=%d", row, m.n)
	}
	var sum float64
	base := row * m.n
	for j := 0; j < m.n; j++ {
		sum += m.data[base+j]
	}

	return sum, nil
}

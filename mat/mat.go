package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoRows            = errors.New("no rows in array")
	ErrColMismatch       = errors.New("column size mismatch")
	ErrNoCols            = errors.New("rows have no columns")
	ErrNegativeTolerance = errors.New("singular value tolerance must not be negative")
	ErrFactorize         = errors.New("singular value decomposition did not converge")
)

// NewDenseFromArray builds a dense matrix from row slices. Every row must have the same
// length and there must be at least one row and one column since gonum matrices cannot
// have a zero dimension.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)
	if m == 0 {
		return nil, ErrNoRows
	}

	n := len(x[0])
	for i, row := range x {
		if len(row) != n {
			return nil, fmt.Errorf("at row %d, expected %d columns but got %d, %w", i, n, len(row), ErrColMismatch)
		}
	}
	if n == 0 {
		return nil, ErrNoCols
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// Rows returns a copy of the matrix as row slices
func Rows(a mat.Matrix) [][]float64 {
	m, _ := a.Dims()
	rows := make([][]float64, m)
	for i := 0; i < m; i++ {
		rows[i] = mat.Row(nil, i, a)
	}
	return rows
}

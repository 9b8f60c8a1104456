package normalize

import "slices"

// Matrix is a square, row-major grid of integers. Only cells on or above
// the diagonal carry solver data; cells below it are always zero.
type Matrix [][]int

// NewMatrix allocates an n×n zero matrix.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// Dim returns the matrix dimension.
func (m Matrix) Dim() int { return len(m) }

// IsUpperTriangular reports whether every cell below the diagonal is zero.
func (m Matrix) IsUpperTriangular() bool {
	for i, row := range m {
		for j := 0; j < i && j < len(row); j++ {
			if row[j] != 0 {
				return false
			}
		}
	}
	return true
}

// Dimension returns the side of the matrix built from the block:
// min(rows, columns).
func (b Block) Dimension() int {
	return min(b.Len(), b.Columns)
}

// Normalize re-aligns the block into an n×n upper-triangular matrix with
// n = [Block.Dimension].
//
// For each row i < n the leading zeros are trimmed and the remaining values
// are written from cell (i, i) onwards. Values that do not fit before the
// right edge are discarded.
func (b Block) Normalize() Matrix {
	n := b.Dimension()
	rows := slices.Clip(b.Rows)
	for len(rows) < n {
		rows = append(rows, make(Row, b.Columns))
	}

	m := NewMatrix(n)
	for i := range n {
		trimmed := trimLeadingZeros(rows[i])
		count := min(len(trimmed), n-i)
		copy(m[i][i:i+count], trimmed[:count])
	}
	return m
}

// trimLeadingZeros drops the run of zeros at the start of r.
func trimLeadingZeros(r Row) Row {
	k := 0
	for k < len(r) && r[k] == 0 {
		k++
	}
	return r[k:]
}

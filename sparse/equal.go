package sparse

import (
	"fmt"
	"slices"
)

// Sub returns m - b as a new matrix. Entries that cancel out to exactly zero
// are not stored, so the result's NNZ counts true non-zeros only.
func (m *CSR) Sub(b *CSR) (*CSR, error) {
	if m.rows != b.rows || m.cols != b.cols {
		return nil, fmt.Errorf("CSR.Sub: %dx%d - %dx%d: %w", m.rows, m.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	out, _ := NewCSR(m.rows, m.cols)
	acc := make(map[int]float64)
	for r := 0; r < m.rows; r++ {
		clear(acc)
		for k := m.indptr[r]; k < m.indptr[r+1]; k++ {
			acc[m.indices[k]] += m.data[k]
		}
		for k := b.indptr[r]; k < b.indptr[r+1]; k++ {
			acc[b.indices[k]] -= b.data[k]
		}
		cols := make([]int, 0, len(acc))
		for c, v := range acc {
			if v != 0 {
				cols = append(cols, c)
			}
		}
		slices.Sort(cols)
		for _, c := range cols {
			out.indices = append(out.indices, c)
			out.data = append(out.data, acc[c])
		}
		out.indptr[r+1] = len(out.data)
	}
	return out, nil
}

// Equal reports whether a and b are algebraically equal, that is whether
// a - b has no stored entries. Matrices of different shapes cannot be
// subtracted and yield ErrDimensionMismatch rather than false.
func Equal(a, b *CSR) (bool, error) {
	if a == nil || b == nil {
		return false, fmt.Errorf("Equal: nil matrix: %w", ErrInvalidArgument)
	}
	d, err := a.Sub(b)
	if err != nil {
		return false, err
	}
	return d.NNZ() == 0, nil
}

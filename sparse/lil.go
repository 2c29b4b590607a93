package sparse

import (
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// LIL is a sparse matrix stored as one list of entries per row. Each row keeps
// its column indices sorted, with the matching values in a parallel list.
// Row insertion and deletion are cheap; arithmetic is not.
type LIL struct {
	cols int
	rows [][]int     // column indices per row
	data [][]float64 // values per row, parallel to rows
}

var _ mat.Matrix = (*LIL)(nil)

// NewLIL creates an all-zero rows×cols matrix in list-of-rows form.
func NewLIL(rows, cols int) (*LIL, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewLIL(%d, %d): %w", rows, cols, ErrInvalidArgument)
	}
	return &LIL{
		cols: cols,
		rows: make([][]int, rows),
		data: make([][]float64, rows),
	}, nil
}

// Dims returns the shape of the matrix.
func (l *LIL) Dims() (r, c int) {
	return len(l.rows), l.cols
}

// At returns the value at (i, j). It panics on out of range indices.
func (l *LIL) At(i, j int) float64 {
	if i < 0 || i >= len(l.rows) {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= l.cols {
		panic(mat.ErrColAccess)
	}
	if k, ok := slices.BinarySearch(l.rows[i], j); ok {
		return l.data[i][k]
	}
	return 0
}

// T returns an implicit transpose view.
func (l *LIL) T() mat.Matrix {
	return mat.Transpose{Matrix: l}
}

// NNZ returns the number of stored entries.
func (l *LIL) NNZ() int {
	n := 0
	for _, r := range l.rows {
		n += len(r)
	}
	return n
}

// Set stores v at (i, j). Storing zero removes the entry.
func (l *LIL) Set(i, j int, v float64) error {
	if i < 0 || i >= len(l.rows) || j < 0 || j >= l.cols {
		return fmt.Errorf("LIL.Set(%d, %d) outside %dx%d: %w", i, j, len(l.rows), l.cols, ErrInvalidArgument)
	}
	k, found := slices.BinarySearch(l.rows[i], j)
	switch {
	case found && v == 0:
		l.rows[i] = slices.Delete(l.rows[i], k, k+1)
		l.data[i] = slices.Delete(l.data[i], k, k+1)
	case found:
		l.data[i][k] = v
	case v != 0:
		l.rows[i] = slices.Insert(l.rows[i], k, j)
		l.data[i] = slices.Insert(l.data[i], k, v)
	}
	return nil
}

// DeleteRow removes row i together with its values.
func (l *LIL) DeleteRow(i int) error {
	if i < 0 || i >= len(l.rows) {
		return fmt.Errorf("LIL.DeleteRow: row %d outside [0, %d): %w", i, len(l.rows), ErrInvalidArgument)
	}
	l.rows = slices.Delete(l.rows, i, i+1)
	l.data = slices.Delete(l.data, i, i+1)
	return nil
}

// ToCSR converts the matrix into compressed sparse row form.
func (l *LIL) ToCSR() *CSR {
	m, _ := NewCSR(len(l.rows), l.cols)
	for r := range l.rows {
		m.indices = append(m.indices, l.rows[r]...)
		m.data = append(m.data, l.data[r]...)
		m.indptr[r+1] = len(m.data)
	}
	return m
}

// add accumulates v into (i, j) without bounds checks; duplicates are summed.
func (l *LIL) add(i, j int, v float64) {
	k := sort.SearchInts(l.rows[i], j)
	if k < len(l.rows[i]) && l.rows[i][k] == j {
		l.data[i][k] += v
		return
	}
	l.rows[i] = slices.Insert(l.rows[i], k, j)
	l.data[i] = slices.Insert(l.data[i], k, v)
}

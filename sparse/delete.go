package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DeleteRow removes row i in place. Entries after the row are shifted left
// over the removed ones and every later row offset is rebased, so no part of
// the matrix is rebuilt. Column count and the order of remaining rows are
// unchanged.
func (m *CSR) DeleteRow(i int) error {
	if err := m.checkRow(i); err != nil {
		return fmt.Errorf("CSR.DeleteRow: %w", err)
	}
	start, end := m.indptr[i], m.indptr[i+1]
	n := end - start
	if n > 0 {
		copy(m.data[start:], m.data[end:])
		m.data = m.data[:len(m.data)-n]
		copy(m.indices[start:], m.indices[end:])
		m.indices = m.indices[:len(m.indices)-n]
	}
	copy(m.indptr[i:], m.indptr[i+1:])
	for k := i; k < len(m.indptr)-1; k++ {
		m.indptr[k] -= n
	}
	m.indptr = m.indptr[:len(m.indptr)-1]
	m.rows--
	return nil
}

// DeleteRow removes row i from a CSR matrix and returns it. The matrix is
// mutated in place. Any other representation is rejected with ErrFormat;
// convert it first with CSRFromMatrix.
func DeleteRow(a mat.Matrix, i int) (*CSR, error) {
	m, ok := a.(*CSR)
	if !ok || m == nil {
		return nil, fmt.Errorf("DeleteRow works only on *CSR, got %T (convert with CSRFromMatrix first): %w", a, ErrFormat)
	}
	if err := m.DeleteRow(i); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteLILRow removes row i from a list-of-rows matrix and returns it.
// Any other representation is rejected with ErrFormat.
func DeleteLILRow(a mat.Matrix, i int) (*LIL, error) {
	l, ok := a.(*LIL)
	if !ok || l == nil {
		return nil, fmt.Errorf("DeleteLILRow works only on *LIL, got %T (convert with ToLIL first): %w", a, ErrFormat)
	}
	if err := l.DeleteRow(i); err != nil {
		return nil, err
	}
	return l, nil
}

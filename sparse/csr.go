package sparse

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// CSR is a sparse matrix in compressed sparse row form.
//
// Row r owns the entries data[indptr[r]:indptr[r+1]] whose column positions
// are stored at the same offsets in indices.
type CSR struct {
	rows, cols int
	data       []float64 // stored values, len == nnz
	indices    []int     // column index of each stored value
	indptr     []int     // row offsets, len == rows+1
}

var _ mat.Matrix = (*CSR)(nil)

// NewCSR creates an all-zero rows×cols matrix. A matrix with zero rows is the
// empty matrix; it still remembers its column count.
func NewCSR(rows, cols int) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewCSR(%d, %d): %w", rows, cols, ErrInvalidArgument)
	}
	return &CSR{
		rows:    rows,
		cols:    cols,
		data:    []float64{},
		indices: []int{},
		indptr:  make([]int, rows+1),
	}, nil
}

// NewCSRFromParts builds a matrix from raw CSR arrays. The slices are copied
// and checked against every structural invariant before use.
func NewCSRFromParts(rows, cols int, data []float64, indices, indptr []int) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewCSRFromParts(%d, %d): %w", rows, cols, ErrInvalidArgument)
	}
	m := &CSR{
		rows:    rows,
		cols:    cols,
		data:    append([]float64{}, data...),
		indices: append([]int{}, indices...),
		indptr:  append([]int{}, indptr...),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewCSRFromRows builds a matrix from dense rows, storing only non-zero values.
// All rows must have the same length.
func NewCSRFromRows(rows [][]float64) (*CSR, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m, err := NewCSR(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), cols, ErrDimensionMismatch)
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			m.data = append(m.data, v)
			m.indices = append(m.indices, c)
		}
		m.indptr[r+1] = len(m.data)
	}
	return m, nil
}

// CSRFromMatrix converts any gonum matrix into a new CSR value. A nil matrix
// converts to the 0×0 empty matrix.
func CSRFromMatrix(a mat.Matrix) *CSR {
	switch t := a.(type) {
	case nil:
		m, _ := NewCSR(0, 0)
		return m
	case *CSR:
		return t.Clone()
	case *LIL:
		return t.ToCSR()
	}
	r, c := a.Dims()
	m, _ := NewCSR(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := a.At(i, j); v != 0 {
				m.data = append(m.data, v)
				m.indices = append(m.indices, j)
			}
		}
		m.indptr[i+1] = len(m.data)
	}
	return m
}

// Dims returns the shape of the matrix.
func (m *CSR) Dims() (r, c int) {
	return m.rows, m.cols
}

// At returns the value at (i, j). Duplicate entries for the same position are
// summed. It panics on out of range indices, like every gonum matrix.
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.cols {
		panic(mat.ErrColAccess)
	}
	var v float64
	for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
		if m.indices[k] == j {
			v += m.data[k]
		}
	}
	return v
}

// T returns an implicit transpose view.
func (m *CSR) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// IsEmpty reports whether the matrix holds no cells at all.
func (m *CSR) IsEmpty() bool {
	return m.rows*m.cols == 0
}

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int {
	return m.indptr[m.rows]
}

// RowNNZ returns the number of stored entries in row i.
func (m *CSR) RowNNZ(i int) (int, error) {
	if err := m.checkRow(i); err != nil {
		return 0, err
	}
	return m.indptr[i+1] - m.indptr[i], nil
}

// Row returns copies of the column indices and values stored for row i.
func (m *CSR) Row(i int) (cols []int, vals []float64, err error) {
	if err = m.checkRow(i); err != nil {
		return nil, nil, err
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	cols = append([]int{}, m.indices[lo:hi]...)
	vals = append([]float64{}, m.data[lo:hi]...)
	return cols, vals, nil
}

// Data returns a copy of the stored values.
func (m *CSR) Data() []float64 { return append([]float64{}, m.data...) }

// Indices returns a copy of the stored column indices.
func (m *CSR) Indices() []int { return append([]int{}, m.indices...) }

// Indptr returns a copy of the row offset array.
func (m *CSR) Indptr() []int { return append([]int{}, m.indptr...) }

// Clone returns a deep copy that shares no storage with m.
func (m *CSR) Clone() *CSR {
	return &CSR{
		rows:    m.rows,
		cols:    m.cols,
		data:    append([]float64{}, m.data...),
		indices: append([]int{}, m.indices...),
		indptr:  append([]int{}, m.indptr...),
	}
}

// Validate checks the structural invariants of the CSR arrays.
func (m *CSR) Validate() error {
	if len(m.indptr) != m.rows+1 {
		return fmt.Errorf("indptr has %d entries, want %d: %w", len(m.indptr), m.rows+1, ErrFormat)
	}
	if m.indptr[0] != 0 {
		return fmt.Errorf("indptr[0] = %d, want 0: %w", m.indptr[0], ErrFormat)
	}
	for r := 0; r < m.rows; r++ {
		if m.indptr[r+1] < m.indptr[r] {
			return fmt.Errorf("indptr decreases at row %d: %w", r, ErrFormat)
		}
	}
	nnz := m.indptr[m.rows]
	if len(m.data) != nnz || len(m.indices) != nnz {
		return fmt.Errorf("data/indices lengths %d/%d do not match nnz %d: %w",
			len(m.data), len(m.indices), nnz, ErrFormat)
	}
	for k, c := range m.indices {
		if c < 0 || c >= m.cols {
			return fmt.Errorf("column index %d at offset %d outside [0, %d): %w", c, k, m.cols, ErrFormat)
		}
	}
	return nil
}

// ToDense expands the matrix into a gonum dense matrix. The empty matrix
// expands to an empty *mat.Dense, since gonum has no zero-length shapes.
func (m *CSR) ToDense() *mat.Dense {
	if m.IsEmpty() {
		return &mat.Dense{}
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for r := 0; r < m.rows; r++ {
		for k := m.indptr[r]; k < m.indptr[r+1]; k++ {
			c := m.indices[k]
			d.Set(r, c, d.At(r, c)+m.data[k])
		}
	}
	return d
}

// ToLIL converts the matrix into list-of-rows form.
func (m *CSR) ToLIL() *LIL {
	l, _ := NewLIL(m.rows, m.cols)
	for r := 0; r < m.rows; r++ {
		for k := m.indptr[r]; k < m.indptr[r+1]; k++ {
			l.add(r, m.indices[k], m.data[k])
		}
	}
	return l
}

// String implements fmt.Stringer for easy debugging.
func (m *CSR) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CSR(%dx%d, nnz=%d)", m.rows, m.cols, m.NNZ())
	for r := 0; r < m.rows; r++ {
		sb.WriteString("\n  [")
		for k := m.indptr[r]; k < m.indptr[r+1]; k++ {
			if k > m.indptr[r] {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d:%g", m.indices[k], m.data[k])
		}
		sb.WriteString("]")
	}
	return sb.String()
}

func (m *CSR) checkRow(i int) error {
	if i < 0 || i >= m.rows {
		return fmt.Errorf("row %d outside [0, %d): %w", i, m.rows, ErrInvalidArgument)
	}
	return nil
}

package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type stackConfig struct {
	keepZeroRow bool
	sparse      bool
}

// StackOption configures StackRowsVertically.
type StackOption func(*stackConfig)

// KeepFirstZeroRow keeps the all-zero seed row that is placed in front of an
// empty main matrix. By default it is removed from the result.
func KeepFirstZeroRow() StackOption {
	return func(c *stackConfig) { c.keepZeroRow = true }
}

// AsSparse makes StackRowsVertically return a *CSR instead of a *mat.Dense.
func AsSparse() StackOption {
	return func(c *stackConfig) { c.sparse = true }
}

// StackRowsVertically returns a new matrix holding the rows of main followed
// by the rows of added. Neither input is modified.
//
// When main is empty (nil, or with rows*cols == 0) it is first seeded with a
// single all-zero row as wide as added. That seed row is dropped from the
// result unless KeepFirstZeroRow is given. The same emptiness check drives
// both the dense and the sparse result.
//
// A non-empty main must have as many columns as added, otherwise
// ErrDimensionMismatch is returned.
func StackRowsVertically(main, added mat.Matrix, opts ...StackOption) (mat.Matrix, error) {
	var cfg stackConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if isNil(added) {
		return nil, fmt.Errorf("StackRowsVertically: added matrix is nil: %w", ErrInvalidArgument)
	}

	mainEmpty := isEmpty(main)
	ar, ac := added.Dims()
	if !mainEmpty {
		_, mc := main.Dims()
		if mc != ac && !(ar == 0 && ac == 0) {
			return nil, fmt.Errorf("StackRowsVertically: main has %d columns, added has %d: %w", mc, ac, ErrDimensionMismatch)
		}
	}

	if cfg.sparse {
		return stackSparse(main, added, mainEmpty, cfg.keepZeroRow), nil
	}
	return stackDense(main, added, mainEmpty, cfg.keepZeroRow), nil
}

// StackSparseRows is StackRowsVertically with a sparse result.
func StackSparseRows(main, added *CSR, opts ...StackOption) (*CSR, error) {
	var m, a mat.Matrix
	if main != nil {
		m = main
	}
	if added != nil {
		a = added
	}
	out, err := StackRowsVertically(m, a, append(opts, AsSparse())...)
	if err != nil {
		return nil, err
	}
	return out.(*CSR), nil
}

func stackSparse(main, added mat.Matrix, mainEmpty, keepZeroRow bool) *CSR {
	b := asCSR(added)
	var seed *CSR
	if mainEmpty {
		_, ac := added.Dims()
		seed, _ = NewCSR(1, ac)
	} else {
		seed = asCSR(main)
	}
	out := vstack(seed, b)
	if mainEmpty && !keepZeroRow {
		// the seed row is always row 0 and always present
		_ = out.DeleteRow(0)
	}
	return out
}

func stackDense(main, added mat.Matrix, mainEmpty, keepZeroRow bool) *mat.Dense {
	ar, ac := added.Dims()
	if mainEmpty {
		if ac == 0 || (ar == 0 && !keepZeroRow) {
			return &mat.Dense{}
		}
		seed := mat.NewDense(1, ac, nil)
		if ar == 0 {
			return seed
		}
		var out mat.Dense
		out.Stack(seed, added)
		if keepZeroRow {
			return &out
		}
		return mat.DenseCopyOf(out.Slice(1, ar+1, 0, ac))
	}
	if ar == 0 {
		return mat.DenseCopyOf(main)
	}
	var out mat.Dense
	out.Stack(main, added)
	return &out
}

// vstack concatenates the rows of a and b into fresh backing arrays.
func vstack(a, b *CSR) *CSR {
	nnz := a.NNZ()
	out := &CSR{
		rows:    a.rows + b.rows,
		cols:    a.cols,
		data:    make([]float64, 0, nnz+b.NNZ()),
		indices: make([]int, 0, nnz+b.NNZ()),
		indptr:  make([]int, 0, a.rows+b.rows+1),
	}
	out.data = append(append(out.data, a.data...), b.data...)
	out.indices = append(append(out.indices, a.indices...), b.indices...)
	out.indptr = append(out.indptr, a.indptr...)
	for _, p := range b.indptr[1:] {
		out.indptr = append(out.indptr, p+nnz)
	}
	return out
}

// asCSR returns a CSR view of a without copying when a already is one.
// Callers must not mutate the result.
func asCSR(a mat.Matrix) *CSR {
	if m, ok := a.(*CSR); ok {
		return m
	}
	return CSRFromMatrix(a)
}

func isNil(a mat.Matrix) bool {
	switch t := a.(type) {
	case nil:
		return true
	case *CSR:
		return t == nil
	case *LIL:
		return t == nil
	case *mat.Dense:
		return t == nil
	}
	return false
}

func isEmpty(a mat.Matrix) bool {
	if isNil(a) {
		return true
	}
	if d, ok := a.(*mat.Dense); ok && d.IsEmpty() {
		return true
	}
	r, c := a.Dims()
	return r*c == 0
}

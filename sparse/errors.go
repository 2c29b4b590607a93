package sparse

import "errors"

// Sentinel errors for package sparse.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrFormat is returned when a matrix is not in the representation an
	// operation requires, or when its internal arrays are inconsistent.
	ErrFormat = errors.New("sparse: unexpected matrix format")

	// ErrDimensionMismatch is returned when two matrices being combined or
	// compared have incompatible shapes.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrInvalidArgument is returned for negative dimensions and out of range
	// row or column indices.
	ErrInvalidArgument = errors.New("sparse: invalid argument")
)

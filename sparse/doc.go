// Package sparse provides an owned, mutable compressed sparse row (CSR) matrix
// and the row-level operations built on top of it.
//
// Key Components:
//
// Representations:
//   - CSR stores non-zero values, their column indices and a row offset array
//   - LIL stores one sorted list of (column, value) pairs per row
//   - Both satisfy gonum's mat.Matrix so they mix freely with *mat.Dense
//
// Row Operations:
//   - DeleteRow removes a row in place by shifting the internal arrays
//   - DeleteLILRow removes a row from the list-of-rows form
//   - StackRowsVertically concatenates two matrices row-wise into a new value
//
// Comparison:
//   - Sub computes the algebraic difference with explicit zeros pruned
//   - Equal reports whether the difference has no stored entries
//
// Matrix Market:
//   - ReadMatrixMarket and WriteMatrixMarket handle the NIST coordinate format
//
// Matrices are not safe for concurrent mutation. Callers sharing a matrix
// between goroutines must synchronize access themselves.
package sparse

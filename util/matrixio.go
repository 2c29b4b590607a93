package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/commonmodules/commonmodules/sparse"
	"gonum.org/v1/gonum/mat"
)

// ExportSparseMatrix writes m to path in Matrix Market coordinate format.
// See https://math.nist.gov/MatrixMarket/formats.html.
func ExportSparseMatrix(path string, m *sparse.CSR) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return errors.Join(sparse.WriteMatrixMarket(f, m), f.Close())
}

// ImportSparseMatrix reads a Matrix Market file into a CSR matrix.
func ImportSparseMatrix(path string) (*sparse.CSR, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := sparse.ReadMatrixMarket(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ExportDense writes m as text, one row per line with values separated by a
// single space. format is a fmt verb applied to each value; "" means "%f".
func ExportDense(path string, m mat.Matrix, format string) error {
	if format == "" {
		format = "%f"
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, format, m.At(i, j))
		}
		w.WriteByte('\n')
	}
	return errors.Join(w.Flush(), f.Close())
}

// ImportDense reads a text file written by ExportDense, or any file of
// whitespace separated numbers. Blank lines and lines starting with "#" are
// skipped. Every row must have the same number of values. An empty file
// yields an empty matrix. Lines may be of any length.
func ImportDense(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		data []float64
		rows int
		cols = -1
		line int
	)
	br := bufio.NewReader(f)
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, readErr
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		line++
		text := strings.TrimSpace(raw)
		if text != "" && !strings.HasPrefix(text, "#") {
			fields := strings.Fields(text)
			if cols >= 0 && len(fields) != cols {
				return nil, fmt.Errorf("%s:%d: %d values, want %d: %w", path, line, len(fields), cols, ErrMalformedData)
			}
			cols = len(fields)
			for _, field := range fields {
				v, err := strconv.ParseFloat(field, 64)
				if err != nil {
					return nil, errors.Join(fmt.Errorf("%s:%d: %w", path, line, ErrMalformedData), err)
				}
				data = append(data, v)
			}
			rows++
		}
		if readErr == io.EOF {
			break
		}
	}
	if rows == 0 {
		return &mat.Dense{}, nil
	}
	return mat.NewDense(rows, cols, data), nil
}

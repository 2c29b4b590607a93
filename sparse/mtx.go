package sparse

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

const mmBanner = "%%MatrixMarket"

type triplet struct {
	i, j int
	v    float64
}

// ReadMatrixMarket parses a Matrix Market coordinate file into a CSR matrix.
// Entries come out sorted by row then column with duplicates summed.
// Supported fields are real, integer and pattern; supported symmetries are
// general, symmetric and skew-symmetric.
func ReadMatrixMarket(r io.Reader) (*CSR, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("matrix market: empty input: %w", ErrFormat)
	}
	header := strings.Fields(strings.ToLower(sc.Text()))
	if len(header) != 5 || header[0] != strings.ToLower(mmBanner) || header[1] != "matrix" {
		return nil, fmt.Errorf("matrix market: bad header %q: %w", sc.Text(), ErrFormat)
	}
	if header[2] != "coordinate" {
		return nil, fmt.Errorf("matrix market: %s layout not supported: %w", header[2], ErrFormat)
	}
	field, symmetry := header[3], header[4]
	switch field {
	case "real", "integer", "pattern":
	default:
		return nil, fmt.Errorf("matrix market: %s field not supported: %w", field, ErrFormat)
	}
	switch symmetry {
	case "general", "symmetric", "skew-symmetric":
	default:
		return nil, fmt.Errorf("matrix market: %s symmetry not supported: %w", symmetry, ErrFormat)
	}

	var (
		rows, cols, nnz int
		sized           bool
		entries         []triplet
		read            int
		line            = 1
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}
		fields := strings.Fields(text)
		if !sized {
			if len(fields) != 3 {
				return nil, fmt.Errorf("matrix market: line %d: size line needs 3 fields: %w", line, ErrFormat)
			}
			var err error
			if rows, err = strconv.Atoi(fields[0]); err != nil {
				return nil, fmt.Errorf("matrix market: line %d: %w", line, formatErr(err))
			}
			if cols, err = strconv.Atoi(fields[1]); err != nil {
				return nil, fmt.Errorf("matrix market: line %d: %w", line, formatErr(err))
			}
			if nnz, err = strconv.Atoi(fields[2]); err != nil {
				return nil, fmt.Errorf("matrix market: line %d: %w", line, formatErr(err))
			}
			if err := checkSize(rows, cols, nnz); err != nil {
				return nil, fmt.Errorf("matrix market: line %d: %w", line, err)
			}
			sized = true
			continue
		}
		t, err := parseEntry(fields, field, rows, cols)
		if err != nil {
			return nil, fmt.Errorf("matrix market: line %d: %w", line, err)
		}
		read++
		if read > nnz {
			return nil, fmt.Errorf("matrix market: line %d: more than the %d declared entries: %w", line, nnz, ErrFormat)
		}
		entries = append(entries, t)
		if t.i != t.j {
			switch symmetry {
			case "symmetric":
				entries = append(entries, triplet{t.j, t.i, t.v})
			case "skew-symmetric":
				entries = append(entries, triplet{t.j, t.i, -t.v})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sized {
		return nil, fmt.Errorf("matrix market: missing size line: %w", ErrFormat)
	}
	if read != nnz {
		return nil, fmt.Errorf("matrix market: %d entries, size line declares %d: %w", read, nnz, ErrFormat)
	}
	return fromTriplets(rows, cols, entries), nil
}

// WriteMatrixMarket writes m as a general real coordinate Matrix Market file.
// Entries are written in storage order with 1-based indices.
func WriteMatrixMarket(w io.Writer, m *CSR) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s matrix coordinate real general\n", mmBanner)
	fmt.Fprintf(bw, "%d %d %d\n", m.rows, m.cols, m.NNZ())
	for r := 0; r < m.rows; r++ {
		for k := m.indptr[r]; k < m.indptr[r+1]; k++ {
			fmt.Fprintf(bw, "%d %d %s\n", r+1, m.indices[k]+1, strconv.FormatFloat(m.data[k], 'g', -1, 64))
		}
	}
	return bw.Flush()
}

// checkSize rejects size lines whose numbers cannot describe a matrix: the
// row offsets need rows+1 slots, the cell count must fit an int, and there
// cannot be more stored entries than cells.
func checkSize(rows, cols, nnz int) error {
	if rows < 0 || cols < 0 || nnz < 0 {
		return fmt.Errorf("negative size: %w", ErrFormat)
	}
	if rows == math.MaxInt || (cols > 0 && rows > math.MaxInt/cols) {
		return fmt.Errorf("size %dx%d overflows: %w", rows, cols, ErrFormat)
	}
	if nnz > rows*cols {
		return fmt.Errorf("%d entries do not fit %dx%d: %w", nnz, rows, cols, ErrFormat)
	}
	return nil
}

func parseEntry(fields []string, field string, rows, cols int) (triplet, error) {
	want := 3
	if field == "pattern" {
		want = 2
	}
	if len(fields) != want {
		return triplet{}, fmt.Errorf("entry needs %d fields, got %d: %w", want, len(fields), ErrFormat)
	}
	i, err := strconv.Atoi(fields[0])
	if err != nil {
		return triplet{}, formatErr(err)
	}
	j, err := strconv.Atoi(fields[1])
	if err != nil {
		return triplet{}, formatErr(err)
	}
	if i < 1 || i > rows || j < 1 || j > cols {
		return triplet{}, fmt.Errorf("entry (%d, %d) outside %dx%d: %w", i, j, rows, cols, ErrFormat)
	}
	v := 1.0
	if field != "pattern" {
		if v, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return triplet{}, formatErr(err)
		}
	}
	return triplet{i - 1, j - 1, v}, nil
}

func fromTriplets(rows, cols int, entries []triplet) *CSR {
	slices.SortStableFunc(entries, func(a, b triplet) int {
		if c := cmp.Compare(a.i, b.i); c != 0 {
			return c
		}
		return cmp.Compare(a.j, b.j)
	})
	m, _ := NewCSR(rows, cols)
	for k, t := range entries {
		if k > 0 && entries[k-1].i == t.i && entries[k-1].j == t.j {
			m.data[len(m.data)-1] += t.v
			continue
		}
		m.data = append(m.data, t.v)
		m.indices = append(m.indices, t.j)
		m.indptr[t.i+1]++
	}
	for r := 0; r < rows; r++ {
		m.indptr[r+1] += m.indptr[r]
	}
	return m
}

// formatErr tags a number parsing failure as a format error.
func formatErr(err error) error {
	return fmt.Errorf("%w: %w", ErrFormat, err)
}

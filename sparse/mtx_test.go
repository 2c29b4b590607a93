package sparse_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/commonmodules/commonmodules/sparse"
	"github.com/stretchr/testify/require"
)

func TestMatrixMarketRoundTrip(t *testing.T) {
	m := mustRows(t, [][]float64{{0, 1.5, 0}, {0, 0, 0}, {-2, 0, 3}})

	var buf bytes.Buffer
	require.NoError(t, sparse.WriteMatrixMarket(&buf, m))
	require.Equal(t, `%%MatrixMarket matrix coordinate real general
3 3 3
1 2 1.5
3 1 -2
3 3 3
`, buf.String())

	got, err := sparse.ReadMatrixMarket(&buf)
	require.NoError(t, err)
	requireValid(t, got)
	eq, err := sparse.Equal(m, got)
	require.NoError(t, err)
	require.True(t, eq)
}

func TestReadMatrixMarketSymmetricAndPattern(t *testing.T) {
	in := `%%MatrixMarket matrix coordinate pattern symmetric
% a comment
3 3 2
2 1
3 3
`
	m, err := sparse.ReadMatrixMarket(strings.NewReader(in))
	require.NoError(t, err)
	requireValid(t, m)
	require.Equal(t, 3, m.NNZ())
	require.Equal(t, 1.0, m.At(0, 1))
	require.Equal(t, 1.0, m.At(1, 0))
	require.Equal(t, 1.0, m.At(2, 2))
}

func TestReadMatrixMarketSortsAndSums(t *testing.T) {
	in := `%%MatrixMarket matrix coordinate integer general
2 2 3
2 2 1
1 2 4
2 2 5
`
	m, err := sparse.ReadMatrixMarket(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, m.Indptr())
	require.Equal(t, []float64{4, 6}, m.Data())
}

func TestReadMatrixMarketErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no banner", "1 1 0\n"},
		{"array layout", "%%MatrixMarket matrix array real general\n1 1\n1\n"},
		{"complex field", "%%MatrixMarket matrix coordinate complex general\n1 1 0\n"},
		{"missing size", "%%MatrixMarket matrix coordinate real general\n% only comments\n"},
		{"bad size", "%%MatrixMarket matrix coordinate real general\n1 x 0\n"},
		{"entry out of range", "%%MatrixMarket matrix coordinate real general\n1 1 1\n2 1 3\n"},
		{"bad value", "%%MatrixMarket matrix coordinate real general\n1 1 1\n1 1 abc\n"},
		{"short entry", "%%MatrixMarket matrix coordinate real general\n1 1 1\n1 1\n"},
		{"huge nnz", "%%MatrixMarket matrix coordinate real general\n1 1 9223372036854775807\n"},
		{"huge rows", "%%MatrixMarket matrix coordinate real general\n9223372036854775807 1 0\n"},
		{"cell count overflows", "%%MatrixMarket matrix coordinate real general\n4294967296 4294967296 0\n"},
		{"fewer entries than declared", "%%MatrixMarket matrix coordinate real general\n2 2 5\n1 1 1\n"},
		{"more entries than declared", "%%MatrixMarket matrix coordinate real general\n2 2 1\n1 1 1\n2 2 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sparse.ReadMatrixMarket(strings.NewReader(tt.in))
			require.ErrorIs(t, err, sparse.ErrFormat)
		})
	}
}

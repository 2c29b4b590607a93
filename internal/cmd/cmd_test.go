package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/commonmodules/commonmodules/logging"
	"github.com/commonmodules/commonmodules/sparse"
	"github.com/commonmodules/commonmodules/util"
	"github.com/stretchr/testify/require"
)

// run executes a fresh root command with a private log file and returns what
// it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "cm.log")
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--log-file", logFile, "--log-stream", "none"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeMatrix(t *testing.T, dir, name string, rows [][]float64) string {
	t.Helper()
	m, err := sparse.NewCSRFromRows(rows)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, util.ExportSparseMatrix(path, m))
	return path
}

func TestListAndCount(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("b"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.txt"), []byte("c"), 0644))

	out, err := run(t, "ls", "--ext", "txt", "--recursive", dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "a.txt")+"\n"+filepath.Join(dir, "sub", "c.txt")+"\n", out)

	out, err = run(t, "ls", "--dirs", dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "sub")+"\n", out)

	out, err = run(t, "count", dir)
	require.NoError(t, err)
	require.Equal(t, "Total files: 3\n", out)

	_, err = run(t, "ls", filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestZipUnzip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "x.txt"), []byte("x"), 0644))

	archive := filepath.Join(t.TempDir(), "out.zip")
	out, err := run(t, "zip", archive, src)
	require.NoError(t, err)
	require.Equal(t, archive+": 3 entries\n", out)

	target := t.TempDir()
	_, err = run(t, "unzip", "-o", target, archive)
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(target, "src", "nested", "x.txt"))
	require.NoError(t, err)
	require.Equal(t, "x", string(content))

	_, err = run(t, "zip", "--format", "tar", archive, src)
	require.ErrorIs(t, err, util.ErrNotImplemented)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "hello")
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "hello.txt")
	out, err := run(t, "download", "--size", "5", srv.URL+"/hello.txt", dest)
	require.NoError(t, err)
	require.Equal(t, dest+"\n", out)

	_, err = run(t, "download", "--size", "6", srv.URL+"/hello.txt", filepath.Join(t.TempDir(), "x"))
	require.ErrorIs(t, err, util.ErrSizeMismatch)

	cache := t.TempDir()
	out, err = run(t, "--cache-dir", cache, "download", "--cache", srv.URL+"/hello.txt")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, cache), out)

	_, err = run(t, "--cache-dir", cache, "download", "--cache", "--size", "4", srv.URL+"/hello.txt")
	require.ErrorIs(t, err, util.ErrSizeMismatch)
}

func TestCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "hello")
	}))
	defer srv.Close()
	cache := t.TempDir()

	for _, name := range []string{"/a.txt", "/b.txt"} {
		_, err := run(t, "--cache-dir", cache, "download", "--cache", srv.URL+name)
		require.NoError(t, err)
	}
	out, err := run(t, "--cache-dir", cache, "cache", "ls")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "5", strings.Split(lines[0], "\t")[1])

	_, err = run(t, "--cache-dir", cache, "cache", "rm", srv.URL+"/a.txt")
	require.NoError(t, err)
	_, err = run(t, "--cache-dir", cache, "cache", "rm", srv.URL+"/a.txt")
	require.ErrorIs(t, err, util.ErrNotFound)

	out, err = run(t, "--cache-dir", cache, "cache", "clear")
	require.NoError(t, err)
	require.Equal(t, "Removed 1 entries\n", out)
	out, err = run(t, "--cache-dir", cache, "cache", "ls")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMatrixCommands(t *testing.T) {
	dir := t.TempDir()
	a := writeMatrix(t, dir, "a.mtx", [][]float64{{1, 0, 0}, {0, 0, 2}})
	b := writeMatrix(t, dir, "b.mtx", [][]float64{{0, 3, 0}})
	want := writeMatrix(t, dir, "want.mtx", [][]float64{{1, 0, 0}, {0, 0, 2}, {0, 3, 0}})

	out, err := run(t, "matrix", "info", a)
	require.NoError(t, err)
	require.Equal(t, a+": 2x3, nnz=2\n", out)

	stacked := filepath.Join(dir, "stacked.mtx")
	_, err = run(t, "matrix", "stack", "-o", stacked, a, b)
	require.NoError(t, err)
	out, err = run(t, "matrix", "equal", stacked, want)
	require.NoError(t, err)
	require.Equal(t, "equal\n", out)

	out, err = run(t, "matrix", "stack", a)
	require.NoError(t, err)
	fromStdout, err := sparse.ReadMatrixMarket(strings.NewReader(out))
	require.NoError(t, err)
	r, c := fromStdout.Dims()
	require.Equal(t, []int{2, 3}, []int{r, c})

	kept := filepath.Join(dir, "kept.mtx")
	_, err = run(t, "matrix", "stack", "--keep-zero-row", "-o", kept, b)
	require.NoError(t, err)
	m, err := util.ImportSparseMatrix(kept)
	require.NoError(t, err)
	r, _ = m.Dims()
	require.Equal(t, 2, r)

	_, err = run(t, "matrix", "delete-row", stacked, "2")
	require.NoError(t, err)
	out, err = run(t, "matrix", "equal", stacked, a)
	require.NoError(t, err)
	require.Equal(t, "equal\n", out)

	out, err = run(t, "matrix", "equal", stacked, want)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
	require.Empty(t, out)

	_, err = run(t, "matrix", "delete-row", a, "9")
	require.ErrorIs(t, err, sparse.ErrInvalidArgument)

	c3 := writeMatrix(t, dir, "c.mtx", [][]float64{{1, 2}})
	_, err = run(t, "matrix", "stack", a, c3)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}

func TestDenseStackOutput(t *testing.T) {
	dir := t.TempDir()
	a := writeMatrix(t, dir, "a.mtx", [][]float64{{1, 0}, {0, 2.5}})
	out := filepath.Join(dir, "a.txt")

	_, err := run(t, "matrix", "stack", "--dense", "-o", out, a)
	require.NoError(t, err)
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "1 0\n0 2.5\n", string(content))
}

func TestSeed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "seeded")
	_, err := run(t, "seed", "-o", dir, "-c", "3", "--rows", "4", "--cols", "5")
	require.NoError(t, err)

	files, err := util.ListFiles([]string{dir}, ".mtx", false)
	require.NoError(t, err)
	require.Len(t, files, 3)
	for _, f := range files {
		m, err := util.ImportSparseMatrix(f)
		require.NoError(t, err)
		r, c := m.Dims()
		require.Equal(t, 4, r)
		require.Equal(t, 5, c)
	}

	_, err = run(t, "seed", "-o", dir, "--density", "2")
	require.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestLogging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cm.log")
	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--log-file", logFile, "--log-stream", "none", "--log-level", "info", "count", t.TempDir()})
	require.NoError(t, root.Execute())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.NotContains(t, string(content), "DEBUG: ")

	var errOut bytes.Buffer
	root = NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--log-file", logFile, "--log-stream", "stderr", "count", filepath.Join(t.TempDir(), "missing")})
	require.Error(t, root.Execute())
	require.Contains(t, errOut.String(), "ERROR: ")
	require.NotContains(t, errOut.String(), "DEBUG: ")

	content, err = os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "DEBUG: running cm count")
	require.Contains(t, string(content), "ERROR: ")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "chatty", "count", t.TempDir())
	require.ErrorIs(t, err, logging.ErrLevelNotRecognized)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "cm version "), out)
	require.Contains(t, out, "Package: commonmodules\n")

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"package": "commonmodules"`)
}

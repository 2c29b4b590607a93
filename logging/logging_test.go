package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/commonmodules/commonmodules/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"Warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{" error ", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := logging.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "trace", "fatal", "loud"} {
		_, err := logging.ParseLevel(bad)
		require.ErrorIs(t, err, logging.ErrLevelNotRecognized, bad)
	}
}

func TestConcat(t *testing.T) {
	require.Equal(t, "", logging.Concat())
	require.Equal(t, "rows=3 ok", logging.Concat("rows=", 3, " ok"))
	require.Equal(t, "12true", logging.Concat(1, 2, true))
}

var linePattern = regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} logging_test\.go\[line:\d+\] (DEBUG|INFO|WARNING|ERROR): .+$`)

func TestLogger_FileAndMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LogFile.log")
	var mirror bytes.Buffer

	l, err := logging.New(logging.Options{Level: "info", File: path, Mirror: &mirror})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("stacked ", 3, " rows")
	l.Warn("careful")
	l.Error("failed: ", "disk full")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		require.Regexp(t, linePattern, line)
	}
	require.True(t, strings.HasSuffix(lines[0], "INFO: stacked 3 rows"), lines[0])
	require.True(t, strings.HasSuffix(lines[1], "WARNING: careful"), lines[1])

	require.Equal(t, 1, strings.Count(mirror.String(), "\n"))
	require.Contains(t, mirror.String(), "ERROR: failed: disk full")
	require.Regexp(t, linePattern, strings.TrimSpace(mirror.String()))
}

func TestLogger_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	l, err := logging.New(logging.Options{File: path})
	require.NoError(t, err)
	l.Debug("next run")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(content), "previous run\n"))
	require.Contains(t, string(content), "DEBUG: next run")
}

func TestLogger_MirrorMoreVerboseThanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var mirror bytes.Buffer

	l, err := logging.New(logging.Options{Level: "error", File: path, Mirror: &mirror, MirrorLevel: "debug"})
	require.NoError(t, err)
	l.Info("only mirrored")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, content)
	require.Contains(t, mirror.String(), "INFO: only mirrored")
}

func TestLogger_FieldLogger(t *testing.T) {
	var mirror bytes.Buffer
	l, err := logging.New(logging.Options{Mirror: &mirror, MirrorLevel: "info"})
	require.NoError(t, err)

	l.FieldLogger().WithFields(logrus.Fields{"url": "http://x", "bytes": 12}).Info("download complete")
	require.Regexp(t, `logging_test\.go\[line:\d+\] INFO: download complete bytes=12 url=http://x\n$`, mirror.String())
}

func TestNew_Errors(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "verbose"})
	require.ErrorIs(t, err, logging.ErrLevelNotRecognized)

	_, err = logging.New(logging.Options{MirrorLevel: "verbose"})
	require.ErrorIs(t, err, logging.ErrLevelNotRecognized)

	_, err = logging.New(logging.Options{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	require.Error(t, err)
}

func TestLogger_ConcurrentMirror(t *testing.T) {
	var mirror bytes.Buffer
	l, err := logging.New(logging.Options{Mirror: &mirror, MirrorLevel: "info"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Info("worker ", g, " entry ", i)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(mirror.String()), "\n")
	require.Len(t, lines, 8*50)
	for _, line := range lines {
		require.Regexp(t, linePattern, line)
	}
}

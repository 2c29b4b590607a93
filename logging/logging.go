package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var ErrLevelNotRecognized = errors.New("log level not recognized")

// ParseLevel converts a level name to a logrus level. Only the levels the
// command line offers are accepted. level is case insensitive.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.PanicLevel, fmt.Errorf("%q: %w", level, ErrLevelNotRecognized)
	}
}

// Options configures New. Empty level names fall back to "debug" for the file
// and "error" for the mirror.
type Options struct {
	Level       string
	File        string    // appended to, created when missing; "" disables
	Mirror      io.Writer // nil disables; must be safe for concurrent use if shared with another Logger
	MirrorLevel string
}

// Logger fans entries out to a log file and an optional mirror stream.
type Logger struct {
	base *logrus.Logger
	file *os.File
}

// New builds a Logger from opts.
func New(opts Options) (*Logger, error) {
	level, err := parseOr(opts.Level, logrus.DebugLevel)
	if err != nil {
		return nil, err
	}
	mirrorLevel, err := parseOr(opts.MirrorLevel, logrus.ErrorLevel)
	if err != nil {
		return nil, err
	}

	base := logrus.New()
	base.SetOutput(io.Discard)
	base.SetReportCaller(true)
	base.SetLevel(logrus.PanicLevel)
	formatter := &Formatter{}
	base.SetFormatter(formatter)

	l := &Logger{base: base}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		l.file = f
		base.AddHook(&writerHook{w: f, level: level, formatter: formatter})
		base.SetLevel(max(base.GetLevel(), level))
	}
	if opts.Mirror != nil {
		base.AddHook(&writerHook{w: opts.Mirror, level: mirrorLevel, formatter: formatter})
		base.SetLevel(max(base.GetLevel(), mirrorLevel))
	}
	return l, nil
}

func parseOr(name string, fallback logrus.Level) (logrus.Level, error) {
	if name == "" {
		return fallback, nil
	}
	return ParseLevel(name)
}

// FieldLogger exposes the underlying logrus logger for components that take
// structured fields.
func (l *Logger) FieldLogger() logrus.FieldLogger {
	return l.base
}

// Debug logs the concatenation of args at debug level.
func (l *Logger) Debug(args ...any) { l.log(logrus.DebugLevel, args) }

// Info logs the concatenation of args at info level.
func (l *Logger) Info(args ...any) { l.log(logrus.InfoLevel, args) }

// Warn logs the concatenation of args at warning level.
func (l *Logger) Warn(args ...any) { l.log(logrus.WarnLevel, args) }

// Error logs the concatenation of args at error level.
func (l *Logger) Error(args ...any) { l.log(logrus.ErrorLevel, args) }

func (l *Logger) log(level logrus.Level, args []any) {
	if !l.base.IsLevelEnabled(level) {
		return
	}
	entry := logrus.NewEntry(l.base)
	// logrus would report this file as the caller
	if _, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField(callerKey, &runtime.Frame{File: file, Line: line})
	}
	entry.Log(level, Concat(args...))
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Concat joins the default string forms of args with no separator.
func Concat(args ...any) string {
	var sb strings.Builder
	for _, a := range args {
		fmt.Fprint(&sb, a)
	}
	return sb.String()
}

// writerHook writes entries at or above level to w. logrus fires hooks
// without holding its own lock, so writes are serialized here.
type writerHook struct {
	mu        sync.Mutex
	w         io.Writer
	level     logrus.Level
	formatter logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level {
	return logrus.AllLevels[:h.level+1]
}

func (h *writerHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(b)
	return err
}

// Package config holds the settings shared by every cm subcommand.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/commonmodules/commonmodules/logging"
)

// Log stream targets.
const (
	StreamStderr = "stderr"
	StreamStdout = "stdout"
	StreamNone   = "none"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is resolved from defaults, then the environment, then flags.
type Config struct {
	LogLevel        string
	LogFile         string
	LogStream       string
	DownloadTimeout time.Duration
	CacheDir        string
}

// Default returns the built-in configuration: debug entries go to
// LogFile.log in the working directory and errors are mirrored to stderr.
func Default() Config {
	cache := filepath.Join(os.TempDir(), "commonmodules")
	if dir, err := os.UserCacheDir(); err == nil {
		cache = filepath.Join(dir, "commonmodules")
	}
	return Config{
		LogLevel:        "debug",
		LogFile:         "LogFile.log",
		LogStream:       StreamStderr,
		DownloadTimeout: 5 * time.Minute,
		CacheDir:        cache,
	}
}

// FromEnvironment overrides config with the CM_* variables that are set.
func FromEnvironment(config *Config) error {
	if v := os.Getenv("CM_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}

	if v, ok := os.LookupEnv("CM_LOG_FILE"); ok {
		config.LogFile = v
	}

	if v := os.Getenv("CM_LOG_STREAM"); v != "" {
		config.LogStream = v
	}

	if v := os.Getenv("CM_DOWNLOAD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse CM_DOWNLOAD_TIMEOUT as duration: %w", err)
		}
		config.DownloadTimeout = d
	}

	if v := os.Getenv("CM_CACHE_DIR"); v != "" {
		config.CacheDir = v
	}

	return config.Validate()
}

// Validate checks the values that cannot be checked while parsing.
func (c Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogStream) {
	case StreamStderr, StreamStdout, StreamNone:
	default:
		errs = append(errs, fmt.Errorf("log stream %q: want %s, %s or %s", c.LogStream, StreamStderr, StreamStdout, StreamNone))
	}
	if c.DownloadTimeout < 0 {
		errs = append(errs, fmt.Errorf("negative download timeout %s", c.DownloadTimeout))
	}
	if err := errors.Join(errs...); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

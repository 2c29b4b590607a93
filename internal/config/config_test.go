package config

import (
	"testing"
	"time"

	"github.com/commonmodules/commonmodules/logging"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, "debug", c.LogLevel)
	require.Equal(t, "LogFile.log", c.LogFile)
	require.Equal(t, StreamStderr, c.LogStream)
	require.NotEmpty(t, c.CacheDir)
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv("CM_LOG_LEVEL", "warn")
	t.Setenv("CM_LOG_FILE", "")
	t.Setenv("CM_LOG_STREAM", "stdout")
	t.Setenv("CM_DOWNLOAD_TIMEOUT", "90s")
	t.Setenv("CM_CACHE_DIR", "/tmp/cm-cache")

	c := Default()
	require.NoError(t, FromEnvironment(&c))
	require.Equal(t, Config{
		LogLevel:        "warn",
		LogFile:         "",
		LogStream:       StreamStdout,
		DownloadTimeout: 90 * time.Second,
		CacheDir:        "/tmp/cm-cache",
	}, c)
}

func TestFromEnvironment_Unset(t *testing.T) {
	for _, k := range []string{"CM_LOG_LEVEL", "CM_LOG_STREAM", "CM_DOWNLOAD_TIMEOUT", "CM_CACHE_DIR"} {
		t.Setenv(k, "")
	}
	c := Default()
	want := c
	require.NoError(t, FromEnvironment(&c))
	require.Equal(t, want.LogLevel, c.LogLevel)
	require.Equal(t, want.DownloadTimeout, c.DownloadTimeout)
	require.Equal(t, want.CacheDir, c.CacheDir)
}

func TestFromEnvironment_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"level", "CM_LOG_LEVEL", "chatty"},
		{"stream", "CM_LOG_STREAM", "syslog"},
		{"timeout", "CM_DOWNLOAD_TIMEOUT", "soon"},
		{"negative timeout", "CM_DOWNLOAD_TIMEOUT", "-1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			c := Default()
			require.Error(t, FromEnvironment(&c))
		})
	}
}

func TestValidate_Level(t *testing.T) {
	c := Default()
	c.LogLevel = "chatty"
	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorIs(t, err, logging.ErrLevelNotRecognized)
}

package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelUnmarshalText(t *testing.T) {
	cases := map[string]LogLevel{
		"OFF":   LogLevelOff,
		"error": LogLevelError,
		"Warn":  LogLevelWarn,
		"INFO":  LogLevelInfo,
		"debug": LogLevelDebug,
	}
	for text, want := range cases {
		var level LogLevel
		require.NoError(t, level.UnmarshalText([]byte(text)))
		assert.Equal(t, want, level)
	}

	var level LogLevel
	assert.Error(t, level.UnmarshalText([]byte("verbose")))
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "OFF", LogLevelOff.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
	assert.Equal(t, "UNKNOWN", LogLevel(-1).String())
}

func TestDefaultLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, LogLevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "error message")
}

func TestDefaultLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, LogLevelError)

	logger.Info("before")
	logger.SetLevel(LogLevelDebug)
	logger.Debug("after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "after")
}

func TestDefaultLoggerOffSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, LogLevelOff)

	logger.Error("should not appear")
	assert.Empty(t, buf.String())
}

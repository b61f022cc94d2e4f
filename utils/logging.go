package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel controls how much diagnostic output the library emits.
type LogLevel int

const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger is the diagnostic sink used throughout the library. Calls are
// fire-and-forget; implementations must be safe for concurrent use.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	SetLevel(level LogLevel)
}

// DefaultLogger writes slog text records to a writer. Level filtering is
// delegated to the handler through a LevelVar, so SetLevel takes effect on
// records already in flight without rebuilding the logger.
type DefaultLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

// slogLevel maps a LogLevel onto the slog scale. Off maps above error so
// the handler drops everything.
func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	case LogLevelOff:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a DefaultLogger writing to stderr.
func NewLogger(level LogLevel) *DefaultLogger {
	return NewLoggerWithWriter(os.Stderr, level)
}

// NewLoggerWithWriter returns a DefaultLogger writing to w.
func NewLoggerWithWriter(w io.Writer, level LogLevel) *DefaultLogger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slogLevel(level))
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar})
	return &DefaultLogger{
		logger: slog.New(handler),
		level:  levelVar,
	}
}

func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.level.Set(slogLevel(level))
}

func (l *DefaultLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *DefaultLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *DefaultLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *DefaultLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}

func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "OFF"
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "OFF":
		*l = LogLevelOff
	case "ERROR":
		*l = LogLevelError
	case "WARN":
		*l = LogLevelWarn
	case "INFO":
		*l = LogLevelInfo
	case "DEBUG":
		*l = LogLevelDebug
	default:
		return fmt.Errorf("invalid log level: %s", string(text))
	}
	return nil
}

package core

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	// LevelDebug is for detailed debugging information
	LevelDebug LogLevel = iota
	// LevelInfo is for general informational messages
	LevelInfo
	// LevelWarn is for warning messages
	LevelWarn
	// LevelError is for error messages
	LevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a LogLevel. Unknown names map to Info.
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is the interface for logging operations
type Logger interface {
	// Debug logs a debug message
	Debug(msg string, keyvals ...any)
	// Info logs an informational message
	Info(msg string, keyvals ...any)
	// Warn logs a warning message
	Warn(msg string, keyvals ...any)
	// Error logs an error message
	Error(msg string, keyvals ...any)
	// With returns a new logger with additional key-value pairs
	With(keyvals ...any) Logger
}

// writerLogger is a simple thread-safe logger implementation
type writerLogger struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel LogLevel
	keyvals  []any
}

// NewLogger creates a new logger that writes to the given writer
func NewLogger(out io.Writer, minLevel LogLevel) Logger {
	return &writerLogger{out: out, minLevel: minLevel}
}

// NewStdLogger creates a new logger that writes to stderr
func NewStdLogger(minLevel LogLevel) Logger {
	return NewLogger(os.Stderr, minLevel)
}

func (l *writerLogger) Debug(msg string, keyvals ...any) { l.log(LevelDebug, msg, keyvals) }
func (l *writerLogger) Info(msg string, keyvals ...any)  { l.log(LevelInfo, msg, keyvals) }
func (l *writerLogger) Warn(msg string, keyvals ...any)  { l.log(LevelWarn, msg, keyvals) }
func (l *writerLogger) Error(msg string, keyvals ...any) { l.log(LevelError, msg, keyvals) }

// With returns a new logger with additional key-value pairs
func (l *writerLogger) With(keyvals ...any) Logger {
	merged := make([]any, 0, len(l.keyvals)+len(keyvals))
	merged = append(merged, l.keyvals...)
	merged = append(merged, keyvals...)
	return &writerLogger{out: l.out, minLevel: l.minLevel, keyvals: merged}
}

// log formats and writes a log message
func (l *writerLogger) log(level LogLevel, msg string, keyvals []any) {
	if level < l.minLevel {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", time.Now().Format(time.RFC3339), level, msg)
	appendKeyvals(&b, l.keyvals)
	appendKeyvals(&b, keyvals)
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, b.String())
}

func appendKeyvals(b *strings.Builder, keyvals []any) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(b, " %v=%v", keyvals[i], keyvals[i+1])
	}
}

// nopLogger is a no-op logger that discards all log messages
type nopLogger struct{}

func (nopLogger) Debug(msg string, keyvals ...any) {}
func (nopLogger) Info(msg string, keyvals ...any)  {}
func (nopLogger) Warn(msg string, keyvals ...any)  {}
func (nopLogger) Error(msg string, keyvals ...any) {}

// With returns the same no-op logger
func (n nopLogger) With(keyvals ...any) Logger { return n }

// NopLogger returns a logger that discards all messages
func NopLogger() Logger {
	return nopLogger{}
}

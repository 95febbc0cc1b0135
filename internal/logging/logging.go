// Package logging provides a simple leveled logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
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

// ParseLevel parses a log level string. An empty string means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// field is a key=value pair appended to every line of a derived logger.
type field struct {
	key   string
	value any
}

// sink is shared between a logger and the loggers derived from it with With.
type sink struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	now    func() time.Time
}

// Logger is a simple leveled logger.
type Logger struct {
	sink   *sink
	fields []field
}

// New creates a new logger.
func New(level Level) *Logger {
	return &Logger{sink: &sink{
		level:  level,
		output: os.Stderr,
		now:    time.Now,
	}}
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return level >= l.sink.level
}

// With returns a logger that appends key=value to every message. The
// derived logger shares level and output with l.
func (l *Logger) With(key string, value any) *Logger {
	fields := make([]field, len(l.fields), len(l.fields)+1)
	copy(fields, l.fields)
	return &Logger{sink: l.sink, fields: append(fields, field{key, value})}
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if level < l.sink.level {
		return
	}

	var b strings.Builder
	b.WriteString(l.sink.now().Format("15:04:05.000"))
	fmt.Fprintf(&b, " [%s] ", level)
	fmt.Fprintf(&b, format, args...)
	for _, f := range l.fields {
		fmt.Fprintf(&b, " %s=%v", f.key, f.value)
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.sink.output, b.String())
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{sink: &sink{
		level:  LevelError + 1, // Higher than any level
		output: io.Discard,
		now:    time.Now,
	}}
}

// Package logger provides a small colored console logger used across the
// application. Each component gets its own prefixed instance so log lines
// can be told apart at a glance.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
)

const colorReset = "\033[0m"

// Logger writes leveled, prefixed log lines to a single writer.
type Logger struct {
	base  *log.Logger
	color string
}

// New creates a Logger with the given prefix and ANSI color. The prefix
// identifies the owning component (e.g. "SESSION-MANAGER").
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix must not be empty")
	}
	if out == nil {
		return nil, errors.New("logger writer must not be nil")
	}

	return &Logger{
		base:  log.New(out, fmt.Sprintf("%s[%s]%s ", color, prefix, colorReset), log.LstdFlags),
		color: color,
	}, nil
}

func (l *Logger) logf(level, msg string) {
	l.base.Printf("[%s] %s", level, msg)
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string) {
	l.logf("DEBUG", msg)
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string) {
	l.logf("INFO", msg)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string) {
	l.logf("WARN", msg)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string) {
	l.logf("ERROR", msg)
}

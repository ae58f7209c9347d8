// Package rlog is a minimal structured-ish logger: a thin wrapper over the
// standard library's log.Logger that prefixes every line with a component
// tag, in keeping with the rest of this module's preference for the
// standard library over a logging framework (no logging dependency is
// present anywhere in the corpus this module was built from).
package rlog

import (
	"fmt"
	"log"
	"os"
)

// Logger writes tagged lines to an underlying *log.Logger.
type Logger struct {
	component string
	out       *log.Logger
}

// New returns a Logger tagging every line with component, writing to
// stderr with a standard date/time prefix.
func New(component string) *Logger {
	return &Logger{
		component: component,
		out:       log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *Logger) line(level, format string, args ...any) string {
	return fmt.Sprintf("[%s] %s: %s", level, l.component, fmt.Sprintf(format, args...))
}

// Info logs an informational line.
func (l *Logger) Info(format string, args ...any) {
	l.out.Print(l.line("INFO", format, args...))
}

// Warn logs a recoverable-condition line (e.g. a skipped sub-problem, an
// unfitted piece).
func (l *Logger) Warn(format string, args ...any) {
	l.out.Print(l.line("WARN", format, args...))
}

// Error logs a line describing a caught error; the error itself is
// appended with %v.
func (l *Logger) Error(err error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.out.Print(l.line("ERROR", "%s: %v", msg, err))
}

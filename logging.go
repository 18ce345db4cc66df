// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

package pjlink

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pion/logging"
)

// Field represents a structured logging field with a key-value pair.
type Field struct {
	Key   string
	Value interface{}
}

// Logger defines the interface for structured logging throughout the PJLink library.
type Logger interface {
	// Debug logs debug-level messages with optional structured fields.
	Debug(msg string, fields ...Field)

	// Info logs info-level messages with optional structured fields.
	Info(msg string, fields ...Field)

	// Warn logs warning-level messages with optional structured fields.
	Warn(msg string, fields ...Field)

	// Error logs error-level messages with optional structured fields.
	Error(msg string, fields ...Field)

	// With creates a new logger instance with the provided fields pre-populated.
	With(fields ...Field) Logger
}

// NoOpLogger is a Logger implementation that discards all log messages.
type NoOpLogger struct{}

// Debug discards debug-level log messages.
func (l *NoOpLogger) Debug(msg string, fields ...Field) {
}

// Info discards info-level log messages.
func (l *NoOpLogger) Info(msg string, fields ...Field) {
}

// Warn discards warning-level log messages.
func (l *NoOpLogger) Warn(msg string, fields ...Field) {
}

// Error discards error-level log messages.
func (l *NoOpLogger) Error(msg string, fields ...Field) {
}

// With returns a new NoOpLogger instance (ignores fields).
func (l *NoOpLogger) With(fields ...Field) Logger {
	return &NoOpLogger{}
}

// StandardLogger wraps Go's standard log package to implement the Logger interface.
type StandardLogger struct {
	// Logger is the underlying standard library logger.
	Logger *log.Logger

	// contextFields holds fields that should be included in all log messages
	contextFields []Field
}

// ensureLogger initializes the logger if it's nil.
func (l *StandardLogger) ensureLogger() *log.Logger {
	if l.Logger == nil {
		l.Logger = log.New(os.Stderr, "PJLINK: ", log.LstdFlags|log.Lshortfile)
	}
	return l.Logger
}

// renderFields appends context fields, then call fields, to msg as key=value pairs.
func renderFields(msg string, contextFields, fields []Field) string {
	if len(contextFields) == 0 && len(fields) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for _, group := range [][]Field{contextFields, fields} {
		for _, field := range group {
			b.WriteString(" " + field.Key + "=" + formatFieldValue(field.Value))
		}
	}
	return b.String()
}

// formatFieldValue converts a field value to a string representation for logging.
// Strings containing spaces are quoted, errors are quoted, other values use default formatting.
func formatFieldValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		if containsSpace(v) {
			return `"` + v + `"`
		}
		return v
	case error:
		return `"` + v.Error() + `"`
	default:
		return fmt.Sprintf("%v", v)
	}
}

// containsSpace checks if a string contains any whitespace characters.
// Returns true if the string contains spaces, tabs, newlines, or carriage returns.
func containsSpace(s string) bool {
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return true
		}
	}
	return false
}

// Debug logs a debug-level message with structured fields.
func (l *StandardLogger) Debug(msg string, fields ...Field) {
	logger := l.ensureLogger()
	formatted := renderFields("[DEBUG] "+msg, l.contextFields, fields)
	logger.Print(formatted)
}

// Info logs an info-level message with structured fields.
func (l *StandardLogger) Info(msg string, fields ...Field) {
	logger := l.ensureLogger()
	formatted := renderFields("[INFO] "+msg, l.contextFields, fields)
	logger.Print(formatted)
}

// Warn logs a warning-level message with structured fields.
func (l *StandardLogger) Warn(msg string, fields ...Field) {
	logger := l.ensureLogger()
	formatted := renderFields("[WARN] "+msg, l.contextFields, fields)
	logger.Print(formatted)
}

// Error logs an error-level message with structured fields.
func (l *StandardLogger) Error(msg string, fields ...Field) {
	logger := l.ensureLogger()
	formatted := renderFields("[ERROR] "+msg, l.contextFields, fields)
	logger.Print(formatted)
}

// With creates a new StandardLogger instance with additional context fields.
// The returned logger will include the provided fields in all subsequent log messages.
func (l *StandardLogger) With(fields ...Field) Logger {
	newContextFields := make([]Field, 0, len(l.contextFields)+len(fields))
	newContextFields = append(newContextFields, l.contextFields...)
	newContextFields = append(newContextFields, fields...)

	return &StandardLogger{
		Logger:        l.Logger,
		contextFields: newContextFields,
	}
}

// PionLogger adapts a pion LeveledLogger to the Logger interface.
// Fields are rendered the same way StandardLogger renders them.
type PionLogger struct {
	leveled       logging.LeveledLogger
	contextFields []Field
}

// NewPionLogger creates a Logger backed by the given pion logger factory.
// The scope selects the per-scope level configured on the factory.
func NewPionLogger(factory logging.LoggerFactory, scope string) *PionLogger {
	return &PionLogger{leveled: factory.NewLogger(scope)}
}

// Debug logs a debug-level message with structured fields.
func (l *PionLogger) Debug(msg string, fields ...Field) {
	l.leveled.Debug(renderFields(msg, l.contextFields, fields))
}

// Info logs an info-level message with structured fields.
func (l *PionLogger) Info(msg string, fields ...Field) {
	l.leveled.Info(renderFields(msg, l.contextFields, fields))
}

// Warn logs a warning-level message with structured fields.
func (l *PionLogger) Warn(msg string, fields ...Field) {
	l.leveled.Warn(renderFields(msg, l.contextFields, fields))
}

// Error logs an error-level message with structured fields.
func (l *PionLogger) Error(msg string, fields ...Field) {
	l.leveled.Error(renderFields(msg, l.contextFields, fields))
}

// With creates a new PionLogger sharing the same leveled logger with additional context fields.
func (l *PionLogger) With(fields ...Field) Logger {
	newContextFields := make([]Field, 0, len(l.contextFields)+len(fields))
	newContextFields = append(newContextFields, l.contextFields...)
	newContextFields = append(newContextFields, fields...)

	return &PionLogger{
		leveled:       l.leveled,
		contextFields: newContextFields,
	}
}

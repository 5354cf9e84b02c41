// Package logging provides a logging abstraction that decouples the
// application from the underlying logging framework, which keeps the engine
// packages testable without capturing real log output.
package logging

// Logger is the structured logging interface used throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names for structured logging. Using the same keys
// everywhere keeps log output easy to filter.
const (
	FieldRecord      = "record"
	FieldRecordKind  = "record_kind"
	FieldCycleNumber = "cycle_number"
	FieldEventID     = "event_id"
	FieldCount       = "count"
	FieldOperation   = "operation"
	FieldFile        = "file_path"
	FieldStatus      = "status"
	FieldError       = "error"
)

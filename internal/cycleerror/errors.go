// Package cycleerror defines the typed errors the cycle engine reports.
package cycleerror

import "fmt"

// ConfigError represents malformed recurrence parameters. Generation fails
// fast on these rather than silently defaulting.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid recurrence config: %s='%s': %s", e.Field, e.Value, e.Reason)
}

// RecordNotFoundError indicates the data store has no record of the requested
// kind and name.
type RecordNotFoundError struct {
	Kind string
	Name string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("%s record not found: %s", e.Kind, e.Name)
}

// StoreError wraps a failure while reading or writing the external data store.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

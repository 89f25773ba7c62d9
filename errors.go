package csvsort

import (
	"fmt"
	"strings"
)

// ConfigError reports a configuration value that failed eager
// validation. No I/O or temporary state exists by the time one is
// returned.
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("csvsort: invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// ColumnError reports a sort column that does not appear in the input
// header.
type ColumnError struct {
	Column    string
	Available []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf(
		"csvsort: column %q not found in header; available columns: %s",
		e.Column,
		strings.Join(e.Available, ", "))
}

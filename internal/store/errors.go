package store

import (
	"fmt"
	"strings"
)

// NotConfiguredError indicates the target database lacks required tables.
// Fatal at registry or orchestrator construction: writing experiment data
// into a half-configured database would fail midway through a lifecycle.
type NotConfiguredError struct {
	// Missing lists the absent table names, sorted.
	Missing []string
}

// Error implements the error interface.
func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("database is not configured for simulation output: missing tables [%s]",
		strings.Join(e.Missing, ", "))
}

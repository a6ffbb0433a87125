package schema

import "fmt"

// SchemaError reports an invalid descriptor registration. It is a
// programmer error, not a data error: it surfaces at Build time so a bad
// record declaration fails fast instead of corrupting rows at insert time.
type SchemaError struct {
	// Table is the table whose registration is invalid.
	Table string

	// Reason describes the violated convention.
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation in table %q: %s", e.Table, e.Reason)
}

func schemaErrorf(table, format string, args ...any) *SchemaError {
	return &SchemaError{Table: table, Reason: fmt.Sprintf(format, args...)}
}

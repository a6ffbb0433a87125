package schema

// Extraction walks the same ordered column slice the statement generators
// walk, so every value list lines up with its statement's placeholders by
// construction.

// FullRow returns one value per column, in registration order.
func (d *Descriptor[T]) FullRow(rec *T) []any {
	vals := make([]any, 0, len(d.columns))
	for _, c := range d.columns {
		vals = append(vals, c.get(rec))
	}
	return vals
}

// InsertRow returns the values for InsertSQL: FullRow with the
// auto-increment key omitted when one is declared.
func (d *Descriptor[T]) InsertRow(rec *T) []any {
	vals := make([]any, 0, len(d.columns))
	for _, c := range d.columns {
		if d.autoKey && c.key {
			continue
		}
		vals = append(vals, c.get(rec))
	}
	return vals
}

// UpdateRow returns the values for UpdateSQL: every non-key column in
// registration order, followed by the key fields in declaration order to
// satisfy the WHERE clause.
func (d *Descriptor[T]) UpdateRow(rec *T) []any {
	vals := make([]any, 0, len(d.columns))
	for _, c := range d.columns {
		if c.key {
			continue
		}
		vals = append(vals, c.get(rec))
	}
	for _, c := range d.columns {
		if c.key {
			vals = append(vals, c.get(rec))
		}
	}
	return vals
}

// KeyRow returns only the key-field values, in declaration order.
func (d *Descriptor[T]) KeyRow(rec *T) []any {
	vals := make([]any, 0, len(d.keyFields))
	for _, c := range d.columns {
		if c.key {
			vals = append(vals, c.get(rec))
		}
	}
	return vals
}

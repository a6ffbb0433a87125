package schema

import "strings"

// CreateTableSQL returns the CREATE TABLE statement for the descriptor.
//
// One clause is emitted per registered column, in registration order, with
// NOT NULL appended for non-nullable columns and a PRIMARY KEY clause built
// from the key fields. An auto-increment key is emitted as INTEGER
// regardless of its semantic type: SQLite only aliases the rowid (and thus
// assigns values on insert) for a key column declared INTEGER.
func (d *Descriptor[T]) CreateTableSQL() string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS ")
	sb.WriteString(d.QualifiedName())
	sb.WriteString(" (\n")
	for _, c := range d.columns {
		sb.WriteString("\t")
		sb.WriteString(c.name)
		sb.WriteString(" ")
		if d.autoKey && c.key {
			sb.WriteString("INTEGER")
		} else {
			sb.WriteString(c.typ.SQLType())
		}
		if !c.nullable {
			sb.WriteString(" NOT NULL")
		}
		sb.WriteString(",\n")
	}
	sb.WriteString("\tPRIMARY KEY (")
	sb.WriteString(strings.Join(d.keyFields, ", "))
	sb.WriteString(")\n)")
	return sb.String()
}

// InsertSQL returns the INSERT statement for the descriptor. The column
// list covers every column except a store-assigned auto-increment key,
// with one positional placeholder per column in registration order.
// InsertRow produces the matching value list.
func (d *Descriptor[T]) InsertSQL() string {
	var names []string
	for _, c := range d.columns {
		if d.autoKey && c.key {
			continue
		}
		names = append(names, c.name)
	}
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(d.QualifiedName())
	sb.WriteString(" (")
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(placeholders(len(names)))
	sb.WriteString(")")
	return sb.String()
}

// UpdateSQL returns the UPDATE statement for the descriptor. The SET list
// covers every non-key column in registration order; the WHERE clause binds
// each key field, after the SET placeholders. UpdateRow produces the
// matching value list.
func (d *Descriptor[T]) UpdateSQL() string {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(d.QualifiedName())
	sb.WriteString(" SET ")
	first := true
	for _, c := range d.columns {
		if c.key {
			continue
		}
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(c.name)
		sb.WriteString(" = ?")
	}
	sb.WriteString(" WHERE ")
	for i, k := range d.keyFields {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(k)
		sb.WriteString(" = ?")
	}
	return sb.String()
}

// placeholders returns n comma-separated positional placeholders.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

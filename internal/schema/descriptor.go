package schema

// Column describes one persisted field of a record type. The getter closure
// is the extraction path: registering it alongside the name and type is what
// replaces runtime reflection while keeping declaration-order guarantees.
type Column[T any] struct {
	name     string
	typ      SemanticType
	nullable bool
	key      bool
	get      func(*T) any
}

// Descriptor holds the validated schema of one record type. It is immutable
// after Build and safe for concurrent use; construct one per record type at
// package init and share it.
type Descriptor[T any] struct {
	table      string
	schemaName string
	columns    []Column[T]
	keyFields  []string
	autoKey    bool
}

// Builder accumulates column registrations for a record type.
// Registration order is column order everywhere: CREATE TABLE clauses,
// INSERT/UPDATE placeholders, and extracted value lists.
type Builder[T any] struct {
	table      string
	schemaName string
	columns    []Column[T]
	keyFields  []string
	autoKey    bool
}

// New starts a Builder for the given table name.
func New[T any](table string) *Builder[T] {
	return &Builder[T]{table: table}
}

// InSchema qualifies the table with a schema name.
func (b *Builder[T]) InSchema(name string) *Builder[T] {
	b.schemaName = name
	return b
}

// AutoKey registers a single store-assigned auto-increment key column.
// The column is excluded from INSERT statements; its getter is still used
// for UPDATE WHERE binding and key extraction.
func (b *Builder[T]) AutoKey(name string, get func(*T) any) *Builder[T] {
	b.columns = append(b.columns, Column[T]{name: name, typ: Int64, key: true, get: get})
	b.keyFields = append(b.keyFields, name)
	b.autoKey = true
	return b
}

// Key registers a caller-assigned key column. Multiple Key calls build a
// composite primary key in registration order.
func (b *Builder[T]) Key(name string, typ SemanticType, get func(*T) any) *Builder[T] {
	b.columns = append(b.columns, Column[T]{name: name, typ: typ, key: true, get: get})
	b.keyFields = append(b.keyFields, name)
	return b
}

// Column registers a NOT NULL data column.
func (b *Builder[T]) Column(name string, typ SemanticType, get func(*T) any) *Builder[T] {
	b.columns = append(b.columns, Column[T]{name: name, typ: typ, get: get})
	return b
}

// Nullable registers a data column that admits NULL.
func (b *Builder[T]) Nullable(name string, typ SemanticType, get func(*T) any) *Builder[T] {
	b.columns = append(b.columns, Column[T]{name: name, typ: typ, nullable: true, get: get})
	return b
}

// Build validates the registration and returns the descriptor.
//
// Rules enforced here, all reported as *SchemaError:
//   - at least one column and at least one key field
//   - an auto-increment key must be the only key field
//   - column names must be unique
//   - every column must have a getter (an unreadable field is a schema
//     violation, never a silent skip)
func (b *Builder[T]) Build() (*Descriptor[T], error) {
	if len(b.columns) == 0 {
		return nil, schemaErrorf(b.table, "no columns registered")
	}
	if len(b.keyFields) == 0 {
		return nil, schemaErrorf(b.table, "no key fields declared")
	}
	if b.autoKey && len(b.keyFields) > 1 {
		return nil, schemaErrorf(b.table, "auto-increment key must be the single key field, got %d key fields", len(b.keyFields))
	}
	seen := make(map[string]bool, len(b.columns))
	for _, c := range b.columns {
		if seen[c.name] {
			return nil, schemaErrorf(b.table, "duplicate column %q", c.name)
		}
		seen[c.name] = true
		if c.get == nil {
			return nil, schemaErrorf(b.table, "column %q has no getter", c.name)
		}
	}
	return &Descriptor[T]{
		table:      b.table,
		schemaName: b.schemaName,
		columns:    b.columns,
		keyFields:  b.keyFields,
		autoKey:    b.autoKey,
	}, nil
}

// Must returns the descriptor or panics on a SchemaError. Intended for
// package-level registrations, where a bad declaration should stop the
// program at init.
func Must[T any](d *Descriptor[T], err error) *Descriptor[T] {
	if err != nil {
		panic(err)
	}
	return d
}

// TableName returns the unqualified table name.
func (d *Descriptor[T]) TableName() string { return d.table }

// QualifiedName returns the schema-qualified table name when a schema is
// declared, otherwise the bare table name.
func (d *Descriptor[T]) QualifiedName() string {
	if d.schemaName == "" {
		return d.table
	}
	return d.schemaName + "." + d.table
}

// ColumnNames returns the ordered column names.
func (d *Descriptor[T]) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.name
	}
	return names
}

// KeyFields returns the declared key column names in order.
func (d *Descriptor[T]) KeyFields() []string {
	out := make([]string, len(d.keyFields))
	copy(out, d.keyFields)
	return out
}

// AutoIncrementKey reports whether the key is store-assigned.
func (d *Descriptor[T]) AutoIncrementKey() bool { return d.autoKey }

package schema

// SemanticType classifies a column's value domain independently of any
// particular SQL dialect. SQLType maps it to the DDL type token.
type SemanticType int

const (
	// String is the default semantic type for unrecognized values.
	String SemanticType = iota
	Double
	Float32
	Int64
	Int32
	Int16
	Int8
	Boolean
	Timestamp
)

// SQLType returns the DDL type token for the semantic type.
// Unrecognized types fall back to VARCHAR(512).
func (t SemanticType) SQLType() string {
	switch t {
	case Double:
		return "DOUBLE"
	case Float32:
		return "REAL"
	case Int64:
		return "BIGINT"
	case Int32:
		return "INTEGER"
	case Int16, Int8:
		return "SMALLINT"
	case Boolean:
		return "BOOLEAN"
	case Timestamp:
		return "TIMESTAMP"
	default:
		return "VARCHAR(512)"
	}
}

// String returns the semantic type name for diagnostics.
func (t SemanticType) String() string {
	switch t {
	case Double:
		return "Double"
	case Float32:
		return "Float32"
	case Int64:
		return "Int64"
	case Int32:
		return "Int32"
	case Int16:
		return "Int16"
	case Int8:
		return "Int8"
	case Boolean:
		return "Boolean"
	case Timestamp:
		return "Timestamp"
	default:
		return "String"
	}
}

// Table is the type-erased view of a Descriptor. It exposes everything a
// caller needs to work with heterogeneous record kinds: DDL bootstrap,
// configuration checks, and cascade planning.
type Table interface {
	// TableName returns the unqualified table name.
	TableName() string

	// QualifiedName returns the table name prefixed with the schema name
	// when one is declared, otherwise the bare table name.
	QualifiedName() string

	// ColumnNames returns the ordered column names.
	ColumnNames() []string

	// KeyFields returns the declared primary-key column names in order.
	KeyFields() []string

	// AutoIncrementKey reports whether the key is a single store-assigned
	// auto-increment column.
	AutoIncrementKey() bool

	// CreateTableSQL returns the CREATE TABLE statement for the table.
	CreateTableSQL() string

	// InsertSQL returns the INSERT statement for the table.
	InsertSQL() string

	// UpdateSQL returns the UPDATE statement for the table.
	UpdateSQL() string
}

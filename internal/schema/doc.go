// Package schema provides convention-based record-to-table mapping.
//
// A Descriptor is built once per record type by registering its columns,
// key fields, and auto-increment flag through a Builder. From that single
// registration the descriptor derives:
//   - CREATE TABLE / INSERT / UPDATE statement text with positional
//     placeholders (CreateTableSQL, InsertSQL, UpdateSQL)
//   - Ordered value lists filling those placeholders (FullRow, InsertRow,
//     UpdateRow, KeyRow)
//
// # Ordering Contract
//
// Statement text and value lists are derived from the same ordered column
// walk, so placeholder position always matches value position. This is the
// core correctness contract of the mapper: a divergence would corrupt data
// silently, which is why both sides come from one source of truth instead
// of two hand-maintained lists.
//
// # Key Conventions
//
//   - Every descriptor declares at least one key field.
//   - An auto-increment key is a single INTEGER column assigned by the
//     store on insert; it is excluded from generated INSERT statements.
//   - Key fields are excluded from UPDATE SET clauses and bound in the
//     WHERE clause, after the SET placeholders.
//
// Registration mistakes (no key fields, auto-increment with a composite
// key, duplicate or unreadable columns) fail at Build time with a
// SchemaError, not at first insert.
package schema

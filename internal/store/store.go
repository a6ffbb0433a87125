package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/desimtools/simdb/internal/records"
)

// Store wraps a SQLite database holding simulation output tables.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path and applies
// the required pragmas. It does not create tables; call CreateTables or
// ExecuteScript to bootstrap the schema.
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries and transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// CreateTables creates every required table from the registered
// descriptors. Idempotent: the synthesized DDL uses IF NOT EXISTS.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, t := range records.Tables() {
		if _, err := s.db.ExecContext(ctx, t.CreateTableSQL()); err != nil {
			return fmt.Errorf("create table %s: %w", t.TableName(), err)
		}
	}
	return nil
}

// ExecuteScript executes a DDL script from the given path. The script may
// contain multiple semicolon-separated statements.
func (s *Store) ExecuteScript(ctx context.Context, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script %s: %w", path, err)
	}
	if _, err := s.db.ExecContext(ctx, string(script)); err != nil {
		return fmt.Errorf("execute script %s: %w", path, err)
	}
	return nil
}

// TableNames returns the user table names present in the database, sorted.
func (s *Store) TableNames(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("name").
		From("sqlite_master").
		Where(sq.Eq{"type": "table"}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build table names query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query table names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		// sqlite_sequence and friends are engine bookkeeping
		if strings.HasPrefix(name, "sqlite_") {
			continue
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table names: %w", err)
	}
	return names, nil
}

// MissingTables returns the required table names absent from the database,
// sorted. An empty result means the database is properly configured.
func (s *Store) MissingTables(ctx context.Context) ([]string, error) {
	present, err := s.TableNames(ctx)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(present))
	for _, name := range present {
		have[name] = true
	}

	var missing []string
	for _, t := range records.Tables() {
		if !have[t.TableName()] {
			missing = append(missing, t.TableName())
		}
	}
	sort.Strings(missing)
	return missing, nil
}

// CheckConfigured verifies that every required table exists, returning a
// *NotConfiguredError naming the missing tables otherwise. Called at
// registry and orchestrator construction so a misconfigured database fails
// before any experiment data is written.
func (s *Store) CheckConfigured(ctx context.Context) error {
	missing, err := s.MissingTables(ctx)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &NotConfiguredError{Missing: missing}
	}
	return nil
}

// DeleteAllFrom removes every row from the named table.
func (s *Store) DeleteAllFrom(ctx context.Context, table string) error {
	query, args, err := sq.Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("build delete for %s: %w", table, err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete all from %s: %w", table, err)
	}
	return nil
}

// ClearAllData empties every required table, children before parents, so a
// partial failure never strands dependent rows whose parent rows are
// already gone.
func (s *Store) ClearAllData(ctx context.Context) error {
	tables := records.Tables()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := s.DeleteAllFrom(ctx, tables[i].TableName()); err != nil {
			return err
		}
	}
	return nil
}

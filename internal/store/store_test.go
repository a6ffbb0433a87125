package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/desimtools/simdb/internal/records"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestCreateTables_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	for i := 0; i < 2; i++ {
		if err := s.CreateTables(ctx); err != nil {
			t.Fatalf("CreateTables() iteration %d failed: %v", i, err)
		}
	}

	names, err := s.TableNames(ctx)
	if err != nil {
		t.Fatalf("TableNames() failed: %v", err)
	}
	if len(names) != len(records.Tables()) {
		t.Errorf("got %d tables, want %d: %v", len(names), len(records.Tables()), names)
	}
}

func TestMissingTables_EmptyDatabase(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	missing, err := s.MissingTables(ctx)
	if err != nil {
		t.Fatalf("MissingTables() failed: %v", err)
	}
	if len(missing) != len(records.Tables()) {
		t.Errorf("got %d missing tables, want %d", len(missing), len(records.Tables()))
	}
}

func TestCheckConfigured(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	err = s.CheckConfigured(ctx)
	if err == nil {
		t.Fatal("CheckConfigured() on empty database should fail")
	}
	ncErr, ok := err.(*NotConfiguredError)
	if !ok {
		t.Fatalf("got %T, want *NotConfiguredError", err)
	}
	if len(ncErr.Missing) == 0 {
		t.Error("NotConfiguredError should name the missing tables")
	}

	if err := s.CreateTables(ctx); err != nil {
		t.Fatalf("CreateTables() failed: %v", err)
	}
	if err := s.CheckConfigured(ctx); err != nil {
		t.Errorf("CheckConfigured() after CreateTables failed: %v", err)
	}
}

func TestExecuteScript(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	script := filepath.Join(dir, "schema.sql")
	ddl := "CREATE TABLE IF NOT EXISTS extra_one (id INTEGER NOT NULL);\n" +
		"CREATE TABLE IF NOT EXISTS extra_two (id INTEGER NOT NULL);\n"
	if err := os.WriteFile(script, []byte(ddl), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if err := s.ExecuteScript(ctx, script); err != nil {
		t.Fatalf("ExecuteScript() failed: %v", err)
	}

	names, err := s.TableNames(ctx)
	if err != nil {
		t.Fatalf("TableNames() failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("got tables %v, want extra_one and extra_two", names)
	}
}

func TestExecuteScript_MissingFile(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if err := s.ExecuteScript(ctx, filepath.Join(t.TempDir(), "absent.sql")); err == nil {
		t.Error("ExecuteScript() with missing file should fail")
	}
}

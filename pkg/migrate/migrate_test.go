package migrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

var testMigrations = fstest.MapFS{
	"m/001_create_days.up.sql":   {Data: []byte("CREATE TABLE days (date TEXT PRIMARY KEY)")},
	"m/001_create_days.down.sql": {Data: []byte("DROP TABLE days")},
	"m/002_add_year.up.sql":      {Data: []byte("ALTER TABLE days ADD COLUMN year INTEGER")},
	"m/002_add_year.down.sql":    {Data: []byte("ALTER TABLE days DROP COLUMN year")},
	"m/README.md":                {Data: []byte("ignored")},
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetMigrations(t *testing.T) {
	got, err := NewFSProvider(testMigrations, "m", "").GetMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d migrations, expected 2", len(got))
	}
	if got[0].Version != 1 || got[0].Name != "create days" || got[0].Down == "" {
		t.Errorf("first migration = %+v", got[0])
	}
	if got[1].Version != 2 || got[1].Up == "" {
		t.Errorf("second migration = %+v", got[1])
	}
}

func TestMigrateUpAndDown(t *testing.T) {
	db := openDB(t)
	m := NewMigrator(db, NewFSProvider(testMigrations, "m", "schema_migrations"))

	pending, err := m.GetPendingMigrations()
	if err != nil || len(pending) != 2 {
		t.Fatalf("pending = %v, %v", pending, err)
	}

	if err := m.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	if v, _ := m.GetCurrentVersion(); v != 2 {
		t.Errorf("version = %d, expected 2", v)
	}
	if _, err := db.Exec("INSERT INTO days (date, year) VALUES ('2024-01-01', 2024)"); err != nil {
		t.Errorf("schema not applied: %v", err)
	}

	// Running again is a no-op.
	if err := m.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}

	if err := m.MigrateTo(1); err != nil {
		t.Fatalf("MigrateTo(1): %v", err)
	}
	if v, _ := m.GetCurrentVersion(); v != 1 {
		t.Errorf("version after rollback = %d, expected 1", v)
	}

	if err := m.MigrateTo(0); err != nil {
		t.Fatalf("MigrateTo(0): %v", err)
	}
	if _, err := db.Exec("SELECT 1 FROM days"); err == nil {
		t.Error("days table survived rollback to 0")
	}
}

func TestMigrateMissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"m/001_only_up.up.sql": {Data: []byte("CREATE TABLE t (x INTEGER)")},
	}
	m := NewMigrator(openDB(t), NewFSProvider(fsys, "m", ""))
	if err := m.MigrateUp(); err != nil {
		t.Fatal(err)
	}
	if err := m.MigrateTo(0); err == nil {
		t.Error("expected an error rolling back without down SQL")
	}
}

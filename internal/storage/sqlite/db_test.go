// ABOUTME: Tests for SQLite database connection and schema initialization
// ABOUTME: Verifies database creation, schema, migrations, and pragmas
package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory(nil)
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Conn() == nil {
		t.Error("Conn() should not be nil")
	}

	if db.Path() != ":memory:" {
		t.Errorf("Path() = %v, want :memory:", db.Path())
	}
}

func TestSchemaInitialization(t *testing.T) {
	db, err := OpenInMemory(nil)
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	// Verify all tables exist
	tables := []string{"users", "goals", "daily_logs", "weight_entries", "settings"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s does not exist: %v", table, err)
		}
	}

	var version int
	if err := db.Get(&version, "PRAGMA user_version"); err != nil {
		t.Fatalf("Failed to read user_version: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("user_version = %d, want %d", version, SchemaVersion)
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	db, err := OpenInMemory(nil)
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	// Open already ran it once
	if err := db.EnsureSchema(); err != nil {
		t.Fatalf("second EnsureSchema() error = %v", err)
	}
	if err := db.EnsureSchema(); err != nil {
		t.Fatalf("third EnsureSchema() error = %v", err)
	}

	var tables int
	if err := db.Get(&tables, "SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'"); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if tables != 5 {
		t.Errorf("table count = %d, want 5", tables)
	}

	var settingsRows int
	if err := db.Get(&settingsRows, "SELECT COUNT(1) FROM settings"); err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if settingsRows != 1 {
		t.Errorf("settings rows = %d, want 1", settingsRows)
	}

	var firstNameCols int
	if err := db.Get(&firstNameCols, "SELECT COUNT(1) FROM pragma_table_info('users') WHERE name = 'first_name'"); err != nil {
		t.Fatalf("inspect columns: %v", err)
	}
	if firstNameCols != 1 {
		t.Errorf("first_name columns = %d, want 1", firstNameCols)
	}
}

func TestMigratesLegacyUsersTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	// A database from before profiles had name parts
	legacy, err := sqlx.Open(driverName, dbPath)
	if err != nil {
		t.Fatalf("open legacy db: %v", err)
	}
	_, err = legacy.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			avatar_color TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		INSERT INTO users (id, name, avatar_color, created_at)
		VALUES ('user_legacy', 'Old Timer', '#123456', '2023-01-01T00:00:00.000Z');
	`)
	if err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	_ = legacy.Close()

	db, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	users, err := NewUserStore(db, nil).List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("users = %d, want 1", len(users))
	}
	if users[0].Name != "Old Timer" || users[0].FirstName != "" {
		t.Errorf("legacy user = %+v", users[0])
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	// Use a temp directory
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "subdir", "nested", "habits.db")

	db, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	// Verify file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	var mode string
	if err := db.Get(&mode, "PRAGMA journal_mode"); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-test")

	if got := DefaultDataDir(); got != "/tmp/xdg-test/habits" {
		t.Errorf("DefaultDataDir() = %v, want /tmp/xdg-test/habits", got)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path := DefaultDBPath()
	if path == "" {
		t.Error("DefaultDBPath() returned empty string")
	}
	if filepath.Base(path) != "habits.db" {
		t.Errorf("DefaultDBPath() = %v, should end with habits.db", path)
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	db, err := OpenInMemory(nil)
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}

	if err := db.Close(); err != nil {
		t.Errorf("First Close() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Second Close() error = %v", err)
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	db, err := OpenInMemory(nil)
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	var fkEnabled int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled)
	if err != nil {
		t.Fatalf("Failed to check foreign_keys pragma: %v", err)
	}

	if fkEnabled != 1 {
		t.Error("Foreign keys are not enabled")
	}
}

func TestIndexesExist(t *testing.T) {
	db, err := OpenInMemory(nil)
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	indexes := []string{
		"idx_goals_user",
		"idx_daily_logs_user_date",
		"idx_daily_logs_goal_date",
		"idx_weight_entries_user_date",
	}

	for _, idx := range indexes {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&name)
		if err != nil {
			t.Errorf("Index %s does not exist: %v", idx, err)
		}
	}
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"locked message", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"wrapped locked", fmt.Errorf("failed to initialize schema: %w", errors.New("database is locked")), true},
		{"other", errors.New("no such table: users"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBusy(tt.err); got != tt.want {
				t.Errorf("IsBusy(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

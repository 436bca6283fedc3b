// ABOUTME: SQLite schema, additive column migrations, and seed data
// ABOUTME: EnsureSchema is idempotent and runs on every startup
package sqlite

import (
	"fmt"

	"github.com/harper/habits/internal/models"
	"go.uber.org/zap"
)

// Schema contains all SQL statements for database initialization
const Schema = `
-- Profiles
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    first_name TEXT,
    last_name TEXT,
    birthday TEXT,
    profile_photo TEXT,
    avatar_color TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Habits owned by a profile
CREATE TABLE IF NOT EXISTS goals (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('workout', 'weight', 'custom')),
    frequency TEXT NOT NULL CHECK (frequency IN ('daily', 'weekly')),
    target_value REAL,
    unit TEXT,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- One completion record per (user, goal, date)
CREATE TABLE IF NOT EXISTS daily_logs (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    goal_id TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    value REAL,
    notes TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (user_id, goal_id, date)
);

-- One weigh-in per (user, date)
CREATE TABLE IF NOT EXISTS weight_entries (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    weight REAL NOT NULL CHECK (weight > 0),
    unit TEXT NOT NULL CHECK (unit IN ('lbs', 'kg')),
    notes TEXT,
    created_at TEXT NOT NULL,
    UNIQUE (user_id, date)
);

-- App preferences singleton
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    last_active_user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
    weight_unit TEXT NOT NULL DEFAULT 'lbs' CHECK (weight_unit IN ('lbs', 'kg')),
    theme TEXT NOT NULL DEFAULT 'system' CHECK (theme IN ('light', 'dark', 'system')),
    first_day_of_week INTEGER NOT NULL DEFAULT 0 CHECK (first_day_of_week IN (0, 1))
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);
CREATE INDEX IF NOT EXISTS idx_daily_logs_user_date ON daily_logs(user_id, date);
CREATE INDEX IF NOT EXISTS idx_daily_logs_goal_date ON daily_logs(goal_id, date);
CREATE INDEX IF NOT EXISTS idx_weight_entries_user_date ON weight_entries(user_id, date);
`

// SchemaVersion is recorded in PRAGMA user_version after EnsureSchema
const SchemaVersion = 2

// columnMigration adds a column introduced after the table was first shipped
type columnMigration struct {
	table      string
	column     string
	definition string
}

// columnMigrations are applied in order to databases created by older versions
var columnMigrations = []columnMigration{
	{table: "users", column: "first_name", definition: "TEXT"},
	{table: "users", column: "last_name", definition: "TEXT"},
	{table: "users", column: "birthday", definition: "TEXT"},
	{table: "users", column: "profile_photo", definition: "TEXT"},
}

// seedUsers is applied when the users table is empty. Fresh installs
// start without profiles and go through onboarding.
var seedUsers []models.NewUserInput

// EnsureSchema creates tables and indexes, adds missing columns, and seeds defaults
func (db *DB) EnsureSchema() error {
	if _, err := db.conn.Exec(Schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	for _, m := range columnMigrations {
		if err := db.addColumnIfMissing(m); err != nil {
			return err
		}
	}

	if err := db.seed(); err != nil {
		return err
	}

	if _, err := db.conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

// addColumnIfMissing inspects the table and adds the column when absent
func (db *DB) addColumnIfMissing(m columnMigration) error {
	var count int
	if err := db.conn.Get(&count, `SELECT COUNT(1) FROM pragma_table_info(?) WHERE name = ?`, m.table, m.column); err != nil {
		return fmt.Errorf("inspect %s columns: %w", m.table, err)
	}
	if count > 0 {
		return nil
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.column, m.definition)
	if _, err := db.conn.Exec(stmt); err != nil {
		return fmt.Errorf("add column %s.%s: %w", m.table, m.column, err)
	}
	db.logger.Info("migrated column", zap.String("table", m.table), zap.String("column", m.column))
	return nil
}

// seed inserts the settings row and, on an empty install, any seed profiles
func (db *DB) seed() error {
	if _, err := db.conn.Exec(`INSERT OR IGNORE INTO settings (id) VALUES (1)`); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	var users int
	if err := db.conn.Get(&users, `SELECT COUNT(1) FROM users`); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if users > 0 || len(seedUsers) == 0 {
		return nil
	}

	store := NewUserStore(db, nil)
	for _, in := range seedUsers {
		if _, err := store.Create(in); err != nil {
			return fmt.Errorf("seed user %q: %w", models.DisplayName(in.FirstName, in.LastName), err)
		}
	}
	db.logger.Info("seeded profiles", zap.Int("count", len(seedUsers)))
	return nil
}

// ABOUTME: SQLite database connection and lifecycle management
// ABOUTME: Uses modernc.org/sqlite through sqlx, with WAL and foreign keys enabled
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/harper/habits/internal/models"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	appDirName = "habits"
	dbFileName = "habits.db"
	driverName = "sqlite"
)

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// DB wraps a SQLite database connection
type DB struct {
	conn   *sqlx.DB
	path   string
	logger *zap.Logger
}

// DefaultDataDir returns the per-OS application data directory.
// XDG_DATA_HOME wins when set so tests can redirect it.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, appDirName)
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), dbFileName)
}

// Open opens or creates a SQLite database at the given path and ensures the schema
func Open(path string, logger *zap.Logger) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := path + "?_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	return open(dsn, path, logger)
}

// OpenInMemory creates an in-memory SQLite database (for testing)
func OpenInMemory(logger *zap.Logger) (*DB, error) {
	return open(":memory:?_pragma=foreign_keys(ON)", ":memory:", logger)
}

func open(dsn, path string, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: writes are serialized in-process and :memory: stays a single database
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn:   conn,
		path:   path,
		logger: logger,
	}

	if err := db.EnsureSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection. Closing twice is a no-op.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	err := db.conn.Close()
	db.conn = nil
	return err
}

// Conn returns the underlying sqlx connection for advanced usage
func (db *DB) Conn() *sqlx.DB {
	return db.conn
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

// Get scans a single row into dest
func (db *DB) Get(dest interface{}, query string, args ...interface{}) error {
	return db.conn.Get(dest, query, args...)
}

// Select scans all rows into dest, which must be a pointer to a slice
func (db *DB) Select(dest interface{}, query string, args ...interface{}) error {
	return db.conn.Select(dest, query, args...)
}

// withTx runs fn inside a transaction, rolling back on error
func (db *DB) withTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// translateError maps SQLite constraint failures onto model errors
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var code int
	var se *msqlite.Error
	if errors.As(err, &se) {
		code = se.Code()
	}
	msg := err.Error()

	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY || strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", models.ErrReferentialViolation, err)
	case code == sqlite3.SQLITE_CONSTRAINT_CHECK || strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return err
}

// IsBusy reports whether err is SQLite refusing access because another
// connection holds the lock
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}
	return strings.Contains(err.Error(), "database is locked")
}

// nullString converts an empty string to sql.NullString
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullFloat converts an optional number to sql.NullFloat64
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// floatPtr converts sql.NullFloat64 back to an optional number
func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

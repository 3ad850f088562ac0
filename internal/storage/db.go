// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBFileName is the SQLite file kept in the data directory.
const DBFileName = "swim.db"

// sqlitePragmas run once per open; the pool is pinned to one connection so
// they hold for every statement.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
}

// DB is the SQLite Repository. Each user is a row in users and their
// times are rows in entries, ordered by position.
type DB struct {
	db     *sql.DB
	dbPath string
}

var _ Repository = (*DB)(nil)

// Open opens or creates the swim database at dbPath.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	d := &DB{db: conn, dbPath: dbPath}
	if err := d.setup(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

// setup applies pragmas and the schema, then restricts the file to its owner.
func (d *DB) setup() error {
	for _, pragma := range sqlitePragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("configure pragmas: execute %s: %w", pragma, err)
		}
	}
	if err := d.initSchema(); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	if err := os.Chmod(d.dbPath, 0600); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("set database permissions: %w", err)
	}
	return nil
}

// DataDir returns $XDG_DATA_HOME/swim, defaulting to ~/.local/share/swim.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "swim")
}

// DefaultDBPath returns the database path inside DataDir.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), DBFileName)
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// withTx runs fn in a transaction, committing only when fn succeeds.
func (d *DB) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

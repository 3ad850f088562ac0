// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for users and their time entries.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		name_key TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS entries (
		id TEXT NOT NULL,
		user_key TEXT NOT NULL,
		position INTEGER NOT NULL,
		course TEXT NOT NULL,
		stroke TEXT NOT NULL,
		distance INTEGER NOT NULL,
		time TEXT NOT NULL,
		date TEXT NOT NULL,
		comments TEXT,
		happiness INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_key, id),
		FOREIGN KEY (user_key) REFERENCES users(name_key) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_entries_user ON entries(user_key, position);
	CREATE INDEX IF NOT EXISTS idx_entries_event ON entries(user_key, stroke, distance, course);
	`

	_, err := d.db.Exec(schema)
	return err
}

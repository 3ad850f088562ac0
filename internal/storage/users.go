// ABOUTME: User profile and time entry persistence for SQLite storage.
// ABOUTME: SaveUser replaces a user's entries inside one transaction.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/swim/internal/models"
)

// LoadUser retrieves a user and their entries in insertion order.
func (d *DB) LoadUser(name string) (*models.User, error) {
	key := userKey(name)

	var u models.User
	var createdAt, updatedAt string
	err := d.db.QueryRow(
		`SELECT name, created_at, updated_at FROM users WHERE name_key = ?`, key,
	).Scan(&u.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	query := `
		SELECT id, course, stroke, distance, time, date, comments, happiness, created_at
		FROM entries
		WHERE user_key = ?
		ORDER BY position ASC
	`
	rows, err := d.db.Query(query, key)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	u.Times, err = d.scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if u.Times == nil {
		u.Times = []*models.TimeEntry{}
	}
	return &u, nil
}

// SaveUser upserts the profile and rewrites its entries.
func (d *DB) SaveUser(u *models.User) error {
	if userKey(u.Name) == "" {
		return fmt.Errorf("save user: empty name")
	}
	u.EnsureIDs()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = time.Now()

	key := userKey(u.Name)
	return d.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO users (name_key, name, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(name_key) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at
		`, key, u.Name, u.CreatedAt.Format(time.RFC3339), u.UpdatedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("upsert user: %w", err)
		}

		if _, err := tx.Exec(`DELETE FROM entries WHERE user_key = ?`, key); err != nil {
			return fmt.Errorf("clear entries: %w", err)
		}
		return insertEntries(tx, key, u.Times)
	})
}

// insertEntries writes entries in order; position preserves insertion order.
func insertEntries(tx *sql.Tx, key string, entries []*models.TimeEntry) error {
	stmt, err := tx.Prepare(`
		INSERT INTO entries (id, user_key, position, course, stroke, distance, time, date, comments, happiness, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		var comments sql.NullString
		if e.Comments != "" {
			comments = sql.NullString{String: e.Comments, Valid: true}
		}
		var happiness sql.NullInt64
		if e.Happiness != nil {
			happiness = sql.NullInt64{Int64: int64(*e.Happiness), Valid: true}
		}
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		_, err := stmt.Exec(
			e.ID.String(), key, i,
			string(e.Course), string(e.Stroke), e.Distance,
			e.Time, e.Date, comments, happiness,
			createdAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
	}
	return nil
}

// ListUsers returns stored user names sorted case-insensitively.
func (d *DB) ListUsers() ([]string, error) {
	rows, err := d.db.Query(`SELECT name FROM users ORDER BY name_key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteUser removes a user and, via cascade, their entries.
func (d *DB) DeleteUser(name string) error {
	result, err := d.db.Exec(`DELETE FROM users WHERE name_key = ?`, userKey(name))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	return nil
}

// scanEntries scans multiple rows into a slice of TimeEntries.
func (d *DB) scanEntries(rows *sql.Rows) ([]*models.TimeEntry, error) {
	var entries []*models.TimeEntry

	for rows.Next() {
		var e models.TimeEntry
		var idStr, course, stroke, createdAt string
		var comments sql.NullString
		var happiness sql.NullInt64

		err := rows.Scan(&idStr, &course, &stroke, &e.Distance, &e.Time, &e.Date, &comments, &happiness, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		e.ID, _ = uuid.Parse(idStr)
		e.Course = models.Course(course)
		e.Stroke = models.Stroke(stroke)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if comments.Valid {
			e.Comments = comments.String
		}
		if happiness.Valid {
			h := int(happiness.Int64)
			e.Happiness = &h
		}

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

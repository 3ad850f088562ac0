// ABOUTME: User profile owning a swimmer's list of time entries.
// ABOUTME: Entries keep insertion order; legacy entries are given IDs on load.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is one swimmer's profile and their recorded times.
type User struct {
	Name      string       `json:"name" yaml:"name"`
	Times     []*TimeEntry `json:"times" yaml:"times"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" yaml:"updated_at"`
}

// NewUser creates an empty profile.
func NewUser(name string) *User {
	now := time.Now()
	return &User{
		Name:      name,
		Times:     []*TimeEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EnsureIDs drops nil entries, assigns a UUID to every entry that lacks one
// and normalizes strokes. It reports whether any entry was changed.
func (u *User) EnsureIDs() bool {
	changed := false
	kept := u.Times[:0]
	for _, e := range u.Times {
		if e == nil {
			changed = true
			continue
		}
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
			changed = true
		}
		if n := NormalizeStroke(string(e.Stroke)); n != e.Stroke {
			e.Stroke = n
			changed = true
		}
		kept = append(kept, e)
	}
	clear(u.Times[len(kept):])
	u.Times = kept
	return changed
}

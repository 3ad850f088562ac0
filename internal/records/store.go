// ABOUTME: RecordStore owns one user's time entries for a session.
// ABOUTME: Mutations mark the store dirty; persistence is left to the caller.
package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/swim/internal/models"
)

// Session identifies whose entries a Store holds.
type Session struct {
	User string
}

// Update holds the fields an edit may change. Nil fields are left alone,
// as are empty Time and Date values.
type Update struct {
	Time      *string
	Date      *string
	Comments  *string
	Happiness *int
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Time == nil && u.Date == nil && u.Comments == nil && u.Happiness == nil
}

// Store is the in-memory record list for one user. It performs no I/O.
type Store struct {
	session Session
	entries []*models.TimeEntry
	dirty   bool
	onDirty func(*Store)
}

// New creates a Store over entries loaded by the persistence layer.
func New(session Session, entries []*models.TimeEntry) *Store {
	own := make([]*models.TimeEntry, len(entries))
	copy(own, entries)
	return &Store{session: session, entries: own}
}

// OnDirty registers a callback invoked after every successful mutation.
func (s *Store) OnDirty(fn func(*Store)) {
	s.onDirty = fn
}

// Session returns the session the store was created for.
func (s *Store) Session() Session {
	return s.session
}

// Entries returns the entries in insertion order. The slice is a copy;
// the entries are shared.
func (s *Store) Entries() []*models.TimeEntry {
	out := make([]*models.TimeEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Dirty reports whether the store changed since load or the last MarkClean.
func (s *Store) Dirty() bool {
	return s.dirty
}

// MarkClean clears the dirty flag once the caller has persisted the entries.
func (s *Store) MarkClean() {
	s.dirty = false
}

func (s *Store) markDirty() {
	s.dirty = true
	if s.onDirty != nil {
		s.onDirty(s)
	}
}

// Add validates and appends a new entry.
func (s *Store) Add(e *models.TimeEntry) error {
	e.Time = strings.TrimSpace(e.Time)
	e.Stroke = models.NormalizeStroke(string(e.Stroke))
	if err := Validate(e); err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.entries = append(s.entries, e)
	s.markDirty()
	return nil
}

// Edit applies upd to the current personal best for key. With an empty
// key.Course the fastest entry across both courses is edited. Returns nil
// and no error when nothing matches.
func (s *Store) Edit(key models.EventKey, upd Update) (*models.TimeEntry, error) {
	idx := s.bestIndex(key)
	if idx < 0 {
		return nil, nil
	}
	if err := s.apply(s.entries[idx], upd); err != nil {
		return nil, err
	}
	return s.entries[idx], nil
}

// Delete removes the current personal best for key and returns it, or nil
// when nothing matches.
func (s *Store) Delete(key models.EventKey) *models.TimeEntry {
	idx := s.bestIndex(key)
	if idx < 0 {
		return nil
	}
	return s.removeAt(idx)
}

// Get finds an entry by full UUID or unique prefix.
func (s *Store) Get(idOrPrefix string) (*models.TimeEntry, error) {
	idx, err := s.resolve(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return s.entries[idx], nil
}

// EditByID applies upd to the entry addressed by full UUID or unique prefix.
func (s *Store) EditByID(idOrPrefix string, upd Update) (*models.TimeEntry, error) {
	idx, err := s.resolve(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err := s.apply(s.entries[idx], upd); err != nil {
		return nil, err
	}
	return s.entries[idx], nil
}

// DeleteByID removes the entry addressed by full UUID or unique prefix.
func (s *Store) DeleteByID(idOrPrefix string) (*models.TimeEntry, error) {
	idx, err := s.resolve(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return s.removeAt(idx), nil
}

// Bests returns one personal best per event in first-seen order.
func (s *Store) Bests(f BestFilter) []*models.TimeEntry {
	return BestList(s.entries, f)
}

// EntriesForEvent returns the entries for one event in insertion order.
// year "" or "all" disables the year filter.
func (s *Store) EntriesForEvent(stroke string, distance int, course models.Course, year string) []*models.TimeEntry {
	return FilterEvent(s.entries, models.NewEventKey(distance, stroke, course), year)
}

// bestIndex returns the index of the fastest entry matching key; ties keep the first.
func (s *Store) bestIndex(key models.EventKey) int {
	best := -1
	var bestSec float64
	for i, e := range s.entries {
		if !key.Matches(e) {
			continue
		}
		sec := e.Seconds()
		if best == -1 || sec < bestSec {
			best, bestSec = i, sec
		}
	}
	return best
}

func (s *Store) resolve(idOrPrefix string) (int, error) {
	idOrPrefix = strings.ToLower(strings.TrimSpace(idOrPrefix))
	if idOrPrefix == "" {
		return -1, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	isFullUUID := len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4

	found := -1
	for i, e := range s.entries {
		id := e.ID.String()
		if isFullUUID {
			if id == idOrPrefix {
				return i, nil
			}
			continue
		}
		if strings.HasPrefix(id, idOrPrefix) {
			if found != -1 {
				return -1, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
			}
			found = i
		}
	}
	if found == -1 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return found, nil
}

// apply validates every provided field before changing any of them.
func (s *Store) apply(e *models.TimeEntry, upd Update) error {
	var newTime, newDate string
	if upd.Time != nil {
		newTime = strings.TrimSpace(*upd.Time)
		if newTime != "" {
			if err := validateTime(newTime); err != nil {
				return err
			}
		}
	}
	if upd.Date != nil {
		newDate = strings.TrimSpace(*upd.Date)
		if newDate != "" {
			if err := validateDate(newDate); err != nil {
				return err
			}
		}
	}
	if upd.Happiness != nil {
		if err := validateHappiness(*upd.Happiness); err != nil {
			return err
		}
	}

	changed := false
	if newTime != "" && newTime != e.Time {
		e.Time = newTime
		changed = true
	}
	if newDate != "" && newDate != e.Date {
		e.Date = newDate
		changed = true
	}
	if upd.Comments != nil && *upd.Comments != e.Comments {
		e.Comments = *upd.Comments
		changed = true
	}
	if upd.Happiness != nil && (e.Happiness == nil || *e.Happiness != *upd.Happiness) {
		h := *upd.Happiness
		e.Happiness = &h
		changed = true
	}
	if changed {
		s.markDirty()
	}
	return nil
}

func (s *Store) removeAt(idx int) *models.TimeEntry {
	e := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.markDirty()
	return e
}

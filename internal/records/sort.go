// ABOUTME: Stable sorting of entries by event, date, happiness or time.
// ABOUTME: SortState tracks the active column and toggles its direction.
package records

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/harperreed/swim/internal/models"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortEvent     SortKey = "event"
	SortDate      SortKey = "date"
	SortHappiness SortKey = "happiness"
	SortTime      SortKey = "time"
)

// AllSortKeys lists the supported keys.
var AllSortKeys = []SortKey{SortEvent, SortDate, SortHappiness, SortTime}

var comparators = map[SortKey]func(a, b *models.TimeEntry) int{
	SortEvent: func(a, b *models.TimeEntry) int {
		return strings.Compare(strings.ToLower(a.EventLabel()), strings.ToLower(b.EventLabel()))
	},
	SortDate: func(a, b *models.TimeEntry) int {
		return strings.Compare(a.Date, b.Date)
	},
	SortHappiness: func(a, b *models.TimeEntry) int {
		return cmp.Compare(a.HappinessValue(), b.HappinessValue())
	},
	SortTime: func(a, b *models.TimeEntry) int {
		return cmp.Compare(a.Seconds(), b.Seconds())
	},
}

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := comparators[k]; !ok {
		return "", fmt.Errorf("unknown sort key: %q (use event, date, happiness or time)", s)
	}
	return k, nil
}

// SortEntries returns a sorted copy of entries. Entries with equal keys keep
// their relative order in both directions. Unknown keys leave the order as is.
func SortEntries(entries []*models.TimeEntry, key SortKey, ascending bool) []*models.TimeEntry {
	out := make([]*models.TimeEntry, len(entries))
	copy(out, entries)

	compare, ok := comparators[key]
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b *models.TimeEntry) int {
		if ascending {
			return compare(a, b)
		}
		return compare(b, a)
	})
	return out
}

// SortState is the active sort column and direction of a table view.
type SortState struct {
	Key       SortKey
	Ascending bool
}

// Toggle flips the direction when key is already active, otherwise selects
// key ascending.
func (s *SortState) Toggle(key SortKey) {
	if s.Key == key {
		s.Ascending = !s.Ascending
		return
	}
	s.Key = key
	s.Ascending = true
}

// Apply sorts entries by the state. A zero state leaves the order unchanged.
func (s SortState) Apply(entries []*models.TimeEntry) []*models.TimeEntry {
	return SortEntries(entries, s.Key, s.Ascending)
}

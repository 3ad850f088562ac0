// ABOUTME: Personal best and event-history queries over a flat entry list.
// ABOUTME: All functions are pure and preserve input order where it matters.
package records

import (
	"sort"
	"strings"

	"github.com/harperreed/swim/internal/models"
)

// AllYears disables the year filter.
const AllYears = "all"

// BestFilter scopes a personal-best query.
type BestFilter struct {
	// Course keeps only entries swum in this course. Empty keeps both.
	Course models.Course
	// Year keeps only entries whose date starts with this year. Empty or "all" keeps every year.
	Year string
	// SplitCourse groups LC and SC separately when Course is empty.
	SplitCourse bool
}

func (f BestFilter) keyFor(e *models.TimeEntry) models.EventKey {
	k := e.Key()
	if f.Course == "" && !f.SplitCourse {
		k.Course = ""
	}
	return k
}

func (f BestFilter) keep(e *models.TimeEntry) bool {
	if f.Course != "" && e.Course != f.Course {
		return false
	}
	return matchesYear(e, f.Year)
}

// BestByEvent returns the fastest entry for each event key seen. Ties go to
// the first entry encountered.
func BestByEvent(entries []*models.TimeEntry, f BestFilter) map[models.EventKey]*models.TimeEntry {
	best := make(map[models.EventKey]*models.TimeEntry)
	for _, e := range BestList(entries, f) {
		best[f.keyFor(e)] = e
	}
	return best
}

// BestList is BestByEvent as a slice ordered by when each event was first seen.
func BestList(entries []*models.TimeEntry, f BestFilter) []*models.TimeEntry {
	index := make(map[models.EventKey]int)
	var out []*models.TimeEntry
	for _, e := range entries {
		if !f.keep(e) {
			continue
		}
		k := f.keyFor(e)
		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, e)
			continue
		}
		if e.Seconds() < out[i].Seconds() {
			out[i] = e
		}
	}
	return out
}

// FilterEvent returns the entries matching key and year, in input order.
func FilterEvent(entries []*models.TimeEntry, key models.EventKey, year string) []*models.TimeEntry {
	var out []*models.TimeEntry
	for _, e := range entries {
		if key.Matches(e) && matchesYear(e, year) {
			out = append(out, e)
		}
	}
	return out
}

// PersonalBest returns the fastest entry, or nil for an empty list.
func PersonalBest(entries []*models.TimeEntry) *models.TimeEntry {
	var pb *models.TimeEntry
	for _, e := range entries {
		if pb == nil || e.Seconds() < pb.Seconds() {
			pb = e
		}
	}
	return pb
}

// Years returns the distinct years present in entries, ascending.
func Years(entries []*models.TimeEntry) []string {
	seen := make(map[string]bool)
	var years []string
	for _, e := range entries {
		y := e.Year()
		if y == "" || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

func matchesYear(e *models.TimeEntry, year string) bool {
	if year == "" || year == AllYears {
		return true
	}
	return strings.HasPrefix(e.Date, year)
}

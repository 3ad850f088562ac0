// ABOUTME: TimeEntry model plus Course, Stroke and EventKey types for swim times.
// ABOUTME: Normalizes free-form stroke input and exposes per-entry derived values.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Course is the pool length category a time was swum in.
type Course string

const (
	CourseLong  Course = "LC"
	CourseShort Course = "SC"
)

// AllCourses returns every valid course.
var AllCourses = []Course{CourseLong, CourseShort}

// ParseCourse accepts LC/SC and a few common spellings (long, lcm, short, scm, scy).
func ParseCourse(s string) (Course, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lc", "lcm", "long", "long course":
		return CourseLong, nil
	case "sc", "scm", "scy", "short", "short course":
		return CourseShort, nil
	}
	return "", fmt.Errorf("unknown course: %q (use LC or SC)", s)
}

// IsValid reports whether c is one of the known courses.
func (c Course) IsValid() bool {
	return c == CourseLong || c == CourseShort
}

// Stroke is a normalized swim stroke. Unrecognized input is kept verbatim.
type Stroke string

const (
	StrokeFreestyle        Stroke = "Freestyle"
	StrokeBackstroke       Stroke = "Backstroke"
	StrokeBreaststroke     Stroke = "Breaststroke"
	StrokeButterfly        Stroke = "Butterfly"
	StrokeIndividualMedley Stroke = "IM"
)

// AllStrokes returns the recognized strokes in display order.
var AllStrokes = []Stroke{
	StrokeFreestyle, StrokeBackstroke, StrokeBreaststroke, StrokeButterfly, StrokeIndividualMedley,
}

// NormalizeStroke maps free-form input onto a Stroke by case-insensitive
// substring match. Order matters: "free", "back", "breast", "fly", then "im".
func NormalizeStroke(s string) Stroke {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "free"):
		return StrokeFreestyle
	case strings.Contains(l, "back"):
		return StrokeBackstroke
	case strings.Contains(l, "breast"):
		return StrokeBreaststroke
	case strings.Contains(l, "fly"):
		return StrokeButterfly
	case strings.Contains(l, "im"), strings.Contains(l, "medley"):
		return StrokeIndividualMedley
	}
	return Stroke(s)
}

// IsKnown reports whether s is one of the recognized strokes.
func (s Stroke) IsKnown() bool {
	for _, k := range AllStrokes {
		if s == k {
			return true
		}
	}
	return false
}

// EventKey identifies a class of swims. An empty Course matches every course.
type EventKey struct {
	Stroke   Stroke `json:"stroke"`
	Distance int    `json:"distance"`
	Course   Course `json:"course,omitempty"`
}

// NewEventKey builds a key with the stroke normalized.
func NewEventKey(distance int, stroke string, course Course) EventKey {
	return EventKey{Stroke: NormalizeStroke(stroke), Distance: distance, Course: course}
}

// Matches reports whether e belongs to this event.
func (k EventKey) Matches(e *TimeEntry) bool {
	if e.Distance != k.Distance || NormalizeStroke(string(e.Stroke)) != NormalizeStroke(string(k.Stroke)) {
		return false
	}
	return k.Course == "" || e.Course == k.Course
}

// String renders the key as "50 Freestyle" or "50 Freestyle (LC)".
func (k EventKey) String() string {
	if k.Course == "" {
		return fmt.Sprintf("%d %s", k.Distance, k.Stroke)
	}
	return fmt.Sprintf("%d %s (%s)", k.Distance, k.Stroke, k.Course)
}

// TimeEntry is one recorded swim performance.
type TimeEntry struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Course    Course    `json:"course" yaml:"course"`
	Stroke    Stroke    `json:"stroke" yaml:"stroke"`
	Distance  int       `json:"distance" yaml:"distance"`
	Time      string    `json:"time" yaml:"time"`
	Date      string    `json:"date" yaml:"date"`
	Comments  string    `json:"comments,omitempty" yaml:"comments,omitempty"`
	Happiness *int      `json:"happiness,omitempty" yaml:"happiness,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewTimeEntry creates an entry with a generated UUID, normalized stroke and today's date.
func NewTimeEntry(course Course, stroke string, distance int, swimTime string) *TimeEntry {
	now := time.Now()
	return &TimeEntry{
		ID:        uuid.New(),
		Course:    course,
		Stroke:    NormalizeStroke(stroke),
		Distance:  distance,
		Time:      strings.TrimSpace(swimTime),
		Date:      now.Format(DateLayout),
		CreatedAt: now,
	}
}

// WithDate sets the swim date (YYYY-MM-DD).
func (e *TimeEntry) WithDate(date string) *TimeEntry {
	e.Date = strings.TrimSpace(date)
	return e
}

// WithComments sets free-text comments.
func (e *TimeEntry) WithComments(comments string) *TimeEntry {
	e.Comments = comments
	return e
}

// WithHappiness sets the 1-10 happiness rating.
func (e *TimeEntry) WithHappiness(h int) *TimeEntry {
	e.Happiness = &h
	return e
}

// Seconds is the canonical duration of Time. Unparseable times are 0.
func (e *TimeEntry) Seconds() float64 {
	return ParseDuration(e.Time)
}

// Key returns the entry's event key including course.
func (e *TimeEntry) Key() EventKey {
	return EventKey{Stroke: NormalizeStroke(string(e.Stroke)), Distance: e.Distance, Course: e.Course}
}

// EventLabel renders "distance stroke", e.g. "100 Butterfly".
func (e *TimeEntry) EventLabel() string {
	return fmt.Sprintf("%d %s", e.Distance, e.Stroke)
}

// HappinessValue returns the rating or 0 when unset.
func (e *TimeEntry) HappinessValue() int {
	if e.Happiness == nil {
		return 0
	}
	return *e.Happiness
}

// Year returns the 4-digit year prefix of Date, or "" if Date is too short.
func (e *TimeEntry) Year() string {
	if len(e.Date) < 4 {
		return ""
	}
	return e.Date[:4]
}

// ParsedDate parses Date. ok is false for missing or malformed dates.
func (e *TimeEntry) ParsedDate() (time.Time, bool) {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ShortID returns the first 8 characters of the UUID.
func (e *TimeEntry) ShortID() string {
	return e.ID.String()[:8]
}

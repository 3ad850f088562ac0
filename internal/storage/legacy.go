// ABOUTME: Parser for the browser-storage dump written by the original web app.
// ABOUTME: Distance and happiness arrive as strings or numbers and are coerced.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/swim/internal/models"
)

// legacyUser is one element of the dumped users array.
type legacyUser struct {
	Name  string        `json:"Name"`
	Times []legacyEntry `json:"times"`
}

type legacyEntry struct {
	Course    string   `json:"course"`
	Stroke    string   `json:"stroke"`
	Distance  looseInt `json:"distance"`
	Time      string   `json:"time"`
	Date      string   `json:"date"`
	Comments  string   `json:"comments"`
	Happiness looseInt `json:"happiness"`
}

// looseInt accepts 5, "5", "" and null. Set is false for blank values.
type looseInt struct {
	Value int
	Set   bool
}

func (n *looseInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		n.Value, n.Set = int(f), true
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	n.Value, n.Set = int(f), true
	return nil
}

// ParseLegacy converts a browser-storage users dump into export data.
// Entries get fresh IDs; unknown courses are kept verbatim so nothing is lost.
func ParseLegacy(data []byte) (*ExportData, error) {
	var dump []legacyUser
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("unmarshal legacy users: %w", err)
	}

	now := time.Now()
	out := &ExportData{
		Version:    ExportVersion,
		ExportedAt: now,
		Tool:       "swim-legacy",
		Users:      make([]*models.User, 0, len(dump)),
	}
	for _, lu := range dump {
		name := strings.TrimSpace(lu.Name)
		if name == "" {
			continue
		}
		u := models.NewUser(name)
		for _, le := range lu.Times {
			course, err := models.ParseCourse(le.Course)
			if err != nil {
				course = models.Course(strings.TrimSpace(le.Course))
			}
			e := models.NewTimeEntry(course, le.Stroke, le.Distance.Value, le.Time).
				WithDate(le.Date).
				WithComments(le.Comments)
			if le.Happiness.Set {
				e.WithHappiness(le.Happiness.Value)
			}
			e.CreatedAt = now
			u.Times = append(u.Times, e)
		}
		out.Users = append(out.Users, u)
	}
	return out, nil
}

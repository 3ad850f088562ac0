// ABOUTME: Export and import functionality for swim data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export.
const ExportVersion = "1.0"

// ExportData represents the full export format for swim data.
type ExportData struct {
	Version    string         `json:"version" yaml:"version"`
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Tool       string         `json:"tool" yaml:"tool"`
	Users      []*models.User `json:"users" yaml:"users"`
}

// ImportSummary counts what an import changed.
type ImportSummary struct {
	Users   int
	Entries int
	Skipped int
}

// collectAll loads every user listed by the repository.
func collectAll(r Repository) (*ExportData, error) {
	names, err := r.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "swim",
		Users:      make([]*models.User, 0, len(names)),
	}
	for _, name := range names {
		u, err := r.LoadUser(name)
		if err != nil {
			return nil, fmt.Errorf("load user %s: %w", name, err)
		}
		data.Users = append(data.Users, u)
	}
	return data, nil
}

// importAll merges exported users into r. Entries whose ID already exists
// for that user are skipped, so importing the same file twice is harmless.
func importAll(r Repository, data *ExportData) (*ImportSummary, error) {
	summary := &ImportSummary{}
	for _, in := range data.Users {
		if in == nil || userKey(in.Name) == "" {
			continue
		}
		in.EnsureIDs()

		u, err := r.LoadUser(in.Name)
		if errors.Is(err, ErrUserNotFound) {
			u = models.NewUser(in.Name)
			if !in.CreatedAt.IsZero() {
				u.CreatedAt = in.CreatedAt
			}
		} else if err != nil {
			return nil, fmt.Errorf("load user %s: %w", in.Name, err)
		}

		seen := make(map[string]bool, len(u.Times))
		for _, e := range u.Times {
			if e != nil {
				seen[e.ID.String()] = true
			}
		}
		for _, e := range in.Times {
			if e == nil {
				continue
			}
			if seen[e.ID.String()] {
				summary.Skipped++
				continue
			}
			seen[e.ID.String()] = true
			u.Times = append(u.Times, e)
			summary.Entries++
		}

		if err := r.SaveUser(u); err != nil {
			return nil, fmt.Errorf("save user %s: %w", in.Name, err)
		}
		summary.Users++
	}
	return summary, nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return collectAll(d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	_, err := importAll(d, data)
	return err
}

// Import merges data into r and reports what changed.
func Import(r Repository, data *ExportData) (*ImportSummary, error) {
	return importAll(r, data)
}

// ExportJSON exports all data as JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	// Group entries by event for a readable file
	yamlData := struct {
		Version    string     `yaml:"version"`
		ExportedAt string     `yaml:"exported_at"`
		Tool       string     `yaml:"tool"`
		Users      []yamlUser `yaml:"users"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Users:      make([]yamlUser, 0, len(data.Users)),
	}

	for _, u := range data.Users {
		yu := yamlUser{Name: u.Name, Events: make(map[string][]yamlEntry)}
		for _, e := range u.Times {
			ye := yamlEntry{
				ID:       e.ShortID(),
				Time:     e.Time,
				Date:     e.Date,
				Comments: e.Comments,
			}
			if e.Happiness != nil {
				ye.Happiness = *e.Happiness
			}
			label := e.Key().String()
			yu.Events[label] = append(yu.Events[label], ye)
		}
		yamlData.Users = append(yamlData.Users, yu)
	}

	return yaml.Marshal(yamlData)
}

type yamlUser struct {
	Name   string                 `yaml:"name"`
	Events map[string][]yamlEntry `yaml:"events"`
}

type yamlEntry struct {
	ID        string `yaml:"id"`
	Time      string `yaml:"time"`
	Date      string `yaml:"date"`
	Happiness int    `yaml:"happiness,omitempty"`
	Comments  string `yaml:"comments,omitempty"`
}

// ExportMarkdown renders personal bests per course and the full log for one
// user, or for every user when name is empty.
func ExportMarkdown(r Repository, name string) (string, error) {
	data, err := r.GetAllData()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Swim Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	found := false
	for _, u := range data.Users {
		if name != "" && userKey(u.Name) != userKey(name) {
			continue
		}
		found = true
		writeUserMarkdown(&sb, u)
	}
	if name != "" && !found {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}

	return sb.String(), nil
}

func writeUserMarkdown(sb *strings.Builder, u *models.User) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", u.Name))

	for _, course := range models.AllCourses {
		bests := records.BestList(u.Times, records.BestFilter{Course: course})
		if len(bests) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("### Personal Bests (%s)\n\n", course))
		sb.WriteString("| Event | Time | Date | Happiness | Comments |\n")
		sb.WriteString("|-------|------|------|-----------|----------|\n")
		for _, e := range records.SortEntries(bests, records.SortEvent, true) {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				e.EventLabel(), e.Time, e.Date, happinessCell(e), markdownCell(e.Comments)))
		}
		sb.WriteString("\n")
	}

	if len(u.Times) == 0 {
		sb.WriteString("_No times recorded._\n\n")
		return
	}

	sb.WriteString("### All Times\n\n")
	sb.WriteString("| Date | Event | Course | Time | Happiness | Comments |\n")
	sb.WriteString("|------|-------|--------|------|-----------|----------|\n")
	for _, e := range records.SortEntries(u.Times, records.SortDate, false) {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			e.Date, e.EventLabel(), e.Course, e.Time, happinessCell(e), markdownCell(e.Comments)))
	}
	sb.WriteString("\n")
}

func happinessCell(e *models.TimeEntry) string {
	if e.Happiness == nil {
		return "-"
	}
	return fmt.Sprintf("%d/10", *e.Happiness)
}

func markdownCell(s string) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "|", `\|`)), " ")
	if s == "" {
		return "-"
	}
	return s
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(r Repository, data []byte) (*ImportSummary, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return importAll(r, &exportData)
}

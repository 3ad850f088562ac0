// ABOUTME: MarkdownStore keeps one markdown file per user under users/.
// ABOUTME: Entries live in YAML frontmatter; the body is a generated personal-best table.

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"gopkg.in/yaml.v3"
)

// MarkdownStore provides file-based storage for swim data using markdown files.
type MarkdownStore struct {
	dataDir string
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

// usersDir returns the path to the users directory.
func (s *MarkdownStore) usersDir() string {
	return filepath.Join(s.dataDir, "users")
}

// userFilePath returns the path for a user's file: users/<slug>.md.
func (s *MarkdownStore) userFilePath(name string) string {
	slug := slugify(name)
	if slug == "" {
		slug = "user"
	}
	return filepath.Join(s.usersDir(), slug+".md")
}

// userFrontmatter holds the YAML frontmatter of a user file.
type userFrontmatter struct {
	Name      string             `yaml:"name"`
	CreatedAt string             `yaml:"created_at"`
	UpdatedAt string             `yaml:"updated_at"`
	Times     []entryFrontmatter `yaml:"times"`
}

// entryFrontmatter holds one time entry in frontmatter.
type entryFrontmatter struct {
	ID        string `yaml:"id"`
	Course    string `yaml:"course"`
	Stroke    string `yaml:"stroke"`
	Distance  int    `yaml:"distance"`
	Time      string `yaml:"time"`
	Date      string `yaml:"date"`
	Comments  string `yaml:"comments,omitempty"`
	Happiness *int   `yaml:"happiness,omitempty"`
	CreatedAt string `yaml:"created_at"`
}

// userFromFrontmatter converts frontmatter to a models.User.
func userFromFrontmatter(fm *userFrontmatter) (*models.User, error) {
	createdAt, err := parseTime(fm.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", fm.CreatedAt, err)
	}
	updatedAt, err := parseTime(fm.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", fm.UpdatedAt, err)
	}

	u := &models.User{
		Name:      fm.Name,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Times:     make([]*models.TimeEntry, 0, len(fm.Times)),
	}
	for _, ef := range fm.Times {
		e := &models.TimeEntry{
			Course:    models.Course(ef.Course),
			Stroke:    models.Stroke(ef.Stroke),
			Distance:  ef.Distance,
			Time:      ef.Time,
			Date:      ef.Date,
			Comments:  ef.Comments,
			Happiness: ef.Happiness,
		}
		if ef.ID != "" {
			id, err := uuid.Parse(ef.ID)
			if err != nil {
				return nil, fmt.Errorf("parse entry ID %q: %w", ef.ID, err)
			}
			e.ID = id
		}
		e.CreatedAt, _ = parseTime(ef.CreatedAt)
		u.Times = append(u.Times, e)
	}
	u.EnsureIDs()
	return u, nil
}

// userToFrontmatter converts a models.User to frontmatter.
func userToFrontmatter(u *models.User) userFrontmatter {
	fm := userFrontmatter{
		Name:      u.Name,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
		Times:     make([]entryFrontmatter, 0, len(u.Times)),
	}
	for _, e := range u.Times {
		fm.Times = append(fm.Times, entryFrontmatter{
			ID:        e.ID.String(),
			Course:    string(e.Course),
			Stroke:    string(e.Stroke),
			Distance:  e.Distance,
			Time:      e.Time,
			Date:      e.Date,
			Comments:  e.Comments,
			Happiness: e.Happiness,
			CreatedAt: formatTime(e.CreatedAt),
		})
	}
	return fm
}

// readUserFile reads a user from a markdown file.
func readUserFile(path string) (*models.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	yamlStr, _ := parseFrontmatter(string(data))
	if yamlStr == "" {
		return nil, fmt.Errorf("no frontmatter in %s", path)
	}

	var fm userFrontmatter
	if err := yaml.Unmarshal([]byte(yamlStr), &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	return userFromFrontmatter(&fm)
}

// renderBestsBody renders the personal-best tables shown below the frontmatter.
func renderBestsBody(u *models.User) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n# %s\n", u.Name))
	for _, course := range models.AllCourses {
		bests := records.BestList(u.Times, records.BestFilter{Course: course})
		if len(bests) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n## Personal Bests (%s)\n\n", course))
		sb.WriteString("| Event | Time | Date |\n")
		sb.WriteString("|-------|------|------|\n")
		for _, e := range records.SortEntries(bests, records.SortEvent, true) {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", e.EventLabel(), e.Time, e.Date))
		}
	}
	return sb.String()
}

// LoadUser reads users/<slug>.md.
func (s *MarkdownStore) LoadUser(name string) (*models.User, error) {
	path := s.userFilePath(name)
	u, err := readUserFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
		}
		return nil, err
	}
	if userKey(u.Name) != userKey(name) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, name)
	}
	return u, nil
}

// SaveUser writes the whole profile atomically.
func (s *MarkdownStore) SaveUser(u *models.User) error {
	if userKey(u.Name) == "" {
		return fmt.Errorf("save user: empty name")
	}
	u.EnsureIDs()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = time.Now()

	content, err := renderFrontmatter(userToFrontmatter(u), renderBestsBody(u))
	if err != nil {
		return fmt.Errorf("render user file: %w", err)
	}
	return atomicWrite(s.userFilePath(u.Name), []byte(content))
}

// ListUsers returns the names stored in users/, sorted case-insensitively.
func (s *MarkdownStore) ListUsers() ([]string, error) {
	entries, err := os.ReadDir(s.usersDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read users directory: %w", err)
	}

	var names []string
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
			continue
		}
		u, err := readUserFile(filepath.Join(s.usersDir(), de.Name()))
		if err != nil {
			// Skip files that are not user profiles
			continue
		}
		names = append(names, u.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		return userKey(names[i]) < userKey(names[j])
	})
	return names, nil
}

// DeleteUser removes a user's file.
func (s *MarkdownStore) DeleteUser(name string) error {
	if _, err := s.LoadUser(name); err != nil {
		return err
	}
	if err := os.Remove(s.userFilePath(name)); err != nil {
		return fmt.Errorf("delete user file: %w", err)
	}
	return nil
}

// GetAllData retrieves all data for export.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	return collectAll(s)
}

// ImportData imports data from an export file.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	_, err := importAll(s, data)
	return err
}

// ABOUTME: Swim configuration management with backend selection and session user.
// ABOUTME: Handles settings, preferences, and storage backend factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/swim/internal/charm"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/storage"
)

// UserEnv overrides the configured session user.
const UserEnv = "SWIM_USER"

// Backends lists the supported storage backends.
var Backends = []string{"sqlite", "markdown", "badger", "charm"}

// Config stores swim tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "markdown", "badger" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts swim.db here, Markdown a users/ folder, Badger a badger/ folder.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/swim.
	DataDir string `json:"data_dir,omitempty"`

	// User is the logged-in swimmer.
	User string `json:"user,omitempty"`

	// DefaultCourse is used by add when --course is omitted. Defaults to LC.
	DefaultCourse string `json:"default_course,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetUser returns the session user: SWIM_USER wins over the saved user.
func (c *Config) GetUser() string {
	if u := strings.TrimSpace(os.Getenv(UserEnv)); u != "" {
		return u
	}
	return strings.TrimSpace(c.User)
}

// GetDefaultCourse returns the configured default course, falling back to LC
// when unset or unrecognized.
func (c *Config) GetDefaultCourse() models.Course {
	if c.DefaultCourse == "" {
		return models.CourseLong
	}
	course, err := models.ParseCourse(c.DefaultCourse)
	if err != nil {
		return models.CourseLong
	}
	return course
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend opens a named backend rooted at dataDir. The charm backend
// ignores dataDir; Charm keeps its own data location.
func OpenBackend(backend, dataDir string) (storage.Repository, error) {
	switch backend {
	case "sqlite":
		dbPath := filepath.Join(dataDir, storage.DBFileName)
		return storage.Open(dbPath)
	case "markdown":
		return storage.NewMarkdownStore(dataDir)
	case "badger":
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case "charm":
		client, err := charm.InitClient()
		if err != nil {
			return nil, fmt.Errorf("initialize charm client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q (use %s)", backend, strings.Join(Backends, ", "))
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "swim", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ABOUTME: Tests for swim configuration management.
// ABOUTME: Covers load, save, defaults, backend selection, session user and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/swim/internal/models"
)

// useConfigHome points XDG_CONFIG_HOME at a fresh temp dir for the test.
func useConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestGetBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"", "sqlite"},
		{"markdown", "markdown"},
		{"badger", "badger"},
		{"charm", "charm"},
	}
	for _, tt := range tests {
		cfg := &Config{Backend: tt.backend}
		if got := cfg.GetBackend(); got != tt.want {
			t.Errorf("GetBackend() with %q = %q, want %q", tt.backend, got, tt.want)
		}
	}
}

func TestGetDataDir(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := (&Config{}).GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
	if got := (&Config{DataDir: "/tmp/swim-test"}).GetDataDir(); got != "/tmp/swim-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/swim-test")
	}
	want := filepath.Join(home, "swim-data")
	if got := (&Config{DataDir: "~/swim-data"}).GetDataDir(); got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/swim", filepath.Join(home, "data/swim")},
		{"data/swim", "data/swim"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetUser(t *testing.T) {
	t.Setenv(UserEnv, "")
	cfg := &Config{User: "  Ann "}
	if got := cfg.GetUser(); got != "Ann" {
		t.Errorf("GetUser() = %q, want %q", got, "Ann")
	}

	t.Setenv(UserEnv, "Ben")
	if got := cfg.GetUser(); got != "Ben" {
		t.Errorf("GetUser() with %s set = %q, want %q", UserEnv, got, "Ben")
	}

	t.Setenv(UserEnv, "")
	if got := (&Config{}).GetUser(); got != "" {
		t.Errorf("GetUser() on empty config = %q, want empty", got)
	}
}

func TestGetDefaultCourse(t *testing.T) {
	tests := []struct {
		in   string
		want models.Course
	}{
		{"", models.CourseLong},
		{"SC", models.CourseShort},
		{"scy", models.CourseShort},
		{"lcm", models.CourseLong},
		{"olympic", models.CourseLong},
	}
	for _, tt := range tests {
		cfg := &Config{DefaultCourse: tt.in}
		if got := cfg.GetDefaultCourse(); got != tt.want {
			t.Errorf("GetDefaultCourse() with %q = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	useConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Backend != "" || cfg.DataDir != "" || cfg.User != "" {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := useConfigHome(t)

	cfg := &Config{
		Backend:       "markdown",
		DataDir:       "/tmp/swim-data",
		User:          "Ann",
		DefaultCourse: "SC",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "swim", "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Loaded %+v, want %+v", loaded, cfg)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{Backend: "sqlite"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "swim")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := useConfigHome(t)

	configDir := filepath.Join(dir, "swim")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	dir := useConfigHome(t)

	want := filepath.Join(dir, "swim", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorageBackends(t *testing.T) {
	tests := []struct {
		backend  string
		wantPath string
	}{
		{"", "swim.db"},
		{"sqlite", "swim.db"},
		{"markdown", ""},
		{"badger", "badger"},
	}

	for _, tt := range tests {
		t.Run("backend="+tt.backend, func(t *testing.T) {
			dir := t.TempDir()
			cfg := &Config{Backend: tt.backend, DataDir: dir}

			repo, err := cfg.OpenStorage()
			if err != nil {
				t.Fatalf("OpenStorage() failed: %v", err)
			}
			defer repo.Close()

			if err := repo.SaveUser(models.NewUser("Ann")); err != nil {
				t.Fatalf("SaveUser through %q backend failed: %v", cfg.GetBackend(), err)
			}
			if tt.wantPath != "" {
				if _, err := os.Stat(filepath.Join(dir, tt.wantPath)); err != nil {
					t.Errorf("Expected %s to be created: %v", tt.wantPath, err)
				}
			}
		})
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{Backend: "invalid", DataDir: t.TempDir()}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for invalid backend")
	}
}

func TestConfigJSON(t *testing.T) {
	cfg := &Config{Backend: "markdown", DataDir: "~/swim-data", User: "Ann"}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}

	empty, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(empty) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(empty))
	}
}

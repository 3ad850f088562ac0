// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against a temp SQLite store and checks what was saved.
package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/config"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"github.com/harperreed/swim/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupTestCLI redirects config and data to temp dirs and logs in as Ann
// through SWIM_USER. It returns the data directory.
func setupTestCLI(t *testing.T) string {
	t.Helper()
	color.NoColor = true

	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.UserEnv, "Ann")

	t.Cleanup(func() {
		if repo != nil {
			repo.Close()
			repo = nil
		}
	})
	return filepath.Join(dataHome, "swim")
}

// resetFlags restores every flag to its default so runs don't leak state.
func resetFlags(c *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCmd(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := runCmd(t, args...); err != nil {
		t.Fatalf("swim %s failed: %v", strings.Join(args, " "), err)
	}
}

// loadUser reads a user straight from the SQLite file.
func loadUser(t *testing.T, dataDir, name string) *models.User {
	t.Helper()
	db, err := storage.Open(filepath.Join(dataDir, "swim.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	u, err := db.LoadUser(name)
	if err != nil {
		t.Fatalf("LoadUser(%s) failed: %v", name, err)
	}
	return u
}

func addSampleTimes(t *testing.T) {
	t.Helper()
	mustRun(t, "add", "50", "free", "28.50", "-d", "2024-01-05")
	mustRun(t, "add", "100", "fly", "1:02.45", "-c", "SC", "-d", "2024-02-10", "-m", "slow turns")
	mustRun(t, "add", "50", "freestyle", "27.90", "-d", "2024-03-01", "-H", "8")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string no truncation", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world this is a long string", 10, "hello w..."},
		{"newlines collapsed", "slow\nturns", 20, "slow turns"},
		{"multibyte", "ééééééééé", 6, "ééé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"LC", 4, "LC  "},
		{"28.50", 5, "28.50"},
		{"1:02.45", 3, "1:02.45"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestParseEventArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		course  string
		want    models.EventKey
		wantErr bool
	}{
		{"any course", []string{"50", "free"}, "", models.EventKey{Distance: 50, Stroke: models.StrokeFreestyle}, false},
		{"short course", []string{"100", "Fly"}, "sc", models.EventKey{Distance: 100, Stroke: models.StrokeButterfly, Course: models.CourseShort}, false},
		{"bad distance", []string{"fifty", "free"}, "", models.EventKey{}, true},
		{"zero distance", []string{"0", "free"}, "", models.EventKey{}, true},
		{"bad course", []string{"50", "free"}, "olympic", models.EventKey{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEventArgs(tt.args, tt.course)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseEventArgs = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFilterEntries(t *testing.T) {
	entries := []*models.TimeEntry{
		models.NewTimeEntry(models.CourseLong, "free", 50, "28.50").WithDate("2023-01-05"),
		models.NewTimeEntry(models.CourseShort, "fly", 100, "1:02.45").WithDate("2024-02-10"),
		models.NewTimeEntry(models.CourseLong, "free", 100, "59.00").WithDate("2024-03-01"),
	}

	tests := []struct {
		name     string
		distance int
		stroke   string
		course   models.Course
		year     string
		want     int
	}{
		{"no filter", 0, "", "", "", 3},
		{"distance", 100, "", "", "", 2},
		{"stroke", 0, "Freestyle", "", "", 2},
		{"course", 0, "", models.CourseShort, "", 1},
		{"year", 0, "", "", "2024", 2},
		{"all years", 0, "", "", records.AllYears, 3},
		{"combined", 100, "free", models.CourseLong, "2024", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterEntries(entries, tt.distance, tt.stroke, tt.course, tt.year)
			if len(got) != tt.want {
				t.Errorf("filterEntries = %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRenderChart(t *testing.T) {
	color.NoColor = true
	s := records.Series{
		Title:     "Time (mm:ss)",
		Labels:    []string{"50 Freestyle", "100 Butterfly"},
		Values:    []float64{31.2, 62.45},
		Format:    models.FormatSeconds,
		Highlight: -1,
	}

	var buf bytes.Buffer
	renderChart(&buf, records.ChartTime, s)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title plus 2 bars, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Time (mm:ss)" {
		t.Errorf("title = %q", lines[0])
	}
	if n := strings.Count(lines[2], "█"); n != chartWidth {
		t.Errorf("longest bar = %d blocks, want %d", n, chartWidth)
	}
	if !strings.HasSuffix(lines[2], "1:02.45") {
		t.Errorf("expected formatted value on bar, got %q", lines[2])
	}

	buf.Reset()
	dates := records.Series{
		Title:     "Date Achieved",
		Labels:    []string{"a", "b"},
		Values:    []float64{1700000000, 1710000000},
		Format:    func(v float64) string { return "" },
		Highlight: 0,
	}
	renderChart(&buf, records.ChartDate, dates)
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	if n := strings.Count(lines[1], "█"); n != 1 {
		t.Errorf("earliest date bar = %d blocks, want 1", n)
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "swim" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "swim")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	for _, name := range []string{"user", "backend", "data-dir", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"add", "list", "best", "event", "edit", "delete", "chart", "export", "import",
		"login", "logout", "whoami", "users", "migrate", "mcp", "sync", "install-skill",
	}
	have := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("Expected %s command to be registered", name)
		}
	}
}

func TestAddCmdWithDB(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "add", "50", "free", "28.50", "-d", "2024-01-05")

	u := loadUser(t, dataDir, "Ann")
	if len(u.Times) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(u.Times))
	}
	e := u.Times[0]
	if e.Stroke != models.StrokeFreestyle || e.Course != models.CourseLong || e.Distance != 50 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Time != "28.50" || e.Date != "2024-01-05" {
		t.Errorf("unexpected time/date: %s %s", e.Time, e.Date)
	}
	if e.Happiness != nil {
		t.Errorf("Expected no happiness, got %d", *e.Happiness)
	}
}

func TestAddCmdWithFlags(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "add", "100", "fly", "1:02.45", "--course", "SC", "--comments", "tired", "--happiness", "7")

	e := loadUser(t, dataDir, "Ann").Times[0]
	if e.Course != models.CourseShort {
		t.Errorf("Expected SC, got %s", e.Course)
	}
	if e.Comments != "tired" || e.HappinessValue() != 7 {
		t.Errorf("unexpected comments/happiness: %q %d", e.Comments, e.HappinessValue())
	}
	if e.Date == "" {
		t.Error("Expected default date")
	}
}

func TestAddCmdDefaultCourseFromConfig(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := (&config.Config{DefaultCourse: "SC"}).Save(); err != nil {
		t.Fatalf("Save config failed: %v", err)
	}
	mustRun(t, "add", "50", "back", "31.00")

	if c := loadUser(t, dataDir, "Ann").Times[0].Course; c != models.CourseShort {
		t.Errorf("Expected default course SC, got %s", c)
	}
}

func TestAddCmdInvalid(t *testing.T) {
	setupTestCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"invalid time", []string{"add", "50", "free", "abc"}},
		{"invalid distance", []string{"add", "fifty", "free", "28.00"}},
		{"negative distance", []string{"add", "-50", "free", "28.00"}},
		{"invalid course", []string{"add", "50", "free", "28.00", "-c", "olympic"}},
		{"invalid date", []string{"add", "50", "free", "28.00", "-d", "05/01/2024"}},
		{"happiness out of range", []string{"add", "50", "free", "28.00", "-H", "0"}},
		{"missing args", []string{"add", "50", "free"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runCmd(t, tt.args...); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestAddCmdNoUser(t *testing.T) {
	setupTestCLI(t)
	t.Setenv(config.UserEnv, "")

	err := runCmd(t, "add", "50", "free", "28.00")
	if !errors.Is(err, errNoUser) {
		t.Errorf("Expected errNoUser, got %v", err)
	}

	if err := runCmd(t, "add", "50", "free", "28.00", "--user", "Ben"); err != nil {
		t.Errorf("--user should work without a login: %v", err)
	}
}

func TestReadCommands(t *testing.T) {
	setupTestCLI(t)
	addSampleTimes(t)

	for _, args := range [][]string{
		{"list"},
		{"list", "--sort", "time", "--desc"},
		{"list", "--stroke", "fly", "-c", "SC", "-y", "2024", "-n", "1"},
		{"best"},
		{"best", "--combined", "--sort", "time"},
		{"best", "-c", "LC", "-y", "2023"},
		{"event", "50", "free"},
		{"event", "50", "free", "-c", "LC", "--sort", "time"},
		{"event", "400", "im"},
		{"chart"},
		{"chart", "happiness"},
		{"chart", "date", "-c", "SC"},
		{"chart", "time", "--distance", "50", "--stroke", "free"},
		{"whoami"},
		{"users"},
	} {
		if err := runCmd(t, args...); err != nil {
			t.Errorf("swim %s failed: %v", strings.Join(args, " "), err)
		}
	}
}

func TestReadCommandErrors(t *testing.T) {
	setupTestCLI(t)

	for _, args := range [][]string{
		{"list", "--sort", "speed"},
		{"best", "-c", "XX"},
		{"event", "fifty", "free"},
		{"chart", "pie"},
	} {
		if err := runCmd(t, args...); err == nil {
			t.Errorf("swim %s: expected error", strings.Join(args, " "))
		}
	}
}

func TestEditCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	addSampleTimes(t)

	mustRun(t, "edit", "50", "free", "--time", "27.50", "-m", "new goggles")

	var edited *models.TimeEntry
	for _, e := range loadUser(t, dataDir, "Ann").Times {
		if e.Date == "2024-03-01" {
			edited = e
		}
	}
	if edited == nil || edited.Time != "27.50" || edited.Comments != "new goggles" {
		t.Errorf("Expected the 50 free best to be edited, got %+v", edited)
	}
	if edited.HappinessValue() != 8 {
		t.Errorf("Happiness should be unchanged, got %d", edited.HappinessValue())
	}
}

func TestEditCmdByID(t *testing.T) {
	dataDir := setupTestCLI(t)
	addSampleTimes(t)

	target := loadUser(t, dataDir, "Ann").Times[0]
	mustRun(t, "edit", "--id", target.ShortID(), "--date", "2024-01-06")

	got := loadUser(t, dataDir, "Ann").Times[0]
	if got.ID != target.ID || got.Date != "2024-01-06" {
		t.Errorf("Expected date 2024-01-06 on %s, got %+v", target.ShortID(), got)
	}
}

func TestEditCmdErrors(t *testing.T) {
	dataDir := setupTestCLI(t)
	addSampleTimes(t)

	if err := runCmd(t, "edit", "50", "free"); err == nil {
		t.Error("Expected error when nothing to change")
	}
	err := runCmd(t, "edit", "50", "free", "--time", "fast")
	if !records.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if err := runCmd(t, "edit", "--id", "zzzzzzzz", "--time", "30.00"); !errors.Is(err, records.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := runCmd(t, "edit", "800", "free", "--time", "9:00.00"); err != nil {
		t.Errorf("Editing a missing event should not error: %v", err)
	}

	for _, e := range loadUser(t, dataDir, "Ann").Times {
		if e.Time == "fast" || e.Time == "30.00" {
			t.Errorf("Invalid edit was saved: %+v", e)
		}
	}
}

func TestDeleteCmdBest(t *testing.T) {
	dataDir := setupTestCLI(t)
	addSampleTimes(t)

	mustRun(t, "delete", "50", "free")

	u := loadUser(t, dataDir, "Ann")
	if len(u.Times) != 2 {
		t.Fatalf("Expected 2 entries left, got %d", len(u.Times))
	}
	for _, e := range u.Times {
		if e.Time == "27.90" {
			t.Error("Expected the 27.90 best to be deleted")
		}
	}

	if err := runCmd(t, "delete", "50", "free", "-c", "SC"); err != nil {
		t.Errorf("Deleting a missing event should not error: %v", err)
	}
}

func TestDeleteCmdByID(t *testing.T) {
	dataDir := setupTestCLI(t)
	addSampleTimes(t)

	target := loadUser(t, dataDir, "Ann").Times[1]
	mustRun(t, "rm", target.ShortID())

	for _, e := range loadUser(t, dataDir, "Ann").Times {
		if e.ID == target.ID {
			t.Error("Entry still present after delete")
		}
	}

	if err := runCmd(t, "delete", target.ShortID()); !errors.Is(err, records.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestExportCmd(t *testing.T) {
	setupTestCLI(t)
	addSampleTimes(t)
	dir := t.TempDir()

	tests := []struct {
		args []string
		file string
		want string
	}{
		{[]string{"export", "json"}, "out.json", `"tool": "swim"`},
		{[]string{"export", "yaml"}, "out.yaml", "Freestyle (LC)"},
		{[]string{"export", "markdown"}, "out.md", "## Ann"},
		{[]string{"export", "csv"}, "bests.csv", "Event,Time,Date,Happiness,Comments"},
		{[]string{"export", "csv", "--distance", "50", "--stroke", "free"}, "history.csv", "Distance,Stroke,Course,Time,Date,Comments,Happiness"},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.file)
		mustRun(t, append(tt.args, "-o", path)...)

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("%s not written: %v", tt.file, err)
		}
		if !strings.Contains(string(data), tt.want) {
			t.Errorf("%s: expected %q in output:\n%s", tt.file, tt.want, data)
		}
	}

	if err := runCmd(t, "export", "pdf"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestImportCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	addSampleTimes(t)

	backup := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "export", "json", "-o", backup)

	// Re-importing the same backup changes nothing
	mustRun(t, "import", backup)
	if n := len(loadUser(t, dataDir, "Ann").Times); n != 3 {
		t.Errorf("Expected 3 entries after re-import, got %d", n)
	}

	if err := runCmd(t, "import", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestImportCmdLegacy(t *testing.T) {
	dataDir := setupTestCLI(t)

	legacy := filepath.Join(t.TempDir(), "swimUsers.json")
	dump := `[{"Name":"Ben","times":[{"course":"LC","stroke":"Freestyle","distance":"50","time":"30.10","date":"2023-06-01","comments":"","happiness":"7"}]}]`
	if err := os.WriteFile(legacy, []byte(dump), 0600); err != nil {
		t.Fatal(err)
	}

	mustRun(t, "import", "--legacy", legacy)

	u := loadUser(t, dataDir, "Ben")
	if len(u.Times) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(u.Times))
	}
	if e := u.Times[0]; e.Distance != 50 || e.HappinessValue() != 7 {
		t.Errorf("unexpected legacy entry: %+v", e)
	}
}

func TestLoginLogout(t *testing.T) {
	dataDir := setupTestCLI(t)
	t.Setenv(config.UserEnv, "")

	mustRun(t, "login", "Ben")

	loaded, err := config.Load()
	if err != nil {
		t.Fatalf("Load config failed: %v", err)
	}
	if loaded.User != "Ben" {
		t.Errorf("Expected saved user Ben, got %q", loaded.User)
	}
	if u := loadUser(t, dataDir, "ben"); u.Name != "Ben" {
		t.Errorf("Expected profile Ben, got %q", u.Name)
	}

	mustRun(t, "add", "50", "free", "30.00")
	mustRun(t, "login", "ben")
	if n := len(loadUser(t, dataDir, "Ben").Times); n != 1 {
		t.Errorf("Login again should keep times, got %d", n)
	}

	mustRun(t, "logout")
	loaded, err = config.Load()
	if err != nil {
		t.Fatalf("Load config failed: %v", err)
	}
	if loaded.User != "" {
		t.Errorf("Expected no user after logout, got %q", loaded.User)
	}
	if err := runCmd(t, "whoami"); !errors.Is(err, errNoUser) {
		t.Errorf("Expected errNoUser after logout, got %v", err)
	}
}

func TestMigrateCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	addSampleTimes(t)

	if err := runCmd(t, "migrate", "--to", "markdown"); err == nil {
		t.Error("Expected error without --from")
	}

	mustRun(t, "migrate", "--from", "sqlite", "--to", "markdown", "--dry-run")
	if _, err := os.Stat(filepath.Join(dataDir, "users")); !os.IsNotExist(err) {
		t.Error("Dry run should not create markdown files")
	}

	mustRun(t, "migrate", "--from", "sqlite", "--to", "markdown")

	md, err := storage.NewMarkdownStore(dataDir)
	if err != nil {
		t.Fatalf("NewMarkdownStore failed: %v", err)
	}
	u, err := md.LoadUser("Ann")
	if err != nil {
		t.Fatalf("LoadUser from markdown failed: %v", err)
	}
	if len(u.Times) != 3 {
		t.Errorf("Expected 3 migrated entries, got %d", len(u.Times))
	}

	// The markdown backend now serves the same commands
	mustRun(t, "--backend", "markdown", "add", "200", "im", "2:31.07", "-d", "2024-04-01")
	u, err = md.LoadUser("Ann")
	if err != nil {
		t.Fatalf("LoadUser from markdown failed: %v", err)
	}
	if len(u.Times) != 4 {
		t.Errorf("Expected 4 entries in markdown store, got %d", len(u.Times))
	}
}

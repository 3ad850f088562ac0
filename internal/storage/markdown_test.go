// ABOUTME: Tests for the markdown file backend and its frontmatter helpers.
// ABOUTME: Checks file layout, generated body and tolerance of stray files.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/swim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownFileLayout(t *testing.T) {
	store := setupTestMarkdownStore(t)
	require.NoError(t, store.SaveUser(sampleUser("Ann Smith")))

	path := filepath.Join(store.dataDir, "users", "ann-smith.md")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "---\n"))
	assert.Contains(t, content, "name: Ann Smith")
	assert.Contains(t, content, "# Ann Smith")
	assert.Contains(t, content, "## Personal Bests (LC)")
	assert.Contains(t, content, "| 50 Freestyle | 27.90 | 2024-03-01 |")
	assert.Contains(t, content, "## Personal Bests (SC)")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestMarkdownIgnoresStrayFiles(t *testing.T) {
	store := setupTestMarkdownStore(t)
	require.NoError(t, store.SaveUser(models.NewUser("Ann")))

	usersDir := filepath.Join(store.dataDir, "users")
	require.NoError(t, os.WriteFile(filepath.Join(usersDir, "notes.md"), []byte("just notes\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(usersDir, "readme.txt"), []byte("x"), 0600))

	names, err := store.ListUsers()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, names)
}

func TestMarkdownHandEditedEntryWithoutID(t *testing.T) {
	store := setupTestMarkdownStore(t)
	doc := `---
name: Gus
times:
  - course: LC
    stroke: breast
    distance: 100
    time: "1:20.00"
    date: "2024-06-01"
---
`
	usersDir := filepath.Join(store.dataDir, "users")
	require.NoError(t, os.MkdirAll(usersDir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(usersDir, "gus.md"), []byte(doc), 0600))

	u, err := store.LoadUser("gus")
	require.NoError(t, err)
	require.Len(t, u.Times, 1)
	assert.Equal(t, models.StrokeBreaststroke, u.Times[0].Stroke)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", u.Times[0].ID.String())
}

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantYAML string
		wantBody string
	}{
		{"with body", "---\nname: x\n---\nhello\n", "name: x\n", "hello\n"},
		{"empty body", "---\nname: x\n---\n", "name: x\n", ""},
		{"no frontmatter", "hello\n", "", "hello\n"},
		{"unterminated", "---\nname: x\n", "", "---\nname: x\n"},
		{"bom", "\ufeff---\nname: x\n---\n", "name: x\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, body := parseFrontmatter(tt.doc)
			assert.Equal(t, tt.wantYAML, y)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestRenderFrontmatterRoundTrip(t *testing.T) {
	out, err := renderFrontmatter(map[string]string{"name": "x"}, "body\n")
	require.NoError(t, err)
	y, body := parseFrontmatter(out)
	assert.Equal(t, "name: x\n", y)
	assert.Equal(t, "body\n", body)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Ann Smith":     "ann-smith",
		"  O'Brien  ":   "o-brien",
		"José":          "josé",
		"a--b__c":       "a-b-c",
		"!!!":           "",
		"Swimmer 2024!": "swimmer-2024",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), "slugify(%q)", in)
	}
}

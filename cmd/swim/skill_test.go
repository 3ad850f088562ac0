// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation, and file content.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	for _, marker := range []string{"name: swim", "swim add", "swim best", "swim event"} {
		if !strings.Contains(string(content), marker) {
			t.Errorf("Expected embedded skill to contain %q", marker)
		}
	}
	if !strings.HasPrefix(string(content), "---\n") {
		t.Error("Expected skill to start with YAML frontmatter")
	}
}

func TestSkillInstallWritesFile(t *testing.T) {
	home := t.TempDir()
	skillSkipConfirm = true
	t.Cleanup(func() { skillSkipConfirm = false })

	if err := installSkill(home, strings.NewReader("")); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	path := filepath.Join(home, ".claude", "skills", "swim", "SKILL.md")
	if skillPath(home) != path {
		t.Errorf("skillPath = %q, want %q", skillPath(home), path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	want, _ := skillFS.ReadFile("skill/SKILL.md")
	if string(got) != string(want) {
		t.Error("Installed skill does not match embedded content")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Skill file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestSkillInstallOverwritesExistingFile(t *testing.T) {
	home := t.TempDir()
	skillSkipConfirm = true
	t.Cleanup(func() { skillSkipConfirm = false })

	path := skillPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("old content"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := installSkill(home, strings.NewReader("")); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	if strings.Contains(string(got), "old content") {
		t.Error("Expected existing skill file to be overwritten")
	}
}

func TestSkillInstallConfirmation(t *testing.T) {
	tests := []struct {
		answer    string
		installed bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		home := t.TempDir()
		if err := installSkill(home, strings.NewReader(tt.answer)); err != nil {
			t.Fatalf("installSkill(%q) failed: %v", tt.answer, err)
		}
		_, err := os.Stat(skillPath(home))
		if installed := err == nil; installed != tt.installed {
			t.Errorf("answer %q: installed = %v, want %v", tt.answer, installed, tt.installed)
		}
	}
}

func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag on install-skill")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand y, got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default false, got %q", flag.DefValue)
	}
}

// ABOUTME: CLI commands for exporting and importing swim data.
// ABOUTME: Supports JSON, YAML, Markdown and CSV export plus JSON and legacy import.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/records"
	"github.com/harperreed/swim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput   string
	exportDistance int
	exportStroke   string
	exportCourse   string
	exportYear     string
	importLegacy   bool
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export swim data",
	Long: `Export swim data in various formats.

FORMATS:

  json       Full JSON export of every user (suitable for backup/restore)
  yaml       YAML export grouped by event (human-readable)
  markdown   Personal best tables and full log (current user, or everyone
             when nobody is logged in)
  csv        Personal bests of the current user, or one event's history
             with --distance and --stroke

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  swim export json -o backup.json
  swim export yaml
  swim export markdown > times.md
  swim export csv -c LC --year 2024
  swim export csv --distance 100 --stroke fly -o fly.csv`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "csv"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown":
			name, userErr := currentUser()
			if userErr != nil {
				name = ""
			}
			var md string
			md, err = storage.ExportMarkdown(repo, name)
			data = []byte(md)
		case "csv":
			data, err = exportCSV()
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or csv)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Print(string(data))
		}

		return nil
	},
}

func exportCSV() ([]byte, error) {
	course, err := parseCourseFlag(exportCourse)
	if err != nil {
		return nil, err
	}
	s, err := openSession()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if exportDistance > 0 && exportStroke != "" {
		entries := s.store.EntriesForEvent(exportStroke, exportDistance, course, exportYear)
		entries = records.SortEntries(entries, records.SortDate, true)
		err = records.WriteHistoryCSV(&buf, entries)
	} else {
		bests := s.store.Bests(records.BestFilter{Course: course, Year: exportYear})
		err = records.WriteBestsCSV(&buf, bests)
	}
	return buf.Bytes(), err
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import swim data from JSON",
	Long: `Import swim data from a JSON backup file.

Entries are merged by ID: times already present are skipped, so importing
the same file twice is harmless. Users that don't exist yet are created.

Use --legacy to read a dump of the old browser tracker's saved users
(a JSON array of {"Name": ..., "times": [...]}).

EXAMPLES:

  swim import backup.json
  swim import --legacy swimUsers.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var summary *storage.ImportSummary
		if importLegacy {
			legacy, err := storage.ParseLegacy(data)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			summary, err = storage.Import(repo, legacy)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
		} else {
			summary, err = storage.ImportJSON(repo, data)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
		}

		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  Users: %d\n", summary.Users)
		fmt.Printf("  Times: %d\n", summary.Entries)
		if summary.Skipped > 0 {
			fmt.Printf("  Skipped (already present): %d\n", summary.Skipped)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().IntVar(&exportDistance, "distance", 0, "csv: export one event's history (distance)")
	exportCmd.Flags().StringVarP(&exportStroke, "stroke", "s", "", "csv: export one event's history (stroke)")
	exportCmd.Flags().StringVarP(&exportCourse, "course", "c", "", "csv: only this course (LC or SC)")
	exportCmd.Flags().StringVarP(&exportYear, "year", "y", "", "csv: only times from this year")
	importCmd.Flags().BoolVar(&importLegacy, "legacy", false, "read the old browser tracker format")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

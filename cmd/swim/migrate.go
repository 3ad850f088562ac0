// ABOUTME: CLI command for migrating swim data between storage backends.
// ABOUTME: Copies every user from one backend to another.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/config"
	"github.com/harperreed/swim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateToDir  string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy swim data between storage backends",
	Long: `Copy every user from one storage backend to another.

Backends: sqlite, markdown, badger, charm. Both backends use the configured
data directory unless --to-dir points the destination elsewhere.

IMPORTANT:

  - A user that already exists in the destination is replaced whole
  - Run with --dry-run first to see what would be copied
  - Afterwards set "backend" in ~/.config/swim/config.json to switch

USAGE:

  swim migrate --from sqlite --to markdown --dry-run
  swim migrate --from sqlite --to markdown
  swim migrate --from markdown --to sqlite --to-dir ~/swim-backup`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == "" || migrateTo == "" {
			return errors.New("both --from and --to are required")
		}
		dstDir := cfg.GetDataDir()
		if migrateToDir != "" {
			dstDir = config.ExpandPath(migrateToDir)
		}
		if migrateFrom == migrateTo && dstDir == cfg.GetDataDir() {
			return errors.New("source and destination are the same")
		}

		src, err := config.OpenBackend(migrateFrom, cfg.GetDataDir())
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			data, err := src.GetAllData()
			if err != nil {
				return fmt.Errorf("failed to read source: %w", err)
			}
			for _, u := range data.Users {
				fmt.Printf("  %s: %d times\n", u.Name, len(u.Times))
			}
			fmt.Printf("\nWould copy %d users from %s to %s\n", len(data.Users), migrateFrom, migrateTo)
			return nil
		}

		if nonEmpty, _ := storage.IsDirNonEmpty(dstDir); nonEmpty && migrateTo != "charm" {
			color.Yellow("⚠ %s already has data; users present in both are replaced", dstDir)
		}

		dst, err := config.OpenBackend(migrateTo, dstDir)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", migrateFrom, migrateTo)
		fmt.Printf("  Users: %d\n", summary.Users)
		fmt.Printf("  Times: %d\n", summary.Entries)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-dir", "", "destination data directory (default: configured data dir)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}

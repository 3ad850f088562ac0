// ABOUTME: Root Cobra command for swim CLI.
// ABOUTME: Loads config, sets up logging, and opens storage via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/swim/internal/config"
	"github.com/harperreed/swim/internal/storage"
	"github.com/spf13/cobra"
)

// skipStorage marks commands that run without an open repository.
const skipStorage = "skip-storage"

var (
	cfg    *config.Config
	repo   storage.Repository
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "swim", Level: log.WarnLevel})

	flagUser    string
	flagBackend string
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "swim",
	Short: "Personal best tracker for swim times",
	Long: `Swim is a CLI tool for logging swim times and tracking personal bests.

Every time belongs to an event: a distance, a stroke and a course
(LC = long course 50m pool, SC = short course 25m pool). Your personal
best for an event is the fastest time you have recorded for it.

QUICK START:

  $ swim login Ann                          # Pick who you are
  $ swim add 50 free 28.32                  # Log a 50 freestyle (default course)
  $ swim add 100 fly 1:02.45 -c SC -m "slow turns" -H 6
  $ swim best                               # Personal best per event
  $ swim event 50 free                      # Every 50 free with trend
  $ swim chart time                         # Bar chart of your bests

TIME FORMATS:

  28.32       seconds with hundredths
  1:02.45     minutes:seconds.hundredths
  1.02.45     hours.minutes.seconds

STORAGE:

  Times are stored in SQLite at ~/.local/share/swim/swim.db by default.
  Set "backend" in ~/.config/swim/config.json to markdown, badger or charm
  (Charm Cloud sync), or pass --backend.

MCP INTEGRATION:

  Run 'swim mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "swim": { "command": "swim", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A failed RunE skips PersistentPostRunE
		if repo != nil {
			_ = repo.Close()
			repo = nil
		}
		level := log.WarnLevel
		if flagVerbose {
			level = log.DebugLevel
		}
		logger.SetLevel(level)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagBackend != "" {
			cfg.Backend = flagBackend
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}

		// Skip storage for commands that don't need it
		if cmd.Name() == "help" || cmd.Annotations[skipStorage] == "true" {
			return nil
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		logger.Debug("opened storage", "backend", cfg.GetBackend(), "dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "swimmer to act as (default: logged-in user)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite, markdown, badger or charm")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: ~/.local/share/swim)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to stderr")
}

// ABOUTME: CLI commands for the session user.
// ABOUTME: login, logout, whoami and users manage who the times belong to.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/config"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/storage"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <name>",
	Short: "Log in as a swimmer",
	Long: `Set the current swimmer. Every other command acts on this user's times.

A new name creates an empty profile. The login is saved in the config file;
SWIM_USER or --user override it for a single run.

EXAMPLES:

  swim login Ann
  swim login "Ann Smith"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return errors.New("name cannot be empty")
		}

		u, err := repo.LoadUser(name)
		created := false
		if errors.Is(err, storage.ErrUserNotFound) {
			u = models.NewUser(name)
			if err := repo.SaveUser(u); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			created = true
		} else if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		cfg.User = u.Name
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		if created {
			color.Green("✓ Created and logged in as %s", u.Name)
		} else {
			color.Green("✓ Logged in as %s", u.Name)
			fmt.Printf("  %d times recorded\n", len(u.Times))
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "Log out the current swimmer",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.User == "" {
			fmt.Println("Not logged in.")
			return nil
		}
		name := cfg.User
		cfg.User = ""
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Yellow("Logged out %s", name)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:         "whoami",
	Short:       "Show the current swimmer",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := currentUser()
		if err != nil {
			return err
		}
		fmt.Println(name)
		if flagUser == "" && cfg.User != name {
			fmt.Println(color.New(color.Faint).Sprintf("  (from %s)", config.UserEnv))
		}
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List stored swimmers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := repo.ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		if len(names) == 0 {
			fmt.Println("No users yet. Run 'swim login <name>' to create one.")
			return nil
		}

		current, _ := currentUser()
		for _, n := range names {
			if strings.EqualFold(n, current) {
				color.Green("* %s", n)
			} else {
				fmt.Printf("  %s\n", n)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(usersCmd)
}

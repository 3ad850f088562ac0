// ABOUTME: CLI command for deleting swim times.
// ABOUTME: Deletes by ID prefix, or an event's current personal best.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/models"
	"github.com/spf13/cobra"
)

var deleteCourse string

var deleteCmd = &cobra.Command{
	Use:     "delete <id> | <distance> <stroke>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a swim time",
	Long: `Delete one swim time.

With one argument, delete the entry with that ID or ID prefix (the first
column of 'swim list'). With a distance and stroke, delete the current
personal best of that event; the next fastest time becomes the best.

EXAMPLES:

  swim delete abc12345          # Delete by 8-char prefix
  swim rm abc1                  # Short prefix (if unique)
  swim delete 50 free -c LC     # Delete the 50 free long course best

CAUTION:

  This permanently deletes the time. There is no undo.
  If the prefix matches multiple entries, an error is returned.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		var removed *models.TimeEntry
		if len(args) == 1 {
			removed, err = s.store.DeleteByID(args[0])
			if err != nil {
				return err
			}
		} else {
			key, err := parseEventArgs(args, deleteCourse)
			if err != nil {
				return err
			}
			removed = s.store.Delete(key)
			if removed == nil {
				color.Yellow("No times recorded for %s", key.String())
				return nil
			}
		}

		if err := s.save(); err != nil {
			return err
		}

		color.Yellow("✗ Deleted %s %s", removed.Key().String(), removed.Time)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(removed.ShortID()),
			removed.Date)
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVarP(&deleteCourse, "course", "c", "", "event course (LC or SC)")
	rootCmd.AddCommand(deleteCmd)
}

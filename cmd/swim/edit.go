// ABOUTME: CLI command for editing a swim time.
// ABOUTME: Edits an event's personal best, or one entry by ID prefix.
package main

import (
	"errors"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"github.com/spf13/cobra"
)

var (
	editID        string
	editCourse    string
	editTime      string
	editDate      string
	editComments  string
	editHappiness int
)

var editCmd = &cobra.Command{
	Use:   "edit [<distance> <stroke>]",
	Short: "Edit a swim time",
	Long: `Edit the personal best of an event, or any entry by ID.

Only the flags you pass are changed. An invalid value leaves the entry
untouched. Without --course the fastest time across both courses is edited.

EXAMPLES:

  swim edit 50 free --time 27.85            # Fix your 50 free best
  swim edit 100 fly -c SC -m "new goggles"  # Add a comment
  swim edit --id abc12345 --date 2024-05-01 # Edit one row from 'swim list'`,
	Args: func(cmd *cobra.Command, args []string) error {
		if editID != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		upd := records.Update{}
		if cmd.Flags().Changed("time") {
			upd.Time = &editTime
		}
		if cmd.Flags().Changed("date") {
			upd.Date = &editDate
		}
		if cmd.Flags().Changed("comments") {
			upd.Comments = &editComments
		}
		if cmd.Flags().Changed("happiness") {
			upd.Happiness = &editHappiness
		}
		if upd.IsEmpty() {
			return errors.New("nothing to change: pass --time, --date, --comments or --happiness")
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		var edited *models.TimeEntry
		if editID != "" {
			edited, err = s.store.EditByID(editID, upd)
			if err != nil {
				return err
			}
		} else {
			key, err := parseEventArgs(args, editCourse)
			if err != nil {
				return err
			}
			edited, err = s.store.Edit(key, upd)
			if err != nil {
				return err
			}
			if edited == nil {
				color.Yellow("No times recorded for %s", key.String())
				return nil
			}
		}

		if err := s.save(); err != nil {
			return err
		}

		color.Green("✓ Updated %s", edited.Key().String())
		printEntry(edited, false)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editID, "id", "", "edit the entry with this ID or ID prefix")
	editCmd.Flags().StringVarP(&editCourse, "course", "c", "", "event course (LC or SC)")
	editCmd.Flags().StringVarP(&editTime, "time", "t", "", "new time")
	editCmd.Flags().StringVarP(&editDate, "date", "d", "", "new date (YYYY-MM-DD)")
	editCmd.Flags().StringVarP(&editComments, "comments", "m", "", "new comments (empty clears)")
	editCmd.Flags().IntVarP(&editHappiness, "happiness", "H", 0, "new happiness, 1-10")
	rootCmd.AddCommand(editCmd)
}

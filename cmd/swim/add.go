// ABOUTME: CLI command for adding swim times.
// ABOUTME: Validates the time, reports a new personal best and prints a training tip.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"github.com/spf13/cobra"
)

var (
	addCourse    string
	addDate      string
	addComments  string
	addHappiness int
)

var addCmd = &cobra.Command{
	Use:     "add <distance> <stroke> <time>",
	Aliases: []string{"a"},
	Short:   "Add a swim time",
	Long: `Add a swim time for an event.

Strokes are matched loosely: "free", "freestyle" and "Free" all mean
Freestyle; likewise back, breast, fly and IM (or medley).

Examples:
  swim add 50 free 28.32
  swim add 100 fly 1:02.45 --course SC --date 2024-02-10
  swim add 400 im 5.01.30 -m "strong finish" -H 8`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		distance, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid distance: %s", args[0])
		}

		course := cfg.GetDefaultCourse()
		if addCourse != "" {
			course, err = models.ParseCourse(addCourse)
			if err != nil {
				return err
			}
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		e := models.NewTimeEntry(course, args[1], distance, args[2]).WithComments(addComments)
		if addDate != "" {
			e.WithDate(addDate)
		}
		if cmd.Flags().Changed("happiness") {
			e.WithHappiness(addHappiness)
		}

		if err := s.store.Add(e); err != nil {
			return err
		}
		if err := s.save(); err != nil {
			return err
		}

		color.Green("✓ Added %s %s", e.Key().String(), e.Time)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(e.ShortID()),
			e.Date)

		history := s.store.EntriesForEvent(string(e.Stroke), e.Distance, e.Course, records.AllYears)
		if len(history) > 1 && records.PersonalBest(history) == e {
			color.New(color.FgYellow, color.Bold).Println("★ New personal best!")
		}

		if tip := records.Suggest(e.Comments); tip != "" {
			fmt.Printf("  %s %s\n", color.CyanString("Tip:"), tip)
		}

		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addCourse, "course", "c", "", "pool course: LC or SC (default from config, LC)")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "date swum (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVarP(&addComments, "comments", "m", "", "race notes")
	addCmd.Flags().IntVarP(&addHappiness, "happiness", "H", 0, "how it felt, 1-10")
	rootCmd.AddCommand(addCmd)
}

// ABOUTME: CLI command for showing personal bests.
// ABOUTME: One row per event, optionally scoped to a course and year.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/records"
	"github.com/spf13/cobra"
)

var (
	bestCourse   string
	bestYear     string
	bestSort     string
	bestDesc     bool
	bestCombined bool
)

var bestCmd = &cobra.Command{
	Use:     "best",
	Aliases: []string{"bests", "pb"},
	Short:   "Show personal bests",
	Long: `Show your fastest time for every event.

Long course and short course bests are listed separately unless you pass
--combined, which keeps only the fastest time per distance and stroke.

EXAMPLES:

  swim best                  # Bests per event and course
  swim best -c LC            # Long course only
  swim best --year 2024      # Season bests for 2024
  swim best --sort time      # Fastest events first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := records.ParseSortKey(bestSort)
		if err != nil {
			return err
		}
		course, err := parseCourseFlag(bestCourse)
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		bests := s.store.Bests(records.BestFilter{
			Course:      course,
			Year:        bestYear,
			SplitCourse: !bestCombined,
		})
		if len(bests) == 0 {
			fmt.Println("No personal bests yet.")
			return nil
		}

		state := records.SortState{Key: key, Ascending: !bestDesc}
		color.New(color.Bold).Printf("Personal bests for %s\n", s.user.Name)
		for _, e := range state.Apply(bests) {
			printEntry(e, false)
		}
		return nil
	},
}

func init() {
	bestCmd.Flags().StringVarP(&bestCourse, "course", "c", "", "only this course (LC or SC)")
	bestCmd.Flags().StringVarP(&bestYear, "year", "y", "", "only times from this year")
	bestCmd.Flags().StringVar(&bestSort, "sort", "event", "sort by event, date, happiness or time")
	bestCmd.Flags().BoolVar(&bestDesc, "desc", false, "sort descending")
	bestCmd.Flags().BoolVar(&bestCombined, "combined", false, "one best per distance and stroke across courses")
	rootCmd.AddCommand(bestCmd)
}

// ABOUTME: CLI command for one event's history.
// ABOUTME: Marks the personal best and reports the trend and years swum.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"github.com/spf13/cobra"
)

var (
	eventCourse string
	eventYear   string
	eventSort   string
	eventDesc   bool
)

var eventCmd = &cobra.Command{
	Use:     "event <distance> <stroke>",
	Aliases: []string{"history", "e"},
	Short:   "Show every time for one event",
	Long: `Show every recorded time for one event, with the personal best marked (★),
whether you are improving or slowing down, and the years you swam it.

Without --course, long and short course swims are shown together.

EXAMPLES:

  swim event 50 free
  swim event 100 fly -c SC
  swim event 200 im --year 2024 --sort time`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := parseEventArgs(args, eventCourse)
		if err != nil {
			return err
		}
		sortKey, err := records.ParseSortKey(eventSort)
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		all := s.store.EntriesForEvent(string(key.Stroke), key.Distance, key.Course, records.AllYears)
		entries := records.FilterEvent(all, key, eventYear)

		color.New(color.Bold).Println(key.String())
		if len(entries) == 0 {
			fmt.Println("No times recorded for this event.")
			return nil
		}

		pb := records.PersonalBest(entries)
		for _, e := range records.SortEntries(entries, sortKey, !eventDesc) {
			printEntry(e, e == pb)
		}

		trend := records.AnalyzeTrend(entries)
		fmt.Println()
		fmt.Printf("Trend: %s\n", trendColor(trend).Sprint(trend.Message()))
		if years := records.Years(all); len(years) > 0 {
			fmt.Printf("Years: %s\n", strings.Join(years, ", "))
		}
		return nil
	},
}

// parseEventArgs turns "<distance> <stroke>" plus a course flag into an event key.
func parseEventArgs(args []string, course string) (models.EventKey, error) {
	distance, err := strconv.Atoi(args[0])
	if err != nil || distance <= 0 {
		return models.EventKey{}, fmt.Errorf("invalid distance: %s", args[0])
	}
	c, err := parseCourseFlag(course)
	if err != nil {
		return models.EventKey{}, err
	}
	return models.NewEventKey(distance, args[1], c), nil
}

func trendColor(t records.Trend) *color.Color {
	switch t {
	case records.TrendImproving:
		return color.New(color.FgGreen)
	case records.TrendSlowing:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

func init() {
	eventCmd.Flags().StringVarP(&eventCourse, "course", "c", "", "only this course (LC or SC)")
	eventCmd.Flags().StringVarP(&eventYear, "year", "y", "", "only times from this year")
	eventCmd.Flags().StringVar(&eventSort, "sort", "date", "sort by event, date, happiness or time")
	eventCmd.Flags().BoolVar(&eventDesc, "desc", false, "sort descending")
	rootCmd.AddCommand(eventCmd)
}

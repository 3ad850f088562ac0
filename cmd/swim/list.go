// ABOUTME: CLI command for listing swim times.
// ABOUTME: Supports filtering by event, course and year plus sorting.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"github.com/spf13/cobra"
)

var (
	listSort     string
	listDesc     bool
	listCourse   string
	listYear     string
	listStroke   string
	listDistance int
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List swim times",
	Long: `List recorded swim times.

OUTPUT FORMAT:

  Each line shows: ID  DATE  EVENT  COURSE  TIME  HAPPINESS  (COMMENTS)

  The ID is an 8-character prefix you can use with edit --id and delete.

SORTING:

  --sort event|date|happiness|time   (default date, oldest first)
  --desc                             reverse the order

EXAMPLES:

  swim list                        # Every time, oldest first
  swim list --sort time            # Fastest first
  swim list --stroke fly --desc    # Butterfly, newest first
  swim list --year 2024 -c SC      # Short course swims in 2024`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := records.ParseSortKey(listSort)
		if err != nil {
			return err
		}
		course, err := parseCourseFlag(listCourse)
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		entries := filterEntries(s.store.Entries(), listDistance, listStroke, course, listYear)
		entries = records.SortEntries(entries, key, !listDesc)
		if listLimit > 0 && len(entries) > listLimit {
			entries = entries[:listLimit]
		}

		if len(entries) == 0 {
			fmt.Println("No times found.")
			return nil
		}

		for _, e := range entries {
			printEntry(e, false)
		}
		return nil
	},
}

// filterEntries keeps entries matching every non-zero filter.
func filterEntries(entries []*models.TimeEntry, distance int, stroke string, course models.Course, year string) []*models.TimeEntry {
	var want models.Stroke
	if stroke != "" {
		want = models.NormalizeStroke(stroke)
	}

	var out []*models.TimeEntry
	for _, e := range entries {
		if distance > 0 && e.Distance != distance {
			continue
		}
		if want != "" && e.Stroke != want {
			continue
		}
		if course != "" && e.Course != course {
			continue
		}
		if year != "" && year != records.AllYears && e.Year() != year {
			continue
		}
		out = append(out, e)
	}
	return out
}

// printEntry writes one entry row; pb marks the personal best.
func printEntry(e *models.TimeEntry, pb bool) {
	faint := color.New(color.Faint)

	happy := faint.Sprint(padRight("-", 5))
	if e.Happiness != nil {
		happy = padRight(fmt.Sprintf("%d/10", *e.Happiness), 5)
	}
	comments := ""
	if e.Comments != "" {
		comments = faint.Sprintf(" (%s)", truncate(e.Comments, 40))
	}
	swimTime := padRight(e.Time, 9)
	if pb {
		swimTime = color.New(color.FgYellow, color.Bold).Sprint(padRight(e.Time+" ★", 9))
	}

	fmt.Printf("%s %s %s %s %s %s%s\n",
		faint.Sprint(e.ShortID()),
		padRight(e.Date, 10),
		padRight(e.EventLabel(), 18),
		padRight(string(e.Course), 2),
		swimTime,
		happy,
		comments)
}

func truncate(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVar(&listSort, "sort", "date", "sort by event, date, happiness or time")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")
	listCmd.Flags().StringVarP(&listCourse, "course", "c", "", "filter by course (LC or SC)")
	listCmd.Flags().StringVarP(&listYear, "year", "y", "", "filter by year")
	listCmd.Flags().StringVarP(&listStroke, "stroke", "s", "", "filter by stroke")
	listCmd.Flags().IntVar(&listDistance, "distance", 0, "filter by distance")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "max number of results (0 = all)")
	rootCmd.AddCommand(listCmd)
}

// ABOUTME: CLI command for text bar charts of bests or one event's history.
// ABOUTME: Plots time, happiness or date series as colored terminal bars.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/swim/internal/records"
	"github.com/spf13/cobra"
)

const chartWidth = 40

var (
	chartDistance int
	chartStroke   string
	chartCourse   string
	chartYear     string
)

var chartCmd = &cobra.Command{
	Use:   "chart [time|happiness|date]",
	Short: "Chart personal bests or an event's history",
	Long: `Draw a bar chart in the terminal.

Without --distance and --stroke the chart covers your personal bests,
one bar per event. With them it covers every swim of that event, one bar
per date, and the personal best bar is highlighted.

EXAMPLES:

  swim chart                            # Bests, fastest first
  swim chart happiness                  # How each best felt
  swim chart time --distance 50 --stroke free -c LC`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"time", "happiness", "date"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := records.ChartTime
		if len(args) == 1 {
			var err error
			kind, err = records.ParseChartKind(args[0])
			if err != nil {
				return err
			}
		}
		course, err := parseCourseFlag(chartCourse)
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		var series records.Series
		if chartDistance > 0 && chartStroke != "" {
			entries := s.store.EntriesForEvent(chartStroke, chartDistance, course, chartYear)
			series, err = records.HistoryChart(kind, entries)
		} else {
			bests := s.store.Bests(records.BestFilter{Course: course, Year: chartYear})
			series, err = records.BestsChart(kind, bests)
		}
		if err != nil {
			return err
		}

		if len(series.Values) == 0 {
			fmt.Println("Nothing to chart yet.")
			return nil
		}
		renderChart(os.Stdout, kind, series)
		return nil
	},
}

// renderChart draws one bar per value. Dates are scaled between the first
// and last value so close dates still differ visibly.
func renderChart(w io.Writer, kind records.ChartKind, s records.Series) {
	lo, hi := 0.0, 0.0
	for i, v := range s.Values {
		if i == 0 || v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if kind != records.ChartDate {
		lo = 0
	}

	labelWidth := 0
	for _, l := range s.Labels {
		labelWidth = max(labelWidth, len(l))
	}

	bold := color.New(color.Bold)
	bar := color.New(color.FgCyan)
	best := color.New(color.FgYellow, color.Bold)

	bold.Fprintln(w, s.Title)
	for i, v := range s.Values {
		n := 1
		if hi > lo {
			n = int(math.Round((v-lo)/(hi-lo)*float64(chartWidth-1))) + 1
		}
		c := bar
		if i == s.Highlight {
			c = best
		}
		fmt.Fprintf(w, "%s %s %s\n",
			padRight(s.Labels[i], labelWidth),
			c.Sprint(strings.Repeat("█", n)),
			s.Format(v))
	}
}

func init() {
	chartCmd.Flags().IntVar(&chartDistance, "distance", 0, "chart one event: distance")
	chartCmd.Flags().StringVarP(&chartStroke, "stroke", "s", "", "chart one event: stroke")
	chartCmd.Flags().StringVarP(&chartCourse, "course", "c", "", "only this course (LC or SC)")
	chartCmd.Flags().StringVarP(&chartYear, "year", "y", "", "only times from this year")
	rootCmd.AddCommand(chartCmd)
}

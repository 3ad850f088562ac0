// ABOUTME: CSV views over personal bests and single-event history.
// ABOUTME: Comment newlines are flattened to spaces before writing.
package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/harperreed/swim/internal/models"
)

var (
	bestsHeader   = []string{"Event", "Time", "Date", "Happiness", "Comments"}
	historyHeader = []string{"Distance", "Stroke", "Course", "Time", "Date", "Comments", "Happiness"}
)

// WriteBestsCSV writes one row per personal best.
func WriteBestsCSV(w io.Writer, entries []*models.TimeEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		h := "-"
		if e.Happiness != nil {
			h = strconv.Itoa(*e.Happiness)
		}
		c := flattenComment(e.Comments)
		if c == "" {
			c = "-"
		}
		rows = append(rows, []string{e.EventLabel(), e.Time, e.Date, h, c})
	}
	return writeCSV(w, bestsHeader, rows)
}

// WriteHistoryCSV writes one row per entry of an event history.
func WriteHistoryCSV(w io.Writer, entries []*models.TimeEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		h := ""
		if e.Happiness != nil {
			h = strconv.Itoa(*e.Happiness)
		}
		rows = append(rows, []string{
			strconv.Itoa(e.Distance),
			string(e.Stroke),
			string(e.Course),
			e.Time,
			e.Date,
			flattenComment(e.Comments),
			h,
		})
	}
	return writeCSV(w, historyHeader, rows)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

func flattenComment(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}

// ABOUTME: Chart series (labels, values, formatter) derived from query results.
// ABOUTME: ChartKind is a closed set dispatched through producer tables.
package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/swim/internal/models"
)

// ChartKind selects what a chart plots.
type ChartKind int

const (
	ChartTime ChartKind = iota
	ChartHappiness
	ChartDate
)

var chartKindNames = map[ChartKind]string{
	ChartTime:      "time",
	ChartHappiness: "happiness",
	ChartDate:      "date",
}

func (k ChartKind) String() string {
	return chartKindNames[k]
}

// ParseChartKind accepts time, happiness or date.
func ParseChartKind(s string) (ChartKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range chartKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown chart type: %q (use time, happiness or date)", s)
}

// Series is everything a renderer needs to draw one dataset.
type Series struct {
	Title  string
	Labels []string
	Values []float64
	Format func(float64) string
	// Highlight is the index of the personal best, or -1.
	Highlight int
}

type seriesProducer func(entries []*models.TimeEntry) Series

var bestsCharts = map[ChartKind]seriesProducer{
	ChartTime: func(entries []*models.TimeEntry) Series {
		sorted := SortEntries(entries, SortTime, true)
		return Series{
			Title:     "Time (mm:ss)",
			Labels:    mapEntries(sorted, eventLabel),
			Values:    mapEntries(sorted, seconds),
			Format:    models.FormatSeconds,
			Highlight: -1,
		}
	},
	ChartHappiness: func(entries []*models.TimeEntry) Series {
		sorted := SortEntries(entries, SortHappiness, true)
		return Series{
			Title:     "Happiness (1-10)",
			Labels:    mapEntries(sorted, eventLabel),
			Values:    mapEntries(sorted, happiness),
			Format:    formatPlain,
			Highlight: -1,
		}
	},
	ChartDate: func(entries []*models.TimeEntry) Series {
		sorted := SortEntries(entries, SortDate, true)
		return Series{
			Title:     "Date Achieved",
			Labels:    mapEntries(sorted, eventLabel),
			Values:    mapEntries(sorted, unixDate),
			Format:    formatUnixDate,
			Highlight: -1,
		}
	},
}

var historyCharts = map[ChartKind]seriesProducer{
	ChartTime: func(entries []*models.TimeEntry) Series {
		sorted := SortEntries(entries, SortDate, true)
		title := "Time"
		if len(sorted) > 0 {
			title = sorted[0].Key().String()
		}
		return Series{
			Title:     title,
			Labels:    mapEntries(sorted, dateLabel),
			Values:    mapEntries(sorted, seconds),
			Format:    models.FormatSeconds,
			Highlight: indexOf(sorted, PersonalBest(sorted)),
		}
	},
	ChartHappiness: func(entries []*models.TimeEntry) Series {
		sorted := SortEntries(entries, SortDate, true)
		return Series{
			Title:     "Happiness Over Time",
			Labels:    mapEntries(sorted, dateLabel),
			Values:    mapEntries(sorted, happiness),
			Format:    formatPlain,
			Highlight: -1,
		}
	},
	ChartDate: func(entries []*models.TimeEntry) Series {
		sorted := SortEntries(entries, SortDate, true)
		return Series{
			Title:     "Date",
			Labels:    mapEntries(sorted, func(e *models.TimeEntry) string { return e.Time }),
			Values:    mapEntries(sorted, unixDate),
			Format:    formatUnixDate,
			Highlight: indexOf(sorted, PersonalBest(sorted)),
		}
	},
}

// BestsChart builds a series over one personal best per event.
func BestsChart(kind ChartKind, bests []*models.TimeEntry) (Series, error) {
	produce, ok := bestsCharts[kind]
	if !ok {
		return Series{}, fmt.Errorf("unsupported chart kind: %d", kind)
	}
	return produce(bests), nil
}

// HistoryChart builds a chronological series over one event's entries.
func HistoryChart(kind ChartKind, entries []*models.TimeEntry) (Series, error) {
	produce, ok := historyCharts[kind]
	if !ok {
		return Series{}, fmt.Errorf("unsupported chart kind: %d", kind)
	}
	return produce(entries), nil
}

func mapEntries[T any](entries []*models.TimeEntry, fn func(*models.TimeEntry) T) []T {
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = fn(e)
	}
	return out
}

func indexOf(entries []*models.TimeEntry, target *models.TimeEntry) int {
	for i, e := range entries {
		if e == target {
			return i
		}
	}
	return -1
}

func eventLabel(e *models.TimeEntry) string { return e.EventLabel() }

func seconds(e *models.TimeEntry) float64 { return e.Seconds() }

func happiness(e *models.TimeEntry) float64 { return float64(e.HappinessValue()) }

func dateLabel(e *models.TimeEntry) string {
	if e.Date == "" {
		return "-"
	}
	return e.Date
}

func unixDate(e *models.TimeEntry) float64 {
	t, ok := e.ParsedDate()
	if !ok {
		return 0
	}
	return float64(t.Unix())
}

func formatPlain(v float64) string {
	return fmt.Sprintf("%g", v)
}

func formatUnixDate(v float64) string {
	if v == 0 {
		return "-"
	}
	return time.Unix(int64(v), 0).UTC().Format(models.DateLayout)
}

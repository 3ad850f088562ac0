// ABOUTME: Trend analysis for one event's history of swims.
// ABOUTME: Entries are ordered by date before the first and last are compared.
package records

import "github.com/harperreed/swim/internal/models"

// Trend is the direction an event's times are moving.
type Trend int

const (
	TrendInsufficient Trend = iota
	TrendImproving
	TrendSlowing
	TrendStable
)

var trendNames = map[Trend]string{
	TrendInsufficient: "Insufficient",
	TrendImproving:    "Improving",
	TrendSlowing:      "Slowing",
	TrendStable:       "Stable",
}

var trendMessages = map[Trend]string{
	TrendInsufficient: "No trend yet",
	TrendImproving:    "Improving!",
	TrendSlowing:      "Slowing down",
	TrendStable:       "Stable",
}

func (t Trend) String() string {
	return trendNames[t]
}

// Message is the human-readable trend line.
func (t Trend) Message() string {
	return trendMessages[t]
}

// MarshalText encodes the trend by name.
func (t Trend) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// AnalyzeTrend orders entries by date and compares the first and last time.
func AnalyzeTrend(entries []*models.TimeEntry) Trend {
	if len(entries) < 2 {
		return TrendInsufficient
	}
	sorted := SortEntries(entries, SortDate, true)
	first := sorted[0].Seconds()
	last := sorted[len(sorted)-1].Seconds()
	switch {
	case last < first:
		return TrendImproving
	case last > first:
		return TrendSlowing
	default:
		return TrendStable
	}
}

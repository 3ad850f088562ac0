// ABOUTME: Swim time parsing, validation and formatting.
// ABOUTME: Parsing is best effort and never fails; validation gates new input.
package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DateLayout is the storage format of TimeEntry.Date.
const DateLayout = "2006-01-02"

// durationPattern accepts M:SS.ff, H.MM.SS, M:SS, S.ff and whole seconds.
var durationPattern = regexp.MustCompile(`^(\d+:\d{2}\.\d{2}|\d+\.\d{2}\.\d{2}|\d{1,2}:\d{2}|\d+\.\d{2}|\d+)$`)

// IsValidDurationFormat reports whether s may be stored as a new swim time.
func IsValidDurationFormat(s string) bool {
	return durationPattern.MatchString(strings.TrimSpace(s))
}

// ParseDuration converts a stored swim time to seconds.
//
// Colon forms are M:SS(.ff) or H:MM:SS(.ff). A dotted string with exactly three
// components is H.MM.SS. Anything else is read as plain seconds. Input that
// cannot be read returns 0.
func ParseDuration(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.Contains(s, ":") {
		parts := splitNumbers(s, ":")
		switch len(parts) {
		case 2:
			return parts[0]*60 + parts[1]
		case 3:
			return parts[0]*3600 + parts[1]*60 + parts[2]
		}
	}

	if dots := splitNumbers(s, "."); len(dots) == 3 {
		return dots[0]*3600 + dots[1]*60 + dots[2]
	}

	return parseNumber(s)
}

func splitNumbers(s, sep string) []float64 {
	raw := strings.Split(s, sep)
	out := make([]float64, len(raw))
	for i, p := range raw {
		out[i] = parseNumber(p)
	}
	return out
}

// parseNumber reads a finite float, returning 0 for anything else.
// Trailing junk is rejected, so "28.32abc" is 0 rather than 28.32.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatSeconds renders seconds as m:ss.ff, e.g. 62.45 -> "1:02.45".
func FormatSeconds(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	// Round to hundredths first so 59.999 doesn't render as 0:60.00.
	hundredths := int64(math.Round(sec * 100))
	m := hundredths / 6000
	rest := float64(hundredths%6000) / 100
	return fmt.Sprintf("%d:%05.2f", m, rest)
}

// ABOUTME: Tests for swim time parsing, validation and formatting.
// ABOUTME: Covers every accepted format plus malformed legacy input.
package models

import (
	"math"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1:02.45", 62.45},
		{"1:02", 62},
		{"1:00:05.5", 3605.5},
		{"1.02.45", 3765},
		{"28.32", 28.32},
		{"90", 90},
		{" 28.32 ", 28.32},
		{"", 0},
		{"garbage", 0},
		{"28.32abc", 0},
		{"1:02.45s", 60},
		{"1:2:3:4", 0},
		{"NaN", 0},
		{"x:30", 30},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDuration(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidDurationFormat(t *testing.T) {
	valid := []string{"28.32", "1:02.45", "1.02.45", "1:02", "90", "12:34", "10:02.45"}
	for _, s := range valid {
		if !IsValidDurationFormat(s) {
			t.Errorf("IsValidDurationFormat(%q) = false, want true", s)
		}
	}

	invalid := []string{"abc", "", "1:2:3:4", "1:2", "28.3", "123:45", "1:02:03", "-5", "1.2.3"}
	for _, s := range invalid {
		if IsValidDurationFormat(s) {
			t.Errorf("IsValidDurationFormat(%q) = true, want false", s)
		}
	}
}

func TestValidatedTimesAlwaysParse(t *testing.T) {
	for _, s := range []string{"28.32", "1:02.45", "1.02.45", "1:02", "90"} {
		if ParseDuration(s) <= 0 {
			t.Errorf("ParseDuration(%q) <= 0 for a valid format", s)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{62.45, "1:02.45"},
		{28.32, "0:28.32"},
		{0, "0:00.00"},
		{59.999, "1:00.00"},
		{3765, "62:45.00"},
		{-3, "0:00.00"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.sec); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

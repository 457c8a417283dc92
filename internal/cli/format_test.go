package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{123456, "$1,234.56"},
		{-250075, "-$2,500.75"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.cents); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFormatMoneyDelta(t *testing.T) {
	if got := FormatMoneyDelta(100); got != "+$1.00" {
		t.Errorf("delta(100) = %q", got)
	}
	if got := FormatMoneyDelta(-100); got != "-$1.00" {
		t.Errorf("delta(-100) = %q", got)
	}
	if got := FormatMoneyDelta(0); got != "+$0.00" {
		t.Errorf("delta(0) = %q", got)
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(-d)
		return &v
	}

	tests := []struct {
		name string
		t    *time.Time
		want string
	}{
		{"nil", nil, "never"},
		{"seconds", at(30 * time.Second), "just now"},
		{"minutes", at(45 * time.Minute), "45m ago"},
		{"hours", at(26 * time.Hour), "26h ago"},
		{"days", at(96 * time.Hour), "4d ago"},
	}
	for _, tt := range tests {
		if got := FormatRelative(tt.t, now); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatOrdinal(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "1st"}, {2, "2nd"}, {3, "3rd"}, {4, "4th"},
		{11, "11th"}, {12, "12th"}, {13, "13th"},
		{21, "21st"}, {22, "22nd"}, {23, "23rd"}, {31, "31st"},
	}
	for _, tt := range tests {
		if got := FormatOrdinal(tt.day); got != tt.want {
			t.Errorf("FormatOrdinal(%d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestRenderSparklineShape(t *testing.T) {
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("empty series = %q", got)
	}
	// Flat series should not panic on a zero span.
	if got := RenderSparkline([]int64{5, 5, 5}); got == "" {
		t.Error("flat series produced no output")
	}
}

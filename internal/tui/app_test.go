package tui

import (
	"testing"
	"time"

	"flowcast/internal/forecast"
)

func TestNextPreset(t *testing.T) {
	tests := []struct {
		current int
		up      bool
		want    int
	}{
		{7, true, 14},
		{30, true, 60},
		{90, true, 90},
		{30, false, 14},
		{7, false, 7},
		{45, true, 60},
		{45, false, 30},
	}
	for _, tt := range tests {
		if got := nextPreset(tt.current, tt.up); got != tt.want {
			t.Errorf("nextPreset(%d, %v) = %d, want %d", tt.current, tt.up, got, tt.want)
		}
	}
}

func TestStepCursor(t *testing.T) {
	if got := stepCursor(0, 3, true); got != 1 {
		t.Errorf("down from 0 = %d, want 1", got)
	}
	if got := stepCursor(2, 3, true); got != 2 {
		t.Errorf("down at end = %d, want 2", got)
	}
	if got := stepCursor(0, 3, false); got != 0 {
		t.Errorf("up at start = %d, want 0", got)
	}
	if got := stepCursor(0, 0, true); got != 0 {
		t.Errorf("down on empty list = %d, want 0", got)
	}
}

func TestChartDateLabels(t *testing.T) {
	day := func(y int, m time.Month, d int) forecast.ChartPoint {
		return forecast.ChartPoint{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
	}

	points := []forecast.ChartPoint{
		day(2025, time.June, 28),
		day(2025, time.June, 29),
		day(2025, time.June, 30),
		day(2025, time.July, 1),
		day(2025, time.July, 2),
	}
	labels := chartDateLabels(points)

	if labels[0] != "Jun" {
		t.Errorf("first label = %q, want Jun", labels[0])
	}
	if labels[3] != "Jul" {
		t.Errorf("month boundary label = %q, want Jul", labels[3])
	}
	if labels[4] != "2" {
		t.Errorf("last label = %q, want 2", labels[4])
	}
	if labels[1] != "29" {
		t.Errorf("mid label = %q, want 29", labels[1])
	}
}

func TestRelativeShort(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{12 * time.Second, "12s ago"},
		{3 * time.Minute, "3m ago"},
		{2 * time.Hour, "2h ago"},
	}
	for _, tt := range tests {
		if got := relativeShort(tt.d); got != tt.want {
			t.Errorf("relativeShort(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("no-op truncation changed string: %q", got)
	}
	if got := truncStr("a very long account name", 10); got != "a very lo…" {
		t.Errorf("truncStr = %q", got)
	}
	if got := truncStr("anything", 0); got != "" {
		t.Errorf("zero limit = %q, want empty", got)
	}
}

package forecast

import (
	"errors"
	"testing"
	"time"

	"flowcast/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpand_DayOfMonthClampsShortMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		day   int
		want  []time.Time
	}{
		{
			name:  "day 31 over leap February",
			start: date(2024, time.February, 1),
			end:   date(2024, time.February, 29),
			day:   31,
			want:  []time.Time{date(2024, time.February, 29)},
		},
		{
			name:  "day 31 over non-leap February",
			start: date(2023, time.February, 1),
			end:   date(2023, time.February, 28),
			day:   31,
			want:  []time.Time{date(2023, time.February, 28)},
		},
		{
			name:  "day 31 across month boundary",
			start: date(2024, time.January, 1),
			end:   date(2024, time.March, 31),
			day:   31,
			want: []time.Time{
				date(2024, time.January, 31),
				date(2024, time.February, 29),
				date(2024, time.March, 31),
			},
		},
		{
			name:  "mid-month start skips earlier occurrence",
			start: date(2024, time.January, 20),
			end:   date(2024, time.February, 20),
			day:   10,
			want:  []time.Time{date(2024, time.February, 10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(model.DayOfMonthSchedule(tt.day), model.FreqMonthly, tt.start, tt.end)
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			assertDates(t, got, tt.want)
		})
	}
}

func TestExpand_NeverEmitsOutsideMonth(t *testing.T) {
	// Clamping must keep every emitted date inside its own month; rolling
	// Feb 30 into March 1 would double-charge March.
	for day := 1; day <= 31; day++ {
		got, err := Expand(model.DayOfMonthSchedule(day), model.FreqMonthly,
			date(2023, time.February, 1), date(2023, time.February, 28))
		if err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		if len(got) != 1 {
			t.Fatalf("day %d: got %d dates, want 1", day, len(got))
		}
		if got[0].Month() != time.February {
			t.Errorf("day %d emitted %s, outside February", day, got[0].Format("2006-01-02"))
		}
	}
}

func TestExpand_Weekly(t *testing.T) {
	// Jan 1 2024 is a Monday.
	got, err := Expand(model.DayOfWeekSchedule(time.Monday), model.FreqWeekly,
		date(2024, time.January, 1), date(2024, time.January, 31))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
		date(2024, time.January, 22),
		date(2024, time.January, 29),
	}
	assertDates(t, got, want)
}

func TestExpand_BiweeklyAnchorsAtFirstMatch(t *testing.T) {
	// Range starts Wednesday Jan 3; first Monday on/after is Jan 8.
	got, err := Expand(model.DayOfWeekSchedule(time.Monday), model.FreqBiweekly,
		date(2024, time.January, 3), date(2024, time.February, 10))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []time.Time{
		date(2024, time.January, 8),
		date(2024, time.January, 22),
		date(2024, time.February, 5),
	}
	assertDates(t, got, want)
}

func TestExpand_TwiceMonthly(t *testing.T) {
	got, err := Expand(model.TwiceMonthlySchedule(15, 30), model.FreqTwiceMonthly,
		date(2024, time.February, 1), date(2024, time.March, 31))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []time.Time{
		date(2024, time.February, 15),
		date(2024, time.February, 29), // 30 clamps to leap-February's last day
		date(2024, time.March, 15),
		date(2024, time.March, 30),
	}
	assertDates(t, got, want)
}

func TestExpand_TwiceMonthlyCollapsedDaysEmitOnce(t *testing.T) {
	// Both days clamp to Feb 28; the payment must not double.
	got, err := Expand(model.TwiceMonthlySchedule(30, 31), model.FreqTwiceMonthly,
		date(2023, time.February, 1), date(2023, time.February, 28))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	assertDates(t, got, []time.Time{date(2023, time.February, 28)})
}

func TestExpand_EmptyRange(t *testing.T) {
	got, err := Expand(model.DayOfMonthSchedule(15), model.FreqMonthly,
		date(2024, time.March, 10), date(2024, time.March, 1))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("inverted range emitted %d dates, want 0", len(got))
	}
}

func TestValidateSchedule_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		schedule model.PaymentSchedule
		freq     model.Frequency
	}{
		{"dayOfMonth zero", model.DayOfMonthSchedule(0), model.FreqMonthly},
		{"dayOfMonth 32", model.DayOfMonthSchedule(32), model.FreqMonthly},
		{"weekday out of range", model.DayOfWeekSchedule(time.Weekday(7)), model.FreqWeekly},
		{"shape mismatch weekly/dayOfMonth", model.DayOfMonthSchedule(5), model.FreqWeekly},
		{"shape mismatch monthly/dayOfWeek", model.DayOfWeekSchedule(time.Friday), model.FreqMonthly},
		{"twice-monthly first day 0", model.TwiceMonthlySchedule(0, 15), model.FreqTwiceMonthly},
		{"twice-monthly second day 40", model.TwiceMonthlySchedule(1, 40), model.FreqTwiceMonthly},
		{"unknown frequency", model.DayOfMonthSchedule(1), model.Frequency("quarterly")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.schedule, tt.freq, date(2024, time.January, 1), date(2024, time.December, 31))
			if !errors.Is(err, ErrInvalidSchedule) {
				t.Errorf("err = %v, want ErrInvalidSchedule", err)
			}
		})
	}
}

func assertDates(t *testing.T, got, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d dates %v, want %d %v", len(got), fmtDates(got), len(want), fmtDates(want))
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			t.Errorf("date[%d] = %s, want %s", i, got[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func fmtDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format("2006-01-02")
	}
	return out
}

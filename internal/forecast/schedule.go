// Package forecast implements the cashflow projection engine: recurrence
// expansion, event materialization, scenario accumulation, starting-balance
// resolution, and the derived chart/summary views. Everything in this
// package is a pure function of its inputs — "now" is always injected, never
// read from the wall clock.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"flowcast/internal/model"
)

// ErrInvalidSchedule marks a recurrence descriptor whose shape does not
// match its declared frequency or whose day values are out of range. These
// indicate a data-integrity problem upstream and are never retried.
var ErrInvalidSchedule = errors.New("invalid payment schedule")

// ValidateSchedule checks that the schedule shape matches the frequency and
// that all day values are in range. Callers constructing schedules from raw
// storage rows must validate before expanding.
func ValidateSchedule(s model.PaymentSchedule, freq model.Frequency) error {
	switch freq {
	case model.FreqWeekly, model.FreqBiweekly:
		if s.Kind != model.ScheduleDayOfWeek {
			return fmt.Errorf("%w: %s frequency requires a dayOfWeek schedule, got %s", ErrInvalidSchedule, freq, s.Kind)
		}
		if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidSchedule, s.Weekday)
		}
	case model.FreqMonthly:
		if s.Kind != model.ScheduleDayOfMonth {
			return fmt.Errorf("%w: monthly frequency requires a dayOfMonth schedule, got %s", ErrInvalidSchedule, s.Kind)
		}
		if s.DayOfMonth < 1 || s.DayOfMonth > 31 {
			return fmt.Errorf("%w: dayOfMonth %d out of range 1-31", ErrInvalidSchedule, s.DayOfMonth)
		}
	case model.FreqTwiceMonthly:
		if s.Kind != model.ScheduleTwiceMonthly {
			return fmt.Errorf("%w: twice-monthly frequency requires a twiceMonthly schedule, got %s", ErrInvalidSchedule, s.Kind)
		}
		if s.FirstDay < 1 || s.FirstDay > 31 {
			return fmt.Errorf("%w: firstDay %d out of range 1-31", ErrInvalidSchedule, s.FirstDay)
		}
		if s.SecondDay < 1 || s.SecondDay > 31 {
			return fmt.Errorf("%w: secondDay %d out of range 1-31", ErrInvalidSchedule, s.SecondDay)
		}
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidSchedule, freq)
	}
	return nil
}

// Expand returns the ordered occurrence dates of the schedule within
// [rangeStart, rangeEnd], inclusive on both ends. Dates are normalized to
// UTC midnight. The expansion is pure and restartable: the same inputs
// always produce the same dates.
func Expand(s model.PaymentSchedule, freq model.Frequency, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	if err := ValidateSchedule(s, freq); err != nil {
		return nil, err
	}

	start := DayOf(rangeStart)
	end := DayOf(rangeEnd)
	if end.Before(start) {
		return nil, nil
	}

	switch freq {
	case model.FreqWeekly:
		return expandWeekday(s.Weekday, start, end, 7), nil
	case model.FreqBiweekly:
		// Anchored at the first matching weekday on/after rangeStart.
		return expandWeekday(s.Weekday, start, end, 14), nil
	case model.FreqMonthly:
		return expandMonthly(start, end, s.DayOfMonth), nil
	case model.FreqTwiceMonthly:
		return expandTwiceMonthly(start, end, s.FirstDay, s.SecondDay), nil
	}
	return nil, nil // unreachable, ValidateSchedule covers unknown frequencies
}

func expandWeekday(weekday time.Weekday, start, end time.Time, stepDays int) []time.Time {
	first := start
	for first.Weekday() != weekday {
		first = first.AddDate(0, 0, 1)
	}

	var dates []time.Time
	for d := first; !d.After(end); d = d.AddDate(0, 0, stepDays) {
		dates = append(dates, d)
	}
	return dates
}

func expandMonthly(start, end time.Time, dayOfMonth int) []time.Time {
	var dates []time.Time
	for year, month := start.Year(), start.Month(); ; {
		d := clampedDate(year, month, dayOfMonth)
		if d.After(end) {
			break
		}
		if !d.Before(start) {
			dates = append(dates, d)
		}
		year, month = nextMonth(year, month)
	}
	return dates
}

func expandTwiceMonthly(start, end time.Time, firstDay, secondDay int) []time.Time {
	var dates []time.Time
	for year, month := start.Year(), start.Month(); ; {
		a := clampedDate(year, month, firstDay)
		b := clampedDate(year, month, secondDay)
		if a.After(b) {
			a, b = b, a
		}
		if a.After(end) {
			break
		}
		if !a.Before(start) && !a.After(end) {
			dates = append(dates, a)
		}
		// Clamping can collapse both days onto the month's last day; emit once.
		if !b.Equal(a) && !b.Before(start) && !b.After(end) {
			dates = append(dates, b)
		}
		year, month = nextMonth(year, month)
	}
	return dates
}

// clampedDate builds the date for (year, month, day), clamping day to the
// month's length so Feb 30 lands on Feb 28/29 rather than rolling into March.
func clampedDate(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// DayOf normalizes a timestamp to its calendar day at UTC midnight.
// Projection dates are timezone-naive calendar days throughout.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

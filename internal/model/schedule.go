package model

import "time"

// Certainty classifies how sure an income is to arrive. Guaranteed income
// counts in both projection scenarios; probable and uncertain income only
// count in the optimistic one.
type Certainty string

const (
	CertaintyGuaranteed Certainty = "guaranteed"
	CertaintyProbable   Certainty = "probable"
	CertaintyUncertain  Certainty = "uncertain"
)

// Valid reports whether c is a known certainty level.
func (c Certainty) Valid() bool {
	switch c {
	case CertaintyGuaranteed, CertaintyProbable, CertaintyUncertain:
		return true
	}
	return false
}

// Frequency is how often a recurring income pays out.
type Frequency string

const (
	FreqWeekly       Frequency = "weekly"
	FreqBiweekly     Frequency = "biweekly"
	FreqTwiceMonthly Frequency = "twice-monthly"
	FreqMonthly      Frequency = "monthly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FreqWeekly, FreqBiweekly, FreqTwiceMonthly, FreqMonthly:
		return true
	}
	return false
}

// ScheduleKind discriminates the PaymentSchedule variants.
type ScheduleKind string

const (
	ScheduleDayOfMonth   ScheduleKind = "dayOfMonth"
	ScheduleDayOfWeek    ScheduleKind = "dayOfWeek"
	ScheduleTwiceMonthly ScheduleKind = "twiceMonthly"
)

// PaymentSchedule is a closed tagged union describing when a recurring
// payment lands. Exactly the fields for its Kind are meaningful:
//
//	dayOfMonth:   DayOfMonth (1-31, clamped to short months)
//	dayOfWeek:    Weekday
//	twiceMonthly: FirstDay and SecondDay (each 1-31, clamped)
//
// Shapes are validated against the declared frequency at the storage
// boundary; the expander rejects mismatches rather than guessing.
type PaymentSchedule struct {
	Kind       ScheduleKind
	DayOfMonth int
	Weekday    time.Weekday
	FirstDay   int
	SecondDay  int
}

// DayOfMonthSchedule builds a monthly day-of-month schedule.
func DayOfMonthSchedule(day int) PaymentSchedule {
	return PaymentSchedule{Kind: ScheduleDayOfMonth, DayOfMonth: day}
}

// DayOfWeekSchedule builds a weekly/biweekly weekday schedule.
func DayOfWeekSchedule(weekday time.Weekday) PaymentSchedule {
	return PaymentSchedule{Kind: ScheduleDayOfWeek, Weekday: weekday}
}

// TwiceMonthlySchedule builds a schedule paying on two days each month.
func TwiceMonthlySchedule(first, second int) PaymentSchedule {
	return PaymentSchedule{Kind: ScheduleTwiceMonthly, FirstDay: first, SecondDay: second}
}

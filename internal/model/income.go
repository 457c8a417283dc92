package model

import "time"

// RecurringIncome is a repeating income source (salary, client retainer).
// Amount is in minor currency units. Inactive incomes are ignored by the
// projection entirely.
type RecurringIncome struct {
	ID        string
	Name      string
	Amount    int64
	Frequency Frequency
	Schedule  PaymentSchedule
	Certainty Certainty
	Active    bool
}

// SingleShotIncome is a one-off expected payment on a specific calendar day.
type SingleShotIncome struct {
	ID        string
	Name      string
	Amount    int64
	Date      time.Time // calendar day, time-of-day ignored
	Certainty Certainty
}

package forecast

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidHorizon marks a non-positive projection horizon.
var ErrInvalidHorizon = errors.New("invalid projection horizon")

// HorizonPresets are the horizon choices surfaced in the CLI and TUI.
// The engine itself accepts any positive horizon.
var HorizonPresets = []int{7, 14, 30, 60, 90}

// DayProjection is one day of the projected trajectory. Balances are minor
// currency units; InvestmentInclusive adds the (static) investment total on
// top of the optimistic balance. A scenario's danger flag is set iff its
// end-of-day balance is strictly negative — exactly zero is never danger.
type DayProjection struct {
	Date                time.Time
	Optimistic          int64
	Pessimistic         int64
	InvestmentInclusive int64
	OptimisticDanger    bool
	PessimisticDanger   bool
	Events              []CashEvent
}

// Project walks the event list day by day from the starting balances and
// returns horizonDays+1 projections, day 0 being startDate. Events are
// matched by calendar date; all events on a day apply before the day closes,
// and same-day order never matters (integer addition commutes). All
// accumulation is integer arithmetic — no floats anywhere near a balance.
func Project(start StartingBalances, events []CashEvent, startDate time.Time, horizonDays int) ([]DayProjection, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("%w: %d days", ErrInvalidHorizon, horizonDays)
	}

	byDay := make(map[time.Time][]CashEvent, len(events))
	for _, ev := range events {
		d := DayOf(ev.Date)
		byDay[d] = append(byDay[d], ev)
	}

	day0 := DayOf(startDate)
	optimistic := start.Optimistic
	pessimistic := start.Pessimistic

	days := make([]DayProjection, 0, horizonDays+1)
	for i := 0; i <= horizonDays; i++ {
		date := day0.AddDate(0, 0, i)
		todays := byDay[date]
		for _, ev := range todays {
			if ev.AppliesOptimistic {
				optimistic += ev.Amount
			}
			if ev.AppliesPessimistic {
				pessimistic += ev.Amount
			}
		}
		days = append(days, DayProjection{
			Date:                date,
			Optimistic:          optimistic,
			Pessimistic:         pessimistic,
			InvestmentInclusive: optimistic + start.Investments,
			OptimisticDanger:    optimistic < 0,
			PessimisticDanger:   pessimistic < 0,
			Events:              todays,
		})
	}
	return days, nil
}

package forecast

import (
	"time"

	"flowcast/internal/model"
)

// Options tunes a projection run.
type Options struct {
	// StaleAfter is the balance staleness policy; zero means
	// DefaultStaleAfter.
	StaleAfter time.Duration
}

// Result is the complete output of one projection run. It is derived fresh
// every time from the entity snapshot and "now" — never persisted, never
// incrementally patched. When Starting.HasReliableBase is false, Days and
// the derived views are empty and callers render the no-data state.
type Result struct {
	Starting           StartingBalances
	Days               []DayProjection
	ChartPoints        []ChartPoint
	DangerRanges       []DangerRange
	OptimisticSummary  Summary
	PessimisticSummary Summary
	HorizonDays        int
	GeneratedAt        time.Time
}

// Run executes the full projection: resolve the day-0 anchor, materialize
// events over [today, today+horizonDays], accumulate both scenarios, and
// build the derived views. It is synchronous, allocation-bounded by the
// horizon, and safe to call concurrently — it touches no shared state.
func Run(entities model.EntitySet, now time.Time, horizonDays int, opts Options) (*Result, error) {
	if horizonDays <= 0 {
		return nil, ErrInvalidHorizon
	}

	starting := ResolveStartingBalances(entities.Accounts, now, opts.StaleAfter)
	result := &Result{
		Starting:    starting,
		HorizonDays: horizonDays,
		GeneratedAt: now,
	}
	if !starting.HasReliableBase {
		return result, nil
	}

	day0 := DayOf(now)
	rangeEnd := day0.AddDate(0, 0, horizonDays)

	events, err := Materialize(entities, day0, rangeEnd)
	if err != nil {
		return nil, err
	}

	days, err := Project(starting, events, day0, horizonDays)
	if err != nil {
		return nil, err
	}

	result.Days = days
	result.ChartPoints = BuildChartPoints(days)
	result.DangerRanges = BuildDangerRanges(days)
	result.OptimisticSummary = BuildSummary(days, ScenarioOptimistic, starting.Optimistic)
	result.PessimisticSummary = BuildSummary(days, ScenarioPessimistic, starting.Pessimistic)
	return result, nil
}

package forecast

import "time"

// Scenario tags a danger range or summary with the projection it belongs to.
type Scenario string

const (
	ScenarioOptimistic  Scenario = "optimistic"
	ScenarioPessimistic Scenario = "pessimistic"
	// ScenarioBoth marks spans where both projections are simultaneously
	// negative, so the chart can shade the overlap differently.
	ScenarioBoth Scenario = "both"
)

// ChartPoint is the chart-ready slice of one projected day.
type ChartPoint struct {
	Date                time.Time
	Optimistic          int64
	Pessimistic         int64
	InvestmentInclusive int64
	OptimisticDanger    bool
	PessimisticDanger   bool
}

// DangerRange is a contiguous run of danger days for one scenario.
// Start and End are inclusive calendar days.
type DangerRange struct {
	Start    time.Time
	End      time.Time
	Scenario Scenario
}

// Summary holds straight sums over the horizon for one scenario — nothing
// is annualized or extrapolated. TotalExpenses is positive.
type Summary struct {
	TotalIncome   int64
	TotalExpenses int64
	EndBalance    int64
	Surplus       int64
	DangerDays    int
}

// BuildChartPoints maps day projections to chart points.
func BuildChartPoints(days []DayProjection) []ChartPoint {
	points := make([]ChartPoint, len(days))
	for i, d := range days {
		points[i] = ChartPoint{
			Date:                d.Date,
			Optimistic:          d.Optimistic,
			Pessimistic:         d.Pessimistic,
			InvestmentInclusive: d.InvestmentInclusive,
			OptimisticDanger:    d.OptimisticDanger,
			PessimisticDanger:   d.PessimisticDanger,
		}
	}
	return points
}

// BuildDangerRanges merges consecutive danger days into contiguous ranges
// per scenario, plus "both" ranges where the two scenarios overlap.
// Adjacent spans in different scenarios stay separate ranges.
func BuildDangerRanges(days []DayProjection) []DangerRange {
	var ranges []DangerRange
	ranges = append(ranges, mergeRuns(days, ScenarioOptimistic, func(d DayProjection) bool { return d.OptimisticDanger })...)
	ranges = append(ranges, mergeRuns(days, ScenarioPessimistic, func(d DayProjection) bool { return d.PessimisticDanger })...)
	ranges = append(ranges, mergeRuns(days, ScenarioBoth, func(d DayProjection) bool { return d.OptimisticDanger && d.PessimisticDanger })...)
	return ranges
}

func mergeRuns(days []DayProjection, scenario Scenario, inDanger func(DayProjection) bool) []DangerRange {
	var runs []DangerRange
	open := false
	for _, d := range days {
		switch {
		case inDanger(d) && !open:
			runs = append(runs, DangerRange{Start: d.Date, End: d.Date, Scenario: scenario})
			open = true
		case inDanger(d) && open:
			runs[len(runs)-1].End = d.Date
		default:
			open = false
		}
	}
	return runs
}

// BuildSummary computes the per-scenario totals over the projected days.
// startBalance is the scenario's day-0 anchor before any events applied.
func BuildSummary(days []DayProjection, scenario Scenario, startBalance int64) Summary {
	var s Summary
	for _, d := range days {
		for _, ev := range d.Events {
			if !eventApplies(ev, scenario) {
				continue
			}
			if ev.Amount >= 0 {
				s.TotalIncome += ev.Amount
			} else {
				s.TotalExpenses += -ev.Amount
			}
		}
		if dayInDanger(d, scenario) {
			s.DangerDays++
		}
	}
	if len(days) > 0 {
		s.EndBalance = scenarioBalance(days[len(days)-1], scenario)
	} else {
		s.EndBalance = startBalance
	}
	s.Surplus = s.EndBalance - startBalance
	return s
}

func eventApplies(ev CashEvent, scenario Scenario) bool {
	if scenario == ScenarioPessimistic {
		return ev.AppliesPessimistic
	}
	return ev.AppliesOptimistic
}

func dayInDanger(d DayProjection, scenario Scenario) bool {
	if scenario == ScenarioPessimistic {
		return d.PessimisticDanger
	}
	return d.OptimisticDanger
}

func scenarioBalance(d DayProjection, scenario Scenario) int64 {
	if scenario == ScenarioPessimistic {
		return d.Pessimistic
	}
	return d.Optimistic
}

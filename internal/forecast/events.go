package forecast

import (
	"sort"
	"time"

	"flowcast/internal/model"
)

// SourceType identifies what kind of record produced a cash event.
type SourceType string

const (
	SourceRecurringIncome SourceType = "recurring-income"
	SourceOneOffIncome    SourceType = "one-off-income"
	SourceFixedExpense    SourceType = "fixed-expense"
	SourceOneOffExpense   SourceType = "one-off-expense"
	SourceCreditCard      SourceType = "credit-card"
)

// CashEvent is a single dated cash movement. Amount is signed minor
// currency units: positive for income, negative for expenses and card dues.
// The two Applies flags are the scenario mask: expenses and card dues apply
// in both scenarios, income applies pessimistically only when guaranteed.
type CashEvent struct {
	Date               time.Time
	Amount             int64
	Certainty          model.Certainty
	AppliesOptimistic  bool
	AppliesPessimistic bool
	SourceName         string
	SourceType         SourceType
}

// Materialize converts the entity snapshot into the ordered list of cash
// events falling within [rangeStart, rangeEnd]. Inactive recurring records
// are skipped entirely. The mapping has no side effects and no hidden state.
func Materialize(entities model.EntitySet, rangeStart, rangeEnd time.Time) ([]CashEvent, error) {
	start := DayOf(rangeStart)
	end := DayOf(rangeEnd)

	var events []CashEvent

	for _, inc := range entities.RecurringIncomes {
		if !inc.Active {
			continue
		}
		dates, err := Expand(inc.Schedule, inc.Frequency, start, end)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			events = append(events, CashEvent{
				Date:               d,
				Amount:             inc.Amount,
				Certainty:          inc.Certainty,
				AppliesOptimistic:  true,
				AppliesPessimistic: inc.Certainty == model.CertaintyGuaranteed,
				SourceName:         inc.Name,
				SourceType:         SourceRecurringIncome,
			})
		}
	}

	for _, inc := range entities.SingleIncomes {
		d := DayOf(inc.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		events = append(events, CashEvent{
			Date:               d,
			Amount:             inc.Amount,
			Certainty:          inc.Certainty,
			AppliesOptimistic:  true,
			AppliesPessimistic: inc.Certainty == model.CertaintyGuaranteed,
			SourceName:         inc.Name,
			SourceType:         SourceOneOffIncome,
		})
	}

	for _, exp := range entities.FixedExpenses {
		if !exp.Active {
			continue
		}
		dates, err := Expand(model.DayOfMonthSchedule(exp.DueDay), model.FreqMonthly, start, end)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			events = append(events, expenseEvent(d, exp.Amount, exp.Name, SourceFixedExpense))
		}
	}

	for _, exp := range entities.SingleExpenses {
		d := DayOf(exp.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		events = append(events, expenseEvent(d, exp.Amount, exp.Name, SourceOneOffExpense))
	}

	cardEvents, err := materializeCardDues(entities.CreditCards, entities.FutureStatements, start, end)
	if err != nil {
		return nil, err
	}
	events = append(events, cardEvents...)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func expenseEvent(d time.Time, amount int64, name string, src SourceType) CashEvent {
	return CashEvent{
		Date:               d,
		Amount:             -amount,
		AppliesOptimistic:  true,
		AppliesPessimistic: true,
		SourceName:         name,
		SourceType:         src,
	}
}

// materializeCardDues emits one due event per card per cycle in range. The
// effective amount is the FutureStatement override for that (card, month,
// year) when one exists; the card's current statement balance applies only
// to the nearest cycle. Later cycles without an override contribute nothing
// — card spend is deliberately not projected beyond known amounts.
func materializeCardDues(cards []model.CreditCard, overrides []model.FutureStatement, start, end time.Time) ([]CashEvent, error) {
	type monthKey struct {
		month time.Month
		year  int
	}
	byCard := make(map[string]map[monthKey]int64)
	for _, fs := range overrides {
		if byCard[fs.CardID] == nil {
			byCard[fs.CardID] = make(map[monthKey]int64)
		}
		byCard[fs.CardID][monthKey{time.Month(fs.TargetMonth), fs.TargetYear}] = fs.Amount
	}

	var events []CashEvent
	for _, card := range cards {
		dates, err := Expand(model.DayOfMonthSchedule(card.DueDay), model.FreqMonthly, start, end)
		if err != nil {
			return nil, err
		}
		for i, d := range dates {
			amount, overridden := byCard[card.ID][monthKey{d.Month(), d.Year()}]
			if !overridden {
				if i != 0 {
					continue
				}
				amount = card.StatementBalance
			}
			if amount == 0 {
				continue
			}
			events = append(events, expenseEvent(d, amount, card.Name, SourceCreditCard))
		}
	}
	return events, nil
}

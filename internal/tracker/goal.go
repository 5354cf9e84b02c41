package tracker

import (
	"github.com/shopspring/decimal"

	"fintrack/recur/internal/aggregator"
	"fintrack/recur/internal/generator"
	"fintrack/recur/internal/logging"
	"fintrack/recur/internal/matcher"
	"fintrack/recur/internal/models"
)

// GoalCycles computes the contribution windows for a savings goal and
// reconciles them against the transfer history. Withdrawals carry negative
// amounts; the per-cycle metadata separates the two directions.
func (t *Tracker) GoalCycles(name string, extra []models.Event) (*Result, error) {
	record, err := t.store.Goal(name)
	if err != nil {
		return nil, err
	}

	cycles, err := generator.Generate(record.Recurrence(t.maxCycles()))
	if err != nil {
		return nil, err
	}
	applyOverrides(cycles, record.Overrides)

	events, err := t.store.Events(models.KindGoal, name)
	if err != nil {
		return nil, err
	}
	events = append(events, extra...)

	matched := matcher.Match(cycles, events, t.today(), t.optionsFor(models.KindGoal))
	applyNotes(matched.Cycles, record.Notes)
	fillContributions(matched.Cycles, events)

	t.log.Debug("Computed goal cycles",
		logging.Field{Key: logging.FieldRecord, Value: name},
		logging.Field{Key: logging.FieldCount, Value: len(matched.Cycles)})

	return &Result{
		Kind:      models.KindGoal,
		Name:      name,
		Currency:  record.Currency,
		Cycles:    matched.Cycles,
		Summary:   aggregator.Summarize(matched.Cycles, t.today()),
		Unmatched: matched.Unmatched,
	}, nil
}

// fillContributions splits each cycle's matched events into contributions
// and withdrawals and records the net movement.
func fillContributions(cycles []models.Cycle, events []models.Event) {
	byID := make(map[string]models.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	for i := range cycles {
		contributions := decimal.Zero
		withdrawals := decimal.Zero
		for _, id := range cycles[i].MatchedEvents {
			event, ok := byID[id]
			if !ok {
				continue
			}
			if event.Amount.IsNegative() || event.Kind == models.EventWithdrawal {
				withdrawals = withdrawals.Add(event.Amount.Abs())
			} else {
				contributions = contributions.Add(event.Amount)
			}
		}
		cycles[i].Metadata.Contributions = contributions
		cycles[i].Metadata.Withdrawals = withdrawals
		cycles[i].Metadata.Net = contributions.Sub(withdrawals)
	}
}

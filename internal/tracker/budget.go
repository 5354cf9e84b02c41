package tracker

import (
	"github.com/shopspring/decimal"

	"fintrack/recur/internal/aggregator"
	"fintrack/recur/internal/generator"
	"fintrack/recur/internal/logging"
	"fintrack/recur/internal/matcher"
	"fintrack/recur/internal/models"
)

var hundred = decimal.NewFromInt(100)

// BudgetCycles computes the spending periods for a budget and reconciles
// them against the transaction history, filling the per-cycle usage figures.
func (t *Tracker) BudgetCycles(name string, extra []models.Event) (*Result, error) {
	record, err := t.store.Budget(name)
	if err != nil {
		return nil, err
	}

	cycles, err := generator.Generate(record.Recurrence(t.maxCycles()))
	if err != nil {
		return nil, err
	}
	applyOverrides(cycles, record.Overrides)

	events, err := t.store.Events(models.KindBudget, name)
	if err != nil {
		return nil, err
	}
	events = append(events, extra...)

	matched := matcher.Match(cycles, events, t.today(), t.optionsFor(models.KindBudget))
	applyNotes(matched.Cycles, record.Notes)

	for i := range matched.Cycles {
		fillUsage(&matched.Cycles[i])
	}

	t.log.Debug("Computed budget cycles",
		logging.Field{Key: logging.FieldRecord, Value: name},
		logging.Field{Key: logging.FieldCount, Value: len(matched.Cycles)})

	return &Result{
		Kind:      models.KindBudget,
		Name:      name,
		Currency:  record.Currency,
		Cycles:    matched.Cycles,
		Summary:   aggregator.Summarize(matched.Cycles, t.today()),
		Unmatched: matched.Unmatched,
	}, nil
}

// fillUsage derives the spent/remaining/percent-used summary for one budget
// period. Remaining floors at zero once the envelope is blown.
func fillUsage(c *models.Cycle) {
	c.Metadata.Spent = c.ActualAmount
	remaining := c.ExpectedAmount.Sub(c.ActualAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	c.Metadata.Remaining = remaining
	if c.ExpectedAmount.IsPositive() {
		c.Metadata.PercentUsed = c.ActualAmount.Div(c.ExpectedAmount).Mul(hundred).Round(2)
	}
}

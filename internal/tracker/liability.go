package tracker

import (
	"fintrack/recur/internal/aggregator"
	"fintrack/recur/internal/dateutils"
	"fintrack/recur/internal/generator"
	"fintrack/recur/internal/logging"
	"fintrack/recur/internal/matcher"
	"fintrack/recur/internal/models"
)

// LiabilityCycles computes the installment schedule for a liability and
// reconciles it against its payment history. Scheduled bills override the
// generated expectation per cycle; extra events (e.g. a bank CSV export) are
// merged into the stored history before matching.
func (t *Tracker) LiabilityCycles(name string, extra []models.Event) (*Result, error) {
	record, err := t.store.Liability(name)
	if err != nil {
		return nil, err
	}

	cycles, err := generator.Generate(record.Recurrence(t.maxCycles()))
	if err != nil {
		return nil, err
	}

	bills, err := t.store.Bills(name)
	if err != nil {
		return nil, err
	}
	applyBills(cycles, bills)
	applyOverrides(cycles, record.Overrides)

	events, err := t.store.Events(models.KindLiability, name)
	if err != nil {
		return nil, err
	}
	events = append(events, extra...)

	matched := matcher.Match(cycles, events, t.today(), t.optionsFor(models.KindLiability))
	applyNotes(matched.Cycles, record.Notes)

	t.log.Debug("Computed liability cycles",
		logging.Field{Key: logging.FieldRecord, Value: name},
		logging.Field{Key: logging.FieldCount, Value: len(matched.Cycles)})

	return &Result{
		Kind:      models.KindLiability,
		Name:      name,
		Currency:  record.Currency,
		Cycles:    matched.Cycles,
		Summary:   aggregator.Summarize(matched.Cycles, t.today()),
		Unmatched: matched.Unmatched,
	}, nil
}

// applyBills merges scheduled bills into the generated cycles. A bill with an
// explicit cycle number targets that cycle; otherwise it lands on the cycle
// whose period contains the due date. Bill values win over generated ones,
// and a skipped bill marks its cycle skipped.
func applyBills(cycles []models.Cycle, bills []models.Bill) {
	for _, bill := range bills {
		idx := -1
		if bill.CycleNumber > 0 {
			for i := range cycles {
				if cycles[i].CycleNumber == bill.CycleNumber {
					idx = i
					break
				}
			}
		} else {
			for i := range cycles {
				if cycles[i].Contains(dateutils.Normalize(bill.DueDate)) {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			continue
		}

		cycles[idx].ExpectedDate = dateutils.Normalize(bill.DueDate)
		if bill.Amount.IsPositive() {
			cycles[idx].ExpectedAmount = bill.Amount
		}
		if bill.MinimumAmount != nil {
			minimum := *bill.MinimumAmount
			cycles[idx].MinimumAmount = &minimum
		}
		if bill.Status == models.BillSkipped {
			cycles[idx].Status = models.StatusSkipped
		}
	}
}

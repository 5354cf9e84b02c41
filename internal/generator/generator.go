// Package generator synthesizes the schedule of expected cycles from a
// recurrence configuration. Generation is a pure function: no I/O, no clock,
// deterministic for identical inputs, safe to re-run on every read.
package generator

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/recur/internal/amortizer"
	"fintrack/recur/internal/dateutils"
	"fintrack/recur/internal/models"
)

// Generate produces the ordered, contiguous cycle sequence for the config.
//
// Cycles are numbered densely from 1 and use half-open periods: each cycle's
// EndDate equals the next cycle's StartDate. Generation stops at MaxCycles or
// once the next period would start past EndDate; a final cycle truncated by
// EndDate may be shorter than a full period.
//
// When the config carries interest parameters the cycles are generated
// strictly in order, since each cycle's projected balance seeds the next
// cycle's interest accrual.
func Generate(cfg models.RecurrenceConfig) ([]models.Cycle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	origin := dateutils.Normalize(cfg.StartDate)
	var end *time.Time
	if cfg.EndDate != nil {
		e := dateutils.Normalize(*cfg.EndDate)
		end = &e
	}

	maxCycles := cfg.EffectiveMaxCycles()
	cycles := make([]models.Cycle, 0, maxCycles)

	var balance decimal.Decimal
	withInterest := cfg.HasInterest()
	if withInterest {
		balance = *cfg.StartingBalance
	}

	for number := 1; number <= maxCycles; number++ {
		start := boundary(origin, cfg, number-1)
		if end != nil && start.After(*end) {
			break
		}

		next := boundary(origin, cfg, number)
		cycleEnd := next
		truncated := false
		if end != nil && next.After(*end) {
			// Last period covers through the configured end date.
			cycleEnd = dateutils.AddDays(*end, 1)
			truncated = true
		}

		cycle := models.Cycle{
			CycleNumber:    number,
			StartDate:      start,
			EndDate:        cycleEnd,
			ExpectedDate:   expectedDate(start, cfg),
			ExpectedAmount: cfg.ExpectedAmount,
			Status:         models.StatusUpcoming,
			AmountClass:    models.AmountNone,
		}

		if withInterest {
			days := dateutils.DaysBetween(start, cycleEnd)
			principal, interest, newBalance, unpaid, negAm := amortizer.PeriodSplit(
				cfg.ExpectedAmount, balance, *cfg.InterestRate, days, cfg.InterestIncluded)
			cycle.Principal = &principal
			cycle.Interest = &interest
			cycle.ProjectedBalance = &newBalance
			cycle.Metadata.NegativeAmortization = negAm
			cycle.Metadata.UnpaidInterest = unpaid
			balance = newBalance
		}

		cycles = append(cycles, cycle)
		if truncated {
			break
		}
	}

	return cycles, nil
}

// boundary computes the start of period index n (0-based) from the original
// start date. Boundaries always derive from the origin rather than the
// previous boundary so a clamped month does not erode the anchor day
// (Jan 31, Feb 29, Mar 31 rather than Jan 31, Feb 29, Mar 29).
func boundary(origin time.Time, cfg models.RecurrenceConfig, n int) time.Time {
	if n == 0 {
		return origin
	}
	if months := cfg.MonthsPerStep(); months > 0 {
		return dateutils.AddMonthsClamped(origin, months*cfg.Interval*n)
	}
	return dateutils.AddDays(origin, cfg.DaysPerStep()*cfg.Interval*n)
}

// expectedDate is the due date within a period: the anchor day clamped into
// the period's month for monthly-family frequencies, the period start for
// day and week based frequencies.
func expectedDate(periodStart time.Time, cfg models.RecurrenceConfig) time.Time {
	if cfg.IsMonthlyFamily() {
		return dateutils.ClampDayToMonth(periodStart.Year(), periodStart.Month(), cfg.DueDay)
	}
	return periodStart
}

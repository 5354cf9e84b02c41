// Package aggregator derives the current/upcoming/past partitions and the
// summary statistics from a matched cycle list. It never recomputes matching;
// everything is a single pass over the cycles it is handed.
package aggregator

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/recur/internal/dateutils"
	"fintrack/recur/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Statistics summarizes cycle outcomes.
type Statistics struct {
	TotalCycles   int
	OnTimeCount   int
	OverdueCount  int
	OverpaidCount int
	PartialCount  int
	// OnTimeRate is the percentage of resolved cycles (anything past
	// upcoming) that were paid in full on time.
	OnTimeRate decimal.Decimal
	// AverageUsage is the mean actual/expected percentage across started
	// cycles, the headline figure for budget-style schedules.
	AverageUsage decimal.Decimal
}

// Summary is the aggregated view callers render.
type Summary struct {
	// Current is the cycle whose [StartDate, EndDate) period contains
	// today; nil when the schedule is fully past or fully future.
	Current  *models.Cycle
	Upcoming []models.Cycle
	Past     []models.Cycle
	Stats    Statistics
}

// Summarize partitions the cycles around today and computes the statistics.
// Upcoming cycles are ascending, past cycles descending (most recent first).
func Summarize(cycles []models.Cycle, today time.Time) Summary {
	today = dateutils.Normalize(today)

	summary := Summary{Stats: Statistics{TotalCycles: len(cycles)}}

	resolved := 0
	usageCount := 0
	usageSum := decimal.Zero

	for _, c := range cycles {
		switch {
		case c.Contains(today):
			current := c
			summary.Current = &current
		case c.StartDate.After(today):
			summary.Upcoming = append(summary.Upcoming, c)
		case !c.EndDate.After(today):
			summary.Past = append(summary.Past, c)
		}

		switch c.Status {
		case models.StatusPaidOnTime:
			summary.Stats.OnTimeCount++
			resolved++
		case models.StatusOverdue:
			summary.Stats.OverdueCount++
			resolved++
		case models.StatusOverpaid:
			summary.Stats.OverpaidCount++
			resolved++
		case models.StatusPartial:
			summary.Stats.PartialCount++
			resolved++
		}

		if c.ExpectedAmount.IsPositive() && !c.StartDate.After(today) {
			usageSum = usageSum.Add(c.ActualAmount.Div(c.ExpectedAmount).Mul(hundred))
			usageCount++
		}
	}

	// Generation emitted ascending; past cycles read most recent first.
	for i, j := 0, len(summary.Past)-1; i < j; i, j = i+1, j-1 {
		summary.Past[i], summary.Past[j] = summary.Past[j], summary.Past[i]
	}

	if resolved > 0 {
		summary.Stats.OnTimeRate = decimal.NewFromInt(int64(summary.Stats.OnTimeCount)).
			Div(decimal.NewFromInt(int64(resolved))).Mul(hundred).Round(2)
	}
	if usageCount > 0 {
		summary.Stats.AverageUsage = usageSum.
			Div(decimal.NewFromInt(int64(usageCount))).Round(2)
	}

	return summary
}

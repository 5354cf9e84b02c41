// Package matcher reconciles actual monetary events against generated cycles.
//
// Matching is tolerance-based: an event attaches to the cycle whose expected
// date lies within the configured day window, closest cycle first. Events
// outside every window are surfaced as a side list, never forced onto the
// nearest cycle and never dropped silently.
package matcher

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/recur/internal/dateutils"
	"fintrack/recur/internal/models"
)

// Options control the matching tolerances.
type Options struct {
	// ToleranceDays is the maximum day distance between an event date and a
	// cycle's expected date for the event to attach.
	ToleranceDays int
	// AmountTolerancePct is the fractional slack when comparing the
	// accumulated actual amount to the expectation (0.01 = 1%).
	AmountTolerancePct decimal.Decimal
}

// DefaultOptions returns the balanced tolerances most callers use.
func DefaultOptions() Options {
	return Options{
		ToleranceDays:      7,
		AmountTolerancePct: decimal.NewFromFloat(0.01),
	}
}

// StrictOptions returns tight tolerances, suited to loan installments.
func StrictOptions() Options {
	return Options{
		ToleranceDays:      3,
		AmountTolerancePct: decimal.NewFromFloat(0.005),
	}
}

// RelaxedOptions returns loose tolerances, suited to discretionary budgets.
func RelaxedOptions() Options {
	return Options{
		ToleranceDays:      10,
		AmountTolerancePct: decimal.NewFromFloat(0.05),
	}
}

// Result carries the annotated cycles plus the events no cycle claimed.
type Result struct {
	Cycles    []models.Cycle
	Unmatched []models.Event
}

// Match annotates the cycles with matched events, accumulated amounts,
// timing/amount classification and terminal status, evaluated as of today.
//
// The inputs are not mutated; matching the same events against the same
// cycles always yields identical assignments.
func Match(cycles []models.Cycle, events []models.Event, today time.Time, opts Options) Result {
	today = dateutils.Normalize(today)

	matched := make([]models.Cycle, len(cycles))
	copy(matched, cycles)
	for i := range matched {
		matched[i].ActualAmount = decimal.Zero
		matched[i].MatchedEvents = nil
	}

	// Stable event order keeps assignment deterministic regardless of how
	// the store returned the history.
	ordered := make([]models.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].ID < ordered[j].ID
	})

	timings := make(map[int][]models.Timing, len(matched))
	var unmatched []models.Event

	for _, event := range ordered {
		idx := closestCycle(matched, event.Date, opts.ToleranceDays)
		if idx < 0 {
			unmatched = append(unmatched, event)
			continue
		}
		matched[idx].MatchedEvents = append(matched[idx].MatchedEvents, event.ID)
		matched[idx].ActualAmount = matched[idx].ActualAmount.Add(event.Amount)
		timings[idx] = append(timings[idx], classifyTiming(matched[idx].ExpectedDate, event.Date))
	}

	for i := range matched {
		matched[i].Timing = combineTimings(timings[i])
		matched[i].AmountClass = classifyAmount(matched[i], opts)
		matched[i].Status = deriveStatus(matched[i], today, opts)
	}

	return Result{Cycles: matched, Unmatched: unmatched}
}

// closestCycle returns the index of the cycle whose expected date is nearest
// to the event date within the tolerance window, or -1. Ties on absolute day
// distance go to the earlier cycle.
func closestCycle(cycles []models.Cycle, eventDate time.Time, toleranceDays int) int {
	best := -1
	bestDist := 0
	for i, c := range cycles {
		dist := dateutils.AbsDaysBetween(c.ExpectedDate, eventDate)
		if dist > toleranceDays {
			continue
		}
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

func classifyTiming(expected, eventDate time.Time) models.Timing {
	switch diff := dateutils.DaysBetween(expected, eventDate); {
	case diff == 0:
		return models.TimingOnTime
	case diff < 0:
		return models.TimingEarly
	default:
		return models.TimingLate
	}
}

// combineTimings reduces per-event timings to a single cycle-level class.
// A cycle whose events do not agree is only known to be inside the window.
func combineTimings(timings []models.Timing) models.Timing {
	if len(timings) == 0 {
		return ""
	}
	first := timings[0]
	for _, t := range timings[1:] {
		if t != first {
			return models.TimingWithinWindow
		}
	}
	return first
}

func classifyAmount(c models.Cycle, opts Options) models.AmountClass {
	if !c.IsMatched() {
		return models.AmountNone
	}
	tolerance := c.ExpectedAmount.Mul(opts.AmountTolerancePct)
	diff := c.ActualAmount.Sub(c.ExpectedAmount)
	switch {
	case diff.Abs().LessThanOrEqual(tolerance):
		return models.AmountExact
	case diff.IsPositive():
		return models.AmountOver
	default:
		return models.AmountUnder
	}
}

// deriveStatus applies the terminal per-cycle state in priority order.
// A skipped status set upstream (from a skipped bill) is preserved.
func deriveStatus(c models.Cycle, today time.Time, opts Options) models.CycleStatus {
	if c.Status == models.StatusSkipped {
		return models.StatusSkipped
	}
	if !c.IsMatched() {
		if c.ExpectedDate.Before(today) {
			return models.StatusOverdue
		}
		return models.StatusUpcoming
	}
	switch classifyAmount(c, opts) {
	case models.AmountOver:
		return models.StatusOverpaid
	case models.AmountUnder:
		return models.StatusPartial
	default:
		return models.StatusPaidOnTime
	}
}

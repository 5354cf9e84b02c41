package matcher

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/recur/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// monthlyCycles builds n contiguous monthly cycles expected on the 1st,
// starting January 2024.
func monthlyCycles(n int, amount string) []models.Cycle {
	cycles := make([]models.Cycle, 0, n)
	start := date(2024, time.January, 1)
	for i := 0; i < n; i++ {
		s := start.AddDate(0, i, 0)
		e := start.AddDate(0, i+1, 0)
		cycles = append(cycles, models.Cycle{
			CycleNumber:    i + 1,
			StartDate:      s,
			EndDate:        e,
			ExpectedDate:   s,
			ExpectedAmount: dec(amount),
			Status:         models.StatusUpcoming,
			AmountClass:    models.AmountNone,
		})
	}
	return cycles
}

func event(id string, d time.Time, amount string) models.Event {
	return models.Event{ID: id, Date: d, Amount: dec(amount), Kind: models.EventPayment}
}

func TestMatchExactPayment(t *testing.T) {
	cycles := monthlyCycles(3, "500")
	events := []models.Event{event("e1", date(2024, time.January, 1), "500")}
	today := date(2024, time.March, 15)

	res := Match(cycles, events, today, DefaultOptions())

	require.Len(t, res.Cycles, 3)
	assert.Empty(t, res.Unmatched)

	first := res.Cycles[0]
	assert.Equal(t, []string{"e1"}, first.MatchedEvents)
	assert.Equal(t, "500", first.ActualAmount.String())
	assert.Equal(t, models.StatusPaidOnTime, first.Status)
	assert.Equal(t, models.TimingOnTime, first.Timing)
	assert.Equal(t, models.AmountExact, first.AmountClass)
}

func TestMatchToleranceBoundary(t *testing.T) {
	today := date(2024, time.June, 1)

	t.Run("event exactly at the window edge matches", func(t *testing.T) {
		cycles := monthlyCycles(1, "500")
		events := []models.Event{event("e1", date(2024, time.January, 8), "500")}

		res := Match(cycles, events, today, DefaultOptions())
		assert.Empty(t, res.Unmatched)
		assert.Equal(t, []string{"e1"}, res.Cycles[0].MatchedEvents)
		assert.Equal(t, models.TimingLate, res.Cycles[0].Timing)
	})

	t.Run("event one day past the window stays unmatched", func(t *testing.T) {
		cycles := monthlyCycles(1, "500")
		events := []models.Event{event("e1", date(2024, time.January, 9), "500")}

		res := Match(cycles, events, today, DefaultOptions())
		require.Len(t, res.Unmatched, 1)
		assert.Equal(t, "e1", res.Unmatched[0].ID)
		assert.Empty(t, res.Cycles[0].MatchedEvents)
		assert.Equal(t, models.StatusOverdue, res.Cycles[0].Status)
	})

	t.Run("early side of the window", func(t *testing.T) {
		cycles := monthlyCycles(2, "500")
		events := []models.Event{event("e1", date(2024, time.January, 26), "500")}

		res := Match(cycles, events, today, DefaultOptions())
		// Jan 26 is 25 days from cycle 1 and 6 days from cycle 2.
		assert.Equal(t, []string{"e1"}, res.Cycles[1].MatchedEvents)
		assert.Equal(t, models.TimingEarly, res.Cycles[1].Timing)
	})
}

func TestMatchTieGoesToEarlierCycle(t *testing.T) {
	// Two cycles expected 14 days apart; the event sits exactly between.
	cycles := []models.Cycle{
		{CycleNumber: 1, StartDate: date(2024, time.January, 1), EndDate: date(2024, time.January, 15),
			ExpectedDate: date(2024, time.January, 1), ExpectedAmount: dec("100"), Status: models.StatusUpcoming},
		{CycleNumber: 2, StartDate: date(2024, time.January, 15), EndDate: date(2024, time.January, 29),
			ExpectedDate: date(2024, time.January, 15), ExpectedAmount: dec("100"), Status: models.StatusUpcoming},
	}
	events := []models.Event{event("e1", date(2024, time.January, 8), "100")}

	res := Match(cycles, events, date(2024, time.February, 1), DefaultOptions())

	assert.Equal(t, []string{"e1"}, res.Cycles[0].MatchedEvents)
	assert.Empty(t, res.Cycles[1].MatchedEvents)
}

func TestMatchAccumulatesMultipleEvents(t *testing.T) {
	cycles := monthlyCycles(1, "500")
	events := []models.Event{
		event("e2", date(2024, time.January, 3), "200"),
		event("e1", date(2024, time.January, 1), "300"),
	}

	res := Match(cycles, events, date(2024, time.February, 15), DefaultOptions())

	first := res.Cycles[0]
	// Events attach in date order regardless of input order.
	assert.Equal(t, []string{"e1", "e2"}, first.MatchedEvents)
	assert.Equal(t, "500", first.ActualAmount.String())
	assert.Equal(t, models.StatusPaidOnTime, first.Status)
	// Mixed on-time and late events collapse to within-window.
	assert.Equal(t, models.TimingWithinWindow, first.Timing)
}

func TestMatchAmountClassification(t *testing.T) {
	today := date(2024, time.February, 15)
	tests := []struct {
		name       string
		amount     string
		wantClass  models.AmountClass
		wantStatus models.CycleStatus
	}{
		{name: "exact", amount: "500", wantClass: models.AmountExact, wantStatus: models.StatusPaidOnTime},
		{name: "within one percent", amount: "495", wantClass: models.AmountExact, wantStatus: models.StatusPaidOnTime},
		{name: "under", amount: "300", wantClass: models.AmountUnder, wantStatus: models.StatusPartial},
		{name: "over", amount: "600", wantClass: models.AmountOver, wantStatus: models.StatusOverpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cycles := monthlyCycles(1, "500")
			events := []models.Event{event("e1", date(2024, time.January, 1), tt.amount)}

			res := Match(cycles, events, today, DefaultOptions())
			assert.Equal(t, tt.wantClass, res.Cycles[0].AmountClass)
			assert.Equal(t, tt.wantStatus, res.Cycles[0].Status)
		})
	}
}

func TestMatchStatusByDate(t *testing.T) {
	cycles := monthlyCycles(3, "500")

	res := Match(cycles, nil, date(2024, time.February, 15), DefaultOptions())

	// Expected Jan 1 is past, Feb 1 is past, Mar 1 is ahead.
	assert.Equal(t, models.StatusOverdue, res.Cycles[0].Status)
	assert.Equal(t, models.StatusOverdue, res.Cycles[1].Status)
	assert.Equal(t, models.StatusUpcoming, res.Cycles[2].Status)
}

func TestMatchPreservesSkipped(t *testing.T) {
	cycles := monthlyCycles(1, "500")
	cycles[0].Status = models.StatusSkipped

	res := Match(cycles, nil, date(2024, time.June, 1), DefaultOptions())
	assert.Equal(t, models.StatusSkipped, res.Cycles[0].Status)
}

func TestMatchDoesNotMutateInputs(t *testing.T) {
	cycles := monthlyCycles(1, "500")
	events := []models.Event{event("e1", date(2024, time.January, 1), "500")}

	_ = Match(cycles, events, date(2024, time.February, 1), DefaultOptions())

	assert.Empty(t, cycles[0].MatchedEvents)
	assert.True(t, cycles[0].ActualAmount.IsZero())
}

func TestMatchIdempotent(t *testing.T) {
	cycles := monthlyCycles(3, "500")
	events := []models.Event{
		event("e1", date(2024, time.January, 2), "500"),
		event("e2", date(2024, time.February, 1), "250"),
		event("e3", date(2024, time.April, 20), "500"),
	}
	today := date(2024, time.March, 10)

	first := Match(cycles, events, today, DefaultOptions())
	second := Match(cycles, events, today, DefaultOptions())
	assert.Equal(t, first, second)

	// Re-matching the already annotated cycles also converges.
	third := Match(first.Cycles, events, today, DefaultOptions())
	assert.Equal(t, first.Cycles, third.Cycles)
}

func TestMatchUnmatchedSurfaced(t *testing.T) {
	cycles := monthlyCycles(1, "500")
	events := []models.Event{
		event("e1", date(2024, time.January, 1), "500"),
		event("stray", date(2024, time.June, 20), "42"),
	}

	res := Match(cycles, events, date(2024, time.July, 1), DefaultOptions())

	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, "stray", res.Unmatched[0].ID)
	// The stray amount is not forced onto any cycle.
	assert.Equal(t, "500", res.Cycles[0].ActualAmount.String())
}

func TestOptionFactories(t *testing.T) {
	assert.Equal(t, 7, DefaultOptions().ToleranceDays)
	assert.Equal(t, 3, StrictOptions().ToleranceDays)
	assert.Equal(t, 10, RelaxedOptions().ToleranceDays)
	assert.True(t, StrictOptions().AmountTolerancePct.LessThan(RelaxedOptions().AmountTolerancePct))
}

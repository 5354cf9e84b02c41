package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecurrenceConfigValidate(t *testing.T) {
	valid := RecurrenceConfig{
		StartDate:      date(2024, time.January, 1),
		Frequency:      FrequencyMonthly,
		Interval:       1,
		DueDay:         15,
		ExpectedAmount: dec("100"),
	}
	assert.NoError(t, valid.Validate())

	t.Run("due day only constrained for monthly family", func(t *testing.T) {
		weekly := valid
		weekly.Frequency = FrequencyWeekly
		weekly.DueDay = 0
		assert.NoError(t, weekly.Validate())
	})

	t.Run("custom unit accepted", func(t *testing.T) {
		custom := valid
		custom.Frequency = FrequencyCustom
		custom.CustomUnit = UnitWeeks
		custom.DueDay = 0
		assert.NoError(t, custom.Validate())
	})

	t.Run("zero amount allowed", func(t *testing.T) {
		zero := valid
		zero.ExpectedAmount = decimal.Zero
		assert.NoError(t, zero.Validate())
	})
}

func TestRecurrenceConfigSteps(t *testing.T) {
	tests := []struct {
		name       string
		frequency  Frequency
		unit       CustomUnit
		wantMonths int
		wantDays   int
	}{
		{name: "daily", frequency: FrequencyDaily, wantDays: 1},
		{name: "weekly", frequency: FrequencyWeekly, wantDays: 7},
		{name: "monthly", frequency: FrequencyMonthly, wantMonths: 1},
		{name: "quarterly", frequency: FrequencyQuarterly, wantMonths: 3},
		{name: "yearly", frequency: FrequencyYearly, wantMonths: 12},
		{name: "custom days", frequency: FrequencyCustom, unit: UnitDays, wantDays: 1},
		{name: "custom weeks", frequency: FrequencyCustom, unit: UnitWeeks, wantDays: 7},
		{name: "custom months", frequency: FrequencyCustom, unit: UnitMonths, wantMonths: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RecurrenceConfig{Frequency: tt.frequency, CustomUnit: tt.unit}
			assert.Equal(t, tt.wantMonths, cfg.MonthsPerStep())
			assert.Equal(t, tt.wantDays, cfg.DaysPerStep())
			assert.Equal(t, tt.wantMonths > 0, cfg.IsMonthlyFamily())
		})
	}
}

func TestEffectiveMaxCycles(t *testing.T) {
	assert.Equal(t, DefaultMaxCycles, RecurrenceConfig{}.EffectiveMaxCycles())
	assert.Equal(t, DefaultMaxCycles, RecurrenceConfig{MaxCycles: -1}.EffectiveMaxCycles())
	assert.Equal(t, 24, RecurrenceConfig{MaxCycles: 24}.EffectiveMaxCycles())
}

func TestCycleContains(t *testing.T) {
	c := Cycle{
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.February, 1),
	}

	assert.True(t, c.Contains(date(2024, time.January, 1)))
	assert.True(t, c.Contains(date(2024, time.January, 31)))
	// End boundary belongs to the next cycle.
	assert.False(t, c.Contains(date(2024, time.February, 1)))
	assert.False(t, c.Contains(date(2023, time.December, 31)))
}

func TestCycleOverrideApply(t *testing.T) {
	base := Cycle{
		CycleNumber:    1,
		ExpectedDate:   date(2024, time.January, 1),
		ExpectedAmount: dec("500"),
	}

	t.Run("all fields", func(t *testing.T) {
		c := base
		amount := dec("750")
		newDate := date(2024, time.January, 10)
		minimum := dec("25")
		notes := "deferred start"

		CycleOverride{
			ExpectedAmount: &amount,
			ExpectedDate:   &newDate,
			MinimumAmount:  &minimum,
			Notes:          &notes,
		}.Apply(&c)

		assert.Equal(t, "750", c.ExpectedAmount.String())
		assert.Equal(t, newDate, c.ExpectedDate)
		require.NotNil(t, c.MinimumAmount)
		assert.Equal(t, "25", c.MinimumAmount.String())
		assert.Equal(t, "deferred start", c.Notes)
	})

	t.Run("nil fields leave values alone", func(t *testing.T) {
		c := base
		CycleOverride{}.Apply(&c)

		assert.Equal(t, "500", c.ExpectedAmount.String())
		assert.Equal(t, date(2024, time.January, 1), c.ExpectedDate)
		assert.Nil(t, c.MinimumAmount)
		assert.Empty(t, c.Notes)
	})
}

func TestLiabilityRecurrence(t *testing.T) {
	record := LiabilityRecord{
		Name:           "car-loan",
		StartDate:      date(2024, time.January, 1),
		PaymentAmount:  dec("1000"),
		Frequency:      FrequencyMonthly,
		Interval:       1,
		DueDay:         1,
		CurrentBalance: dec("10000"),
		AnnualRate:     dec("12"),
	}

	cfg := record.Recurrence(6)

	assert.Equal(t, 6, cfg.MaxCycles)
	assert.True(t, cfg.InterestIncluded)
	require.True(t, cfg.HasInterest())
	assert.Equal(t, "12", cfg.InterestRate.String())
	assert.Equal(t, "10000", cfg.StartingBalance.String())
}

func TestBudgetRecurrenceDefaultsDueDay(t *testing.T) {
	record := BudgetRecord{
		Name:      "groceries",
		StartDate: date(2024, time.January, 5),
		Amount:    dec("400"),
		Frequency: FrequencyMonthly,
		Interval:  1,
	}

	cfg := record.Recurrence(12)

	assert.Equal(t, 5, cfg.DueDay)
	assert.False(t, cfg.HasInterest())
}

func TestGoalRecurrenceTargetDate(t *testing.T) {
	target := date(2024, time.December, 31)
	record := GoalRecord{
		Name:               "vacation",
		StartDate:          date(2024, time.January, 1),
		TargetDate:         &target,
		TargetAmount:       dec("6000"),
		ContributionAmount: dec("500"),
		Frequency:          FrequencyMonthly,
		Interval:           1,
	}

	cfg := record.Recurrence(24)

	require.NotNil(t, cfg.EndDate)
	assert.Equal(t, target, *cfg.EndDate)
	assert.Equal(t, "500", cfg.ExpectedAmount.String())
}

func TestMoney(t *testing.T) {
	a := NewMoney(dec("100.50"), "CHF")
	b := NewMoney(dec("49.50"), "CHF")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "150.00 CHF", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "51.00 CHF", diff.String())

	_, err = a.Add(NewMoney(dec("1"), "EUR"))
	assert.Error(t, err)

	assert.True(t, ZeroMoney("CHF").IsZero())
	assert.Equal(t, "5.00", NewMoney(dec("5"), "").String())
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(date(2024, time.March, 1), dec("99.95"), EventPayment)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventPayment, e.Kind)
	assert.NotEqual(t, e.ID, NewEvent(e.Date, e.Amount, e.Kind).ID)
}

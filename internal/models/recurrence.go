// Package models provides the data structures used throughout the application.
package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/recur/internal/cycleerror"
)

// Frequency describes how often a recurring cycle repeats.
type Frequency string

const (
	// FrequencyDaily repeats every Interval days.
	FrequencyDaily Frequency = "daily"
	// FrequencyWeekly repeats every Interval weeks.
	FrequencyWeekly Frequency = "weekly"
	// FrequencyMonthly repeats every Interval months.
	FrequencyMonthly Frequency = "monthly"
	// FrequencyQuarterly repeats every Interval quarters (3 months).
	FrequencyQuarterly Frequency = "quarterly"
	// FrequencyYearly repeats every Interval years (12 months).
	FrequencyYearly Frequency = "yearly"
	// FrequencyCustom repeats every Interval CustomUnit steps.
	FrequencyCustom Frequency = "custom"
)

// CustomUnit is the step unit for FrequencyCustom.
type CustomUnit string

const (
	UnitDays   CustomUnit = "days"
	UnitWeeks  CustomUnit = "weeks"
	UnitMonths CustomUnit = "months"
)

// DefaultMaxCycles caps schedule generation when the config does not say otherwise.
const DefaultMaxCycles = 12

// RecurrenceConfig is the immutable input to schedule generation.
// Interest parameters (Rate/StartingBalance) are optional; when both are set
// the generator computes a principal/interest split per cycle.
type RecurrenceConfig struct {
	StartDate      time.Time
	EndDate        *time.Time
	Frequency      Frequency
	Interval       int
	CustomUnit     CustomUnit
	DueDay         int // anchor day-of-month for monthly-family frequencies, clamped to month length
	ExpectedAmount decimal.Decimal
	MaxCycles      int

	InterestRate     *decimal.Decimal // annual percentage, e.g. 12 for 12%
	StartingBalance  *decimal.Decimal
	InterestIncluded bool // ExpectedAmount already contains interest (vs principal-only)
}

// IsMonthlyFamily reports whether period boundaries advance in calendar months.
func (c RecurrenceConfig) IsMonthlyFamily() bool {
	switch c.Frequency {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	case FrequencyCustom:
		return c.CustomUnit == UnitMonths
	default:
		return false
	}
}

// MonthsPerStep returns the number of calendar months one period advances,
// before applying Interval. Zero for day/week based frequencies.
func (c RecurrenceConfig) MonthsPerStep() int {
	switch c.Frequency {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyYearly:
		return 12
	case FrequencyCustom:
		if c.CustomUnit == UnitMonths {
			return 1
		}
	}
	return 0
}

// DaysPerStep returns the number of calendar days one period advances,
// before applying Interval. Zero for month based frequencies.
func (c RecurrenceConfig) DaysPerStep() int {
	switch c.Frequency {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyCustom:
		switch c.CustomUnit {
		case UnitDays:
			return 1
		case UnitWeeks:
			return 7
		}
	}
	return 0
}

// HasInterest reports whether the config carries enough information for
// amortization (both an annual rate and a starting balance).
func (c RecurrenceConfig) HasInterest() bool {
	return c.InterestRate != nil && c.StartingBalance != nil
}

// EffectiveMaxCycles returns MaxCycles, falling back to DefaultMaxCycles.
func (c RecurrenceConfig) EffectiveMaxCycles() int {
	if c.MaxCycles <= 0 {
		return DefaultMaxCycles
	}
	return c.MaxCycles
}

// Validate checks the recurrence parameters and returns a ConfigError for the
// first malformed field. Day-of-month clamping is deliberately not an error.
func (c RecurrenceConfig) Validate() error {
	if c.StartDate.IsZero() {
		return &cycleerror.ConfigError{Field: "startDate", Value: "", Reason: "start date is required"}
	}
	switch c.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
	case FrequencyCustom:
		switch c.CustomUnit {
		case UnitDays, UnitWeeks, UnitMonths:
		default:
			return &cycleerror.ConfigError{
				Field:  "customUnit",
				Value:  string(c.CustomUnit),
				Reason: "custom frequency requires a unit of days, weeks or months",
			}
		}
	default:
		return &cycleerror.ConfigError{
			Field:  "frequency",
			Value:  string(c.Frequency),
			Reason: "unknown frequency",
		}
	}
	if c.Interval < 1 {
		return &cycleerror.ConfigError{
			Field:  "interval",
			Value:  strconv.Itoa(c.Interval),
			Reason: "interval must be a positive integer",
		}
	}
	if c.IsMonthlyFamily() && (c.DueDay < 1 || c.DueDay > 31) {
		return &cycleerror.ConfigError{
			Field:  "dueDay",
			Value:  strconv.Itoa(c.DueDay),
			Reason: "anchor day must be between 1 and 31",
		}
	}
	if c.ExpectedAmount.IsNegative() {
		return &cycleerror.ConfigError{
			Field:  "expectedAmount",
			Value:  c.ExpectedAmount.String(),
			Reason: "expected amount must not be negative",
		}
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return &cycleerror.ConfigError{
			Field:  "endDate",
			Value:  c.EndDate.Format("2006-01-02"),
			Reason: "end date precedes start date",
		}
	}
	return nil
}

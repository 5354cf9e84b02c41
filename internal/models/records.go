package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind names the three tracked record families.
type RecordKind string

const (
	KindLiability RecordKind = "liability"
	KindBudget    RecordKind = "budget"
	KindGoal      RecordKind = "goal"
)

// LiabilityRecord is an interest-bearing obligation (loan, mortgage, card)
// as stored externally. The engine reads it, never mutates its balance.
type LiabilityRecord struct {
	Name           string
	StartDate      time.Time
	EndDate        *time.Time
	PaymentAmount  decimal.Decimal
	Frequency      Frequency
	Interval       int
	CustomUnit     CustomUnit
	DueDay         int
	CurrentBalance decimal.Decimal
	AnnualRate     decimal.Decimal
	Currency       string
	Overrides      map[int]CycleOverride
	Notes          map[int]string
}

// Recurrence derives the generation input from the stored record.
// Payment amounts on a liability are expected to include accrued interest.
func (r LiabilityRecord) Recurrence(maxCycles int) RecurrenceConfig {
	rate := r.AnnualRate
	balance := r.CurrentBalance
	return RecurrenceConfig{
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Frequency:        r.Frequency,
		Interval:         r.Interval,
		CustomUnit:       r.CustomUnit,
		DueDay:           r.DueDay,
		ExpectedAmount:   r.PaymentAmount,
		MaxCycles:        maxCycles,
		InterestRate:     &rate,
		StartingBalance:  &balance,
		InterestIncluded: true,
	}
}

// BudgetRecord is a spending envelope tracked over recurring periods.
type BudgetRecord struct {
	Name       string
	StartDate  time.Time
	EndDate    *time.Time
	Amount     decimal.Decimal
	Frequency  Frequency
	Interval   int
	CustomUnit CustomUnit
	DueDay     int
	Currency   string
	Overrides  map[int]CycleOverride
	Notes      map[int]string
}

// Recurrence derives the generation input from the stored record.
func (r BudgetRecord) Recurrence(maxCycles int) RecurrenceConfig {
	dueDay := r.DueDay
	if dueDay == 0 {
		dueDay = r.StartDate.Day()
	}
	return RecurrenceConfig{
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Frequency:      r.Frequency,
		Interval:       r.Interval,
		CustomUnit:     r.CustomUnit,
		DueDay:         dueDay,
		ExpectedAmount: r.Amount,
		MaxCycles:      maxCycles,
	}
}

// GoalRecord is a savings goal with a per-period contribution target.
type GoalRecord struct {
	Name               string
	StartDate          time.Time
	TargetDate         *time.Time
	TargetAmount       decimal.Decimal
	ContributionAmount decimal.Decimal
	Frequency          Frequency
	Interval           int
	CustomUnit         CustomUnit
	DueDay             int
	Currency           string
	Overrides          map[int]CycleOverride
	Notes              map[int]string
}

// Recurrence derives the generation input from the stored record. The target
// date truncates generation the same way a liability end date does.
func (r GoalRecord) Recurrence(maxCycles int) RecurrenceConfig {
	dueDay := r.DueDay
	if dueDay == 0 {
		dueDay = r.StartDate.Day()
	}
	return RecurrenceConfig{
		StartDate:      r.StartDate,
		EndDate:        r.TargetDate,
		Frequency:      r.Frequency,
		Interval:       r.Interval,
		CustomUnit:     r.CustomUnit,
		DueDay:         dueDay,
		ExpectedAmount: r.ContributionAmount,
		MaxCycles:      maxCycles,
	}
}

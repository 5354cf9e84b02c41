package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CycleStatus is the terminal per-cycle state derived after matching.
type CycleStatus string

const (
	StatusUpcoming   CycleStatus = "upcoming"
	StatusPaidOnTime CycleStatus = "paid_on_time"
	StatusPartial    CycleStatus = "partial"
	StatusOverpaid   CycleStatus = "overpaid"
	StatusOverdue    CycleStatus = "overdue"
	StatusSkipped    CycleStatus = "skipped"
)

// Timing classifies when matched events arrived relative to the expected date.
type Timing string

const (
	TimingEarly        Timing = "early"
	TimingOnTime       Timing = "on_time"
	TimingWithinWindow Timing = "within_window"
	TimingLate         Timing = "late"
)

// AmountClass classifies the accumulated actual amount against the expectation.
type AmountClass string

const (
	AmountExact AmountClass = "exact"
	AmountOver  AmountClass = "over"
	AmountUnder AmountClass = "under"
	AmountNone  AmountClass = "none"
)

// CycleMetadata carries derived per-cycle summary values. Which fields are
// populated depends on the caller: budgets fill the usage figures, goals the
// contribution figures, liabilities the amortization flags.
type CycleMetadata struct {
	Spent         decimal.Decimal
	Remaining     decimal.Decimal
	PercentUsed   decimal.Decimal
	Contributions decimal.Decimal
	Withdrawals   decimal.Decimal
	Net           decimal.Decimal

	NegativeAmortization bool
	UnpaidInterest       decimal.Decimal
}

// Cycle is one scheduled period of a recurring schedule: a loan installment,
// a budget month, or a goal contribution window. Periods are half-open;
// EndDate equals the next cycle's StartDate.
type Cycle struct {
	CycleNumber  int
	StartDate    time.Time
	EndDate      time.Time
	ExpectedDate time.Time

	ExpectedAmount decimal.Decimal
	MinimumAmount  *decimal.Decimal

	// Amortization split, present only when the recurrence config carried
	// interest parameters.
	Principal        *decimal.Decimal
	Interest         *decimal.Decimal
	ProjectedBalance *decimal.Decimal

	ActualAmount  decimal.Decimal
	Status        CycleStatus
	Timing        Timing
	AmountClass   AmountClass
	MatchedEvents []string

	Notes    string
	Metadata CycleMetadata
}

// Contains reports whether the given date falls inside the cycle's
// half-open [StartDate, EndDate) period.
func (c Cycle) Contains(date time.Time) bool {
	return !date.Before(c.StartDate) && date.Before(c.EndDate)
}

// IsMatched reports whether at least one event was matched to the cycle.
func (c Cycle) IsMatched() bool {
	return len(c.MatchedEvents) > 0
}

// CycleOverride is a persisted, user-supplied correction to a generated
// cycle, keyed by cycle number. Nil fields leave the generated value alone.
type CycleOverride struct {
	ExpectedAmount *decimal.Decimal
	ExpectedDate   *time.Time
	MinimumAmount  *decimal.Decimal
	Notes          *string
}

// Apply merges the override into the cycle; override values win.
func (o CycleOverride) Apply(c *Cycle) {
	if o.ExpectedAmount != nil {
		c.ExpectedAmount = *o.ExpectedAmount
	}
	if o.ExpectedDate != nil {
		c.ExpectedDate = *o.ExpectedDate
	}
	if o.MinimumAmount != nil {
		amount := *o.MinimumAmount
		c.MinimumAmount = &amount
	}
	if o.Notes != nil {
		c.Notes = *o.Notes
	}
}

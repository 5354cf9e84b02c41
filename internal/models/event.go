package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventKind distinguishes the monetary events considered for matching.
type EventKind string

const (
	EventPayment      EventKind = "payment"
	EventTransaction  EventKind = "transaction"
	EventContribution EventKind = "contribution"
	EventWithdrawal   EventKind = "withdrawal"
)

// Event is an actual transaction, payment or transfer fetched from the data
// store and reconciled against generated cycles. An event is matched to at
// most one cycle.
type Event struct {
	ID     string
	Date   time.Time
	Amount decimal.Decimal
	Kind   EventKind

	// Optional structured metadata carried over from prior computations.
	Principal *decimal.Decimal
	Interest  *decimal.Decimal
	LinkedTo  string
}

// NewEvent builds an event with a fresh identifier.
func NewEvent(date time.Time, amount decimal.Decimal, kind EventKind) Event {
	return Event{
		ID:     uuid.NewString(),
		Date:   date,
		Amount: amount,
		Kind:   kind,
	}
}

// BillStatus is the lifecycle state of a scheduled bill.
type BillStatus string

const (
	BillPending BillStatus = "pending"
	BillPaid    BillStatus = "paid"
	BillSkipped BillStatus = "skipped"
)

// Bill is an externally scheduled obligation linked to a liability. When a
// bill carries an explicit cycle number, its due date and amount override the
// generator's computed values for that cycle.
type Bill struct {
	DueDate       time.Time
	Amount        decimal.Decimal
	Status        BillStatus
	CycleNumber   int
	MinimumAmount *decimal.Decimal
}

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/recur/internal/cycleerror"
	"fintrack/recur/internal/models"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const liabilitiesFixture = `liabilities:
  - name: car-loan
    start_date: "2024-01-01"
    payment_amount: "450.00"
    frequency: monthly
    interval: 1
    due_day: 1
    current_balance: "12000.00"
    annual_rate: "6.5"
    currency: CHF
    cycle_overrides:
      2:
        expected_amount: "475.00"
        expected_date: "2024-02-05"
        notes: rate adjustment
    cycle_notes:
      1: first installment
`

const budgetsFixture = `budgets:
  - name: groceries
    start_date: "2024-01-05"
    amount: "400"
    frequency: monthly
    interval: 1
`

const goalsFixture = `goals:
  - name: vacation
    start_date: "2024-01-01"
    target_date: "2024-12-31"
    target_amount: "6000"
    contribution_amount: "500"
    frequency: monthly
    interval: 1
`

const eventsFixture = `events:
  - record_kind: liability
    record: car-loan
    id: ev-1
    date: "2024-01-02"
    amount: "450.00"
    kind: payment
    principal: "385.00"
    interest: "65.00"
  - record_kind: budget
    record: groceries
    id: ev-2
    date: "2024-01-10"
    amount: "82.50"
    kind: transaction
`

const billsFixture = `bills:
  car-loan:
    - due_date: "2024-01-01"
      amount: "450.00"
      status: paid
    - due_date: "2024-02-01"
      amount: "450.00"
      status: skipped
      cycle_number: 2
      minimum_amount: "50.00"
`

func newTestStore(t *testing.T) *YAMLStore {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, liabilitiesFile, liabilitiesFixture)
	writeFixture(t, dir, budgetsFile, budgetsFixture)
	writeFixture(t, dir, goalsFile, goalsFixture)
	writeFixture(t, dir, eventsFile, eventsFixture)
	writeFixture(t, dir, billsFile, billsFixture)
	return NewYAMLStore(dir)
}

func TestLiability(t *testing.T) {
	s := newTestStore(t)

	record, err := s.Liability("car-loan")
	require.NoError(t, err)

	assert.Equal(t, "car-loan", record.Name)
	assert.Equal(t, date(2024, time.January, 1), record.StartDate)
	assert.Equal(t, "450", record.PaymentAmount.String())
	assert.Equal(t, models.FrequencyMonthly, record.Frequency)
	assert.Equal(t, "12000", record.CurrentBalance.String())
	assert.Equal(t, "6.5", record.AnnualRate.String())
	assert.Equal(t, "CHF", record.Currency)

	require.Contains(t, record.Overrides, 2)
	override := record.Overrides[2]
	require.NotNil(t, override.ExpectedAmount)
	assert.Equal(t, "475", override.ExpectedAmount.String())
	require.NotNil(t, override.ExpectedDate)
	assert.Equal(t, date(2024, time.February, 5), *override.ExpectedDate)
	require.NotNil(t, override.Notes)
	assert.Equal(t, "rate adjustment", *override.Notes)

	assert.Equal(t, "first installment", record.Notes[1])
}

func TestLiabilityNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Liability("no-such-loan")
	require.Error(t, err)

	var notFound *cycleerror.RecordNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-such-loan", notFound.Name)
}

func TestBudgetAndGoal(t *testing.T) {
	s := newTestStore(t)

	budget, err := s.Budget("groceries")
	require.NoError(t, err)
	assert.Equal(t, "400", budget.Amount.String())
	assert.Equal(t, date(2024, time.January, 5), budget.StartDate)

	goal, err := s.Goal("vacation")
	require.NoError(t, err)
	assert.Equal(t, "500", goal.ContributionAmount.String())
	require.NotNil(t, goal.TargetDate)
	assert.Equal(t, date(2024, time.December, 31), *goal.TargetDate)
}

func TestEventsFilteredByRecord(t *testing.T) {
	s := newTestStore(t)

	events, err := s.Events(models.KindLiability, "car-loan")
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "ev-1", e.ID)
	assert.Equal(t, date(2024, time.January, 2), e.Date)
	assert.Equal(t, "450", e.Amount.String())
	assert.Equal(t, models.EventPayment, e.Kind)
	require.NotNil(t, e.Principal)
	assert.Equal(t, "385", e.Principal.String())
	require.NotNil(t, e.Interest)
	assert.Equal(t, "65", e.Interest.String())

	// Same file, different record.
	events, err = s.Events(models.KindBudget, "groceries")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-2", events[0].ID)

	// Unknown record has an empty history, not an error.
	events, err = s.Events(models.KindGoal, "vacation")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBills(t *testing.T) {
	s := newTestStore(t)

	bills, err := s.Bills("car-loan")
	require.NoError(t, err)
	require.Len(t, bills, 2)

	assert.Equal(t, models.BillPaid, bills[0].Status)
	assert.Equal(t, 0, bills[0].CycleNumber)
	assert.Nil(t, bills[0].MinimumAmount)

	assert.Equal(t, models.BillSkipped, bills[1].Status)
	assert.Equal(t, 2, bills[1].CycleNumber)
	require.NotNil(t, bills[1].MinimumAmount)
	assert.Equal(t, "50", bills[1].MinimumAmount.String())

	bills, err = s.Bills("unknown")
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestMissingFilesYieldEmptyData(t *testing.T) {
	s := NewYAMLStore(t.TempDir())

	events, err := s.Events(models.KindBudget, "groceries")
	require.NoError(t, err)
	assert.Empty(t, events)

	bills, err := s.Bills("car-loan")
	require.NoError(t, err)
	assert.Empty(t, bills)

	_, err = s.Budget("groceries")
	var notFound *cycleerror.RecordNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, budgetsFile, "budgets: [not: valid: yaml")
	s := NewYAMLStore(dir)

	_, err := s.Budget("groceries")
	require.Error(t, err)

	var storeErr *cycleerror.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "parse", storeErr.Op)
}

func TestSaveCycleNote(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveCycleNote(models.KindBudget, "groceries", 3, "travel month"))

	// The note survives a reload.
	budget, err := s.Budget("groceries")
	require.NoError(t, err)
	assert.Equal(t, "travel month", budget.Notes[3])

	// Existing notes are preserved alongside the new one.
	require.NoError(t, s.SaveCycleNote(models.KindLiability, "car-loan", 2, "double payment"))
	record, err := s.Liability("car-loan")
	require.NoError(t, err)
	assert.Equal(t, "first installment", record.Notes[1])
	assert.Equal(t, "double payment", record.Notes[2])
}

func TestSaveCycleNoteErrors(t *testing.T) {
	s := newTestStore(t)

	assert.Error(t, s.SaveCycleNote(models.KindBudget, "groceries", 0, "nope"))
	assert.Error(t, s.SaveCycleNote("household", "groceries", 1, "nope"))

	err := s.SaveCycleNote(models.KindGoal, "no-such-goal", 1, "nope")
	var notFound *cycleerror.RecordNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

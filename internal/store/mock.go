package store

import (
	"fintrack/recur/internal/cycleerror"
	"fintrack/recur/internal/models"
)

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	Liabilities map[string]*models.LiabilityRecord
	Budgets     map[string]*models.BudgetRecord
	Goals       map[string]*models.GoalRecord
	EventLists  map[string][]models.Event // keyed by "<kind>/<name>"
	BillLists   map[string][]models.Bill

	// SavedNotes records SaveCycleNote calls, keyed by "<kind>/<name>".
	SavedNotes map[string]map[int]string
	// Err, when set, is returned by every method.
	Err error
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		Liabilities: make(map[string]*models.LiabilityRecord),
		Budgets:     make(map[string]*models.BudgetRecord),
		Goals:       make(map[string]*models.GoalRecord),
		EventLists:  make(map[string][]models.Event),
		BillLists:   make(map[string][]models.Bill),
		SavedNotes:  make(map[string]map[int]string),
	}
}

func eventKey(kind models.RecordKind, name string) string {
	return string(kind) + "/" + name
}

// Liability returns the named liability record.
func (m *MockStore) Liability(name string) (*models.LiabilityRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if record, ok := m.Liabilities[name]; ok {
		return record, nil
	}
	return nil, &cycleerror.RecordNotFoundError{Kind: string(models.KindLiability), Name: name}
}

// Budget returns the named budget record.
func (m *MockStore) Budget(name string) (*models.BudgetRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if record, ok := m.Budgets[name]; ok {
		return record, nil
	}
	return nil, &cycleerror.RecordNotFoundError{Kind: string(models.KindBudget), Name: name}
}

// Goal returns the named goal record.
func (m *MockStore) Goal(name string) (*models.GoalRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if record, ok := m.Goals[name]; ok {
		return record, nil
	}
	return nil, &cycleerror.RecordNotFoundError{Kind: string(models.KindGoal), Name: name}
}

// Events returns the configured event history for a record.
func (m *MockStore) Events(kind models.RecordKind, name string) ([]models.Event, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.EventLists[eventKey(kind, name)], nil
}

// Bills returns the configured bills for a liability.
func (m *MockStore) Bills(liability string) ([]models.Bill, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.BillLists[liability], nil
}

// SaveCycleNote records the note in SavedNotes.
func (m *MockStore) SaveCycleNote(kind models.RecordKind, name string, cycleNumber int, note string) error {
	if m.Err != nil {
		return m.Err
	}
	key := eventKey(kind, name)
	if m.SavedNotes[key] == nil {
		m.SavedNotes[key] = make(map[int]string)
	}
	m.SavedNotes[key][cycleNumber] = note
	return nil
}

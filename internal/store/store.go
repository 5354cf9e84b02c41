// Package store provides access to the external data records the cycle
// engine consumes: liabilities, budgets, goals, their event history and
// scheduled bills. The engine only reads; the single write path is the
// per-cycle note.
//
// On disk everything is YAML with string-typed dates and amounts; parsing
// into domain types happens here so the rest of the application never sees a
// raw scalar.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"fintrack/recur/internal/config"
	"fintrack/recur/internal/cycleerror"
	"fintrack/recur/internal/dateutils"
	"fintrack/recur/internal/models"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Store is the repository interface the domain trackers consume.
type Store interface {
	Liability(name string) (*models.LiabilityRecord, error)
	Budget(name string) (*models.BudgetRecord, error)
	Goal(name string) (*models.GoalRecord, error)

	// Events returns the monetary history linked to a record.
	Events(kind models.RecordKind, name string) ([]models.Event, error)

	// Bills returns the scheduled bills linked to a liability.
	Bills(liability string) ([]models.Bill, error)

	// SaveCycleNote persists a free-text note for one cycle of a record.
	SaveCycleNote(kind models.RecordKind, name string, cycleNumber int, note string) error
}

const (
	liabilitiesFile = "liabilities.yaml"
	budgetsFile     = "budgets.yaml"
	goalsFile       = "goals.yaml"
	eventsFile      = "events.yaml"
	billsFile       = "bills.yaml"
)

// YAMLStore reads and writes the record files of a data directory.
type YAMLStore struct {
	// Directory, when set, pins all files to one location. Otherwise files
	// are looked up in the standard locations.
	Directory string
}

// NewYAMLStore creates a store over the given data directory. An empty
// directory means standard-location lookup.
func NewYAMLStore(directory string) *YAMLStore {
	return &YAMLStore{Directory: directory}
}

// FindDataFile looks for a data file in the configured directory or the
// standard locations: the working directory, ./data, and ~/.config/recur.
func (s *YAMLStore) FindDataFile(filename string) (string, error) {
	if s.Directory != "" {
		return filepath.Join(s.Directory, filename), nil
	}

	locations := []string{
		filename,
		filepath.Join("data", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "recur", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// On-disk row shapes. Dates and amounts are strings in the files.

type overrideRow struct {
	ExpectedAmount string  `yaml:"expected_amount,omitempty"`
	ExpectedDate   string  `yaml:"expected_date,omitempty"`
	MinimumAmount  string  `yaml:"minimum_amount,omitempty"`
	Notes          *string `yaml:"notes,omitempty"`
}

type liabilityRow struct {
	Name           string              `yaml:"name"`
	StartDate      string              `yaml:"start_date"`
	EndDate        string              `yaml:"end_date,omitempty"`
	PaymentAmount  string              `yaml:"payment_amount"`
	Frequency      string              `yaml:"frequency"`
	Interval       int                 `yaml:"interval"`
	CustomUnit     string              `yaml:"custom_unit,omitempty"`
	DueDay         int                 `yaml:"due_day"`
	CurrentBalance string              `yaml:"current_balance"`
	AnnualRate     string              `yaml:"annual_rate"`
	Currency       string              `yaml:"currency,omitempty"`
	Overrides      map[int]overrideRow `yaml:"cycle_overrides,omitempty"`
	Notes          map[int]string      `yaml:"cycle_notes,omitempty"`
}

type budgetRow struct {
	Name       string              `yaml:"name"`
	StartDate  string              `yaml:"start_date"`
	EndDate    string              `yaml:"end_date,omitempty"`
	Amount     string              `yaml:"amount"`
	Frequency  string              `yaml:"frequency"`
	Interval   int                 `yaml:"interval"`
	CustomUnit string              `yaml:"custom_unit,omitempty"`
	DueDay     int                 `yaml:"due_day,omitempty"`
	Currency   string              `yaml:"currency,omitempty"`
	Overrides  map[int]overrideRow `yaml:"cycle_overrides,omitempty"`
	Notes      map[int]string      `yaml:"cycle_notes,omitempty"`
}

type goalRow struct {
	Name               string              `yaml:"name"`
	StartDate          string              `yaml:"start_date"`
	TargetDate         string              `yaml:"target_date,omitempty"`
	TargetAmount       string              `yaml:"target_amount"`
	ContributionAmount string              `yaml:"contribution_amount"`
	Frequency          string              `yaml:"frequency"`
	Interval           int                 `yaml:"interval"`
	CustomUnit         string              `yaml:"custom_unit,omitempty"`
	DueDay             int                 `yaml:"due_day,omitempty"`
	Currency           string              `yaml:"currency,omitempty"`
	Overrides          map[int]overrideRow `yaml:"cycle_overrides,omitempty"`
	Notes              map[int]string      `yaml:"cycle_notes,omitempty"`
}

type eventRow struct {
	RecordKind string `yaml:"record_kind"`
	Record     string `yaml:"record"`
	ID         string `yaml:"id"`
	Date       string `yaml:"date"`
	Amount     string `yaml:"amount"`
	Kind       string `yaml:"kind,omitempty"`
	Principal  string `yaml:"principal,omitempty"`
	Interest   string `yaml:"interest,omitempty"`
	LinkedTo   string `yaml:"linked_to,omitempty"`
}

type billRow struct {
	DueDate       string `yaml:"due_date"`
	Amount        string `yaml:"amount"`
	Status        string `yaml:"status,omitempty"`
	CycleNumber   int    `yaml:"cycle_number,omitempty"`
	MinimumAmount string `yaml:"minimum_amount,omitempty"`
}

type liabilitiesDoc struct {
	Liabilities []liabilityRow `yaml:"liabilities"`
}

type budgetsDoc struct {
	Budgets []budgetRow `yaml:"budgets"`
}

type goalsDoc struct {
	Goals []goalRow `yaml:"goals"`
}

type eventsDoc struct {
	Events []eventRow `yaml:"events"`
}

type billsDoc struct {
	Bills map[string][]billRow `yaml:"bills"`
}

// readDoc unmarshals one data file into out. A missing file is not an error;
// the caller sees the zero document.
func (s *YAMLStore) readDoc(filename string, out interface{}) error {
	path, err := s.FindDataFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Data file not found: %s", filename)
			return nil
		}
		return &cycleerror.StoreError{Op: "resolve", Path: filename, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Data file not found: %s", path)
			return nil
		}
		return &cycleerror.StoreError{Op: "read", Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return &cycleerror.StoreError{Op: "parse", Path: path, Err: err}
	}
	return nil
}

// writeDoc marshals a document back to its data file, creating the parent
// directory when needed.
func (s *YAMLStore) writeDoc(filename string, doc interface{}) error {
	path, err := s.FindDataFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return &cycleerror.StoreError{Op: "resolve", Path: filename, Err: err}
		}
		path = filepath.Join("data", filename)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &cycleerror.StoreError{Op: "mkdir", Path: dir, Err: err}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return &cycleerror.StoreError{Op: "marshal", Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &cycleerror.StoreError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// parseAmount converts a stored amount string, defaulting empty to zero.
func parseAmount(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s '%s': %w", field, value, err)
	}
	return amount, nil
}

// parseOptionalDate converts a stored date string, nil when empty.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := dateutils.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func parseOverrides(rows map[int]overrideRow) (map[int]models.CycleOverride, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	overrides := make(map[int]models.CycleOverride, len(rows))
	for number, row := range rows {
		var ov models.CycleOverride
		if row.ExpectedAmount != "" {
			amount, err := parseAmount("expected_amount", row.ExpectedAmount)
			if err != nil {
				return nil, err
			}
			ov.ExpectedAmount = &amount
		}
		if row.ExpectedDate != "" {
			date, err := dateutils.ParseDate(row.ExpectedDate)
			if err != nil {
				return nil, err
			}
			ov.ExpectedDate = &date
		}
		if row.MinimumAmount != "" {
			amount, err := parseAmount("minimum_amount", row.MinimumAmount)
			if err != nil {
				return nil, err
			}
			ov.MinimumAmount = &amount
		}
		ov.Notes = row.Notes
		overrides[number] = ov
	}
	return overrides, nil
}

func (r liabilityRow) toRecord() (*models.LiabilityRecord, error) {
	startDate, err := dateutils.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	payment, err := parseAmount("payment_amount", r.PaymentAmount)
	if err != nil {
		return nil, err
	}
	balance, err := parseAmount("current_balance", r.CurrentBalance)
	if err != nil {
		return nil, err
	}
	rate, err := parseAmount("annual_rate", r.AnnualRate)
	if err != nil {
		return nil, err
	}
	overrides, err := parseOverrides(r.Overrides)
	if err != nil {
		return nil, err
	}
	return &models.LiabilityRecord{
		Name:           r.Name,
		StartDate:      startDate,
		EndDate:        endDate,
		PaymentAmount:  payment,
		Frequency:      models.Frequency(r.Frequency),
		Interval:       r.Interval,
		CustomUnit:     models.CustomUnit(r.CustomUnit),
		DueDay:         r.DueDay,
		CurrentBalance: balance,
		AnnualRate:     rate,
		Currency:       r.Currency,
		Overrides:      overrides,
		Notes:          r.Notes,
	}, nil
}

func (r budgetRow) toRecord() (*models.BudgetRecord, error) {
	startDate, err := dateutils.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount("amount", r.Amount)
	if err != nil {
		return nil, err
	}
	overrides, err := parseOverrides(r.Overrides)
	if err != nil {
		return nil, err
	}
	return &models.BudgetRecord{
		Name:       r.Name,
		StartDate:  startDate,
		EndDate:    endDate,
		Amount:     amount,
		Frequency:  models.Frequency(r.Frequency),
		Interval:   r.Interval,
		CustomUnit: models.CustomUnit(r.CustomUnit),
		DueDay:     r.DueDay,
		Currency:   r.Currency,
		Overrides:  overrides,
		Notes:      r.Notes,
	}, nil
}

func (r goalRow) toRecord() (*models.GoalRecord, error) {
	startDate, err := dateutils.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	targetDate, err := parseOptionalDate(r.TargetDate)
	if err != nil {
		return nil, err
	}
	targetAmount, err := parseAmount("target_amount", r.TargetAmount)
	if err != nil {
		return nil, err
	}
	contribution, err := parseAmount("contribution_amount", r.ContributionAmount)
	if err != nil {
		return nil, err
	}
	overrides, err := parseOverrides(r.Overrides)
	if err != nil {
		return nil, err
	}
	return &models.GoalRecord{
		Name:               r.Name,
		StartDate:          startDate,
		TargetDate:         targetDate,
		TargetAmount:       targetAmount,
		ContributionAmount: contribution,
		Frequency:          models.Frequency(r.Frequency),
		Interval:           r.Interval,
		CustomUnit:         models.CustomUnit(r.CustomUnit),
		DueDay:             r.DueDay,
		Currency:           r.Currency,
		Overrides:          overrides,
		Notes:              r.Notes,
	}, nil
}

func (r eventRow) toEvent() (models.Event, error) {
	date, err := dateutils.ParseDate(r.Date)
	if err != nil {
		return models.Event{}, err
	}
	amount, err := parseAmount("amount", r.Amount)
	if err != nil {
		return models.Event{}, err
	}
	event := models.Event{
		ID:       r.ID,
		Date:     date,
		Amount:   amount,
		Kind:     models.EventKind(r.Kind),
		LinkedTo: r.LinkedTo,
	}
	if r.Principal != "" {
		principal, err := parseAmount("principal", r.Principal)
		if err != nil {
			return models.Event{}, err
		}
		event.Principal = &principal
	}
	if r.Interest != "" {
		interest, err := parseAmount("interest", r.Interest)
		if err != nil {
			return models.Event{}, err
		}
		event.Interest = &interest
	}
	return event, nil
}

func (r billRow) toBill() (models.Bill, error) {
	dueDate, err := dateutils.ParseDate(r.DueDate)
	if err != nil {
		return models.Bill{}, err
	}
	amount, err := parseAmount("amount", r.Amount)
	if err != nil {
		return models.Bill{}, err
	}
	bill := models.Bill{
		DueDate:     dueDate,
		Amount:      amount,
		Status:      models.BillStatus(r.Status),
		CycleNumber: r.CycleNumber,
	}
	if r.MinimumAmount != "" {
		minimum, err := parseAmount("minimum_amount", r.MinimumAmount)
		if err != nil {
			return models.Bill{}, err
		}
		bill.MinimumAmount = &minimum
	}
	return bill, nil
}

// Liability returns the named liability record.
func (s *YAMLStore) Liability(name string) (*models.LiabilityRecord, error) {
	var doc liabilitiesDoc
	if err := s.readDoc(liabilitiesFile, &doc); err != nil {
		return nil, err
	}
	for _, row := range doc.Liabilities {
		if row.Name == name {
			log.Debugf("Loaded liability %s from %s", name, liabilitiesFile)
			return row.toRecord()
		}
	}
	return nil, &cycleerror.RecordNotFoundError{Kind: string(models.KindLiability), Name: name}
}

// Budget returns the named budget record.
func (s *YAMLStore) Budget(name string) (*models.BudgetRecord, error) {
	var doc budgetsDoc
	if err := s.readDoc(budgetsFile, &doc); err != nil {
		return nil, err
	}
	for _, row := range doc.Budgets {
		if row.Name == name {
			log.Debugf("Loaded budget %s from %s", name, budgetsFile)
			return row.toRecord()
		}
	}
	return nil, &cycleerror.RecordNotFoundError{Kind: string(models.KindBudget), Name: name}
}

// Goal returns the named goal record.
func (s *YAMLStore) Goal(name string) (*models.GoalRecord, error) {
	var doc goalsDoc
	if err := s.readDoc(goalsFile, &doc); err != nil {
		return nil, err
	}
	for _, row := range doc.Goals {
		if row.Name == name {
			log.Debugf("Loaded goal %s from %s", name, goalsFile)
			return row.toRecord()
		}
	}
	return nil, &cycleerror.RecordNotFoundError{Kind: string(models.KindGoal), Name: name}
}

// Events returns the monetary history linked to one record. An absent events
// file yields an empty history, not an error.
func (s *YAMLStore) Events(kind models.RecordKind, name string) ([]models.Event, error) {
	var doc eventsDoc
	if err := s.readDoc(eventsFile, &doc); err != nil {
		return nil, err
	}
	var events []models.Event
	for _, row := range doc.Events {
		if models.RecordKind(row.RecordKind) != kind || row.Record != name {
			continue
		}
		event, err := row.toEvent()
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	log.Debugf("Loaded %d events for %s %s", len(events), kind, name)
	return events, nil
}

// Bills returns the scheduled bills linked to a liability.
func (s *YAMLStore) Bills(liability string) ([]models.Bill, error) {
	var doc billsDoc
	if err := s.readDoc(billsFile, &doc); err != nil {
		return nil, err
	}
	var bills []models.Bill
	for _, row := range doc.Bills[liability] {
		bill, err := row.toBill()
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	log.Debugf("Loaded %d bills for liability %s", len(bills), liability)
	return bills, nil
}

// SaveCycleNote persists a note for one cycle of a record and writes the
// record file back to disk.
func (s *YAMLStore) SaveCycleNote(kind models.RecordKind, name string, cycleNumber int, note string) error {
	if cycleNumber < 1 {
		return fmt.Errorf("cycle number must be positive, got %d", cycleNumber)
	}

	switch kind {
	case models.KindLiability:
		var doc liabilitiesDoc
		if err := s.readDoc(liabilitiesFile, &doc); err != nil {
			return err
		}
		for i := range doc.Liabilities {
			if doc.Liabilities[i].Name == name {
				if doc.Liabilities[i].Notes == nil {
					doc.Liabilities[i].Notes = make(map[int]string)
				}
				doc.Liabilities[i].Notes[cycleNumber] = note
				log.Debugf("Saving note for liability %s cycle %d", name, cycleNumber)
				return s.writeDoc(liabilitiesFile, &doc)
			}
		}
	case models.KindBudget:
		var doc budgetsDoc
		if err := s.readDoc(budgetsFile, &doc); err != nil {
			return err
		}
		for i := range doc.Budgets {
			if doc.Budgets[i].Name == name {
				if doc.Budgets[i].Notes == nil {
					doc.Budgets[i].Notes = make(map[int]string)
				}
				doc.Budgets[i].Notes[cycleNumber] = note
				log.Debugf("Saving note for budget %s cycle %d", name, cycleNumber)
				return s.writeDoc(budgetsFile, &doc)
			}
		}
	case models.KindGoal:
		var doc goalsDoc
		if err := s.readDoc(goalsFile, &doc); err != nil {
			return err
		}
		for i := range doc.Goals {
			if doc.Goals[i].Name == name {
				if doc.Goals[i].Notes == nil {
					doc.Goals[i].Notes = make(map[int]string)
				}
				doc.Goals[i].Notes[cycleNumber] = note
				log.Debugf("Saving note for goal %s cycle %d", name, cycleNumber)
				return s.writeDoc(goalsFile, &doc)
			}
		}
	default:
		return fmt.Errorf("unknown record kind: %s", kind)
	}

	return &cycleerror.RecordNotFoundError{Kind: string(kind), Name: name}
}

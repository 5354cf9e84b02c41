// Package export writes enriched cycle schedules to CSV and reads event
// histories from CSV exports.
package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fintrack/recur/internal/config"
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

// CycleRow is the flat CSV shape of one enriched cycle.
type CycleRow struct {
	CycleNumber    int    `csv:"CycleNumber"`
	StartDate      string `csv:"StartDate"`
	EndDate        string `csv:"EndDate"`
	ExpectedDate   string `csv:"ExpectedDate"`
	ExpectedAmount string `csv:"ExpectedAmount"`
	ActualAmount   string `csv:"ActualAmount"`
	Status         string `csv:"Status"`
	Timing         string `csv:"Timing"`
	Principal      string `csv:"Principal"`
	Interest       string `csv:"Interest"`
	Balance        string `csv:"Balance"`
	Notes          string `csv:"Notes"`
}

// rowFromCycle flattens a cycle for CSV output. Amortization columns stay
// empty when the schedule carries no interest parameters.
func rowFromCycle(c models.Cycle) CycleRow {
	row := CycleRow{
		CycleNumber:    c.CycleNumber,
		StartDate:      dateutils.ToISODate(c.StartDate),
		EndDate:        dateutils.ToISODate(c.EndDate),
		ExpectedDate:   dateutils.ToISODate(c.ExpectedDate),
		ExpectedAmount: c.ExpectedAmount.StringFixed(2),
		ActualAmount:   c.ActualAmount.StringFixed(2),
		Status:         string(c.Status),
		Timing:         string(c.Timing),
		Notes:          c.Notes,
	}
	if c.Principal != nil {
		row.Principal = c.Principal.StringFixed(2)
	}
	if c.Interest != nil {
		row.Interest = c.Interest.StringFixed(2)
	}
	if c.ProjectedBalance != nil {
		row.Balance = c.ProjectedBalance.StringFixed(2)
	}
	return row
}

// WriteCyclesToCSV writes the enriched cycles to a CSV file.
func WriteCyclesToCSV(cycles []models.Cycle, csvFile string) error {
	if cycles == nil {
		return fmt.Errorf("cannot write nil cycles to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(cycles),
	}).Info("Writing cycles to CSV file")

	rows := make([]CycleRow, 0, len(cycles))
	for _, c := range cycles {
		rows = append(rows, rowFromCycle(c))
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		log.WithError(err).Error("Failed to write CSV file")
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}

// EventRow is the CSV shape of one monetary event, as found in bank exports.
type EventRow struct {
	ID     string `csv:"ID"`
	Date   string `csv:"Date"`
	Amount string `csv:"Amount"`
	Kind   string `csv:"Kind"`
}

// ReadEventsFromCSV reads a CSV export of monetary events. Rows without an
// identifier get a fresh one; unparseable rows fail the whole read rather
// than being skipped silently.
func ReadEventsFromCSV(csvFile string) ([]models.Event, error) {
	log.WithField("file", csvFile).Info("Reading events CSV file")

	file, err := os.Open(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []EventRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	events := make([]models.Event, 0, len(rows))
	for i, row := range rows {
		date, err := dateutils.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount '%s': %w", i+1, row.Amount, err)
		}
		event := models.NewEvent(date, amount, models.EventKind(row.Kind))
		if row.ID != "" {
			event.ID = row.ID
		}
		events = append(events, event)
	}

	log.WithField("count", len(events)).Info("Successfully read events")
	return events, nil
}

package export

import (
	"os"
	"path/filepath"
	"strings"
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

func TestWriteCyclesToCSV(t *testing.T) {
	principal := dec("898.08")
	interest := dec("101.92")
	balance := dec("9101.92")
	cycles := []models.Cycle{
		{
			CycleNumber:      1,
			StartDate:        date(2024, time.January, 1),
			EndDate:          date(2024, time.February, 1),
			ExpectedDate:     date(2024, time.January, 1),
			ExpectedAmount:   dec("1000"),
			ActualAmount:     dec("1000"),
			Status:           models.StatusPaidOnTime,
			Timing:           models.TimingOnTime,
			Principal:        &principal,
			Interest:         &interest,
			ProjectedBalance: &balance,
			Notes:            "opening installment",
		},
		{
			CycleNumber:    2,
			StartDate:      date(2024, time.February, 1),
			EndDate:        date(2024, time.March, 1),
			ExpectedDate:   date(2024, time.February, 1),
			ExpectedAmount: dec("1000"),
			Status:         models.StatusUpcoming,
		},
	}

	path := filepath.Join(t.TempDir(), "cycles.csv")
	require.NoError(t, WriteCyclesToCSV(cycles, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "CycleNumber")
	assert.Contains(t, lines[1], "2024-01-01")
	assert.Contains(t, lines[1], "898.08")
	assert.Contains(t, lines[1], "101.92")
	assert.Contains(t, lines[1], "paid_on_time")
	assert.Contains(t, lines[1], "opening installment")

	// No interest parameters means empty amortization columns.
	assert.Contains(t, lines[2], "upcoming")
	assert.NotContains(t, lines[2], "9101.92")
}

func TestWriteCyclesToCSVNil(t *testing.T) {
	assert.Error(t, WriteCyclesToCSV(nil, filepath.Join(t.TempDir(), "cycles.csv")))
}

func TestReadEventsFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	content := "ID,Date,Amount,Kind\n" +
		"bank-1,2024-01-02,450.00,payment\n" +
		",2024-01-10,82.50,transaction\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	events, err := ReadEventsFromCSV(path)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "bank-1", events[0].ID)
	assert.Equal(t, date(2024, time.January, 2), events[0].Date)
	assert.Equal(t, "450.00", events[0].Amount.StringFixed(2))
	assert.Equal(t, models.EventPayment, events[0].Kind)

	// Rows without an identifier get a generated one.
	assert.NotEmpty(t, events[1].ID)
	assert.Equal(t, models.EventTransaction, events[1].Kind)
}

func TestReadEventsFromCSVBadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	content := "ID,Date,Amount,Kind\n" +
		"bank-1,2024-01-02,450.00,payment\n" +
		"bank-2,2024-01-03,not-money,payment\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := ReadEventsFromCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadEventsFromCSVMissingFile(t *testing.T) {
	_, err := ReadEventsFromCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestRowFromCycleRoundtrip(t *testing.T) {
	c := models.Cycle{
		CycleNumber:    3,
		StartDate:      date(2024, time.March, 1),
		EndDate:        date(2024, time.April, 1),
		ExpectedDate:   date(2024, time.March, 15),
		ExpectedAmount: dec("400"),
		ActualAmount:   dec("250.5"),
		Status:         models.StatusPartial,
		Timing:         models.TimingLate,
	}

	row := rowFromCycle(c)

	assert.Equal(t, 3, row.CycleNumber)
	assert.Equal(t, "2024-03-15", row.ExpectedDate)
	assert.Equal(t, "400.00", row.ExpectedAmount)
	assert.Equal(t, "250.50", row.ActualAmount)
	assert.Equal(t, "partial", row.Status)
	assert.Equal(t, "late", row.Timing)
	assert.Empty(t, row.Principal)
	assert.Empty(t, row.Balance)
}

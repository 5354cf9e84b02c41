// Package common contains shared functionality for command handlers
package common

import (
	"fmt"

	"fintrack/recur/cmd/root"
	"fintrack/recur/internal/export"
	"fintrack/recur/internal/logging"
	"fintrack/recur/internal/models"
	"fintrack/recur/internal/store"
	"fintrack/recur/internal/tracker"
)

// NewTracker builds the tracker all domain commands share, wired to the
// configured data directory and the --as-of evaluation date.
func NewTracker() *tracker.Tracker {
	s := store.NewYAMLStore(root.DataDirectory())
	t := tracker.New(s, root.Cfg, logging.NewLogrusAdapterFromLogger(root.Log))
	t.Clock = root.Today
	return t
}

// LoadExtraEvents reads the optional --events CSV file.
func LoadExtraEvents() []models.Event {
	if root.SharedFlags.Events == "" {
		return nil
	}
	events, err := export.ReadEventsFromCSV(root.SharedFlags.Events)
	if err != nil {
		root.Log.Fatalf("Error reading events file: %v", err)
	}
	return events
}

// RenderResult prints a tracker result and honors the --output CSV export.
func RenderResult(result *tracker.Result) {
	fmt.Printf("%s: %s\n", result.Kind, result.Name)

	if current := result.Summary.Current; current != nil {
		fmt.Printf("\nCurrent cycle #%d (%s to %s): %s\n",
			current.CycleNumber,
			current.StartDate.Format("2006-01-02"),
			current.EndDate.Format("2006-01-02"),
			current.Status)
	}

	fmt.Println("\nCycles:")
	for _, c := range result.Cycles {
		line := fmt.Sprintf("  #%-3d due %s  expected %s  actual %s  %s",
			c.CycleNumber,
			c.ExpectedDate.Format("2006-01-02"),
			models.NewMoney(c.ExpectedAmount, result.Currency),
			models.NewMoney(c.ActualAmount, result.Currency),
			c.Status)
		if c.Principal != nil && c.Interest != nil && c.ProjectedBalance != nil {
			line += fmt.Sprintf("  [principal %s, interest %s, balance %s]",
				c.Principal.StringFixed(2), c.Interest.StringFixed(2), c.ProjectedBalance.StringFixed(2))
		}
		if c.Metadata.NegativeAmortization {
			line += "  (negative amortization)"
		}
		if c.Notes != "" {
			line += fmt.Sprintf("  note: %s", c.Notes)
		}
		fmt.Println(line)
	}

	stats := result.Summary.Stats
	fmt.Printf("\nStatistics: %d cycles, %d on time, %d overdue, %d overpaid, %d partial",
		stats.TotalCycles, stats.OnTimeCount, stats.OverdueCount, stats.OverpaidCount, stats.PartialCount)
	if !stats.OnTimeRate.IsZero() {
		fmt.Printf(", on-time rate %s%%", stats.OnTimeRate.StringFixed(1))
	}
	if !stats.AverageUsage.IsZero() {
		fmt.Printf(", average usage %s%%", stats.AverageUsage.StringFixed(1))
	}
	fmt.Println()

	if len(result.Unmatched) > 0 {
		fmt.Printf("\nUnmatched events (%d):\n", len(result.Unmatched))
		for _, e := range result.Unmatched {
			fmt.Printf("  %s  %s  %s\n", e.Date.Format("2006-01-02"),
				models.NewMoney(e.Amount, result.Currency), e.ID)
		}
	}

	if root.SharedFlags.Output != "" {
		if err := export.WriteCyclesToCSV(result.Cycles, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error exporting cycles: %v", err)
		}
		root.Log.Infof("Exported %d cycles to %s", len(result.Cycles), root.SharedFlags.Output)
	}
}

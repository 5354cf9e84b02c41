// Package schedule handles the ad-hoc schedule preview command
package schedule

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fintrack/recur/cmd/root"
	"fintrack/recur/internal/dateutils"
	"fintrack/recur/internal/export"
	"fintrack/recur/internal/generator"
	"fintrack/recur/internal/models"
)

var (
	frequency        string
	interval         int
	customUnit       string
	startDate        string
	endDate          string
	dueDay           int
	amount           string
	maxCycles        int
	interestRate     string
	startingBalance  string
	interestIncluded bool
)

// Cmd represents the schedule command
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Preview a cycle schedule from recurrence parameters",
	Long: `Generate a cycle schedule directly from recurrence parameters without
touching any stored record. Useful for previewing a loan's amortization or a
budget's periods before creating the record.`,
	Run: scheduleFunc,
}

func init() {
	Cmd.Flags().StringVarP(&frequency, "frequency", "f", "monthly", "Recurrence frequency (daily, weekly, monthly, quarterly, yearly, custom)")
	Cmd.Flags().IntVarP(&interval, "interval", "n", 1, "Interval multiplier, e.g. 2 for every second period")
	Cmd.Flags().StringVarP(&customUnit, "unit", "u", "", "Step unit for custom frequency (days, weeks, months)")
	Cmd.Flags().StringVarP(&startDate, "start", "s", "", "Schedule start date (required)")
	Cmd.Flags().StringVar(&endDate, "end", "", "Optional schedule end date")
	Cmd.Flags().IntVar(&dueDay, "due-day", 1, "Anchor day-of-month for monthly-family frequencies")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "0", "Expected amount per cycle")
	Cmd.Flags().IntVarP(&maxCycles, "max-cycles", "m", 0, "Maximum number of cycles to generate")
	Cmd.Flags().StringVarP(&interestRate, "rate", "r", "", "Annual interest rate percentage")
	Cmd.Flags().StringVarP(&startingBalance, "balance", "b", "", "Starting balance for amortization")
	Cmd.Flags().BoolVar(&interestIncluded, "interest-included", true, "Expected amount already contains interest")
}

func scheduleFunc(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig()
	if err != nil {
		root.Log.Fatalf("Invalid schedule parameters: %v", err)
	}

	cycles, err := generator.Generate(cfg)
	if err != nil {
		root.Log.Fatalf("Error generating schedule: %v", err)
	}

	for _, c := range cycles {
		line := fmt.Sprintf("#%-3d %s to %s  due %s  expected %s",
			c.CycleNumber,
			dateutils.ToISODate(c.StartDate),
			dateutils.ToISODate(c.EndDate),
			dateutils.ToISODate(c.ExpectedDate),
			c.ExpectedAmount.StringFixed(2))
		if c.Principal != nil && c.Interest != nil && c.ProjectedBalance != nil {
			line += fmt.Sprintf("  [principal %s, interest %s, balance %s]",
				c.Principal.StringFixed(2), c.Interest.StringFixed(2), c.ProjectedBalance.StringFixed(2))
		}
		if c.Metadata.NegativeAmortization {
			line += "  (negative amortization)"
		}
		fmt.Println(line)
	}

	if root.SharedFlags.Output != "" {
		if err := export.WriteCyclesToCSV(cycles, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error exporting cycles: %v", err)
		}
		root.Log.Infof("Exported %d cycles to %s", len(cycles), root.SharedFlags.Output)
	}
}

func buildConfig() (models.RecurrenceConfig, error) {
	var cfg models.RecurrenceConfig

	if startDate == "" {
		return cfg, fmt.Errorf("--start is required")
	}
	start, err := dateutils.ParseDate(startDate)
	if err != nil {
		return cfg, err
	}

	expected, err := decimal.NewFromString(amount)
	if err != nil {
		return cfg, fmt.Errorf("invalid amount '%s': %w", amount, err)
	}

	cfg = models.RecurrenceConfig{
		StartDate:        start,
		Frequency:        models.Frequency(frequency),
		Interval:         interval,
		CustomUnit:       models.CustomUnit(customUnit),
		DueDay:           dueDay,
		ExpectedAmount:   expected,
		MaxCycles:        maxCycles,
		InterestIncluded: interestIncluded,
	}

	if endDate != "" {
		end, err := dateutils.ParseDate(endDate)
		if err != nil {
			return cfg, err
		}
		cfg.EndDate = &end
	}

	if interestRate != "" {
		rate, err := decimal.NewFromString(interestRate)
		if err != nil {
			return cfg, fmt.Errorf("invalid rate '%s': %w", interestRate, err)
		}
		cfg.InterestRate = &rate
	}
	if startingBalance != "" {
		balance, err := decimal.NewFromString(startingBalance)
		if err != nil {
			return cfg, fmt.Errorf("invalid balance '%s': %w", startingBalance, err)
		}
		cfg.StartingBalance = &balance
	}

	return cfg, nil
}

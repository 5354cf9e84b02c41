// Package root contains the root command for the application
package root

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fintrack/recur/internal/config"
	"fintrack/recur/internal/dateutils"
	"fintrack/recur/internal/export"
	"fintrack/recur/internal/store"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Output  string // optional CSV file to export the cycle schedule to
	Events  string // optional CSV file of extra events merged before matching
	AsOf    string // evaluate schedules as of this date instead of today
	DataDir string // data directory holding the record files
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the application configuration, loaded before any command runs
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "recur",
		Short: "Track recurring financial cycles for liabilities, budgets and goals.",
		Long: `recur synthesizes the expected schedule of a recurring obligation
(loan installments, budget periods, goal contributions), reconciles it against
the actual payment history, and reports per-cycle status and statistics.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			store.SetLogger(Log)
			export.SetLogger(Log)
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Export the cycle schedule to a CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Events, "events", "e", "", "Merge extra events from a CSV file before matching")
	Cmd.PersistentFlags().StringVar(&SharedFlags.AsOf, "as-of", "", "Evaluate schedules as of this date (default today)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataDir, "data-dir", "d", "", "Data directory holding the record files")
}

// Today resolves the evaluation date from the --as-of flag, defaulting to the
// system clock, normalized to midnight UTC.
func Today() time.Time {
	if SharedFlags.AsOf == "" {
		return dateutils.Normalize(time.Now())
	}
	date, err := dateutils.ParseDate(SharedFlags.AsOf)
	if err != nil {
		Log.Fatalf("Invalid --as-of date: %v", err)
	}
	return date
}

// DataDirectory resolves the data directory from the flag or configuration.
func DataDirectory() string {
	if SharedFlags.DataDir != "" {
		return SharedFlags.DataDir
	}
	if Cfg != nil {
		return Cfg.Data.Directory
	}
	return ""
}

// Package liability handles the liability schedule command
package liability

import (
	"github.com/spf13/cobra"

	"fintrack/recur/cmd/common"
	"fintrack/recur/cmd/root"
)

// Cmd represents the liability command
var Cmd = &cobra.Command{
	Use:   "liability <name>",
	Short: "Show the installment schedule of a liability",
	Long: `Compute the expected installments of an interest-bearing liability,
split each into principal and interest, and reconcile them against the
recorded payments and scheduled bills.`,
	Args: cobra.ExactArgs(1),
	Run:  liabilityFunc,
}

func liabilityFunc(cmd *cobra.Command, args []string) {
	name := args[0]
	root.Log.Infof("Computing liability cycles for %s", name)

	t := common.NewTracker()
	result, err := t.LiabilityCycles(name, common.LoadExtraEvents())
	if err != nil {
		root.Log.Fatalf("Error computing liability cycles: %v", err)
	}
	common.RenderResult(result)
}

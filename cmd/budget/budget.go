// Package budget handles the budget schedule command
package budget

import (
	"github.com/spf13/cobra"

	"fintrack/recur/cmd/common"
	"fintrack/recur/cmd/root"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget <name>",
	Short: "Show the spending periods of a budget",
	Long: `Compute the recurring spending periods of a budget and reconcile them
against the recorded transactions, reporting per-period usage.`,
	Args: cobra.ExactArgs(1),
	Run:  budgetFunc,
}

func budgetFunc(cmd *cobra.Command, args []string) {
	name := args[0]
	root.Log.Infof("Computing budget cycles for %s", name)

	t := common.NewTracker()
	result, err := t.BudgetCycles(name, common.LoadExtraEvents())
	if err != nil {
		root.Log.Fatalf("Error computing budget cycles: %v", err)
	}
	common.RenderResult(result)
}

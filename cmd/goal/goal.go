// Package goal handles the goal schedule command
package goal

import (
	"github.com/spf13/cobra"

	"fintrack/recur/cmd/common"
	"fintrack/recur/cmd/root"
)

// Cmd represents the goal command
var Cmd = &cobra.Command{
	Use:   "goal <name>",
	Short: "Show the contribution windows of a savings goal",
	Long: `Compute the recurring contribution windows of a savings goal and
reconcile them against the recorded transfers, separating contributions
from withdrawals.`,
	Args: cobra.ExactArgs(1),
	Run:  goalFunc,
}

func goalFunc(cmd *cobra.Command, args []string) {
	name := args[0]
	root.Log.Infof("Computing goal cycles for %s", name)

	t := common.NewTracker()
	result, err := t.GoalCycles(name, common.LoadExtraEvents())
	if err != nil {
		root.Log.Fatalf("Error computing goal cycles: %v", err)
	}
	common.RenderResult(result)
}

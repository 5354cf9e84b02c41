// Package note handles the cycle note mutation command
package note

import (
	"github.com/spf13/cobra"

	"fintrack/recur/cmd/common"
	"fintrack/recur/cmd/root"
	"fintrack/recur/internal/models"
)

var (
	kind        string
	cycleNumber int
)

// Cmd represents the note command
var Cmd = &cobra.Command{
	Use:   "note <name> <text>",
	Short: "Attach a note to one cycle of a record",
	Long: `Persist a free-text note against a single cycle of a liability, budget
or goal. The note is merged back into the schedule on the next read.`,
	Args: cobra.ExactArgs(2),
	Run:  noteFunc,
}

func init() {
	Cmd.Flags().StringVarP(&kind, "kind", "k", "liability", "Record kind (liability, budget, goal)")
	Cmd.Flags().IntVarP(&cycleNumber, "cycle", "c", 0, "Cycle number the note applies to (required)")
}

func noteFunc(cmd *cobra.Command, args []string) {
	name, text := args[0], args[1]
	if cycleNumber < 1 {
		root.Log.Fatal("--cycle must be a positive cycle number")
	}

	recordKind := models.RecordKind(kind)
	switch recordKind {
	case models.KindLiability, models.KindBudget, models.KindGoal:
	default:
		root.Log.Fatalf("Unknown record kind: %s", kind)
	}

	t := common.NewTracker()
	if err := t.UpdateCycleNote(recordKind, name, cycleNumber, text); err != nil {
		root.Log.Fatalf("Error saving note: %v", err)
	}
	root.Log.Infof("Saved note for %s %s cycle %d", kind, name, cycleNumber)
}

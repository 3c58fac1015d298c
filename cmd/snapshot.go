package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huangsam/sprintlens/internal/contract"
	"github.com/huangsam/sprintlens/internal/snapshot"
)

// snapshotCmd writes the resolved snapshot to a file.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot <path>",
	Short: "Write the demo dataset (or a filtered snapshot) to a JSON file.",
	Long: `Resolve the configured snapshot, apply the issue filters and write the result
as JSON. Without --snapshot this materializes the built-in demo dataset, dated
relative to now, so it can be edited and fed back with --snapshot.

Examples:
  sprintlens snapshot demo.json
  sprintlens snapshot --snapshot export.json --project PHX phx.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		snap, err := snapshot.Resolve(cfg.SnapshotPath, cfg.Now)
		if err != nil {
			contract.LogFatal("Cannot resolve snapshot", err)
		}
		snap = snapshot.Apply(snap, cfg.Filter)
		if err := snapshot.Save(args[0], snap); err != nil {
			contract.LogFatal("Cannot write snapshot", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote snapshot with %d issues to %s\n", len(snap.Issues), args[0])
	},
}

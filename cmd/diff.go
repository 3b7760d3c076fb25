package cmd

import (
	"github.com/spf13/cobra"

	"github.com/uitrack/uitrack/internal/output"
	"github.com/uitrack/uitrack/internal/track"
)

var diffCmd = &cobra.Command{
	Use:   "diff <before.json> <after.json>",
	Short: "Compare two snapshot files",
	Long: `Compare two snapshots written by the MCP snapshot tool and report
elements that appeared, disappeared, or changed frame/context between
them.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	prev, err := track.LoadSnapshot(args[0])
	if err != nil {
		return err
	}
	curr, err := track.LoadSnapshot(args[1])
	if err != nil {
		return err
	}
	return output.Print(track.DiffSnapshots(prev, curr))
}

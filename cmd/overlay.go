package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uitrack/uitrack/internal/output"
	"github.com/uitrack/uitrack/internal/overlay"
	"github.com/uitrack/uitrack/internal/track"
)

// OverlayResult is the output of the overlay command.
type OverlayResult struct {
	OK       bool   `yaml:"ok"       json:"ok"`
	Out      string `yaml:"out"      json:"out"`
	Elements int    `yaml:"elements" json:"elements"`
}

var overlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Render a snapshot's element frames as a PNG image",
	Long: `Read a snapshot file (written by the MCP snapshot tool) and draw each
element's frame and identifier onto a PNG, for visually inspecting what
the registry believed the screen looked like.

Examples:
  uitrack overlay --snapshot snap.json --out map.png
  uitrack overlay --snapshot snap.json --out map.png --scale 0.5 --no-labels`,
	RunE: runOverlay,
}

func init() {
	rootCmd.AddCommand(overlayCmd)
	overlayCmd.Flags().String("snapshot", "", "Snapshot file to render (required)")
	overlayCmd.Flags().String("out", "overlay.png", "Output PNG path")
	overlayCmd.Flags().Float64("scale", 1.0, "Points-to-pixels scale")
	overlayCmd.Flags().Bool("no-labels", false, "Skip identifier labels")
	_ = overlayCmd.MarkFlagRequired("snapshot")
}

func runOverlay(cmd *cobra.Command, args []string) error {
	snapPath, _ := cmd.Flags().GetString("snapshot")
	outPath, _ := cmd.Flags().GetString("out")
	scale, _ := cmd.Flags().GetFloat64("scale")
	noLabels, _ := cmd.Flags().GetBool("no-labels")

	snap, err := track.LoadSnapshot(snapPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	opts := overlay.Options{Scale: scale, Labels: !noLabels}
	if err := overlay.WritePNG(f, snap.Elements, opts); err != nil {
		return err
	}
	return output.Print(OverlayResult{OK: true, Out: outPath, Elements: len(snap.Elements)})
}

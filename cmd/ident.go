package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uitrack/uitrack/internal/ident"
	"github.com/uitrack/uitrack/internal/output"
)

// IdentResult is the output of the ident command.
type IdentResult struct {
	Identifier string `yaml:"identifier" json:"identifier"`
}

var identCmd = &cobra.Command{
	Use:   "ident <category> <label>",
	Short: "Format a canonical element identifier",
	Long: `Build a canonical identifier from a category, a free-text label, and
optional variant and prefix parts. The label is lower-cased, "&" becomes
"and", and non-alphanumeric runs collapse to single underscores.

Examples:
  uitrack ident button "Save Changes"
  uitrack ident button "Save & Exit" --variant primary
  uitrack ident textfield Email --prefix login`,
	Args: cobra.ExactArgs(2),
	RunE: runIdent,
}

func init() {
	rootCmd.AddCommand(identCmd)
	identCmd.Flags().String("variant", "", "Variant inserted after the category (e.g. primary)")
	identCmd.Flags().String("prefix", "", "Context prefix prepended to the identifier")
}

func runIdent(cmd *cobra.Command, args []string) error {
	variant, _ := cmd.Flags().GetString("variant")
	prefix, _ := cmd.Flags().GetString("prefix")

	id := ident.Format(args[0], variant, args[1], prefix)
	if id == "" {
		return fmt.Errorf("identifier is empty after normalization")
	}
	return output.Print(IdentResult{Identifier: id})
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prince-Sf/Corelytics/internal/app"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a taxonomy document and print per-level counts",
		Long: `Loads a JSON or YAML taxonomy document and reports whether it is
well formed. With no file, the embedded sample is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			name := path
			if name == "" {
				name = "embedded taxonomy"
			}
			out := cmd.OutOrStdout()

			store, err := app.LoadTaxonomy(path)
			if err != nil {
				printStatus(out, "✗", fmt.Sprintf("%s: %v", name, err), color.FgRed)
				return err
			}
			stats := store.Stats()
			printStatus(out, "✓", name+" is valid", color.FgGreen)
			fmt.Fprintf(out, "  domains:         %d\n", stats.Domains)
			fmt.Fprintf(out, "  recipients:      %d\n", stats.Recipients)
			fmt.Fprintf(out, "  categories:      %d (%d without scenarios)\n", stats.Categories, stats.LeafCategories)
			fmt.Fprintf(out, "  scenarios:       %d\n", stats.Scenarios)
			fmt.Fprintf(out, "  total nodes:     %d\n", stats.Nodes())
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prince-Sf/Corelytics/internal/app"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

func newTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the taxonomy as an indented tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			store, err := app.LoadTaxonomy(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			dim := color.New(color.Faint)
			return store.Walk(func(p []string, n *taxonomy.Node) error {
				depth := len(p) - 1
				line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), n.ID, dim.Sprintf("(%s)", n.Label))
				if taxonomy.Level(depth) == taxonomy.LevelCategory && !n.HasChildren() {
					line += dim.Sprint(" [no scenarios]")
				}
				if n.Metadata != nil && n.Metadata.Pressure != "" {
					line += dim.Sprintf(" pressure=%s", n.Metadata.Pressure)
				}
				_, err := fmt.Fprintln(out, line)
				return err
			})
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prince-Sf/Corelytics/internal/brief"
	"github.com/prince-Sf/Corelytics/internal/client"
	"github.com/prince-Sf/Corelytics/internal/intent"
	"github.com/prince-Sf/Corelytics/internal/services"
)

type selectionFlags struct {
	req          services.GenerateRequest
	taxonomyPath string
	server       string
	asJSON       bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.req.Domain, "domain", "", "Domain id")
	cmd.Flags().StringVar(&f.req.Recipient, "recipient", "", "Recipient id")
	cmd.Flags().StringVar(&f.req.Category, "category", "", "Category id")
	cmd.Flags().StringVar(&f.req.Scenario, "scenario", "", "Scenario id (optional)")
	cmd.Flags().StringVar(&f.taxonomyPath, "taxonomy", "", "Taxonomy document (default: configured or embedded)")
	cmd.Flags().StringVar(&f.server, "server", "", "Base URL of a running service; when set the request is sent there")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print JSON instead of text")
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("recipient")
	_ = cmd.MarkFlagRequired("category")
}

func newBriefCmd(opts *rootOptions) *cobra.Command {
	flags := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Print the compiled behavioral brief for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.server != "" {
				c, err := client.New(client.Options{BaseURL: flags.server})
				if err != nil {
					return err
				}
				resp, err := c.Brief(cmd.Context(), flags.req)
				if err != nil {
					return err
				}
				return printBrief(cmd.OutOrStdout(), resp, flags.asJSON)
			}

			store, err := opts.loadStore(flags.taxonomyPath)
			if err != nil {
				return err
			}
			p, err := flags.req.Path()
			if err != nil {
				return err
			}
			res, err := intent.NewEngine(store, nil).Resolve(p)
			if err != nil {
				return err
			}
			return printBrief(cmd.OutOrStdout(), &services.BriefResponse{
				Brief:    res.Brief,
				System:   brief.SystemPrompt(),
				Metadata: res.ResponseMetadata(""),
			}, flags.asJSON)
		},
	}
	flags.register(cmd)
	return cmd
}

func printBrief(out io.Writer, resp *services.BriefResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	fmt.Fprintf(out, "%s %s\n", color.CyanString("path:"), resp.Metadata.IntentPath)
	fmt.Fprintf(out, "%s %s\n\n", color.CyanString("archetype:"), resp.Brief.Archetype)
	fmt.Fprintln(out, resp.Brief.Text)
	return nil
}

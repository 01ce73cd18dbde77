package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prince-Sf/Corelytics/internal/app"
	"github.com/prince-Sf/Corelytics/internal/client"
	"github.com/prince-Sf/Corelytics/internal/generation/router"
	"github.com/prince-Sf/Corelytics/internal/intent"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
	"github.com/prince-Sf/Corelytics/internal/services"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	flags := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an email for a selection with the configured model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.server != "" {
				c, err := client.New(client.Options{BaseURL: flags.server})
				if err != nil {
					return err
				}
				resp, err := c.Generate(cmd.Context(), flags.req)
				if err != nil {
					return err
				}
				return printEmail(cmd.OutOrStdout(), resp, flags.asJSON)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if flags.taxonomyPath != "" {
				cfg.Taxonomy.Path = flags.taxonomyPath
			}
			log, err := logger.New(cfg.Env)
			if err != nil {
				return err
			}
			defer log.Sync()

			store, err := app.LoadTaxonomy(cfg.Taxonomy.Path)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			models, err := router.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			engine := intent.NewEngine(store, models,
				intent.WithTimeout(cfg.Generation.Timeout.Duration),
				intent.WithLogger(log),
			)
			svc := services.NewGenerationService(engine, models, nil, log)

			resp, err := svc.Generate(ctx, flags.req)
			if err != nil {
				return err
			}
			return printEmail(cmd.OutOrStdout(), resp, flags.asJSON)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.req.Model, "model", "", "Model id (default: configured default model)")
	return cmd
}

func printEmail(out io.Writer, resp *services.GenerateResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	fmt.Fprintf(out, "%s %s  %s %s\n\n",
		color.CyanString("model:"), resp.Metadata.Model,
		color.CyanString("path:"), resp.Metadata.IntentPath)
	fmt.Fprintln(out, resp.Email)
	return nil
}

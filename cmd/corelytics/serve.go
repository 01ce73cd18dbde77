package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prince-Sf/Corelytics/internal/app"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
	"github.com/prince-Sf/Corelytics/internal/platform/shutdown"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			log, err := logger.New(cfg.Env)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			ctx, stop := shutdown.NotifyContext(context.Background(), log.With("component", "shutdown"))
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer a.Close()

			if err := a.Run(ctx); err != nil {
				return fmt.Errorf("server exited: %w", err)
			}
			return nil
		},
	}
}

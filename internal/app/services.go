package app

import (
	"context"
	"fmt"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/generation/router"
	"github.com/prince-Sf/Corelytics/internal/intent"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
	"github.com/prince-Sf/Corelytics/internal/services"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

type Services struct {
	Models     *router.Router
	Intent     *intent.Engine
	Navigation services.NavigationService
	Generation services.GenerationService
}

func wireServices(ctx context.Context, cfg *config.Config, log *logger.Logger, store *taxonomy.Store, reposet Repos) (Services, error) {
	log.Info("Wiring services...")
	models, err := router.New(ctx, cfg, log)
	if err != nil {
		return Services{}, fmt.Errorf("init model router: %w", err)
	}
	engine := intent.NewEngine(store, models,
		intent.WithTimeout(cfg.Generation.Timeout.Duration),
		intent.WithLogger(log),
	)
	return Services{
		Models:     models,
		Intent:     engine,
		Navigation: services.NewNavigationService(store, log),
		Generation: services.NewGenerationService(engine, models, reposet.Audit, log),
	}, nil
}

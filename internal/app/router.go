package app

import (
	"github.com/prince-Sf/Corelytics/internal/config"
	server "github.com/prince-Sf/Corelytics/internal/http"
	"github.com/prince-Sf/Corelytics/internal/observability"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

func wireServer(cfg *config.Config, log *logger.Logger, handlerset Handlers) *server.Server {
	return server.NewServer(
		server.ServerConfig{
			Addr:              cfg.HTTP.Addr,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
			IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
			ShutdownTimeout:   cfg.HTTP.ShutdownTimeout.Duration,
		},
		server.RouterConfig{
			Log:               log,
			CORSOrigins:       cfg.HTTP.CORSOrigins,
			MaxRequestBytes:   cfg.HTTP.MaxRequestBytes,
			TracingEnabled:    cfg.Tracing.Enabled,
			ServiceName:       observability.ServiceName,
			HealthHandler:     handlerset.Health,
			NavigationHandler: handlerset.Navigation,
			GenerationHandler: handlerset.Generation,
		},
		log,
	)
}

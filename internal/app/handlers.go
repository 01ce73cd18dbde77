package app

import (
	httpH "github.com/prince-Sf/Corelytics/internal/http/handlers"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Navigation *httpH.NavigationHandler
	Generation *httpH.GenerationHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, version string) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(serviceset.Navigation, version),
		Navigation: httpH.NewNavigationHandler(serviceset.Navigation, log),
		Generation: httpH.NewGenerationHandler(serviceset.Generation, log),
	}
}

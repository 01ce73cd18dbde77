package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/prince-Sf/Corelytics/internal/http/handlers"
	httpMW "github.com/prince-Sf/Corelytics/internal/http/middleware"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	CORSOrigins     []string
	MaxRequestBytes int64
	TracingEnabled  bool
	ServiceName     string

	HealthHandler     *httpH.HealthHandler
	NavigationHandler *httpH.NavigationHandler
	GenerationHandler *httpH.GenerationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.BodyLimit(cfg.MaxRequestBytes))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.Status)
		}

		// Navigation
		if cfg.NavigationHandler != nil {
			api.GET("/domains", cfg.NavigationHandler.ListDomains)
			api.GET("/domains/:domain/recipients", cfg.NavigationHandler.ListRecipients)
			api.GET("/domains/:domain/recipients/:recipient/categories", cfg.NavigationHandler.ListCategories)
			api.GET("/domains/:domain/recipients/:recipient/categories/:category/scenarios", cfg.NavigationHandler.ListScenarios)
		}

		// Generation
		if cfg.GenerationHandler != nil {
			api.POST("/generate", cfg.GenerationHandler.Generate)
			api.POST("/brief", cfg.GenerationHandler.Brief)
		}
	}

	return r
}

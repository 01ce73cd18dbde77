package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/prince-Sf/Corelytics/internal/config"
	dbpkg "github.com/prince-Sf/Corelytics/internal/data/db"
	server "github.com/prince-Sf/Corelytics/internal/http"
	"github.com/prince-Sf/Corelytics/internal/observability"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

var initOTel = observability.InitOTel

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      *config.Config
	Taxonomy *taxonomy.Store
	Repos    Repos
	Services Services
	Server   *server.Server

	otelShutdown func(context.Context) error
}

// New wires the service from cfg. A malformed taxonomy document is returned as
// an error so the process can exit non-zero.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if isProd(cfg.Env) {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := initOTel(ctx, log, observability.OtelConfig{
		ServiceName: observability.ServiceName,
		Environment: cfg.Env,
		Version:     cfg.Version,
		Tracing:     cfg.Tracing,
	})
	abort := func(err error) (*App, error) {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if serr := otelShutdown(flushCtx); serr != nil {
			log.Warn("otel shutdown failed", "error", serr)
		}
		log.Sync()
		return nil, err
	}

	store, err := LoadTaxonomy(cfg.Taxonomy.Path)
	if err != nil {
		return abort(err)
	}
	stats := store.Stats()
	log.Info("taxonomy loaded",
		"path", cfg.Taxonomy.Path,
		"domains", stats.Domains,
		"recipients", stats.Recipients,
		"categories", stats.Categories,
		"scenarios", stats.Scenarios,
	)

	var theDB *gorm.DB
	if cfg.Audit.Enabled() {
		theDB, err = dbpkg.Open(cfg.Audit, log)
		if err != nil {
			return abort(fmt.Errorf("init audit db: %w", err))
		}
	} else {
		log.Info("generation audit disabled")
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(ctx, cfg, log, store, reposet)
	if err != nil {
		_ = dbpkg.Close(theDB)
		return abort(err)
	}
	handlerset := wireHandlers(log, serviceset, cfg.Version)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Taxonomy:     store,
		Repos:        reposet,
		Services:     serviceset,
		Server:       wireServer(cfg, log, handlerset),
		otelShutdown: otelShutdown,
	}, nil
}

// LoadTaxonomy reads the document at path, or the embedded sample when path is empty.
func LoadTaxonomy(path string) (*taxonomy.Store, error) {
	if strings.TrimSpace(path) == "" {
		return taxonomy.LoadDefault()
	}
	return taxonomy.LoadFile(path)
}

// Run serves HTTP until ctx is cancelled, then flushes traces.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Server.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		if a.otelShutdown == nil {
			return nil
		}
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(flushCtx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		return nil
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if err := dbpkg.Close(a.DB); err != nil && a.Log != nil {
		a.Log.Warn("audit db close failed", "error", err)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

func isProd(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return true
	}
	return false
}

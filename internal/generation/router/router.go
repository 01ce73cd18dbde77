// Package router maps public model ids to configured generation engines.
package router

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/generation/engine"
	"github.com/prince-Sf/Corelytics/internal/generation/engine/anthropic"
	"github.com/prince-Sf/Corelytics/internal/generation/engine/gemini"
	"github.com/prince-Sf/Corelytics/internal/generation/engine/mock"
	"github.com/prince-Sf/Corelytics/internal/generation/engine/oaihttp"
	"github.com/prince-Sf/Corelytics/internal/intent"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

var ErrUnknownModel = errors.New("unknown model")

type Route struct {
	PublicModel   string
	UpstreamModel string
	EngineType    string
	Engine        engine.Engine
}

type Router struct {
	routes       map[string]Route
	defaultModel string
	opts         engine.GenerateOptions
}

// New builds an engine for every configured model.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Router, error) {
	routes := make([]Route, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return nil, fmt.Errorf("model id required")
		}

		var eng engine.Engine
		switch strings.ToLower(strings.TrimSpace(m.Engine.Type)) {
		case "mock":
			eng = mock.New()
		case "openai_http", "oai_http":
			e, err := oaihttp.New(m.Engine, log)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", id, err)
			}
			eng = e
		case "anthropic":
			e, err := anthropic.New(m.Engine)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", id, err)
			}
			eng = e
		case "gemini":
			e, err := gemini.New(ctx, m.Engine, nil)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", id, err)
			}
			eng = e
		default:
			return nil, fmt.Errorf("unsupported engine type %q for model %q", m.Engine.Type, id)
		}

		upstream := strings.TrimSpace(m.UpstreamModel)
		if upstream == "" {
			upstream = id
		}
		routes = append(routes, Route{
			PublicModel:   id,
			UpstreamModel: upstream,
			EngineType:    m.Engine.Type,
			Engine:        eng,
		})
	}
	opts := engine.GenerateOptions{
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
	}
	return NewWithRoutes(cfg.Generation.DefaultModel, opts, routes...)
}

// NewWithRoutes assembles a router from prebuilt routes. An empty defaultModel
// picks the first route.
func NewWithRoutes(defaultModel string, opts engine.GenerateOptions, routes ...Route) (*Router, error) {
	if len(routes) == 0 {
		return nil, errors.New("router needs at least one model")
	}
	r := &Router{routes: make(map[string]Route, len(routes)), opts: opts}
	for _, route := range routes {
		if _, exists := r.routes[route.PublicModel]; exists {
			return nil, fmt.Errorf("duplicate model id: %s", route.PublicModel)
		}
		if route.UpstreamModel == "" {
			route.UpstreamModel = route.PublicModel
		}
		r.routes[route.PublicModel] = route
	}
	r.defaultModel = strings.TrimSpace(defaultModel)
	if r.defaultModel == "" {
		r.defaultModel = routes[0].PublicModel
	}
	if _, ok := r.routes[r.defaultModel]; !ok {
		return nil, fmt.Errorf("default model %q is not configured", r.defaultModel)
	}
	return r, nil
}

func (r *Router) DefaultModel() string { return r.defaultModel }

// ListModels returns the configured public model ids, sorted.
func (r *Router) ListModels() []string {
	out := make([]string, 0, len(r.routes))
	for id := range r.routes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (r *Router) RouteForModel(model string) (Route, bool) {
	route, ok := r.routes[strings.TrimSpace(model)]
	return route, ok
}

// ResolveModel maps "" to the default model and rejects unknown ids.
func (r *Router) ResolveModel(model string) (string, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return r.defaultModel, nil
	}
	if _, ok := r.routes[model]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return model, nil
}

// GenerateText sends the system prompt and brief to the routed engine.
func (r *Router) GenerateText(ctx context.Context, req intent.GenerateRequest) (string, error) {
	model, err := r.ResolveModel(req.Model)
	if err != nil {
		return "", err
	}
	route := r.routes[model]
	messages := []engine.Message{
		{Role: engine.RoleSystem, Content: req.System},
		{Role: engine.RoleUser, Content: req.Brief},
	}
	return route.Engine.GenerateText(ctx, route.UpstreamModel, messages, r.opts)
}

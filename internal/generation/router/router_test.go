package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/generation/engine"
	"github.com/prince-Sf/Corelytics/internal/intent"
)

type captureEngine struct {
	model    string
	messages []engine.Message
	opts     engine.GenerateOptions
}

func (c *captureEngine) GenerateText(_ context.Context, model string, messages []engine.Message, opts engine.GenerateOptions) (string, error) {
	c.model, c.messages, c.opts = model, messages, opts
	return "captured", nil
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{
		Generation: config.GenerationConfig{DefaultModel: "local"},
		Models: []config.ModelConfig{
			{ID: "mock-1", Engine: config.EngineConfig{Type: "mock"}},
			{ID: "local", UpstreamModel: "llama3", Engine: config.EngineConfig{Type: "oai_http", BaseURL: "http://localhost:8000"}},
			{ID: "claude", Engine: config.EngineConfig{Type: "anthropic", APIKey: "k"}},
		},
	}
	r, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]string{"claude", "local", "mock-1"}, r.ListModels()); diff != "" {
		t.Fatalf("models mismatch:\n%s", diff)
	}
	route, ok := r.RouteForModel("local")
	if !ok || route.UpstreamModel != "llama3" {
		t.Fatalf("unexpected route: %+v", route)
	}
	if r.DefaultModel() != "local" {
		t.Fatalf("default=%q", r.DefaultModel())
	}
}

func TestNewRejectsUnsupportedEngine(t *testing.T) {
	cfg := &config.Config{Models: []config.ModelConfig{{ID: "x", Engine: config.EngineConfig{Type: "telegraph"}}}}
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGenerateTextRoutesToEngine(t *testing.T) {
	a, b := &captureEngine{}, &captureEngine{}
	r, err := NewWithRoutes("", engine.GenerateOptions{Temperature: 0.9, MaxTokens: 1000},
		Route{PublicModel: "a", UpstreamModel: "upstream-a", Engine: a},
		Route{PublicModel: "b", Engine: b},
	)
	if err != nil {
		t.Fatalf("NewWithRoutes: %v", err)
	}

	out, err := r.GenerateText(context.Background(), intent.GenerateRequest{System: "sys", Brief: "brief"})
	if err != nil || out != "captured" {
		t.Fatalf("GenerateText: %q %v", out, err)
	}
	if a.model != "upstream-a" || a.opts.MaxTokens != 1000 {
		t.Fatalf("default route not used: %+v", a)
	}
	want := []engine.Message{{Role: "system", Content: "sys"}, {Role: "user", Content: "brief"}}
	if diff := cmp.Diff(want, a.messages); diff != "" {
		t.Fatalf("messages mismatch:\n%s", diff)
	}

	if _, err := r.GenerateText(context.Background(), intent.GenerateRequest{Model: "b", Brief: "x"}); err != nil {
		t.Fatalf("GenerateText(b): %v", err)
	}
	if b.model != "b" {
		t.Fatalf("upstream should default to public id, got %q", b.model)
	}
}

func TestResolveModel(t *testing.T) {
	r, _ := NewWithRoutes("a", engine.GenerateOptions{}, Route{PublicModel: "a", Engine: &captureEngine{}})
	if m, err := r.ResolveModel(" "); err != nil || m != "a" {
		t.Fatalf("ResolveModel default: %q %v", m, err)
	}
	_, err := r.ResolveModel("gpt-9")
	if !errors.Is(err, ErrUnknownModel) || !strings.Contains(err.Error(), "gpt-9") {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
}

func TestNewWithRoutesValidation(t *testing.T) {
	if _, err := NewWithRoutes("", engine.GenerateOptions{}); err == nil {
		t.Fatalf("expected error with no routes")
	}
	e := &captureEngine{}
	if _, err := NewWithRoutes("", engine.GenerateOptions{}, Route{PublicModel: "a", Engine: e}, Route{PublicModel: "a", Engine: e}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := NewWithRoutes("zzz", engine.GenerateOptions{}, Route{PublicModel: "a", Engine: e}); err == nil {
		t.Fatalf("expected unknown default error")
	}
}

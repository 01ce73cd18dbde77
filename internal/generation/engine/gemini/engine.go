// Package gemini adapts the Gemini API (google.golang.org/genai) to engine.Engine.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/generation/engine"
)

type Engine struct {
	client *genai.Client
}

// New builds a Gemini API client. httpClient may be nil.
func New(ctx context.Context, cfg config.EngineConfig, httpClient *http.Client) (*Engine, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api_key required")
	}
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Engine{client: client}, nil
}

func (e *Engine) GenerateText(ctx context.Context, model string, messages []engine.Message, opts engine.GenerateOptions) (string, error) {
	system, turns := engine.SplitSystem(messages)
	if len(turns) == 0 {
		return "", errors.New("no messages")
	}

	contents := make([]*genai.Content, 0, len(turns))
	for _, m := range turns {
		role := genai.Role(genai.RoleUser)
		if m.Role == engine.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	gc := &genai.GenerateContentConfig{}
	if system != "" {
		gc.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if opts.Temperature > 0 {
		gc.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(opts.MaxTokens)
	}

	resp, err := e.client.Models.GenerateContent(ctx, model, contents, gc)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	out := resp.Text()
	if strings.TrimSpace(out) == "" {
		return "", errors.New("gemini: empty completion")
	}
	return out, nil
}

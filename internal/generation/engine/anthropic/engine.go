// Package anthropic adapts the Anthropic Messages API to engine.Engine.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/generation/engine"
)

const defaultMaxTokens = 1024

type Engine struct {
	client anthropic.Client
}

func New(cfg config.EngineConfig, extra ...option.RequestOption) (*Engine, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("anthropic: api_key required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout.Duration > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout.Duration))
	}
	opts = append(opts, extra...)
	return &Engine{client: anthropic.NewClient(opts...)}, nil
}

func (e *Engine) GenerateText(ctx context.Context, model string, messages []engine.Message, opts engine.GenerateOptions) (string, error) {
	system, turns := engine.SplitSystem(messages)
	if len(turns) == 0 {
		return "", errors.New("no messages")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: defaultMaxTokens,
		Messages:  make([]anthropic.MessageParam, 0, len(turns)),
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = int64(opts.MaxTokens)
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	for _, m := range turns {
		switch m.Role {
		case engine.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	resp, err := e.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	out := b.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("anthropic: empty completion (stop_reason=%s)", resp.StopReason)
	}
	return out, nil
}

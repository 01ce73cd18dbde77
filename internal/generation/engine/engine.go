// Package engine defines the provider-neutral text generation contract.
package engine

import (
	"context"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type GenerateOptions struct {
	Temperature float64
	// MaxTokens caps the completion length. Zero leaves the provider default.
	MaxTokens int
}

type Engine interface {
	GenerateText(ctx context.Context, model string, messages []Message, opts GenerateOptions) (string, error)
}

// SplitSystem joins system messages and returns the remaining turns, for
// providers that take the system prompt out of band.
func SplitSystem(messages []Message) (string, []Message) {
	var system []string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		if strings.EqualFold(m.Role, RoleSystem) {
			system = append(system, content)
			continue
		}
		rest = append(rest, Message{Role: strings.ToLower(strings.TrimSpace(m.Role)), Content: content})
	}
	return strings.Join(system, "\n\n"), rest
}

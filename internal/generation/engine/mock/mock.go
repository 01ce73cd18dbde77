// Package mock is a deterministic engine for local runs and tests.
package mock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/prince-Sf/Corelytics/internal/generation/engine"
)

const intentHeader = "=== SUBJECT INTENT ==="

type Engine struct {
	// Delay simulates provider latency; it is cut short by context cancellation.
	Delay time.Duration
	// Err, when set, is returned instead of text.
	Err error
}

func New() *Engine { return &Engine{} }

func (e *Engine) GenerateText(ctx context.Context, model string, messages []engine.Message, opts engine.GenerateOptions) (string, error) {
	if e.Delay > 0 {
		t := time.NewTimer(e.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}
	if e.Err != nil {
		return "", e.Err
	}

	var user string
	for i := len(messages) - 1; i >= 0; i-- {
		if strings.EqualFold(messages[i].Role, engine.RoleUser) {
			user = messages[i].Content
			break
		}
	}
	if strings.TrimSpace(user) == "" {
		return "", fmt.Errorf("mock: no user message")
	}

	sum := sha256.Sum256([]byte(model + "\n" + user))
	subject := subjectFrom(user)
	return fmt.Sprintf("Subject: %s\n\nHello,\n\nThis draft was produced by the %s mock engine for brief %s.\n\nBest regards",
		subject, model, hex.EncodeToString(sum[:4])), nil
}

// subjectFrom uses the first line of the subject intent section, if any.
func subjectFrom(brief string) string {
	_, rest, ok := strings.Cut(brief, intentHeader)
	if !ok {
		return "Follow-up"
	}
	for _, line := range strings.Split(rest, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return strings.ToUpper(line[:1]) + line[1:]
		}
	}
	return "Follow-up"
}

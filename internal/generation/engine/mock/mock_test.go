package mock

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prince-Sf/Corelytics/internal/generation/engine"
)

func msgs(user string) []engine.Message {
	return []engine.Message{{Role: "system", Content: "sys"}, {Role: "user", Content: user}}
}

func TestGenerateTextDeterministic(t *testing.T) {
	e := New()
	brief := "=== ROLE ===\nx\n\n=== SUBJECT INTENT ===\npolicy clarification\nmore"
	a, err := e.GenerateText(context.Background(), "mock-1", msgs(brief), engine.GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	b, _ := e.GenerateText(context.Background(), "mock-1", msgs(brief), engine.GenerateOptions{})
	if a != b {
		t.Fatalf("mock output must be deterministic")
	}
	if !strings.HasPrefix(a, "Subject: Policy clarification") {
		t.Fatalf("unexpected subject: %q", a)
	}
	c, _ := e.GenerateText(context.Background(), "mock-2", msgs(brief), engine.GenerateOptions{})
	if c == a {
		t.Fatalf("model should influence output")
	}
}

func TestGenerateTextErrAndDelay(t *testing.T) {
	boom := errors.New("quota exceeded")
	if _, err := (&Engine{Err: boom}).GenerateText(context.Background(), "m", msgs("x"), engine.GenerateOptions{}); !errors.Is(err, boom) {
		t.Fatalf("expected configured error, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := (&Engine{Delay: time.Hour}).GenerateText(ctx, "m", msgs("x"), engine.GenerateOptions{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
}

func TestGenerateTextWithoutUserMessage(t *testing.T) {
	if _, err := New().GenerateText(context.Background(), "m", nil, engine.GenerateOptions{}); err == nil {
		t.Fatalf("expected error without user message")
	}
}

package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/generation/engine"
)

func TestGenerateTextRequestWiring(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if _, ok := body["systemInstruction"]; !ok {
			t.Errorf("system instruction missing: %v", body)
		}
		if gc, _ := body["generationConfig"].(map[string]any); gc["maxOutputTokens"] != float64(1000) {
			t.Errorf("generation config not forwarded: %v", body["generationConfig"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Subject: Heating"}]}}]}`))
	}))
	defer srv.Close()

	e, err := New(context.Background(), config.EngineConfig{Type: "gemini", APIKey: "g-test", BaseURL: srv.URL}, srv.Client())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := e.GenerateText(context.Background(), "gemini-test", []engine.Message{
		{Role: engine.RoleSystem, Content: "sys"},
		{Role: engine.RoleUser, Content: "brief"},
	}, engine.GenerateOptions{Temperature: 0.9, MaxTokens: 1000})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if out != "Subject: Heating" {
		t.Fatalf("out=%q", out)
	}
}

func TestGenerateTextEmptyCandidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	e, err := New(context.Background(), config.EngineConfig{Type: "gemini", APIKey: "g", BaseURL: srv.URL}, srv.Client())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.GenerateText(context.Background(), "gemini-test", []engine.Message{{Role: "user", Content: "x"}}, engine.GenerateOptions{}); err == nil {
		t.Fatalf("expected error for empty response")
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(context.Background(), config.EngineConfig{Type: "gemini"}, nil); err == nil {
		t.Fatalf("expected error without api key")
	}
}

package oaihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/generation/engine"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, v any) *http.Response {
	b, _ := json.Marshal(v)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(b)),
	}
}

func completion(text string) map[string]any {
	return map[string]any{"choices": []any{map[string]any{"message": map[string]any{"content": text}}}}
}

func testConfig() config.EngineConfig {
	return config.EngineConfig{
		Type:    "oai_http",
		BaseURL: "http://upstream",
		APIKey:  "sk-test",
		Timeout: config.Duration{Duration: 2 * time.Second},
	}
}

func TestGenerateTextRequestShape(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("authorization=%q", got)
		}
		var in chatCompletionRequest
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			t.Fatalf("decode req: %v", err)
		}
		if in.Model != "gpt-4o-mini" || in.MaxTokens != 1000 || in.Temperature != 0.9 {
			t.Fatalf("unexpected request: %+v", in)
		}
		if len(in.Messages) != 2 || in.Messages[0].Role != "system" || in.Messages[1].Content != "brief" {
			t.Fatalf("unexpected messages: %+v", in.Messages)
		}
		return jsonResponse(http.StatusOK, completion("Subject: Hello")), nil
	})}

	e, err := NewWithHTTPClient(testConfig(), nil, client)
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	out, err := e.GenerateText(context.Background(), "gpt-4o-mini", []engine.Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "brief"},
		{Role: "user", Content: "   "},
	}, engine.GenerateOptions{Temperature: 0.9, MaxTokens: 1000})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if out != "Subject: Hello" {
		t.Fatalf("out=%q", out)
	}
}

func TestGenerateTextSurfacesHTTPError(t *testing.T) {
	var calls int32
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return jsonResponse(http.StatusServiceUnavailable, map[string]any{"error": "overloaded"}), nil
	})}
	e, err := NewWithHTTPClient(testConfig(), nil, client)
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	_, err = e.GenerateText(context.Background(), "m", []engine.Message{{Role: "user", Content: "x"}}, engine.GenerateOptions{})
	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected HTTPError 503, got %v", err)
	}
	if !strings.Contains(he.Body, "overloaded") {
		t.Fatalf("body not preserved: %q", he.Body)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("no retry expected by default, calls=%d", calls)
	}
}

func TestGenerateTextRetriesWhenConfigured(t *testing.T) {
	var calls int32
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return jsonResponse(http.StatusServiceUnavailable, map[string]any{}), nil
		}
		return jsonResponse(http.StatusOK, completion("second time lucky")), nil
	})}
	cfg := testConfig()
	cfg.MaxRetries = 2
	e, err := NewWithHTTPClient(cfg, nil, client)
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}
	e.backoff = time.Millisecond

	out, err := e.GenerateText(context.Background(), "m", []engine.Message{{Role: "user", Content: "x"}}, engine.GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if out != "second time lucky" || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("out=%q calls=%d", out, calls)
	}
}

func TestGenerateTextDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return jsonResponse(http.StatusBadRequest, map[string]any{}), nil
	})}
	cfg := testConfig()
	cfg.MaxRetries = 3
	e, _ := NewWithHTTPClient(cfg, nil, client)
	e.backoff = time.Millisecond
	if _, err := e.GenerateText(context.Background(), "m", []engine.Message{{Role: "user", Content: "x"}}, engine.GenerateOptions{}); err == nil {
		t.Fatalf("expected error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("400 must not be retried, calls=%d", calls)
	}
}

func TestGenerateTextEmptyCompletion(t *testing.T) {
	client := &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, completion("  ")), nil
	})}
	e, _ := NewWithHTTPClient(testConfig(), nil, client)
	if _, err := e.GenerateText(context.Background(), "m", []engine.Message{{Role: "user", Content: "x"}}, engine.GenerateOptions{}); err == nil {
		t.Fatalf("expected error on empty completion")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(config.EngineConfig{Type: "oai_http"}, nil); err == nil {
		t.Fatalf("expected error without base_url")
	}
}

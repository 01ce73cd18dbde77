// Package oaihttp talks to any server implementing the OpenAI chat completions API.
package oaihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/generation/engine"
	"github.com/prince-Sf/Corelytics/internal/platform/httpx"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

const (
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 10 * time.Second
)

type Engine struct {
	baseURL             string
	apiKey              string
	chatCompletionsPath string
	timeout             time.Duration
	maxRetries          int
	backoff             time.Duration

	log        *logger.Logger
	httpClient *http.Client
}

func New(cfg config.EngineConfig, log *logger.Logger) (*Engine, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("oai_http: base_url required")
	}
	chatPath := strings.TrimSpace(cfg.ChatCompletionsPath)
	if chatPath == "" {
		chatPath = "/v1/chat/completions"
	}
	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	if log == nil {
		log = logger.NewNop()
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Engine{
		baseURL:             baseURL,
		apiKey:              strings.TrimSpace(cfg.APIKey),
		chatCompletionsPath: chatPath,
		timeout:             timeout,
		maxRetries:          maxRetries,
		backoff:             initialBackoff,
		log:                 log.With("engine", "oai_http"),
		httpClient:          &http.Client{Transport: tr},
	}, nil
}

// NewWithHTTPClient swaps the transport, mainly so tests can avoid the network.
func NewWithHTTPClient(cfg config.EngineConfig, log *logger.Logger, httpClient *http.Client) (*Engine, error) {
	e, err := New(cfg, log)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		e.httpClient = httpClient
	}
	return e, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content,omitempty"`
		} `json:"message,omitempty"`
		Text string `json:"text,omitempty"`
	} `json:"choices"`
}

func (e *Engine) GenerateText(ctx context.Context, model string, messages []engine.Message, opts engine.GenerateOptions) (string, error) {
	chatMsgs := toChatMessages(messages)
	if len(chatMsgs) == 0 {
		return "", errors.New("no messages")
	}
	reqBody := chatCompletionRequest{
		Model:       model,
		Messages:    chatMsgs,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	var resp chatCompletionResponse
	if err := e.doWithRetry(ctx, http.MethodPost, e.chatCompletionsPath, reqBody, &resp); err != nil {
		return "", err
	}
	text := extractChatText(resp)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty upstream completion")
	}
	return text, nil
}

func toChatMessages(messages []engine.Message) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		role := strings.TrimSpace(m.Role)
		content := strings.TrimSpace(m.Content)
		if role == "" || content == "" {
			continue
		}
		out = append(out, chatMessage{Role: role, Content: content})
	}
	return out
}

func extractChatText(resp chatCompletionResponse) string {
	for _, c := range resp.Choices {
		if strings.TrimSpace(c.Message.Content) != "" {
			return c.Message.Content
		}
		if strings.TrimSpace(c.Text) != "" {
			return c.Text
		}
	}
	return ""
}

func (e *Engine) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
}

// doWithRetry retries 408/429/5xx and transport timeouts up to maxRetries times.
func (e *Engine) doWithRetry(ctx context.Context, method, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	backoff := e.backoff
	for attempt := 0; ; attempt++ {
		err := e.doOnce(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || attempt >= e.maxRetries || !httpx.IsRetryableError(err) {
			return err
		}

		var header http.Header
		var he *HTTPError
		if errors.As(err, &he) {
			header = he.Header
		}
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(header, backoff, maxBackoff))
		e.log.Warn("upstream request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", e.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		if serr := httpx.Sleep(ctx, sleepFor); serr != nil {
			return err
		}
		backoff *= 2
	}
}

func (e *Engine) doOnce(ctx context.Context, method, path string, payload []byte, out any) error {
	ctx2, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx2, method, e.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	e.setHeaders(req)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(raw), Header: resp.Header}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}

// Package client calls a running Corelytics HTTP service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prince-Sf/Corelytics/internal/platform/envutil"
	"github.com/prince-Sf/Corelytics/internal/platform/httpx"
	"github.com/prince-Sf/Corelytics/internal/services"
	"github.com/prince-Sf/Corelytics/internal/taxonomy"
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		maxRetries: maxRetries,
		backoff:    250 * time.Millisecond,
		httpClient: hc,
	}, nil
}

func NewFromEnv() (*Client, error) {
	return New(Options{
		BaseURL:    envutil.String("CORELYTICS_BASE_URL", "http://localhost:8080"),
		Timeout:    envutil.Duration("CORELYTICS_CLIENT_TIMEOUT", 90*time.Second),
		MaxRetries: envutil.Int("CORELYTICS_CLIENT_MAX_RETRIES", 1),
	})
}

func (c *Client) BaseURL() string { return c.baseURL }

type itemList struct {
	Items []taxonomy.Item `json:"items"`
	Count int             `json:"count"`
}

func (c *Client) ListDomains(ctx context.Context) ([]taxonomy.Item, error) {
	var out itemList
	if err := c.doJSON(ctx, http.MethodGet, "/api/domains", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListRecipients(ctx context.Context, domainID string) ([]taxonomy.Item, error) {
	var out itemList
	if err := c.doJSON(ctx, http.MethodGet, apiPath("domains", domainID, "recipients"), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListCategories(ctx context.Context, domainID, recipientID string) ([]taxonomy.Item, error) {
	var out itemList
	if err := c.doJSON(ctx, http.MethodGet, apiPath("domains", domainID, "recipients", recipientID, "categories"), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) ListScenarios(ctx context.Context, domainID, recipientID, categoryID string) (services.ScenarioList, error) {
	var out services.ScenarioList
	p := apiPath("domains", domainID, "recipients", recipientID, "categories", categoryID, "scenarios")
	if err := c.doJSON(ctx, http.MethodGet, p, nil, &out); err != nil {
		return services.ScenarioList{}, err
	}
	return out, nil
}

// Generate is not retried on transport errors or on 502/504 from the service.
// The provider call behind it may already have run.
func (c *Client) Generate(ctx context.Context, req services.GenerateRequest) (*services.GenerateResponse, error) {
	var out services.GenerateResponse
	if err := c.doJSON(ctx, http.MethodPost, generatePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Brief(ctx context.Context, req services.GenerateRequest) (*services.BriefResponse, error) {
	var out services.BriefResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/brief", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func apiPath(segments ...string) string {
	var b strings.Builder
	b.WriteString("/api")
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// ---------------- HTTP helpers ----------------

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var lastErr error
	backoff := c.backoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(buf.Bytes()))
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		var retryAfter http.Header
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if path == generatePath || !httpx.IsRetryableError(err) {
				return err
			}
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				return readErr
			}
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				if out == nil {
					return nil
				}
				return json.Unmarshal(raw, out)
			}
			lastErr = parseHTTPError(resp.StatusCode, raw)
			if !retryableStatus(path, resp.StatusCode) {
				return lastErr
			}
			retryAfter = resp.Header
		}

		if attempt < c.maxRetries {
			wait := httpx.JitterSleep(backoff)
			if retryAfter != nil {
				wait = httpx.RetryAfterDuration(retryAfter, wait, 10*time.Second)
			}
			if err := httpx.Sleep(ctx, wait); err != nil {
				return err
			}
			backoff *= 2
		}
	}

	if lastErr == nil {
		lastErr = errors.New("request failed")
	}
	return fmt.Errorf("%s %s: %w", method, path, lastErr)
}

const generatePath = "/api/generate"

// Provider failures on generate are final.
func retryableStatus(path string, status int) bool {
	if path == generatePath && (status == http.StatusBadGateway || status == http.StatusGatewayTimeout) {
		return false
	}
	return httpx.IsRetryableHTTPStatus(status)
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/prince-Sf/Corelytics/internal/platform/ctxutil"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

func TestAttachTraceContextPropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.NewNop()))
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen != "req-42" {
		t.Fatalf("request id in context = %q", seen)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("response header = %q", got)
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("expected generated trace id")
	}
}

func TestAttachTraceContextGeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestAttachTraceContextReplacesUnsafeRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, bad := range []string{"has space", "tab\tid", strings.Repeat("a", maxRequestIDLen+1), "café"} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-Id", bad)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		got := rec.Header().Get("X-Request-Id")
		if got == bad || got == "" {
			t.Fatalf("request id %q should be replaced, got %q", bad, got)
		}
	}
}

func TestAttachTraceContextTagsSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx, span := tp.Tracer("test").Start(c.Request.Context(), "request")
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, AttachTraceContext())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-9")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans=%d", len(ended))
	}
	if got := rec.Header().Get("X-Trace-Id"); got != ended[0].SpanContext().TraceID().String() {
		t.Fatalf("trace header %q should come from the span", got)
	}
	var found bool
	for _, kv := range ended[0].Attributes() {
		if kv.Key == "corelytics.request_id" && kv.Value.AsString() == "req-9" {
			found = true
		}
	}
	if !found {
		t.Fatalf("span missing request id attribute: %v", ended[0].Attributes())
	}
}

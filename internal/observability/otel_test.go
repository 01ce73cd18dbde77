package observability

import (
	"context"
	"testing"

	"github.com/prince-Sf/Corelytics/internal/config"
	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.NewNop(), OtelConfig{})
	if shutdown == nil {
		t.Fatalf("expected shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitOTelStdoutExporter(t *testing.T) {
	shutdown := InitOTel(context.Background(), logger.NewNop(), OtelConfig{
		Version: "test",
		Tracing: config.TracingConfig{Enabled: true, SampleRatio: 0},
	})
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestOtelHeaders(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "authorization=Bearer x, bad, k=v,=skip")
	got := otelHeaders()
	if len(got) != 2 || got["authorization"] != "Bearer x" || got["k"] != "v" {
		t.Fatalf("unexpected headers: %v", got)
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.25: 0.25, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v)=%v want %v", in, got, want)
		}
	}
}

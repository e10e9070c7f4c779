package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init("test-service", Options{})
	if err != nil {
		t.Fatalf("Init should not error when disabled: %v", err)
	}
	if shutdown == nil {
		t.Fatal("Shutdown function should not be nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown should not error: %v", err)
	}
}

func TestInit_Enabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	// Nothing listens here; the exporter only connects on flush.
	shutdown, err := Init("test-service", Options{
		Enabled:    true,
		Endpoint:   "localhost:14318",
		SampleRate: 1,
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Logf("Shutdown error (expected in test): %v", err)
	}
}

func TestGetVersion(t *testing.T) {
	t.Setenv("SERVICE_VERSION", "")
	if version := getVersion(); version != "dev" {
		t.Errorf("Expected default version 'dev', got %s", version)
	}

	t.Setenv("SERVICE_VERSION", "1.2.3")
	if version := getVersion(); version != "1.2.3" {
		t.Errorf("Expected version '1.2.3', got %s", version)
	}
}

func TestStartSpanRecordsOnInstalledProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	sr := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))

	_, span := StartSpan(context.Background(), "cache.sweep")
	span.End()

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}
	if ended[0].Name() != "cache.sweep" {
		t.Errorf("span name = %q, want cache.sweep", ended[0].Name())
	}
}

package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	prevTracer := otel.GetTracerProvider()
	prevMeter := otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTracer)
		otel.SetMeterProvider(prevMeter)
	})
}

func TestSetupProviderWithoutEndpoint(t *testing.T) {
	restoreGlobals(t)
	before := otel.GetMeterProvider()

	shutdown, err := SetupProvider(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if otel.GetMeterProvider() != before {
		t.Fatalf("meter provider must be left untouched without an endpoint")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown returned %v", err)
	}
}

func TestSetupProviderInstallsProviders(t *testing.T) {
	restoreGlobals(t)

	// gRPC clients connect lazily, so no collector has to be listening.
	shutdown, err := SetupProvider(context.Background(), Config{
		Endpoint:       "127.0.0.1:4317",
		Insecure:       true,
		Headers:        map[string]string{"authorization": "Bearer test"},
		MetricInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = shutdown(ctx)
	})

	if _, ok := otel.GetMeterProvider().(*sdkmetric.MeterProvider); !ok {
		t.Fatalf("expected an SDK meter provider, got %T", otel.GetMeterProvider())
	}
	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Fatalf("expected an SDK tracer provider, got %T", otel.GetTracerProvider())
	}
}

func TestResourceAttributes(t *testing.T) {
	attrs := attribute.NewSet(resourceAttributes(Config{
		Environment:  "dev",
		ResourceTags: map[string]string{"team": "board"},
	})...)

	if v, ok := attrs.Value("service.name"); !ok || v.AsString() != "commission-board" {
		t.Fatalf("expected default service name, got %v", v)
	}
	if v, ok := attrs.Value("deployment.environment"); !ok || v.AsString() != "dev" {
		t.Fatalf("expected environment attribute, got %v", v)
	}
	if v, ok := attrs.Value("team"); !ok || v.AsString() != "board" {
		t.Fatalf("expected resource tag, got %v", v)
	}

	named := attribute.NewSet(resourceAttributes(Config{ServiceName: "board-cli"})...)
	if v, _ := named.Value("service.name"); v.AsString() != "board-cli" {
		t.Fatalf("expected configured service name, got %v", v)
	}
	if _, ok := named.Value("deployment.environment"); ok {
		t.Fatalf("environment must be omitted when unset")
	}
}

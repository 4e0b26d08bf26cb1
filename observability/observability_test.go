package observability

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestDisabledInitIsNoop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("disabled init should not fail: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown should not fail: %v", err)
	}
}

func TestNewMetricsCreatesInstruments(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	m, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Recording against noop instruments must not panic.
	m.RecordEstimate(context.Background(), "ao-pipeline", "ok", 123.4, 0)
	m.RecordEstimate(context.Background(), "ao-pipeline", "error", 0, 0)
	m.RecordError(context.Background(), "SHAPE_MISMATCH", "Centroider")
}

func TestServiceHealthDegrades(t *testing.T) {
	sh := NewServiceHealth("pipelat", "dev")
	if sh.Status != HealthStatusUp {
		t.Fatalf("expected up, got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "profiles", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDegraded {
		t.Fatalf("expected degraded, got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "registry", Status: HealthStatusDown})
	if sh.Status != HealthStatusDown {
		t.Fatalf("expected down, got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "late", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDown {
		t.Fatal("down must not be upgraded")
	}
}

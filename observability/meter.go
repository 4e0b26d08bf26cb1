package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/pipelat/pipelat/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.F{
		"service":  cfg.ServiceName,
		"endpoint": cfg.Endpoint,
		"interval": cfg.Interval.String(),
	})

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the metric instruments recorded by the estimator.
type Metrics struct {
	estimateTotal    metric.Int64Counter
	estimateDuration metric.Float64Histogram
	pipelineLatency  metric.Float64Histogram
	errorTotal       metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	estimateTotal, err := meter.Int64Counter("estimate.total",
		metric.WithDescription("Total number of estimation runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating estimate.total counter: %w", err)
	}

	estimateDuration, err := meter.Float64Histogram("estimate.duration",
		metric.WithDescription("Wall-clock duration of estimation runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating estimate.duration histogram: %w", err)
	}

	pipelineLatency, err := meter.Float64Histogram("pipeline.latency",
		metric.WithDescription("Estimated end-to-end pipeline latency in microseconds"),
		metric.WithUnit("us"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.latency histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total estimation errors by code and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		estimateTotal:    estimateTotal,
		estimateDuration: estimateDuration,
		pipelineLatency:  pipelineLatency,
		errorTotal:       errorTotal,
	}, nil
}

// RecordEstimate records a completed estimation run.
func (m *Metrics) RecordEstimate(ctx context.Context, pipeline, status string, latencyUs float64, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("status", status),
	)
	m.estimateTotal.Add(ctx, 1, attrs)
	m.estimateDuration.Record(ctx, duration.Seconds(), attrs)
	if status == "ok" {
		m.pipelineLatency.Record(ctx, latencyUs, metric.WithAttributes(
			attribute.String("pipeline", pipeline),
		))
	}
}

// RecordError records an estimation error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}

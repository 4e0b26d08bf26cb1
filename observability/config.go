// Package observability wires OpenTelemetry tracing and metrics for the
// estimator, exporting over OTLP HTTP.
package observability

import "time"

// Config configures tracing and metrics export.
type Config struct {
	// Enabled turns telemetry export on. When false, Init is a no-op and the
	// global no-op providers stay in place.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// ServiceName identifies this process in exported telemetry.
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `mapstructure:"environment" yaml:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	// Insecure allows plaintext connections to the collector.
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`
	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate" validate:"gte=0,lte=1"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// DefaultConfig returns sensible defaults for development.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		ServiceName: "pipelat",
		Environment: "development",
		Endpoint:    "localhost:4318",
		Insecure:    true,
		SampleRate:  1.0,
		Interval:    15 * time.Second,
	}
}

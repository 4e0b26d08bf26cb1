package config

import (
	"github.com/pipelat/pipelat/logger"
	"github.com/pipelat/pipelat/observability"
	"github.com/pipelat/pipelat/server"
)

// App is the top-level estimator configuration.
type App struct {
	// Logger configures structured logging.
	Logger logger.Config `mapstructure:"logger" yaml:"logger"`
	// Server configures the HTTP estimation service.
	Server server.Config `mapstructure:"server" yaml:"server"`
	// Observability configures tracing and metrics export.
	Observability observability.Config `mapstructure:"observability" yaml:"observability"`
	// Profiles is the directory holding hardware profile YAML files.
	Profiles string `mapstructure:"profiles" yaml:"profiles"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() App {
	return App{
		Logger: logger.Config{
			Level:     "info",
			Format:    "console",
			Output:    "stdout",
			Timestamp: true,
		},
		Server:        server.DefaultConfig(),
		Observability: observability.DefaultConfig(),
		Profiles:      "./examples/hardware",
	}
}

// LoadApp loads the application configuration, starting from defaults.
func LoadApp(opts ...LoaderOption) (App, error) {
	cfg := Default()
	if err := Load(&cfg, opts...); err != nil {
		return App{}, err
	}
	return cfg, nil
}

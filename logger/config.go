package logger

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
	// Format selects the output encoding: json or console.
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=json console"`
	// Output selects the destination: stdout or stderr.
	Output string `mapstructure:"output" yaml:"output" validate:"omitempty,oneof=stdout stderr"`
	// Timestamp enables timestamps on log entries.
	Timestamp bool `mapstructure:"timestamp" yaml:"timestamp"`
	// Caller enables caller annotation on log entries.
	Caller bool `mapstructure:"caller" yaml:"caller"`
	// NoColor disables ANSI colors in console format.
	NoColor bool `mapstructure:"no_color" yaml:"no_color"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}

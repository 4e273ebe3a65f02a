package observability

import (
	"fmt"
	"time"
)

// Config configures the OTLP exporters.
type Config struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be between 0 and 1, got %v", c.SampleRate)
	}
	if c.Interval < 0 {
		return fmt.Errorf("observability.interval must not be negative")
	}
	return nil
}

// Resource identifies the service in exported telemetry.
type Resource struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
}

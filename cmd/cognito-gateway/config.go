package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kbukum/cognito-gateway/cognito"
	"github.com/kbukum/cognito-gateway/config"
	"github.com/kbukum/cognito-gateway/observability"
	"github.com/kbukum/cognito-gateway/server"
	"github.com/kbukum/cognito-gateway/version"
)

const serviceName = "cognito-gateway"

// Config is the gateway's configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Cognito       cognito.Config       `yaml:"cognito" mapstructure:"cognito"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Cognito.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Cognito.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return nil
}

// loadConfig reads config.yml, .env and the environment into cfg. PORT and
// AWS_REGION are honored when the nested keys are unset.
func loadConfig(cfg *Config, opts ...config.LoaderOption) error {
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return err
	}

	if cfg.Server.Port == 0 {
		if v := os.Getenv("PORT"); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("PORT must be a number (got: %s)", v)
			}
			cfg.Server.Port = port
		}
	}
	if cfg.Cognito.Region == "" {
		cfg.Cognito.Region = os.Getenv("AWS_REGION")
	}
	return nil
}

package cognito

import (
	"fmt"
	"time"

	"github.com/kbukum/cognito-gateway/util"
)

const (
	DefaultRegion  = "ap-northeast-1"
	DefaultTimeout = 10 * time.Second
)

// Config holds the user pool app client settings.
type Config struct {
	Region string `yaml:"region" mapstructure:"region"`
	// AccessKeyID and SecretAccessKey are optional; when unset the AWS
	// default credential chain is used.
	AccessKeyID     string `yaml:"access_key_id" mapstructure:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" mapstructure:"secret_access_key"`
	ClientID        string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret    string `yaml:"client_secret" mapstructure:"client_secret"`
	// Endpoint overrides the service endpoint (e.g. a local emulator).
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("cognito.client_id is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("cognito.client_secret is required")
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return fmt.Errorf("cognito.access_key_id and cognito.secret_access_key must be set together")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("cognito.timeout must not be negative")
	}
	return nil
}

// HasStaticCredentials reports whether a static key pair is configured.
func (c *Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// MaskedClientID returns the client id with all but its last four
// characters hidden.
func (c *Config) MaskedClientID() string {
	return util.MaskSecret(c.ClientID, 4)
}

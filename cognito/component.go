package cognito

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/cognito-gateway/component"
	"github.com/kbukum/cognito-gateway/logger"
	"github.com/kbukum/cognito-gateway/observability"
)

// Component wraps Client and implements component.Component for lifecycle
// management.
type Component struct {
	cfg     Config
	metrics *observability.Metrics
	client  atomic.Pointer[Client]
	log     *logger.Logger
}

// NewComponent creates a cognito component for use with the component
// registry.
func NewComponent(cfg Config, metrics *observability.Metrics, log *logger.Logger) *Component {
	return &Component{
		cfg:     cfg,
		metrics: metrics,
		log:     log,
	}
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Client returns the underlying Client, or nil if not started.
func (c *Component) Client() *Client {
	return c.client.Load()
}

// Name returns the component name.
func (c *Component) Name() string { return "cognito" }

// Start loads AWS configuration and builds the client. No request is sent
// to the provider.
func (c *Component) Start(ctx context.Context) error {
	client, err := NewClient(ctx, &c.cfg, c.metrics, c.log)
	if err != nil {
		return fmt.Errorf("cognito start: %w", err)
	}
	c.client.Store(client)
	c.log.WithComponent("cognito").Info("cognito client ready", logger.Fields(
		"region", c.cfg.Region,
		"client_id", c.cfg.MaskedClientID(),
		"static_credentials", c.cfg.HasStaticCredentials(),
	))
	return nil
}

// Stop releases the client.
func (c *Component) Stop(_ context.Context) error {
	c.client.Store(nil)
	return nil
}

// Health reports whether the client has been built. It never calls the
// provider.
func (c *Component) Health(_ context.Context) component.Health {
	if c.client.Load() == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "client not initialized",
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns infrastructure summary info for the bootstrap display.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("region=%s client=%s timeout=%s", c.cfg.Region, c.cfg.MaskedClientID(), c.cfg.Timeout)
	if c.cfg.Endpoint != "" {
		details += " endpoint=" + c.cfg.Endpoint
	}
	return component.Description{
		Name:    "Cognito",
		Type:    "identity",
		Details: details,
	}
}

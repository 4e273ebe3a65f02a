package server

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/cognito-gateway/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*Component)(nil)
	_ component.Describable   = (*Component)(nil)
	_ component.RouteProvider = (*Component)(nil)
)

// Component wraps Server as a lifecycle component.
type Component struct {
	server  *Server
	running atomic.Bool
}

// NewComponent returns a component backed by the given Server.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Name returns the component name used for registration.
func (c *Component) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (c *Component) Start(ctx context.Context) error {
	if err := c.server.Start(ctx); err != nil {
		return err
	}
	c.running.Store(true)
	return nil
}

// Stop gracefully shuts down the underlying HTTP server.
func (c *Component) Stop(ctx context.Context) error {
	c.running.Store(false)
	return c.server.Stop(ctx)
}

// Health reports whether the server is serving.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.running.Load() {
		return component.Health{Name: componentName, Status: component.StatusHealthy}
	}
	return component.Health{
		Name:    componentName,
		Status:  component.StatusUnhealthy,
		Message: "HTTP server not started",
	}
}

// Describe returns summary info for the startup display.
func (c *Component) Describe() component.Description {
	cfg := c.server.config
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Port:    cfg.Port,
	}
}

// Routes returns all registered HTTP routes.
func (c *Component) Routes() []component.Route {
	return c.server.Routes()
}

package observability

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/cognito-gateway/component"
)

// Component installs the exporters on Start and flushes them on Stop.
// Instruments created from the global providers before Start are forwarded
// to the installed providers.
type Component struct {
	cfg Config
	res Resource

	mu       sync.Mutex
	shutdown ShutdownFunc
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates the telemetry component.
func NewComponent(cfg Config, res Resource) *Component {
	return &Component{cfg: cfg, res: res}
}

func (c *Component) Name() string { return "observability" }

func (c *Component) Start(ctx context.Context) error {
	shutdown, err := Setup(ctx, c.cfg, c.res)
	if err != nil {
		return fmt.Errorf("observability setup: %w", err)
	}
	c.mu.Lock()
	c.shutdown = shutdown
	c.mu.Unlock()
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	shutdown := c.shutdown
	c.shutdown = nil
	c.mu.Unlock()

	if shutdown == nil {
		return nil
	}
	return shutdown(ctx)
}

// Health reports healthy once started. With exporters disabled the message
// says so.
func (c *Component) Health(_ context.Context) component.Health {
	c.mu.Lock()
	started := c.shutdown != nil
	c.mu.Unlock()

	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case !started:
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case !c.cfg.Enabled:
		h.Message = "exporters disabled"
	}
	return h
}

func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = fmt.Sprintf("otlp=%s sample_rate=%.2f", c.cfg.Endpoint, c.cfg.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "telemetry", Details: details}
}

package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed infrastructure piece.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	// Health reports local state only and must not block on remote calls.
	Health(ctx context.Context) Health
}

// Description holds summary information for the startup display.
type Description struct {
	// Name is the display name; the component's Name() is used when empty.
	Name string
	// Type categorizes the component: "server", "identity", ...
	Type    string
	Details string
	// Port is the primary port, 0 if not applicable.
	Port int
}

// Describable is optionally implemented by components to appear in the
// startup summary.
type Describable interface {
	Describe() Description
}

// Route holds a single HTTP route for the startup summary.
type Route struct {
	Method  string
	Path    string
	Handler string
}

// RouteProvider is optionally implemented by server components to report
// their registered routes.
type RouteProvider interface {
	Routes() []Route
}

package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/cognito-gateway/component"
)

// InfrastructureInfo describes one infrastructure component.
type InfrastructureInfo struct {
	Name    string
	Type    string // "server", "identity", "telemetry"
	Details string
	Port    int
}

// RouteInfo describes a registered HTTP route.
type RouteInfo struct {
	Method  string
	Path    string
	Handler string
}

// Summary collects and prints what the application started with.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	infrastructure  []InfrastructureInfo
	routes          []RouteInfo
}

// NewSummary creates a new startup summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackInfrastructure adds an infrastructure entry.
func (s *Summary) TrackInfrastructure(info InfrastructureInfo) {
	s.infrastructure = append(s.infrastructure, info)
}

// TrackRoute records an HTTP route.
func (s *Summary) TrackRoute(method, path, handler string) {
	s.routes = append(s.routes, RouteInfo{Method: method, Path: path, Handler: handler})
}

// Collect gathers descriptions and routes from the registry's components.
func (s *Summary) Collect(registry *component.Registry) {
	for _, c := range registry.All() {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			name := desc.Name
			if name == "" {
				name = c.Name()
			}
			s.TrackInfrastructure(InfrastructureInfo{Name: name, Type: desc.Type, Details: desc.Details, Port: desc.Port})
		}
		if rp, ok := c.(component.RouteProvider); ok {
			for _, r := range rp.Routes() {
				s.TrackRoute(r.Method, r.Path, r.Handler)
			}
		}
	}
}

// Infrastructure returns the tracked infrastructure entries.
func (s *Summary) Infrastructure() []InfrastructureInfo { return s.infrastructure }

// Routes returns the tracked routes.
func (s *Summary) Routes() []RouteInfo { return s.routes }

// Display writes the summary to w, with live health from registry when
// it is non-nil.
func (s *Summary) Display(w io.Writer, registry *component.Registry) {
	fmt.Fprintf(w, "\n%s v%s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "\nInfrastructure\n")
		for i, inf := range s.infrastructure {
			details := inf.Details
			if inf.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, inf.Port)
			}
			fmt.Fprintf(w, "   %s %s [%s]: %s\n", branch(i, len(s.infrastructure)), inf.Name, inf.Type, details)
		}
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\nRoutes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-7s %s -> %s\n", branch(i, len(s.routes)), r.Method, r.Path, r.Handler)
		}
	}

	if registry != nil {
		results := registry.HealthAll(context.Background())
		if len(results) > 0 {
			fmt.Fprintf(w, "\nHealth\n")
			for i, h := range results {
				msg := ""
				if h.Message != "" {
					msg = " (" + h.Message + ")"
				}
				fmt.Fprintf(w, "   %s %s %s: %s%s\n", branch(i, len(results)), healthIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
			}
		}
	}

	fmt.Fprintln(w)
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}

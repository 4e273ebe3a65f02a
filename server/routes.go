package server

import (
	"sort"
	"strings"

	"github.com/kbukum/cognito-gateway/component"
)

// isSystemPath reports whether path is one of the default endpoints.
func isSystemPath(path string) bool {
	return strings.HasSuffix(path, "/health") || strings.HasSuffix(path, "/info")
}

// Routes returns the engine's routes for the startup summary: API routes
// first by path, then system routes.
func (s *Server) Routes() []component.Route {
	ginRoutes := s.engine.Routes()

	sort.Slice(ginRoutes, func(i, j int) bool {
		iSys := isSystemPath(ginRoutes[i].Path)
		jSys := isSystemPath(ginRoutes[j].Path)
		if iSys != jSys {
			return !iSys
		}
		if ginRoutes[i].Path != ginRoutes[j].Path {
			return ginRoutes[i].Path < ginRoutes[j].Path
		}
		return methodOrder(ginRoutes[i].Method) < methodOrder(ginRoutes[j].Method)
	})

	routes := make([]component.Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		handler := formatHandlerName(r.Handler)
		if isSystemPath(r.Path) {
			handler += " (system)"
		}
		routes = append(routes, component.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: handler,
		})
	}
	return routes
}

// formatHandlerName extracts a short handler name from Gin's full handler
// path:
//
//	"github.com/kbukum/cognito-gateway/handler.(*Handler).SignUp-fm" -> "Handler.SignUp"
func formatHandlerName(fullPath string) string {
	name := strings.TrimSuffix(fullPath, "-fm")

	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	// Closures: "endpoint.Health.func1" -> "health"
	if strings.Contains(name, ".func") {
		parts := strings.Split(name, ".")
		for i := len(parts) - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				name = strings.ToLower(parts[i])
				break
			}
		}
	}

	// Drop a lowercase package prefix.
	if pkg, rest, ok := strings.Cut(name, "."); ok && rest != "" && strings.ToLower(pkg) == pkg {
		name = rest
	}

	return name
}

// methodOrder returns a sort key for HTTP methods (GET first, DELETE last).
func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	case "PUT":
		return 2
	case "PATCH":
		return 3
	case "DELETE":
		return 4
	default:
		return 5
	}
}

// Package server provides the HTTP server: a Gin engine mounted on a
// ServeMux, wrapped by the net/http middleware chain and served with h2c.
//
// Middleware (server/middleware), outermost first:
//
//   - RequestID, RequestLogger, CORS, BodySizeLimit (net/http)
//   - Recovery, Metrics, ErrorBoundary (Gin, see ApplyMiddleware)
//   - Gate (Gin, per route)
//
// Endpoints (server/endpoint): health and info under the API base path.
package server

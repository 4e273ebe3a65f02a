// Package bootstrap runs a service's lifecycle: config defaults and
// validation, logger setup, component start in registration order, a
// configure phase for wiring handlers, graceful shutdown on SIGINT/SIGTERM
// with components stopped in reverse order.
package bootstrap

// Package logger provides structured logging for the gateway using zerolog.
//
// Loggers are scoped by component and enriched with request-scoped values
// (request id, user id) carried in the context.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("handler")
//	log.WithContext(ctx).Info("user signed in", logger.Fields("username", name))
package logger

// Package errors provides the gateway's structured error type.
//
// Locally detected problems (missing fields, password policy violations)
// and infrastructure failures (timeouts, unreachable provider) are expressed
// as *AppError values carrying a machine-readable code and an HTTP status.
// Errors reported by the identity provider itself are a separate type in
// package cognito and are translated by the HTTP handlers.
package errors

// Package component defines lifecycle-managed infrastructure pieces of the
// gateway (the identity provider client, the HTTP server) and the registry
// that starts them in order and stops them in reverse.
package component

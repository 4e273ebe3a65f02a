// Package endpoint provides the service's system endpoints: health and
// build info.
package endpoint

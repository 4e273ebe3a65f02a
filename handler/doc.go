// Package handler implements the /auth HTTP routes. Each handler shapes the
// request, makes exactly one identity provider call and translates provider
// failures into user-facing messages.
package handler

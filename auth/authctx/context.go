// Package authctx carries the identity resolved by the authentication gate
// through a request context.
//
// Usage:
//
//	// Store the identity (in the gate)
//	ctx = authctx.Set(ctx, identity)
//
//	// Retrieve it (in handlers behind the gate)
//	identity, ok := authctx.Get(ctx)
package authctx

import (
	"context"
	"errors"

	"github.com/kbukum/cognito-gateway/auth"
)

type contextKey struct{}

var identityKey = contextKey{}

// Set stores the resolved identity in the context.
func Set(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Get retrieves the identity from the context.
func Get(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok && identity != nil
}

// ErrNoIdentity is returned when no identity is stored in the context.
var ErrNoIdentity = errors.New("authctx: no identity in context")

// GetOrError retrieves the identity or returns ErrNoIdentity.
func GetOrError(ctx context.Context) (*auth.Identity, error) {
	identity, ok := Get(ctx)
	if !ok {
		return nil, ErrNoIdentity
	}
	return identity, nil
}

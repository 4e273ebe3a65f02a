// Package jwt inspects access tokens issued by the identity provider.
//
// Tokens are decoded without signature verification. The provider is the
// only authority on token validity; the claims read here feed log fields
// and never gate access.
package jwt

import (
	"errors"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the subset of provider access token claims the gateway
// reads.
type AccessClaims struct {
	gojwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	TokenUse string `json:"token_use,omitempty"`
	Scope    string `json:"scope,omitempty"`
}

// ErrMalformed is returned when a token cannot be decoded as a JWT.
var ErrMalformed = errors.New("jwt: malformed token")

var parser = gojwt.NewParser()

// Inspect decodes the claims of token without verifying its signature.
func Inspect(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}

// LogFields returns the non-empty claims suitable for log enrichment.
func (c *AccessClaims) LogFields() map[string]interface{} {
	fields := make(map[string]interface{}, 3)
	if c.Subject != "" {
		fields["sub"] = c.Subject
	}
	if c.Username != "" {
		fields["username"] = c.Username
	}
	if c.ClientID != "" {
		fields["client_id"] = c.ClientID
	}
	return fields
}

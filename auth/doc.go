// Package auth holds the identity types shared by the gateway's HTTP layer
// and its identity provider client.
//
// Subpackages:
//
//   - auth/credential: provider username derivation and secret hash signing
//   - auth/password: local password policy pre-check
//   - auth/authctx: request context propagation of the resolved identity
//   - auth/jwt: unverified inspection of provider-issued access tokens
//
// The top-level package defines Identity and the IdentityResolver contract
// the authentication gate depends on.
package auth

// Package credential derives the identity provider's username from an email
// address and signs it with the app client's secret hash.
package credential

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/kbukum/cognito-gateway/errors"
)

// DeriveIdentifier returns the provider username for an email address: the
// part before the first '@' with everything outside [A-Za-z0-9] removed.
// An empty email, or one whose local part has no letters or digits, is
// rejected with an INVALID_INPUT error.
func DeriveIdentifier(email string) (string, error) {
	if email == "" {
		return "", errors.InvalidInput("email", "email address is required")
	}

	local, _, _ := strings.Cut(email, "@")

	var b strings.Builder
	b.Grow(len(local))
	for i := 0; i < len(local); i++ {
		c := local[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return "", errors.InvalidInput("email", "email address must have a local part with letters or digits")
	}
	return b.String(), nil
}

// SecretHash computes base64(HMAC-SHA256(clientSecret, identifier+clientID)),
// the value the provider expects in SECRET_HASH for app clients that carry
// a secret.
func SecretHash(identifier, clientID, clientSecret string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(identifier + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Signed is a derived username with its secret hash.
type Signed struct {
	Identifier string
	SecretHash string
}

// Signer binds the app client id and secret loaded at startup. It holds no
// mutable state and is safe for concurrent use.
type Signer struct {
	clientID     string
	clientSecret string
}

// NewSigner creates a Signer for the given app client.
func NewSigner(clientID, clientSecret string) Signer {
	return Signer{clientID: clientID, clientSecret: clientSecret}
}

// Sign derives the identifier for email and computes its secret hash.
func (s Signer) Sign(email string) (Signed, error) {
	identifier, err := DeriveIdentifier(email)
	if err != nil {
		return Signed{}, err
	}
	return Signed{
		Identifier: identifier,
		SecretHash: SecretHash(identifier, s.clientID, s.clientSecret),
	}, nil
}

package auth

import "context"

// Attribute is a single user attribute reported by the identity provider.
type Attribute struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// Identity is the provider's view of the user owning an access token.
// JSON names follow the provider's own casing.
type Identity struct {
	Username            string      `json:"Username"`
	UserAttributes      []Attribute `json:"UserAttributes"`
	PreferredMfaSetting string      `json:"PreferredMfaSetting,omitempty"`
	UserMFASettingList  []string    `json:"UserMFASettingList,omitempty"`
}

// Attribute returns the value of the named attribute and whether it exists.
func (i *Identity) Attribute(name string) (string, bool) {
	for _, a := range i.UserAttributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Subject returns the provider's stable user id (the "sub" attribute),
// falling back to the username.
func (i *Identity) Subject() string {
	if sub, ok := i.Attribute("sub"); ok && sub != "" {
		return sub
	}
	return i.Username
}

// IdentityResolver resolves an access token into the identity that owns it.
// Every call is one round trip to the provider; implementations must not
// cache results.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, accessToken string) (*Identity, error)
}

// IdentityResolverFunc adapts an ordinary function to IdentityResolver.
type IdentityResolverFunc func(ctx context.Context, accessToken string) (*Identity, error)

// ResolveIdentity implements IdentityResolver.
func (f IdentityResolverFunc) ResolveIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	return f(ctx, accessToken)
}

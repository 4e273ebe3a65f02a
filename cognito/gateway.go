package cognito

import (
	"context"

	"github.com/kbukum/cognito-gateway/auth"
)

// Gateway is the identity provider contract the HTTP layer depends on.
// Every method is a single synchronous round trip; none is retried.
type Gateway interface {
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
	ConfirmSignUp(ctx context.Context, in ConfirmInput) (*ConfirmResult, error)
	InitiateAuth(ctx context.Context, in AuthInput) (*AuthResult, error)
	GlobalSignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*auth.Identity, error)
}

// SignUpInput registers Identifier with Email as its email attribute.
type SignUpInput struct {
	Identifier string
	Password   string
	SecretHash string
	Email      string
}

// ConfirmInput confirms a registration with the emailed code.
type ConfirmInput struct {
	Identifier string
	Code       string
	SecretHash string
}

// AuthInput authenticates with the USER_PASSWORD_AUTH flow.
type AuthInput struct {
	Identifier string
	Password   string
	SecretHash string
}

// CodeDelivery describes where a confirmation code was sent.
type CodeDelivery struct {
	AttributeName  string `json:"AttributeName,omitempty"`
	DeliveryMedium string `json:"DeliveryMedium,omitempty"`
	Destination    string `json:"Destination,omitempty"`
}

// SignUpResult mirrors the provider's SignUp response.
type SignUpResult struct {
	UserConfirmed       bool          `json:"UserConfirmed"`
	UserSub             string        `json:"UserSub,omitempty"`
	CodeDeliveryDetails *CodeDelivery `json:"CodeDeliveryDetails,omitempty"`
}

// ConfirmResult mirrors the provider's ConfirmSignUp response.
type ConfirmResult struct {
	Session string `json:"Session,omitempty"`
}

// Tokens is the token set issued on successful authentication.
type Tokens struct {
	AccessToken  string `json:"AccessToken,omitempty"`
	IdToken      string `json:"IdToken,omitempty"`
	RefreshToken string `json:"RefreshToken,omitempty"`
	TokenType    string `json:"TokenType,omitempty"`
	ExpiresIn    int32  `json:"ExpiresIn,omitempty"`
}

// AuthResult mirrors the provider's InitiateAuth response. Either
// AuthenticationResult is set or a challenge must be answered.
type AuthResult struct {
	AuthenticationResult *Tokens           `json:"AuthenticationResult,omitempty"`
	ChallengeName        string            `json:"ChallengeName,omitempty"`
	ChallengeParameters  map[string]string `json:"ChallengeParameters,omitempty"`
	Session              string            `json:"Session,omitempty"`
}

package cognito

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/cognito-gateway/auth"
	"github.com/kbukum/cognito-gateway/auth/jwt"
	"github.com/kbukum/cognito-gateway/logger"
	"github.com/kbukum/cognito-gateway/observability"
)

// api is the subset of the SDK client used by Client.
type api interface {
	SignUp(ctx context.Context, in *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, in *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
	GetUser(ctx context.Context, in *cip.GetUserInput, optFns ...func(*cip.Options)) (*cip.GetUserOutput, error)
}

// Client implements Gateway on top of aws-sdk-go-v2. It is built once at
// startup and safe for concurrent use.
type Client struct {
	api      api
	clientID string
	timeout  time.Duration
	metrics  *observability.Metrics
	log      *logger.Logger
}

var (
	_ Gateway               = (*Client)(nil)
	_ auth.IdentityResolver = (*Client)(nil)
)

// NewClient loads the AWS configuration and creates a Client. The SDK
// retryer is limited to a single attempt.
func NewClient(ctx context.Context, cfg *Config, metrics *observability.Metrics, log *logger.Logger) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryMaxAttempts(1),
	}
	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cognito: load aws config: %w", err)
	}

	var clientOpts []func(*cip.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *cip.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return newClient(cip.NewFromConfig(awsCfg, clientOpts...), cfg, metrics, log), nil
}

func newClient(a api, cfg *Config, metrics *observability.Metrics, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		api:      a,
		clientID: cfg.ClientID,
		timeout:  cfg.Timeout,
		metrics:  metrics,
		log:      log.WithComponent("cognito"),
	}
}

// SignUp registers a new user with an email attribute.
func (c *Client) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	var res *SignUpResult
	err := c.call(ctx, "SignUp", in.Identifier, func(ctx context.Context) error {
		out, err := c.api.SignUp(ctx, &cip.SignUpInput{
			ClientId:   aws.String(c.clientID),
			Username:   aws.String(in.Identifier),
			Password:   aws.String(in.Password),
			SecretHash: aws.String(in.SecretHash),
			UserAttributes: []types.AttributeType{
				{Name: aws.String("email"), Value: aws.String(in.Email)},
			},
		})
		if err != nil {
			return err
		}
		res = &SignUpResult{
			UserConfirmed:       out.UserConfirmed,
			UserSub:             aws.ToString(out.UserSub),
			CodeDeliveryDetails: codeDelivery(out.CodeDeliveryDetails),
		}
		return nil
	})
	return res, err
}

// ConfirmSignUp confirms a registration with the code sent to the user.
func (c *Client) ConfirmSignUp(ctx context.Context, in ConfirmInput) (*ConfirmResult, error) {
	var res *ConfirmResult
	err := c.call(ctx, "ConfirmSignUp", in.Identifier, func(ctx context.Context) error {
		out, err := c.api.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
			ClientId:         aws.String(c.clientID),
			Username:         aws.String(in.Identifier),
			ConfirmationCode: aws.String(in.Code),
			SecretHash:       aws.String(in.SecretHash),
		})
		if err != nil {
			return err
		}
		res = &ConfirmResult{Session: aws.ToString(out.Session)}
		return nil
	})
	return res, err
}

// InitiateAuth authenticates with USER_PASSWORD_AUTH.
func (c *Client) InitiateAuth(ctx context.Context, in AuthInput) (*AuthResult, error) {
	var res *AuthResult
	err := c.call(ctx, "InitiateAuth", in.Identifier, func(ctx context.Context) error {
		out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
			AuthFlow: types.AuthFlowTypeUserPasswordAuth,
			ClientId: aws.String(c.clientID),
			AuthParameters: map[string]string{
				"USERNAME":    in.Identifier,
				"PASSWORD":    in.Password,
				"SECRET_HASH": in.SecretHash,
			},
		})
		if err != nil {
			return err
		}
		res = &AuthResult{
			ChallengeName:       string(out.ChallengeName),
			ChallengeParameters: out.ChallengeParameters,
			Session:             aws.ToString(out.Session),
		}
		if ar := out.AuthenticationResult; ar != nil {
			res.AuthenticationResult = &Tokens{
				AccessToken:  aws.ToString(ar.AccessToken),
				IdToken:      aws.ToString(ar.IdToken),
				RefreshToken: aws.ToString(ar.RefreshToken),
				TokenType:    aws.ToString(ar.TokenType),
				ExpiresIn:    ar.ExpiresIn,
			}
		}
		return nil
	})
	return res, err
}

// GlobalSignOut invalidates every token issued for the access token's user.
func (c *Client) GlobalSignOut(ctx context.Context, accessToken string) error {
	return c.call(ctx, "GlobalSignOut", tokenUser(accessToken), func(ctx context.Context) error {
		_, err := c.api.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
			AccessToken: aws.String(accessToken),
		})
		return err
	})
}

// GetUser resolves an access token into the identity that owns it.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*auth.Identity, error) {
	var id *auth.Identity
	err := c.call(ctx, "GetUser", tokenUser(accessToken), func(ctx context.Context) error {
		out, err := c.api.GetUser(ctx, &cip.GetUserInput{
			AccessToken: aws.String(accessToken),
		})
		if err != nil {
			return err
		}
		id = &auth.Identity{
			Username:            aws.ToString(out.Username),
			UserAttributes:      make([]auth.Attribute, 0, len(out.UserAttributes)),
			PreferredMfaSetting: aws.ToString(out.PreferredMfaSetting),
			UserMFASettingList:  out.UserMFASettingList,
		}
		for _, a := range out.UserAttributes {
			id.UserAttributes = append(id.UserAttributes, auth.Attribute{
				Name:  aws.ToString(a.Name),
				Value: aws.ToString(a.Value),
			})
		}
		return nil
	})
	return id, err
}

// ResolveIdentity implements auth.IdentityResolver.
func (c *Client) ResolveIdentity(ctx context.Context, accessToken string) (*auth.Identity, error) {
	return c.GetUser(ctx, accessToken)
}

// call runs fn once under the per-call timeout inside a traced operation.
// The call is detached from the caller's cancellation so a client that
// disconnects does not abort a request already sent to the provider.
func (c *Client) call(ctx context.Context, operation, user string, fn func(ctx context.Context) error) error {
	callCtx := context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, c.timeout)
		defer cancel()
	}

	callCtx, op := observability.StartOperation(callCtx, c.metrics, "cognito", operation)
	if user != "" {
		op.SetAttributes(attribute.String(observability.AttrUsername, user))
	}

	err := fn(callCtx)
	if err == nil {
		op.End(callCtx, observability.OutcomeSuccess, nil)
		c.log.WithContext(ctx).Debug("cognito call succeeded", logger.DurationFields(operation, op.Duration()))
		return nil
	}

	outcome, err := translateError(operation, err)
	perr, isProvider := AsProviderError(err)
	if isProvider {
		op.SetAttributes(attribute.String(observability.AttrProviderError, perr.Name))
	}
	op.End(callCtx, outcome, err)

	fields := logger.DurationFields(operation, op.Duration())
	fields[logger.FieldUsername] = user
	if isProvider {
		fields[logger.FieldProvider] = perr.Name
		fields[logger.FieldStatus] = perr.HTTPStatus
		c.log.WithContext(ctx).Warn("cognito call rejected", fields)
	} else {
		c.log.WithContext(ctx).WithError(err).Error("cognito call failed", fields)
	}
	return err
}

// tokenUser reads the username claim of an access token for tracing and
// logs. The token is not verified here.
func tokenUser(accessToken string) string {
	claims, err := jwt.Inspect(accessToken)
	if err != nil {
		return ""
	}
	if claims.Username != "" {
		return claims.Username
	}
	return claims.Subject
}

func codeDelivery(d *types.CodeDeliveryDetailsType) *CodeDelivery {
	if d == nil {
		return nil
	}
	return &CodeDelivery{
		AttributeName:  aws.ToString(d.AttributeName),
		DeliveryMedium: string(d.DeliveryMedium),
		Destination:    aws.ToString(d.Destination),
	}
}

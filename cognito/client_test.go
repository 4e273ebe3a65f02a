package cognito

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/kbukum/cognito-gateway/errors"
	"github.com/kbukum/cognito-gateway/logger"
)

// fakeAPI records inputs and returns canned outputs.
type fakeAPI struct {
	calls map[string]int
	err   error
	wait  bool

	signUpIn  *cip.SignUpInput
	confirmIn *cip.ConfirmSignUpInput
	authIn    *cip.InitiateAuthInput
	signOutIn *cip.GlobalSignOutInput
	getUserIn *cip.GetUserInput

	authOut    *cip.InitiateAuthOutput
	getUserOut *cip.GetUserOutput
	callCtxErr error
}

func newFakeAPI() *fakeAPI { return &fakeAPI{calls: map[string]int{}} }

func (f *fakeAPI) do(ctx context.Context, op string) error {
	f.calls[op]++
	if f.wait {
		<-ctx.Done()
		return ctx.Err()
	}
	f.callCtxErr = ctx.Err()
	return f.err
}

func (f *fakeAPI) SignUp(ctx context.Context, in *cip.SignUpInput, _ ...func(*cip.Options)) (*cip.SignUpOutput, error) {
	f.signUpIn = in
	if err := f.do(ctx, "SignUp"); err != nil {
		return nil, err
	}
	return &cip.SignUpOutput{
		UserConfirmed: false,
		UserSub:       aws.String("sub-1"),
		CodeDeliveryDetails: &types.CodeDeliveryDetailsType{
			AttributeName:  aws.String("email"),
			DeliveryMedium: types.DeliveryMediumTypeEmail,
			Destination:    aws.String("a***@e***"),
		},
	}, nil
}

func (f *fakeAPI) ConfirmSignUp(ctx context.Context, in *cip.ConfirmSignUpInput, _ ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error) {
	f.confirmIn = in
	if err := f.do(ctx, "ConfirmSignUp"); err != nil {
		return nil, err
	}
	return &cip.ConfirmSignUpOutput{}, nil
}

func (f *fakeAPI) InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, _ ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	f.authIn = in
	if err := f.do(ctx, "InitiateAuth"); err != nil {
		return nil, err
	}
	return f.authOut, nil
}

func (f *fakeAPI) GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, _ ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error) {
	f.signOutIn = in
	if err := f.do(ctx, "GlobalSignOut"); err != nil {
		return nil, err
	}
	return &cip.GlobalSignOutOutput{}, nil
}

func (f *fakeAPI) GetUser(ctx context.Context, in *cip.GetUserInput, _ ...func(*cip.Options)) (*cip.GetUserOutput, error) {
	f.getUserIn = in
	if err := f.do(ctx, "GetUser"); err != nil {
		return nil, err
	}
	return f.getUserOut, nil
}

// providerErr builds an error shaped like the SDK's operation errors.
func providerErr(code, msg string, status int) error {
	return &smithy.OperationError{
		ServiceID:     "Cognito Identity Provider",
		OperationName: "Op",
		Err: &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
				Err:      &smithy.GenericAPIError{Code: code, Message: msg},
			},
			RequestID: "req-123",
		},
	}
}

func testClient(f *fakeAPI, timeout time.Duration) *Client {
	return newClient(f, &Config{ClientID: "client", Timeout: timeout}, nil, logger.NewNop())
}

func TestSignUpMapsInputAndOutput(t *testing.T) {
	f := newFakeAPI()
	c := testClient(f, time.Second)

	res, err := c.SignUp(context.Background(), SignUpInput{
		Identifier: "ab", Password: "Passw0rd!", SecretHash: "hash", Email: "a.b@example.com",
	})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if f.calls["SignUp"] != 1 {
		t.Errorf("expected exactly one SignUp call, got %d", f.calls["SignUp"])
	}

	in := f.signUpIn
	if aws.ToString(in.ClientId) != "client" || aws.ToString(in.Username) != "ab" ||
		aws.ToString(in.Password) != "Passw0rd!" || aws.ToString(in.SecretHash) != "hash" {
		t.Errorf("unexpected SignUp input %+v", in)
	}
	if len(in.UserAttributes) != 1 || aws.ToString(in.UserAttributes[0].Name) != "email" ||
		aws.ToString(in.UserAttributes[0].Value) != "a.b@example.com" {
		t.Errorf("expected email attribute, got %+v", in.UserAttributes)
	}

	if res.UserSub != "sub-1" || res.UserConfirmed {
		t.Errorf("unexpected result %+v", res)
	}
	if res.CodeDeliveryDetails == nil || res.CodeDeliveryDetails.DeliveryMedium != "EMAIL" {
		t.Errorf("expected code delivery details, got %+v", res.CodeDeliveryDetails)
	}
}

func TestConfirmSignUpMapsInput(t *testing.T) {
	f := newFakeAPI()
	c := testClient(f, time.Second)

	if _, err := c.ConfirmSignUp(context.Background(), ConfirmInput{Identifier: "ab", Code: "123456", SecretHash: "hash"}); err != nil {
		t.Fatalf("ConfirmSignUp failed: %v", err)
	}
	in := f.confirmIn
	if aws.ToString(in.ConfirmationCode) != "123456" || aws.ToString(in.Username) != "ab" ||
		aws.ToString(in.SecretHash) != "hash" || aws.ToString(in.ClientId) != "client" {
		t.Errorf("unexpected ConfirmSignUp input %+v", in)
	}
}

func TestInitiateAuthUsesPasswordFlow(t *testing.T) {
	f := newFakeAPI()
	f.authOut = &cip.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken:  aws.String("access"),
			IdToken:      aws.String("id"),
			RefreshToken: aws.String("refresh"),
			TokenType:    aws.String("Bearer"),
			ExpiresIn:    3600,
		},
	}
	c := testClient(f, time.Second)

	res, err := c.InitiateAuth(context.Background(), AuthInput{Identifier: "ab", Password: "Passw0rd!", SecretHash: "hash"})
	if err != nil {
		t.Fatalf("InitiateAuth failed: %v", err)
	}

	in := f.authIn
	if in.AuthFlow != types.AuthFlowTypeUserPasswordAuth {
		t.Errorf("expected USER_PASSWORD_AUTH, got %s", in.AuthFlow)
	}
	want := map[string]string{"USERNAME": "ab", "PASSWORD": "Passw0rd!", "SECRET_HASH": "hash"}
	for k, v := range want {
		if in.AuthParameters[k] != v {
			t.Errorf("AuthParameters[%s] = %q, want %q", k, in.AuthParameters[k], v)
		}
	}

	if res.AuthenticationResult == nil || res.AuthenticationResult.AccessToken != "access" ||
		res.AuthenticationResult.ExpiresIn != 3600 {
		t.Errorf("unexpected auth result %+v", res.AuthenticationResult)
	}
}

func TestGetUserMapsIdentity(t *testing.T) {
	f := newFakeAPI()
	f.getUserOut = &cip.GetUserOutput{
		Username: aws.String("ab"),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("sub"), Value: aws.String("sub-1")},
			{Name: aws.String("email"), Value: aws.String("a.b@example.com")},
		},
	}
	c := testClient(f, time.Second)

	id, err := c.ResolveIdentity(context.Background(), "token")
	if err != nil {
		t.Fatalf("ResolveIdentity failed: %v", err)
	}
	if aws.ToString(f.getUserIn.AccessToken) != "token" {
		t.Errorf("expected access token forwarded, got %q", aws.ToString(f.getUserIn.AccessToken))
	}
	if id.Username != "ab" || id.Subject() != "sub-1" {
		t.Errorf("unexpected identity %+v", id)
	}
	if email, _ := id.Attribute("email"); email != "a.b@example.com" {
		t.Errorf("expected email attribute, got %q", email)
	}
}

func TestGlobalSignOutForwardsToken(t *testing.T) {
	f := newFakeAPI()
	c := testClient(f, time.Second)

	if err := c.GlobalSignOut(context.Background(), "token"); err != nil {
		t.Fatalf("GlobalSignOut failed: %v", err)
	}
	if aws.ToString(f.signOutIn.AccessToken) != "token" {
		t.Errorf("expected token forwarded, got %q", aws.ToString(f.signOutIn.AccessToken))
	}
}

func TestProviderErrorTranslation(t *testing.T) {
	f := newFakeAPI()
	f.err = providerErr(ErrNotAuthorized, "Incorrect username or password.", http.StatusBadRequest)
	c := testClient(f, time.Second)

	_, err := c.InitiateAuth(context.Background(), AuthInput{Identifier: "ab"})
	perr, ok := AsProviderError(err)
	if !ok {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if perr.Name != ErrNotAuthorized {
		t.Errorf("expected name %s, got %s", ErrNotAuthorized, perr.Name)
	}
	if perr.Message != "Incorrect username or password." {
		t.Errorf("unexpected message %q", perr.Message)
	}
	if perr.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", perr.HTTPStatus)
	}
	if perr.RequestID != "req-123" {
		t.Errorf("expected request id, got %q", perr.RequestID)
	}
	if perr.Operation != "InitiateAuth" {
		t.Errorf("expected operation InitiateAuth, got %q", perr.Operation)
	}
	if !stderrors.Is(err, &ProviderError{Name: ErrNotAuthorized}) {
		t.Error("expected errors.Is to match by name")
	}
	if f.calls["InitiateAuth"] != 1 {
		t.Errorf("expected a single attempt, got %d", f.calls["InitiateAuth"])
	}
}

func TestProviderErrorWithoutHTTPResponse(t *testing.T) {
	f := newFakeAPI()
	f.err = &smithy.GenericAPIError{Code: ErrUserNotFound, Message: "User does not exist."}
	c := testClient(f, time.Second)

	_, err := c.GetUser(context.Background(), "token")
	perr, ok := AsProviderError(err)
	if !ok {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.HTTPStatus != 0 {
		t.Errorf("expected unknown status, got %d", perr.HTTPStatus)
	}
}

func TestTransportErrorTranslation(t *testing.T) {
	f := newFakeAPI()
	f.err = stderrors.New("dial tcp: connection refused")
	c := testClient(f, time.Second)

	err := c.GlobalSignOut(context.Background(), "token")
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeExternalService || appErr.HTTPStatus != http.StatusBadGateway {
		t.Errorf("unexpected AppError %+v", appErr)
	}
	if _, ok := AsProviderError(err); ok {
		t.Error("transport failure must not be a ProviderError")
	}
}

func TestCallTimeout(t *testing.T) {
	f := newFakeAPI()
	f.wait = true
	c := testClient(f, 20*time.Millisecond)

	_, err := c.SignUp(context.Background(), SignUpInput{Identifier: "ab"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeTimeout || appErr.HTTPStatus != http.StatusGatewayTimeout {
		t.Errorf("unexpected AppError %+v", appErr)
	}
	if f.calls["SignUp"] != 1 {
		t.Errorf("expected a single attempt, got %d", f.calls["SignUp"])
	}
}

func TestCallIgnoresCallerCancellation(t *testing.T) {
	f := newFakeAPI()
	c := testClient(f, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ConfirmSignUp(ctx, ConfirmInput{Identifier: "ab"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.callCtxErr != nil {
		t.Errorf("provider call saw canceled context: %v", f.callCtxErr)
	}
}

package cognito

import (
	"context"
	stderrors "errors"
	"fmt"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"

	"github.com/kbukum/cognito-gateway/errors"
	"github.com/kbukum/cognito-gateway/observability"
)

// Provider exception names the gateway maps to user-facing messages.
const (
	ErrUsernameExists   = "UsernameExistsException"
	ErrInvalidPassword  = "InvalidPasswordException"
	ErrNotAuthorized    = "NotAuthorizedException"
	ErrUserNotConfirmed = "UserNotConfirmedException"
	ErrUserNotFound     = "UserNotFoundException"
	ErrCodeMismatch     = "CodeMismatchException"
	ErrExpiredCode      = "ExpiredCodeException"
	ErrTooManyRequests  = "TooManyRequestsException"
	ErrInvalidParameter = "InvalidParameterException"
)

// ProviderError is a failure reported by the identity provider itself.
type ProviderError struct {
	Operation string
	// Name is the provider exception name, e.g. "NotAuthorizedException".
	Name    string
	Message string
	// HTTPStatus is the status of the provider's response, 0 if unknown.
	HTTPStatus int
	RequestID  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("cognito %s: %s: %s", e.Operation, e.Name, e.Message)
}

// Is matches another *ProviderError by Name, so callers can write
// errors.Is(err, &cognito.ProviderError{Name: cognito.ErrNotAuthorized}).
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	return ok && t.Name != "" && t.Name == e.Name
}

// AsProviderError extracts a *ProviderError from err.
func AsProviderError(err error) (*ProviderError, bool) {
	var perr *ProviderError
	if stderrors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// translateError classifies an SDK error and returns it with its call
// outcome. Provider exceptions become *ProviderError. A blown deadline
// becomes a TIMEOUT AppError, anything else EXTERNAL_SERVICE_ERROR.
func translateError(operation string, err error) (string, error) {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		perr := &ProviderError{
			Operation: operation,
			Name:      apiErr.ErrorCode(),
			Message:   apiErr.ErrorMessage(),
		}
		var respErr *awshttp.ResponseError
		if stderrors.As(err, &respErr) {
			perr.HTTPStatus = respErr.HTTPStatusCode()
			perr.RequestID = respErr.ServiceRequestID()
		}
		return observability.OutcomeProviderError, perr
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return observability.OutcomeTimeout, errors.Timeout(operation).WithCause(err)
	}
	return observability.OutcomeTransportError, errors.ExternalServiceError("cognito", err).WithDetail("operation", operation)
}

package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the client can retry the request.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the HTTP status code used when the error reaches a client.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// InvalidInput creates an AppError for a malformed or incomplete request.
func InvalidInput(field, reason string) *AppError {
	err := New(ErrCodeInvalidInput, reason, http.StatusBadRequest)
	if field != "" {
		err.WithDetail("field", field)
	}
	return err
}

// MissingField creates an AppError for a missing required field.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, fmt.Sprintf("%s is required", field), http.StatusBadRequest).
		WithDetail("field", field)
}

// Validation creates an AppError summarising one or more field failures.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// PolicyViolation creates an AppError for a password rejected by the local policy.
func PolicyViolation(rule, reason string) *AppError {
	return New(ErrCodePolicyViolation, reason, http.StatusBadRequest).WithDetail("rule", rule)
}

// Timeout creates an AppError for a provider call that ran out of time.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, "The request took too long. Please try again.", http.StatusGatewayTimeout).
		WithDetail("operation", operation)
}

// ExternalServiceError creates an AppError for a provider that could not be reached.
func ExternalServiceError(service string, cause error) *AppError {
	msg := fmt.Sprintf("The %s service could not be reached. Please try again.", service)
	return New(ErrCodeExternalService, msg, http.StatusBadGateway).
		WithDetail("service", service).
		WithCause(cause)
}

// Internal creates an AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "Internal server error", http.StatusInternalServerError).WithCause(cause)
}

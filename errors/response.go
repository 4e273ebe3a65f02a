package errors

import (
	stderrors "errors"
)

// ErrorResponse is the failure envelope returned to clients.
//
// Message is the user-facing summary for the operation that failed and
// Error carries the detailed reason.
type ErrorResponse struct {
	Message string    `json:"message"`
	Error   string    `json:"error,omitempty"`
	Code    ErrorCode `json:"code,omitempty"`
}

// ToResponse converts an AppError into an ErrorResponse under the given
// summary message. An empty summary falls back to the error's own message.
func (e *AppError) ToResponse(summary string) ErrorResponse {
	if summary == "" {
		return ErrorResponse{Message: e.Message, Code: e.Code}
	}
	return ErrorResponse{Message: summary, Error: e.Message, Code: e.Code}
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

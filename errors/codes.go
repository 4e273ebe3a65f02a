package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors. These are detected before any provider call.
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodePolicyViolation indicates a password failed the local policy.
	ErrCodePolicyViolation ErrorCode = "POLICY_VIOLATION"
)

// Availability errors
const (
	// ErrCodeTimeout indicates the provider call exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeExternalService indicates the provider could not be reached.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:         true,
	ErrCodeExternalService: true,
}

// IsRetryableCode reports whether a client may retry a request that failed
// with code. The gateway itself never retries.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

package errors

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Transient failures.
const (
	ErrCodeUnavailable     ErrorCode = "UNAVAILABLE"
	ErrCodeTimeout         ErrorCode = "TIMEOUT"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Permanent failures.
const (
	ErrCodeCancelled    ErrorCode = "CANCELLED"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeExhausted    ErrorCode = "RETRIES_EXHAUSTED"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeUnavailable:     true,
	ErrCodeTimeout:         true,
	ErrCodeExternalService: true,
}

// IsRetryableCode reports whether failures with code are worth retrying.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

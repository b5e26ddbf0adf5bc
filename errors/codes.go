package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// External tool errors
const (
	// ErrCodeProcessSpawnFailed indicates an external tool could not be started
	// (not on PATH, not executable, fixed path missing).
	ErrCodeProcessSpawnFailed ErrorCode = "PROCESS_SPAWN_FAILED"
	// ErrCodeProcessExitNonZero indicates an external tool ran and exited with
	// a non-zero status.
	ErrCodeProcessExitNonZero ErrorCode = "PROCESS_EXIT_NONZERO"
	// ErrCodeUnsupportedPlatform indicates no implementation exists for this OS.
	ErrCodeUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"
)

// Data errors
const (
	// ErrCodeIOFailure indicates a scratch file could not be read or written.
	ErrCodeIOFailure ErrorCode = "IO_FAILURE"
	// ErrCodeDecodeFailure indicates base64, JSON or image data could not be decoded.
	ErrCodeDecodeFailure ErrorCode = "DECODE_FAILURE"
)

// Upstream / availability errors
const (
	// ErrCodeNetworkFailure indicates the transport to a remote API failed
	// or the API answered with a server-side error.
	ErrCodeNetworkFailure ErrorCode = "NETWORK_FAILURE"
	// ErrCodeUpstreamRejected indicates a remote API refused the request (4xx).
	ErrCodeUpstreamRejected ErrorCode = "UPSTREAM_REJECTED"
	// ErrCodeTimeout indicates a process or request exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeServiceUnavailable indicates a circuit breaker or concurrency limit rejected the call.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeRateLimited indicates the caller exceeded a configured rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Caller errors
const (
	// ErrCodeInvalidInput indicates the command arguments are invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates an unknown command or resource.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnauthorized indicates a missing or invalid command token.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Configuration / internal errors
const (
	// ErrCodeMissingConfiguration indicates a required setting (e.g. an API key) is absent.
	ErrCodeMissingConfiguration ErrorCode = "MISSING_CONFIGURATION"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeNetworkFailure:     true,
	ErrCodeTimeout:            true,
	ErrCodeServiceUnavailable: true,
	ErrCodeRateLimited:        true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

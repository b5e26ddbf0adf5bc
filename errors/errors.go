package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// maxStderrDetail bounds how much tool stderr is attached to an error.
const maxStderrDetail = 2048

// AppError is the single error type returned by every command.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status used when the error crosses the command server.
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

// Is reports whether target is an *AppError with the same code, so callers can
// match on the taxonomy with errors.Is(err, errors.New(code, "", 0)).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

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

// --- External tool errors ---

// ProcessSpawnFailed reports that tool could not be started.
func ProcessSpawnFailed(tool string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeProcessSpawnFailed, Message: fmt.Sprintf("Failed to execute %s", tool),
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"tool": tool}, Cause: cause,
	}
}

// NonZeroExit reports that tool exited with exitCode. Trimmed stderr is kept in
// the message, as the desktop UI shows only the message.
func NonZeroExit(tool string, exitCode int, stderr []byte) *AppError {
	msg := strings.TrimSpace(string(stderr))
	if len(msg) > maxStderrDetail {
		msg = msg[:maxStderrDetail]
	}
	e := &AppError{
		Code: ErrCodeProcessExitNonZero, Message: fmt.Sprintf("%s failed: %s", tool, msg),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"tool": tool, "exit_code": exitCode},
	}
	if msg == "" {
		e.Message = fmt.Sprintf("%s failed with exit code %d", tool, exitCode)
	}
	return e
}

// UnsupportedPlatform reports that a capability has no implementation on goos.
func UnsupportedPlatform(capability, goos string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedPlatform, Message: fmt.Sprintf("%s is not supported on %s", capability, goos),
		HTTPStatus: http.StatusNotImplemented,
		Details:    map[string]any{"capability": capability, "platform": goos},
	}
}

// --- Data errors ---

// IOFailure reports a failed scratch-file operation.
func IOFailure(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeIOFailure, Message: fmt.Sprintf("Failed to %s", operation),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"operation": operation}, Cause: cause,
	}
}

// DecodeFailure reports undecodable input or upstream output.
func DecodeFailure(what string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDecodeFailure, Message: fmt.Sprintf("Failed to decode %s", what),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"what": what}, Cause: cause,
	}
}

// --- Upstream / availability errors ---

// NetworkFailure reports a transport failure talking to service.
func NetworkFailure(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeNetworkFailure, Message: fmt.Sprintf("Failed to call %s", service),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details:    map[string]any{"service": service}, Cause: cause,
	}
}

// UpstreamRejected reports that service answered with a client error status.
func UpstreamRejected(service string, status int) *AppError {
	return &AppError{
		Code: ErrCodeUpstreamRejected, Message: fmt.Sprintf("%s error: %d %s", service, status, http.StatusText(status)),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"service": service, "status": status},
	}
}

// Timeout reports that operation exceeded its deadline.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s took too long", operation),
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details:    map[string]any{"operation": operation},
	}
}

// ServiceUnavailable reports that a resilience guard rejected the call.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details:    map[string]any{"service": service},
	}
}

// RateLimited reports too many calls.
func RateLimited() *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
}

// --- Caller errors ---

// InvalidInput reports a bad argument.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Validation reports a pre-formatted validation message.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound reports an unknown resource.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("Unknown %s %q", resource, id),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// Unauthorized reports a missing or invalid command token.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// --- Configuration / internal errors ---

// MissingConfiguration reports a required setting that is not set. name is the
// environment variable or config key the operator should set.
func MissingConfiguration(what, name string) *AppError {
	return &AppError{
		Code: ErrCodeMissingConfiguration, Message: fmt.Sprintf("%s not found in environment", what),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"setting": name},
	}
}

// Internal reports an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	apperrors "github.com/kbukum/babelink/errors"
)

// maxBodyInError bounds how much of an error body StatusError prints.
const maxBodyInError = 256

// StatusError is the cause attached to an AppError built from a non-2xx
// response.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	if len(body) > maxBodyInError {
		body = body[:maxBodyInError] + "..."
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, body)
}

// StatusCode returns the upstream status carried by err, or 0 when err did
// not come from an HTTP response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// Retryable reports whether err is an AppError flagged retryable. Errors
// from outside the taxonomy are not retried.
func Retryable(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	return ok && appErr.Retryable
}

// statusError maps a non-2xx response onto the AppError taxonomy. 5xx and
// 429 are NETWORK_FAILURE; any other status is UPSTREAM_REJECTED.
func statusError(service string, status int, body []byte) *apperrors.AppError {
	cause := &StatusError{StatusCode: status, Body: body}
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		e := apperrors.NetworkFailure(service, cause).WithDetail("status", status)
		e.Message = fmt.Sprintf("%s error: %d %s", service, status, http.StatusText(status))
		return e
	}
	return apperrors.UpstreamRejected(service, status).WithCause(cause)
}

// transportError classifies a failure to send a request or read its body.
func transportError(ctx context.Context, service string, err error) *apperrors.AppError {
	if timedOut(ctx, err) {
		return apperrors.Timeout(service).WithCause(err)
	}
	return apperrors.NetworkFailure(service, err)
}

func timedOut(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

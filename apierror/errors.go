// Package apierror defines the failure taxonomy shared by every upstream
// client in this repository. Clients classify transport failures and non-2xx
// responses into an *Error carrying a Kind and a message specific enough to
// show in a UI unmodified; callers branch on the Kind via KindOf or the
// Is* helpers rather than string matching.
package apierror

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind identifies the class of an API failure.
type Kind int

const (
	// KindUnknown covers unclassified failures and unexpected status codes.
	KindUnknown Kind = iota
	// KindTimeout indicates the round trip exceeded the configured timeout.
	KindTimeout
	// KindNotFound indicates the upstream returned 404 for the given criteria.
	KindNotFound
	// KindServerError indicates a 5xx response.
	KindServerError
	// KindRateLimited indicates a 429 response.
	KindRateLimited
	// KindBadRequest indicates a 400 response.
	KindBadRequest
	// KindNetworkUnreachable indicates a connection-level failure with no response.
	KindNetworkUnreachable
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNotFound:
		return "not_found"
	case KindServerError:
		return "server_error"
	case KindRateLimited:
		return "rate_limited"
	case KindBadRequest:
		return "bad_request"
	case KindNetworkUnreachable:
		return "network_unreachable"
	default:
		return "unknown"
	}
}

// Error is a classified API failure.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int    // 0 when no response was received
	Body       string // raw upstream body, kept for Unknown diagnostics
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New constructs a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or KindUnknown if err is not a classified
// API error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is classified as NotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsRateLimited reports whether err is classified as RateLimited.
func IsRateLimited(err error) bool { return KindOf(err) == KindRateLimited }

// IsRetryable reports whether err is a transient transport failure
// (Timeout or NetworkUnreachable). Only the OSDR search path acts on this.
func IsRetryable(err error) bool {
	k := KindOf(err)
	return k == KindTimeout || k == KindNetworkUnreachable
}

// ClassifyTransport maps a failure from http.Client.Do (no response was
// received) to Timeout or NetworkUnreachable.
func ClassifyTransport(err error, message string) *Error {
	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Message: message + ": request timed out"}
	}
	return &Error{Kind: KindNetworkUnreachable, Message: message + ": " + rootCause(err)}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// rootCause unwraps url.Error style nesting so messages read
// "connection refused" instead of the full request URL dump.
func rootCause(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

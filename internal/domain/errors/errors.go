package errors

import (
	"fmt"
	"net/http"

	"dashcam/internal/errors"
)

// Kind is the closed set of failure categories a backend call can end in
type Kind int

const (
	// KindTransport means no response was received
	KindTransport Kind = iota + 1
	// KindHTTPStatus means the backend answered with a non-2xx status
	KindHTTPStatus
	// KindInvalidResponse means the body was malformed or missed a required field
	KindInvalidResponse
	// KindMissingCredential means an authenticated call was attempted without a session token
	KindMissingCredential
)

// String returns the stable name of the kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http-status"
	case KindInvalidResponse:
		return "invalid-response"
	case KindMissingCredential:
		return "missing-credential"
	default:
		return "unknown"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	ErrorCode() string // Stable error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// ClientError is the single error type returned by backend operations
type ClientError struct {
	kind   Kind
	op     string
	status int
	code   string
	detail string
	err    error
}

// Sentinels for errors.Is matching by kind
var (
	ErrTransport         = &ClientError{kind: KindTransport}
	ErrHTTPStatus        = &ClientError{kind: KindHTTPStatus}
	ErrInvalidResponse   = &ClientError{kind: KindInvalidResponse}
	ErrMissingCredential = &ClientError{kind: KindMissingCredential}
)

// NewTransportError records a failure where no response was received
func NewTransportError(op string, err error) *ClientError {
	return &ClientError{kind: KindTransport, op: op, err: err}
}

// NewHTTPStatusError records a non-2xx response. code and detail come from the backend body when it has them.
func NewHTTPStatusError(op string, status int, code, detail string) *ClientError {
	return &ClientError{kind: KindHTTPStatus, op: op, status: status, code: code, detail: detail}
}

// NewInvalidResponseError records a malformed body or a missing field
func NewInvalidResponseError(op string, err error) *ClientError {
	return &ClientError{kind: KindInvalidResponse, op: op, err: err}
}

// NewMissingCredentialError records an authenticated call attempted while signed out
func NewMissingCredentialError(op string) *ClientError {
	return &ClientError{kind: KindMissingCredential, op: op}
}

// Error implements the error interface
func (e *ClientError) Error() string {
	msg := e.kind.String()
	if e.op != "" {
		msg = e.op + ": " + msg
	}
	if e.status != 0 {
		msg = fmt.Sprintf("%s %d", msg, e.status)
	}
	if e.detail != "" {
		msg += ": " + e.detail
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause
func (e *ClientError) Unwrap() error {
	return e.err
}

// Is matches another ClientError of the same kind, so sentinels work with errors.Is
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}

	return t.kind == e.kind && (t.status == 0 || t.status == e.status)
}

// Kind returns the failure category
func (e *ClientError) Kind() Kind {
	return e.kind
}

// Op returns the operation that failed
func (e *ClientError) Op() string {
	return e.op
}

// StatusCode returns the HTTP status for KindHTTPStatus errors and 0 otherwise
func (e *ClientError) StatusCode() int {
	return e.status
}

// ErrorCode returns the backend's code if it sent one, else a code derived from the kind
func (e *ClientError) ErrorCode() string {
	if e.code != "" {
		return e.code
	}

	switch e.kind {
	case KindTransport:
		return "NETWORK_UNAVAILABLE"
	case KindHTTPStatus:
		return fmt.Sprintf("HTTP_%d", e.status)
	case KindInvalidResponse:
		return "INVALID_RESPONSE"
	case KindMissingCredential:
		return "NOT_SIGNED_IN"
	default:
		return "UNKNOWN"
	}
}

// Message returns a generic user-facing message
func (e *ClientError) Message() string {
	switch e.kind {
	case KindTransport:
		return "Could not reach the server. Check your connection and try again."
	case KindMissingCredential:
		return "Please sign in to continue."
	case KindHTTPStatus:
		if e.status == http.StatusUnauthorized || e.status == http.StatusForbidden {
			return "Your session is no longer valid. Please sign in again."
		}
		if e.status == http.StatusNotFound {
			return "The requested item could not be found."
		}

		return "Something went wrong. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// Details returns detailed error information
func (e *ClientError) Details() string {
	if e.detail != "" {
		return e.detail
	}
	if e.err != nil {
		return e.err.Error()
	}

	return ""
}

// KindOf returns the kind of the first ClientError in err's chain, or 0
func KindOf(err error) Kind {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.kind
	}

	return 0
}

// UserMessage returns the generic message for err, falling back for non-client errors
func UserMessage(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}

	return "Something went wrong. Please try again."
}

// IsUnauthorized reports whether err is a missing credential or a 401 from the backend
func IsUnauthorized(err error) bool {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return false
	}

	return ce.kind == KindMissingCredential || (ce.kind == KindHTTPStatus && ce.status == http.StatusUnauthorized)
}

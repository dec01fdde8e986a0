package grocer

import (
	"errors"
	"fmt"
)

// ErrKind classifies API client failures so callers can decide how to surface
// them without string matching.
type ErrKind int

const (
	// ErrKindNetwork means the request never produced an HTTP response
	// (DNS failure, connection refused, timeout).
	ErrKindNetwork ErrKind = iota
	// ErrKindServer means the server answered with a failure, either a
	// non-2xx status or a success status whose envelope signals an error.
	ErrKindServer
	// ErrKindDecode means the response body was not the JSON the endpoint
	// is documented to return. The raw body is kept as a plain-text payload.
	ErrKindDecode
	// ErrKindValidation means the payload was rejected client-side before
	// any request was made.
	ErrKindValidation
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNetwork:
		return "network"
	case ErrKindServer:
		return "server"
	case ErrKindDecode:
		return "decode"
	case ErrKindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// APIError is the single error type the client returns for failed operations.
type APIError struct {
	Kind       ErrKind
	StatusCode int    // 0 for network and validation errors
	Message    string // safe to show to the user
	Raw        string // non-JSON response body, decode errors only
	Err        error  // underlying transport/decoding error, may be nil
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or ErrKindServer for errors that
// did not originate from this client.
func KindOf(err error) ErrKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrKindServer
}

// IsNetworkError reports whether err is a transport-level failure for which
// the standard connectivity message should be shown.
func IsNetworkError(err error) bool {
	return KindOf(err) == ErrKindNetwork
}

// IsValidationError reports whether err was raised client-side before any
// request was made.
func IsValidationError(err error) bool {
	return KindOf(err) == ErrKindValidation
}

func networkError(err error) *APIError {
	return &APIError{
		Kind:    ErrKindNetwork,
		Message: "network unavailable, check your connection",
		Err:     err,
	}
}

func validationError(msg string) *APIError {
	return &APIError{Kind: ErrKindValidation, Message: msg}
}

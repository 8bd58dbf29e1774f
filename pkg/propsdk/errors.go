package propsdk

import "errors"

// APIError is the single error type the SDK surfaces. A rejection carries
// the backend's message verbatim; a transport failure carries a generic
// message plus the underlying error and has Transport set.
type APIError struct {
	// Message is shown to the user: the backend's own wording for
	// rejections, a generic "connection failed" for transport faults.
	Message string
	// Transport marks a network-level failure (the request never produced
	// a backend verdict).
	Transport bool
	// Err is the underlying error for transport failures.
	Err error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// transportError wraps a network fault in the SDK's error type.
func transportError(err error) *APIError {
	return &APIError{
		Message:   "Connection failed. Please check your network and try again.",
		Transport: true,
		Err:       err,
	}
}

// rejection wraps a backend refusal. An empty message gets a generic one
// so callers always have something to show.
func rejection(message string) *APIError {
	if message == "" {
		message = "The request was rejected."
	}
	return &APIError{Message: message}
}

// IsTransport reports whether err is a network-level failure rather than
// a backend verdict.
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Transport
}

// IsRejection reports whether err is a backend refusal carrying a
// user-facing message.
func IsRejection(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && !apiErr.Transport
}

package crptapi

import (
	"errors"
	"fmt"

	"github.com/ajiwo/crptapi/gate"
)

var (
	// ErrInterruptedWait is returned when ctx ends while the caller waits for quota.
	ErrInterruptedWait = gate.ErrInterruptedWait

	// ErrClosed is returned once the client has been closed.
	ErrClosed = gate.ErrClosed

	// ErrInvalidConfig is returned when the client configuration is invalid.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrNilDocument is wrapped by an EncodingError when no document is given.
	ErrNilDocument = errors.New("document cannot be nil")

	// ErrResponseTooLarge is wrapped by a TransportError when the response body exceeds the read limit.
	ErrResponseTooLarge = errors.New("response body too large")
)

// EncodingError reports a document that could not be serialized.
// No request was sent, but the admission is not refunded.
type EncodingError struct {
	DocumentID string
	Err        error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode document %q: %v", e.DocumentID, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// TransportError reports a failed HTTP exchange with the registry
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewEncodingError(documentID string, err error) error {
	var encErr *EncodingError
	if errors.As(err, &encErr) {
		return err
	}
	return &EncodingError{DocumentID: documentID, Err: err}
}

func NewTransportError(url string, err error) error {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return err
	}
	return &TransportError{URL: url, Err: err}
}

func newInvalidConfigError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

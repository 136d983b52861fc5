package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the slot has never been written.
	ErrNotFound = errors.New("document not found")

	// ErrValidationRejected means the store refused a payload that is not
	// syntactically valid JSON. Nothing was persisted.
	ErrValidationRejected = errors.New("document rejected: invalid JSON")
)

// TransportError wraps failures reaching or talking to the backing store.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError wraps err unless it is nil or already classified.
func NewTransportError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidationRejected) || IsTransport(err) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}

// IsTransport reports whether err is a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

package storeclient

import (
	"errors"
	"fmt"
	"net/http"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

type Category int

const (
	// Recoverable failures are retried.
	Recoverable Category = iota
	// Irrecoverable failures are returned without retry.
	Irrecoverable
)

func (c Category) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError carries the retry category of a failed request.
type ClassifiedError struct {
	Category   Category
	StatusCode int
	Body       string
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

func (e *ClassifiedError) Unwrap() error { return e.Underlying }

func IsIrrecoverable(err error) bool {
	var ce *ClassifiedError
	return errors.As(err, &ce) && ce.Category == Irrecoverable
}

func IsRecoverable(err error) bool {
	var ce *ClassifiedError
	return errors.As(err, &ce) && ce.Category == Recoverable
}

func categoryFor(status int) Category {
	switch {
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return Recoverable
	case status >= 400 && status < 500:
		return Irrecoverable
	default:
		return Recoverable
	}
}

// httpError classifies an unexpected response. Irrecoverable ones are
// wrapped in backoff.Permanent so the retry loop stops.
func httpError(op string, resp *resty.Response) error {
	ce := &ClassifiedError{
		Category:   categoryFor(resp.StatusCode()),
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
		Underlying: fmt.Errorf("%s failed: HTTP %d", op, resp.StatusCode()),
	}
	if ce.Category == Irrecoverable {
		return backoff.Permanent(ce)
	}
	return ce
}

func networkError(op string, err error) error {
	return &ClassifiedError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s network error: %w", op, err),
	}
}

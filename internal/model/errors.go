package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a piece of raw text could not become a Resume.
type ErrorKind int

const (
	KindMalformedSyntax ErrorKind = iota + 1
	KindMissingRequiredField
	KindInvalidShape
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedSyntax:
		return "malformed_syntax"
	case KindMissingRequiredField:
		return "missing_required_field"
	case KindInvalidShape:
		return "invalid_shape"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Sentinels for errors.Is matching against a *ValidationError.
var (
	ErrMalformedSyntax      = errors.New("malformed syntax")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidShape         = errors.New("invalid shape")
)

// ValidationError is returned by Parse. Field is set for
// KindMissingRequiredField, Details for KindInvalidShape.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Details []string
	Err     error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMalformedSyntax:
		if e.Err != nil {
			return fmt.Sprintf("malformed syntax: %v", e.Err)
		}
		return "malformed syntax"
	case KindMissingRequiredField:
		return fmt.Sprintf("missing required field %q", e.Field)
	case KindInvalidShape:
		return "invalid shape: " + strings.Join(e.Details, "; ")
	default:
		return "validation failed"
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrMalformedSyntax:
		return e.Kind == KindMalformedSyntax
	case ErrMissingRequiredField:
		return e.Kind == KindMissingRequiredField
	case ErrInvalidShape:
		return e.Kind == KindInvalidShape
	}
	return false
}

// Message is the text shown next to the editor.
func (e *ValidationError) Message() string {
	switch e.Kind {
	case KindMalformedSyntax:
		return "Invalid JSON format"
	case KindMissingRequiredField:
		return "Invalid resume structure: 'contact' object with 'name' field is required"
	case KindInvalidShape:
		return "Invalid resume structure: " + strings.Join(e.Details, "; ")
	default:
		return e.Error()
	}
}

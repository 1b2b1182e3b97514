package services

import (
	"errors"
	"fmt"
)

// ErrValidation marks bad user-supplied parameters. It is distinct from
// source.ErrRead so callers can tell a typo from a broken dataset.
var ErrValidation = errors.New("invalid input")

// ValidationError describes a rejected parameter.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// UserMessage is the text shown on the console.
func (e *ValidationError) UserMessage() string {
	return e.Reason
}

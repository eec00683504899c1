package buildgen

import (
	"errors"
	"fmt"
)

// ErrMissingField is the sentinel error matched by every ValidationError
// reported for an unset required field.
var ErrMissingField = errors.New("buildgen: missing required field")

// ValidationError is returned by a generated Build method when a required
// field was never set. It is inspectable by field name.
type ValidationError struct {
	Struct string // target struct name
	Name   string // offending field name
	err    error
}

// MissingField returns the ValidationError reported by generated builders
// for an unset required field.
func MissingField(structName, fieldName string) *ValidationError {
	return &ValidationError{
		Struct: structName,
		Name:   fieldName,
		err:    ErrMissingField,
	}
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("buildgen: missing required field %q", e.Struct+"."+e.Name)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.err
}

// Is reports whether the target matches the missing-field sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingField
}

// IsValidation reports whether the error is a ValidationError.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

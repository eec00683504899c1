package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidAnnotation indicates a malformed builder annotation.
	ErrInvalidAnnotation = errors.New("buildgen: invalid annotation")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("buildgen: code generation failed")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("buildgen: missing configuration")
)

// AnnotationError reports a builder annotation that is present but
// malformed: a missing or unrecognized sub-key, a non-identifier value, or
// an outer type shape that cannot accumulate. It is fatal for the affected
// field only.
type AnnotationError struct {
	Schema  string
	Field   string
	Pos     token.Position
	Message string
}

// Error implements the error interface.
func (e *AnnotationError) Error() string {
	var b strings.Builder
	b.WriteString("buildgen: annotation error")
	if e.Schema != "" && e.Field != "" {
		fmt.Fprintf(&b, " on field %q", e.Schema+"."+e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for AnnotationError.
func (e *AnnotationError) Is(target error) bool {
	return target == ErrInvalidAnnotation
}

// NewAnnotationError creates a new AnnotationError pinned at pos.
func NewAnnotationError(schema, field string, pos token.Position, format string, args ...any) *AnnotationError {
	return &AnnotationError{
		Schema:  schema,
		Field:   field,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// GenerationError represents a code generation failure.
type GenerationError struct {
	Schema  string
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("buildgen: generation error")
	if e.Schema != "" {
		b.WriteString(" for ")
		b.WriteString(e.Schema)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(schema, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Schema:  schema,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("buildgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("buildgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsAnnotationError reports whether the error is an AnnotationError.
func IsAnnotationError(err error) bool {
	var e *AnnotationError
	return errors.As(err, &e)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

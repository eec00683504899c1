// Package load extracts buildgen schemas from parsed Go source.
//
// The package is the compiler's front-end boundary: it normalizes a struct
// type declaration into an ordered field list carrying the raw type token
// sequence and the builder annotations, and nothing else. No type checking
// is performed; the token sequence is all downstream stages ever see.
package load

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Schema is a normalized record definition: the ordered field list of one
// marked struct. Field order is declaration order and is significant for
// validation error ordering in the generated Build method.
type Schema struct {
	Name   string
	Pos    token.Position
	Fields []*Field
}

// Field is a single extracted field: its name, the raw syntactic shape of
// its type, and the builder annotations attached through the struct tag.
type Field struct {
	Name        string
	Type        *TypeExpr
	Annotations []Annotation
	Pos         token.Position
}

// Annotation is an inert key/value marker under the builder tag namespace.
// The extractor preserves unrecognized sub-keys so the classifier can reject
// them with a pinned diagnostic.
type Annotation struct {
	Namespace string
	Key       string
	Value     string
}

// Annotation returns the annotations under the given namespace, in tag order.
func (f *Field) Annotation(namespace string) []Annotation {
	var ans []Annotation
	for _, an := range f.Annotations {
		if an.Namespace == namespace {
			ans = append(ans, an)
		}
	}
	return ans
}

// TypeExpr is the flattened token sequence of a field's type as written,
// together with the declaring file's selector-to-import-path table. The
// table is filled syntactically from the file's import block; it carries no
// resolution guarantees.
type TypeExpr struct {
	Tokens  []string
	Imports map[string]string
}

// String renders the token sequence back to a readable type spelling.
// Tokens concatenate directly except after a comma separator.
func (t *TypeExpr) String() string {
	var b strings.Builder
	for i, tok := range t.Tokens {
		if i > 0 && t.Tokens[i-1] == "," {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}

// Elem returns a TypeExpr over a sub-slice of the tokens, sharing the import
// table.
func (t *TypeExpr) Elem(tokens []string) *TypeExpr {
	return &TypeExpr{Tokens: tokens, Imports: t.Imports}
}

// ErrInvalidDefinition is the sentinel matched by every ExtractError.
var ErrInvalidDefinition = errors.New("buildgen: invalid definition")

// ExtractError reports a definition that is not a plain field-list struct.
// It is fatal for the whole definition; sibling definitions proceed.
type ExtractError struct {
	Schema  string
	Pos     token.Position
	Message string
}

// Error returns the error string.
func (e *ExtractError) Error() string {
	if e.Schema != "" {
		return fmt.Sprintf("buildgen: definition %q: %s", e.Schema, e.Message)
	}
	return "buildgen: " + e.Message
}

// Is reports whether the target matches the invalid-definition sentinel.
func (e *ExtractError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// NewExtractError creates a new ExtractError.
func NewExtractError(schema string, pos token.Position, format string, args ...any) *ExtractError {
	return &ExtractError{
		Schema:  schema,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsExtractError reports whether the error is an ExtractError.
func IsExtractError(err error) bool {
	var e *ExtractError
	return errors.As(err, &e)
}

package gen

import (
	"go/token"

	"github.com/syssam/buildgen/compiler/load"
)

// Field is a classified field: the extracted descriptor plus the
// classifier's verdict. It is the unit method synthesis and emission
// operate on.
type Field struct {
	Classification

	Name string
	Pos  token.Position

	schema *Schema
}

// newField classifies an extracted field.
func newField(s *Schema, lf *load.Field) (*Field, error) {
	c, err := Classify(s.Name, lf)
	if err != nil {
		return nil, err
	}
	return &Field{
		Classification: c,
		Name:           lf.Name,
		Pos:            lf.Pos,
		schema:         s,
	}, nil
}

// StructField returns the field name on the target struct, as written.
func (f *Field) StructField() string {
	return f.Name
}

// BuilderField returns the unexported storage name inside the generated
// builder struct.
func (f *Field) BuilderField() string {
	return builderField(f.Name)
}

// Setter returns the whole-value setter method name. For repeated fields
// this is the whole-slice setter, which may be suppressed on collision.
func (f *Field) Setter() string {
	return pascal(f.Name)
}

// Accumulator returns the per-element setter name for a repeated field.
// It is empty for other kinds.
func (f *Field) Accumulator() string {
	if f.Kind != KindRepeated {
		return ""
	}
	return pascal(f.Each)
}

// Required reports whether the field must be set before Build succeeds.
func (f *Field) Required() bool {
	return f.Kind == KindRequired
}

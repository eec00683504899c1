package gen

import (
	"go/token"

	"github.com/syssam/buildgen/compiler/load"
)

// Schema is a fully classified builder schema. Field order is the
// declaration order of the original struct and drives validation order in
// the generated Build method.
type Schema struct {
	Name   string
	Pos    token.Position
	Fields []*Field

	Config *Config
}

// NewSchema classifies every field of an extracted schema. Field-level
// failures become diagnostics and do not stop sibling fields, so a single
// pass reports every malformed annotation. A schema with diagnostics must
// not be emitted.
func NewSchema(c *Config, ls *load.Schema) (*Schema, Diagnostics) {
	s := &Schema{
		Name:   ls.Name,
		Pos:    ls.Pos,
		Config: c,
	}
	var diags Diagnostics
	for _, lf := range ls.Fields {
		f, err := newField(s, lf)
		if err != nil {
			diags = append(diags, NewDiagnostic(err))
			continue
		}
		s.Fields = append(s.Fields, f)
	}
	return s, diags
}

// BuilderName returns the name of the generated companion type.
func (s *Schema) BuilderName() string {
	return s.Name + "Builder"
}

// FactoryName returns the name of the generated constructor.
func (s *Schema) FactoryName() string {
	return "New" + s.BuilderName()
}

// Repeated returns the repeated fields in declaration order.
func (s *Schema) Repeated() []*Field {
	var fs []*Field
	for _, f := range s.Fields {
		if f.Kind == KindRepeated {
			fs = append(fs, f)
		}
	}
	return fs
}

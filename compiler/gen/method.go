package gen

// MethodKind distinguishes the setter shapes a field can synthesize.
type MethodKind int

const (
	// MethodSetter overwrites the stored value with a full inner-type
	// value.
	MethodSetter MethodKind = iota
	// MethodAdder appends one element to a repeated field's storage.
	MethodAdder
	// MethodSliceSetter replaces a repeated field's whole stored slice.
	MethodSliceSetter
)

// Method describes one builder method to emit. Synthesis is pure: it
// computes the method set and resolves naming collisions without touching
// any external state.
type Method struct {
	Name  string
	Kind  MethodKind
	Field *Field
}

// Methods synthesizes the builder's method set in declaration order.
//
// Required and optional fields get one overwriting setter under the field's
// default name. Repeated fields get an accumulator under the each name plus
// a whole-slice setter under the default name. When both names are equal,
// only the accumulator is emitted; two methods with one name and
// incompatible semantics cannot coexist.
//
// Name collisions with builder-reserved methods, with other fields'
// methods, or between two fields' storage names are diagnostics; a schema
// with diagnostics must not be emitted.
func (s *Schema) Methods() ([]*Method, Diagnostics) {
	var (
		methods []*Method
		diags   Diagnostics
		byName  = make(map[string]*Field)
		storage = make(map[string]*Field)
	)
	claim := func(f *Field, name string) bool {
		if reservedMethods[name] || name == s.FactoryName() {
			diags = append(diags, NewDiagnostic(NewAnnotationError(s.Name, f.Name, f.Pos,
				"method %q collides with a builder-reserved method", name)))
			return false
		}
		if prev, ok := byName[name]; ok && prev != f {
			diags = append(diags, NewDiagnostic(NewAnnotationError(s.Name, f.Name, f.Pos,
				"method %q already synthesized for field %q", name, prev.Name)))
			return false
		}
		byName[name] = f
		return true
	}
	for _, f := range s.Fields {
		if prev, ok := storage[f.BuilderField()]; ok {
			diags = append(diags, NewDiagnostic(NewAnnotationError(s.Name, f.Name, f.Pos,
				"storage name %q already used by field %q", f.BuilderField(), prev.Name)))
			continue
		}
		storage[f.BuilderField()] = f

		switch f.Kind {
		case KindRepeated:
			adder := f.Accumulator()
			if claim(f, adder) {
				methods = append(methods, &Method{Name: adder, Kind: MethodAdder, Field: f})
			}
			// The whole-slice setter is suppressed when the each name
			// shadows the field's default name.
			if setter := f.Setter(); setter != adder && claim(f, setter) {
				methods = append(methods, &Method{Name: setter, Kind: MethodSliceSetter, Field: f})
			}
		default:
			if setter := f.Setter(); claim(f, setter) {
				methods = append(methods, &Method{Name: setter, Kind: MethodSetter, Field: f})
			}
		}
	}
	return methods, diags
}

package builder

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/buildgen/compiler/gen"
)

// runtimePkg hosts the validation error values the generated Build method
// returns.
const runtimePkg = "github.com/syssam/buildgen"

// genBuilder emits the builder struct. Required and pointer-optional fields
// are stored behind a pointer so "unset" and "set to the zero value" stay
// distinguishable; named optional wrappers keep their written type; repeated
// fields accumulate in a slice.
func genBuilder(f *jen.File, s *gen.Schema) {
	fields := make([]jen.Code, 0, len(s.Fields))
	for _, fd := range s.Fields {
		fields = append(fields, jen.Id(fd.BuilderField()).Add(storageType(fd)))
	}
	f.Commentf("%s assembles %s values one field at a time.", s.BuilderName(), s.Name)
	f.Type().Id(s.BuilderName()).Struct(fields...)
}

// genFactory emits the builder constructor.
func genFactory(f *jen.File, s *gen.Schema) {
	f.Commentf("%s returns a builder with every field unset.", s.FactoryName())
	f.Func().Id(s.FactoryName()).Params().Op("*").Id(s.BuilderName()).Block(
		jen.Return(jen.Op("&").Id(s.BuilderName()).Values()),
	)
}

func storageType(fd *gen.Field) jen.Code {
	switch fd.Kind {
	case gen.KindRepeated:
		return jen.Index().Add(typeOf(fd.Inner))
	case gen.KindOptional:
		return typeOf(fd.Wrapper)
	default:
		return jen.Op("*").Add(typeOf(fd.Inner))
	}
}

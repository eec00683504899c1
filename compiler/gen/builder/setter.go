package builder

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/buildgen/compiler/gen"
)

// genSetters emits the synthesized method set in declaration order.
func genSetters(f *jen.File, s *gen.Schema, methods []*gen.Method) {
	for _, m := range methods {
		genSetter(f, s, m)
	}
}

func genSetter(f *jen.File, s *gen.Schema, m *gen.Method) {
	fd := m.Field
	bf := func() *jen.Statement { return jen.Id("b").Dot(fd.BuilderField()) }
	method := func(param jen.Code, body ...jen.Code) {
		f.Func().
			Params(jen.Id("b").Op("*").Id(s.BuilderName())).
			Id(m.Name).
			Params(jen.Id("v").Add(param)).
			Op("*").Id(s.BuilderName()).
			Block(append(body, jen.Return(jen.Id("b")))...)
	}
	switch m.Kind {
	case gen.MethodAdder:
		f.Commentf("%s appends one element to the %q field.", m.Name, fd.Name)
		method(typeOf(fd.Inner), bf().Op("=").Append(bf(), jen.Id("v")))
	case gen.MethodSliceSetter:
		f.Commentf("%s replaces the %q field with the given slice.", m.Name, fd.Name)
		method(jen.Index().Add(typeOf(fd.Inner)), bf().Op("=").Id("v"))
	default:
		f.Commentf("%s sets the %q field.", m.Name, fd.Name)
		if fd.Kind == gen.KindOptional && !fd.Deref {
			method(typeOf(fd.Inner), bf().Op("=").Add(someFunc(fd.Wrapper)).Call(jen.Id("v")))
			return
		}
		method(typeOf(fd.Inner), bf().Op("=").Op("&").Id("v"))
	}
}

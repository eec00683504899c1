package builder

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/buildgen/compiler/gen"
)

// genBuild emits the validating finalizer. Required fields are checked in
// declaration order and the first unset one aborts the build; repeated
// fields are copied so later builder mutations cannot alias the result.
func genBuild(f *jen.File, s *gen.Schema) {
	var body []jen.Code
	for _, fd := range s.Fields {
		if !fd.Required() {
			continue
		}
		body = append(body, jen.If(jen.Id("b").Dot(fd.BuilderField()).Op("==").Nil()).Block(
			jen.Return(jen.Nil(), jen.Qual(runtimePkg, "MissingField").Call(
				jen.Lit(s.Name), jen.Lit(fd.Name),
			)),
		))
	}
	lit := jen.Dict{}
	for _, fd := range s.Fields {
		key := jen.Id(fd.StructField())
		switch fd.Kind {
		case gen.KindRequired:
			lit[key] = jen.Op("*").Id("b").Dot(fd.BuilderField())
		case gen.KindOptional:
			lit[key] = jen.Id("b").Dot(fd.BuilderField())
		case gen.KindRepeated:
			lit[key] = jen.Append(
				jen.Make(
					jen.Index().Add(typeOf(fd.Inner)),
					jen.Lit(0),
					jen.Len(jen.Id("b").Dot(fd.BuilderField())),
				),
				jen.Id("b").Dot(fd.BuilderField()).Op("..."),
			)
		}
	}
	body = append(body, jen.Return(jen.Op("&").Id(s.Name).Values(lit), jen.Nil()))

	f.Commentf("Build assembles the %s value, reporting the first required field left unset.", s.Name)
	f.Func().
		Params(jen.Id("b").Op("*").Id(s.BuilderName())).
		Id("Build").
		Params().
		Params(jen.Op("*").Id(s.Name), jen.Error()).
		Block(body...)
}

// genMustBuild emits the panicking variant of Build.
func genMustBuild(f *jen.File, s *gen.Schema) {
	f.Comment("MustBuild is like Build, but panics when a required field is unset.")
	f.Func().
		Params(jen.Id("b").Op("*").Id(s.BuilderName())).
		Id("MustBuild").
		Params().
		Op("*").Id(s.Name).
		Block(
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Id("b").Dot("Build").Call(),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Panic(jen.Err())),
			jen.Return(jen.Id("v")),
		)
}

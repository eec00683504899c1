package load

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// extract parses src and runs FromTypeSpec on the first type declaration.
func extract(t *testing.T, src string) (*Schema, error) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "schema.go", src, parser.ParseComments)
	require.NoError(t, err)
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		return FromTypeSpec(fset, f, gd.Specs[0].(*ast.TypeSpec))
	}
	t.Fatal("no type declaration in source")
	return nil, nil
}

func TestFromTypeSpec(t *testing.T) {
	s, err := extract(t, `package schema

type Command struct {
	Executable string
	Args       []string `+"`builder:\"each=arg\"`"+`
	Env        []string
	CurrentDir string
}
`)
	require.NoError(t, err)
	require.Equal(t, "Command", s.Name)
	require.Len(t, s.Fields, 4)

	assert.Equal(t, "Executable", s.Fields[0].Name)
	assert.Equal(t, []string{"string"}, s.Fields[0].Type.Tokens)
	assert.Empty(t, s.Fields[0].Annotations)

	args := s.Fields[1]
	assert.Equal(t, []string{"[", "]", "string"}, args.Type.Tokens)
	require.Len(t, args.Annotations, 1)
	assert.Equal(t, Annotation{Namespace: "builder", Key: "each", Value: "arg"}, args.Annotations[0])
	assert.Equal(t, 5, args.Pos.Line)
}

func TestFromTypeSpec_TypeShapes(t *testing.T) {
	tests := []struct {
		typ    string
		tokens []string
	}{
		{"string", []string{"string"}},
		{"*string", []string{"*", "string"}},
		{"[]string", []string{"[", "]", "string"}},
		{"[4]byte", []string{"[", "4", "]", "byte"}},
		{"*[]string", []string{"*", "[", "]", "string"}},
		{"time.Time", []string{"time", ".", "Time"}},
		{"opt.Option[string]", []string{"opt", ".", "Option", "[", "string", "]"}},
		{"Pair[string, int]", []string{"Pair", "[", "string", ",", "int", "]"}},
		{"map[string]int", []string{"map", "[", "string", "]", "int"}},
		{"[]*api.User", []string{"[", "]", "*", "api", ".", "User"}},
		{"func(int) error", []string{"func(int) error"}},
		{"chan int", []string{"chan int"}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			s, err := extract(t, "package schema\n\ntype T struct {\n\tF "+tt.typ+"\n}\n")
			require.NoError(t, err)
			require.Len(t, s.Fields, 1)
			assert.Equal(t, tt.tokens, s.Fields[0].Type.Tokens)
		})
	}
}

func TestTypeExprString(t *testing.T) {
	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"[", "]", "string"}, "[]string"},
		{[]string{"*", "opt", ".", "Option", "[", "string", "]"}, "*opt.Option[string]"},
		{[]string{"Pair", "[", "string", ",", "int", "]"}, "Pair[string, int]"},
		{[]string{"map", "[", "string", "]", "int"}, "map[string]int"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, (&TypeExpr{Tokens: tt.tokens}).String())
	}
}

func TestFromTypeSpec_MultiNameFields(t *testing.T) {
	s, err := extract(t, "package schema\n\ntype T struct {\n\tA, B string\n}\n")
	require.NoError(t, err)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, "A", s.Fields[0].Name)
	assert.Equal(t, "B", s.Fields[1].Name)
	assert.Equal(t, s.Fields[0].Type, s.Fields[1].Type)
}

func TestFromTypeSpec_Rejections(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{
			name: "interface",
			src:  "package schema\n\ntype T interface{ M() }\n",
			msg:  `buildgen: definition "T": not a struct definition (only plain field lists are supported)`,
		},
		{
			name: "named type",
			src:  "package schema\n\ntype T int\n",
			msg:  `buildgen: definition "T": not a struct definition (only plain field lists are supported)`,
		},
		{
			name: "alias",
			src:  "package schema\n\ntype T = struct{ X int }\n",
			msg:  `buildgen: definition "T": type aliases cannot have builders`,
		},
		{
			name: "embedded field",
			src:  "package schema\n\ntype T struct {\n\tX int\n\tio.Reader\n}\n",
			msg:  `buildgen: definition "T": embedded fields are not supported`,
		},
		{
			name: "generic",
			src:  "package schema\n\ntype T[E any] struct{ X E }\n",
			msg:  `buildgen: definition "T": generic type parameters are not supported`,
		},
		{
			name: "redeclared field",
			src:  "package schema\n\ntype T struct {\n\tX int\n\tX string\n}\n",
			msg:  `buildgen: definition "T": field "X" redeclared`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extract(t, tt.src)
			require.EqualError(t, err, tt.msg)
			assert.True(t, IsExtractError(err))
			assert.ErrorIs(t, err, ErrInvalidDefinition)
			var ee *ExtractError
			require.ErrorAs(t, err, &ee)
			assert.NotZero(t, ee.Pos.Line)
		})
	}
}

func TestFieldAnnotations(t *testing.T) {
	s, err := extract(t, "package schema\n\ntype T struct {\n"+
		"\tA []string `builder:\"each=item\" json:\"a\"`\n"+
		"\tB []string `builder:\"\"`\n"+
		"\tC []string `builder:\"each=x,sep=y\"`\n"+
		"\tD []string `json:\"d\"`\n"+
		"}\n")
	require.NoError(t, err)

	require.Len(t, s.Fields[0].Annotations, 1)
	assert.Equal(t, "item", s.Fields[0].Annotations[0].Value)

	// Empty tag value is preserved as a malformed annotation, not dropped.
	require.Len(t, s.Fields[1].Annotations, 1)
	assert.Empty(t, s.Fields[1].Annotations[0].Key)

	require.Len(t, s.Fields[2].Annotations, 2)
	assert.Equal(t, "sep", s.Fields[2].Annotations[1].Key)

	assert.Empty(t, s.Fields[3].Annotation("builder"))
}

func TestFromTypeSpec_Imports(t *testing.T) {
	s, err := extract(t, `package schema

import (
	"time"
	opt "github.com/org/optional"
	_ "embed"
)

type T struct {
	At   time.Time
	Name opt.Option[string]
}
`)
	require.NoError(t, err)
	imports := s.Fields[0].Type.Imports
	assert.Equal(t, "time", imports["time"])
	assert.Equal(t, "github.com/org/optional", imports["opt"])
	_, ok := imports["embed"]
	assert.False(t, ok, "blank imports are not recorded")
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	src := `package schema

//buildgen:builder
type Command struct {
	Executable string
	Args       []string ` + "`builder:\"each=arg\"`" + `
}

// Plain struct without a marker is skipped.
type Ignored struct {
	X int
}

//buildgen:builder
type Broken interface{ M() }
`
	file := filepath.Join(dir, "schema.go")
	require.NoError(t, os.WriteFile(file, []byte(src), 0o644))

	res, err := LoadFiles(file)
	require.NoError(t, err)
	require.Len(t, res.Schemas, 1)
	assert.Equal(t, "Command", res.Schemas[0].Name)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Broken", res.Errors[0].Schema)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"),
		[]byte("package schema\n\n//buildgen:builder\ntype A struct{ X int }\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"),
		[]byte("package schema\n\n//buildgen:builder\ntype B struct{ Y int }\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_test.go"),
		[]byte("package schema\n\n//buildgen:builder\ntype Skipped struct{}\n"), 0o644))

	res, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, res.Schemas, 2)
	assert.Equal(t, "A", res.Schemas[0].Name)
	assert.Equal(t, "B", res.Schemas[1].Name)

	_, err = LoadDir(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

package gen

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/buildgen"
	"github.com/syssam/buildgen/compiler/load"
)

func typeExpr(toks ...string) *load.TypeExpr {
	return &load.TypeExpr{Tokens: toks}
}

func eachTag(value string) []load.Annotation {
	return []load.Annotation{{
		Namespace: buildgen.TagNamespace,
		Key:       buildgen.EachKey,
		Value:     value,
	}}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		field *load.Field
		kind  Kind
		inner string
		each  string
		deref bool
	}{
		{
			name:  "plain value is required",
			field: &load.Field{Name: "Executable", Type: typeExpr("string")},
			kind:  KindRequired,
			inner: "string",
		},
		{
			name:  "qualified value is required",
			field: &load.Field{Name: "Timeout", Type: typeExpr("time", ".", "Duration")},
			kind:  KindRequired,
			inner: "time.Duration",
		},
		{
			name:  "unannotated slice is required",
			field: &load.Field{Name: "Env", Type: typeExpr("[", "]", "string")},
			kind:  KindRequired,
			inner: "[]string",
		},
		{
			name:  "pointer is optional with deref",
			field: &load.Field{Name: "WorkDir", Type: typeExpr("*", "string")},
			kind:  KindOptional,
			inner: "string",
			deref: true,
		},
		{
			name:  "pointer to slice is optional",
			field: &load.Field{Name: "Extra", Type: typeExpr("*", "[", "]", "int")},
			kind:  KindOptional,
			inner: "[]int",
			deref: true,
		},
		{
			name:  "local Option wrapper is optional",
			field: &load.Field{Name: "Port", Type: typeExpr("Option", "[", "int", "]")},
			kind:  KindOptional,
			inner: "int",
		},
		{
			name:  "qualified Optional wrapper is optional",
			field: &load.Field{Name: "Port", Type: typeExpr("opt", ".", "Optional", "[", "int", "]")},
			kind:  KindOptional,
			inner: "int",
		},
		{
			name: "wrapper argument may nest brackets",
			field: &load.Field{Name: "Labels",
				Type: typeExpr("Option", "[", "map", "[", "string", "]", "int", "]")},
			kind:  KindOptional,
			inner: "map[string]int",
		},
		{
			name:  "two-argument wrapper is not optional",
			field: &load.Field{Name: "Pair", Type: typeExpr("Option", "[", "int", ",", "string", "]")},
			kind:  KindRequired,
			inner: "Option[int, string]",
		},
		{
			name:  "option-suffixed name is not a wrapper",
			field: &load.Field{Name: "Flags", Type: typeExpr("RetryOption", "[", "int", "]")},
			kind:  KindRequired,
			inner: "RetryOption[int]",
		},
		{
			name: "annotated slice is repeated",
			field: &load.Field{Name: "Args", Type: typeExpr("[", "]", "string"),
				Annotations: eachTag("arg")},
			kind:  KindRepeated,
			inner: "string",
			each:  "arg",
		},
		{
			name: "annotated slice of pointers is repeated",
			field: &load.Field{Name: "Hooks", Type: typeExpr("[", "]", "*", "Hook"),
				Annotations: eachTag("hook")},
			kind:  KindRepeated,
			inner: "*Hook",
			each:  "hook",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Classify("Command", tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.inner, c.Inner.String())
			assert.Equal(t, tt.each, c.Each)
			assert.Equal(t, tt.deref, c.Deref)
			assert.Equal(t, tt.field.Type, c.Wrapper)
		})
	}
}

func TestClassify_AnnotationErrors(t *testing.T) {
	pos := token.Position{Filename: "cmd.go", Line: 7, Column: 2}
	tests := []struct {
		name    string
		field   *load.Field
		message string
	}{
		{
			name: "empty annotation",
			field: &load.Field{Name: "Args", Type: typeExpr("[", "]", "string"), Pos: pos,
				Annotations: []load.Annotation{{Namespace: buildgen.TagNamespace}}},
			message: `buildgen: annotation error on field "Command.Args": missing "each" sub-key; did you mean ` + "`builder:\"each=arg\"`" + `?`,
		},
		{
			name: "unknown sub-key",
			field: &load.Field{Name: "Args", Type: typeExpr("[", "]", "string"), Pos: pos,
				Annotations: []load.Annotation{{Namespace: buildgen.TagNamespace, Key: "item", Value: "arg"}}},
			message: `buildgen: annotation error on field "Command.Args": unrecognized sub-key "item" (only "each" is recognized)`,
		},
		{
			name: "non-identifier value",
			field: &load.Field{Name: "Args", Type: typeExpr("[", "]", "string"), Pos: pos,
				Annotations: eachTag("2arg")},
			message: `buildgen: annotation error on field "Command.Args": accumulator name "2arg" is not a valid identifier; did you mean ` + "`builder:\"each=arg\"`" + `?`,
		},
		{
			name: "non-slice field",
			field: &load.Field{Name: "Args", Type: typeExpr("string"), Pos: pos,
				Annotations: eachTag("arg")},
			message: `buildgen: annotation error on field "Command.Args": "each" requires a slice field, got string`,
		},
		{
			name: "pointer to slice stays rejected",
			field: &load.Field{Name: "Args", Type: typeExpr("*", "[", "]", "string"), Pos: pos,
				Annotations: eachTag("arg")},
			message: `buildgen: annotation error on field "Command.Args": "each" requires a slice field, got *[]string`,
		},
		{
			name: "conflicting annotations",
			field: &load.Field{Name: "Args", Type: typeExpr("[", "]", "string"), Pos: pos,
				Annotations: append(eachTag("arg"), eachTag("flag")...)},
			message: `buildgen: annotation error on field "Command.Args": conflicting builder annotations (2 given, want one)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify("Command", tt.field)
			require.Error(t, err)
			assert.True(t, IsAnnotationError(err))
			assert.ErrorIs(t, err, ErrInvalidAnnotation)
			assert.EqualError(t, err, tt.message)

			var ae *AnnotationError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, pos, ae.Pos)
		})
	}
}

func TestEachHint(t *testing.T) {
	assert.Equal(t, "arg", eachHint("Args"))
	assert.Equal(t, "entry", eachHint("entries"))
	assert.Equal(t, "envVar", eachHint("env_vars"))
}

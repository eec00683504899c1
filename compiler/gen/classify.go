package gen

import (
	"go/token"

	"github.com/go-openapi/inflect"

	"github.com/syssam/buildgen"
	"github.com/syssam/buildgen/compiler/load"
)

// Kind is the syntactic classification of a field.
type Kind int

const (
	// KindRequired fields must be set before Build succeeds.
	KindRequired Kind = iota
	// KindOptional fields are optional as written (pointer or known
	// optional wrapper); absence is valid.
	KindOptional
	// KindRepeated fields accumulate elements through an each setter;
	// absence yields an empty slice.
	KindRepeated
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindOptional:
		return "optional"
	case KindRepeated:
		return "repeated"
	default:
		return "unknown"
	}
}

// Classification is the classifier's verdict for one field. It is a pure
// function of the field's token shape and annotations; it never consults
// resolved type identity.
type Classification struct {
	Kind Kind
	// Inner is the element type for repeated fields, the unwrapped type
	// for optional fields, and the type as written for required fields.
	Inner *load.TypeExpr
	// Wrapper is the full written type; it differs from Inner for
	// optional and repeated fields.
	Wrapper *load.TypeExpr
	// Each is the accumulator method name for repeated fields.
	Each string
	// Deref reports that the optional wrapper is a plain pointer rather
	// than a named Option type.
	Deref bool
}

// Classify determines the classification of a single extracted field.
// Malformed annotations are an *AnnotationError pinned at the field.
func Classify(schema string, f *load.Field) (Classification, error) {
	if ans := f.Annotation(buildgen.TagNamespace); len(ans) > 0 {
		return classifyRepeated(schema, f, ans)
	}
	if elem, ok := pointerElem(f.Type); ok {
		return Classification{Kind: KindOptional, Inner: elem, Wrapper: f.Type, Deref: true}, nil
	}
	if arg, ok := optionalArg(f.Type); ok {
		return Classification{Kind: KindOptional, Inner: arg, Wrapper: f.Type}, nil
	}
	return Classification{Kind: KindRequired, Inner: f.Type, Wrapper: f.Type}, nil
}

func classifyRepeated(schema string, f *load.Field, ans []load.Annotation) (Classification, error) {
	fail := func(format string, args ...any) (Classification, error) {
		return Classification{}, NewAnnotationError(schema, f.Name, f.Pos, format, args...)
	}
	if len(ans) > 1 {
		return fail("conflicting builder annotations (%d given, want one)", len(ans))
	}
	an := ans[0]
	switch {
	case an.Key == "":
		return fail("missing %q sub-key; did you mean `builder:\"each=%s\"`?",
			buildgen.EachKey, eachHint(f.Name))
	case an.Key != buildgen.EachKey:
		return fail("unrecognized sub-key %q (only %q is recognized)", an.Key, buildgen.EachKey)
	case !token.IsIdentifier(an.Value):
		return fail("accumulator name %q is not a valid identifier; did you mean `builder:\"each=%s\"`?",
			an.Value, eachHint(f.Name))
	}
	elem, ok := sliceElem(f.Type)
	if !ok {
		return fail("%q requires a slice field, got %s", buildgen.EachKey, f.Type)
	}
	return Classification{Kind: KindRepeated, Inner: elem, Wrapper: f.Type, Each: an.Value}, nil
}

// eachHint suggests an accumulator name derived from the field name.
func eachHint(name string) string {
	return lowerFirst(inflect.Singularize(pascal(name)))
}

// sliceElem matches the "sequence of one parameter" shape: a slice type.
// Named sequence types and arrays do not match; the classifier has no way
// to append to them.
func sliceElem(t *load.TypeExpr) (*load.TypeExpr, bool) {
	toks := t.Tokens
	if len(toks) < 3 || toks[0] != "[" || toks[1] != "]" {
		return nil, false
	}
	return t.Elem(toks[2:]), true
}

// pointerElem matches the pointer shape *T.
func pointerElem(t *load.TypeExpr) (*load.TypeExpr, bool) {
	toks := t.Tokens
	if len(toks) < 2 || toks[0] != "*" {
		return nil, false
	}
	return t.Elem(toks[1:]), true
}

// optionalArg matches the "single-parameter optional wrapper" shape: a
// possibly qualified named type whose last path segment is a known optional
// name, instantiated with exactly one type argument.
func optionalArg(t *load.TypeExpr) (*load.TypeExpr, bool) {
	toks := t.Tokens
	n := len(toks)
	if n < 4 || toks[n-1] != "]" {
		return nil, false
	}
	// Find the bracket opening the final type argument list.
	depth := 0
	open := -1
	for i := n - 1; i >= 0; i-- {
		switch toks[i] {
		case "]":
			depth++
		case "[":
			depth--
			if depth == 0 {
				open = i
			}
		}
	}
	if open < 1 {
		return nil, false
	}
	head, args := toks[:open], toks[open+1:n-1]
	if !namedPath(head) || !optionalTypeNames[head[len(head)-1]] {
		return nil, false
	}
	if len(args) == 0 || topLevelComma(args) {
		return nil, false
	}
	return t.Elem(args), true
}

// namedPath reports whether tokens spell a plain (possibly qualified)
// type name: ident, or ident '.' ident chains.
func namedPath(toks []string) bool {
	if len(toks) == 0 || len(toks)%2 == 0 {
		return false
	}
	for i, tok := range toks {
		if i%2 == 1 {
			if tok != "." {
				return false
			}
		} else if !token.IsIdentifier(tok) {
			return false
		}
	}
	return true
}

// topLevelComma reports whether the token sequence contains a comma outside
// any bracket nesting, i.e. more than one type argument.
func topLevelComma(toks []string) bool {
	depth := 0
	for _, tok := range toks {
		switch tok {
		case "[":
			depth++
		case "]":
			depth--
		case ",":
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

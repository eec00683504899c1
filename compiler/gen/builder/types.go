package builder

import (
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/buildgen/compiler/load"
)

// typeOf renders a type token sequence back to Jennifer code, registering
// imports for qualified names through the extractor's selector table.
// Token shapes outside the recognized grammar render verbatim; the
// writer's goimports pass keeps them honest.
func typeOf(t *load.TypeExpr) jen.Code {
	code, rest := parseType(t.Tokens, t.Imports)
	if code == nil || len(rest) > 0 {
		return jen.Id(t.String())
	}
	return code
}

// parseType consumes one type from the token stream and returns the
// remainder. A nil code means the shape was not recognized.
func parseType(toks []string, imports map[string]string) (jen.Code, []string) {
	if len(toks) == 0 {
		return nil, nil
	}
	switch toks[0] {
	case "*":
		inner, rest := parseType(toks[1:], imports)
		if inner == nil {
			return nil, nil
		}
		return jen.Op("*").Add(inner), rest
	case "[":
		return parseArray(toks, imports)
	case "map":
		return parseMap(toks, imports)
	default:
		return parseNamed(toks, imports)
	}
}

func parseArray(toks []string, imports map[string]string) (jen.Code, []string) {
	toks = toks[1:]
	var length string
	if len(toks) > 0 && toks[0] != "]" {
		length = toks[0]
		toks = toks[1:]
	}
	if len(toks) == 0 || toks[0] != "]" {
		return nil, nil
	}
	elem, rest := parseType(toks[1:], imports)
	if elem == nil {
		return nil, nil
	}
	if length != "" {
		return jen.Index(jen.Id(length)).Add(elem), rest
	}
	return jen.Index().Add(elem), rest
}

func parseMap(toks []string, imports map[string]string) (jen.Code, []string) {
	if len(toks) < 2 || toks[1] != "[" {
		return nil, nil
	}
	key, rest := parseType(toks[2:], imports)
	if key == nil || len(rest) == 0 || rest[0] != "]" {
		return nil, nil
	}
	val, rest := parseType(rest[1:], imports)
	if val == nil {
		return nil, nil
	}
	return jen.Map(key).Add(val), rest
}

// parseNamed consumes a possibly qualified identifier with an optional type
// argument list.
func parseNamed(toks []string, imports map[string]string) (jen.Code, []string) {
	if !token.IsIdentifier(toks[0]) {
		// Verbatim token from the extractor's fallback (func, chan, ...).
		return jen.Id(toks[0]), toks[1:]
	}
	path := []string{toks[0]}
	rest := toks[1:]
	for len(rest) >= 2 && rest[0] == "." && token.IsIdentifier(rest[1]) {
		path = append(path, rest[1])
		rest = rest[2:]
	}

	var base *jen.Statement
	if len(path) > 1 {
		if imp, ok := imports[path[0]]; ok && len(path) == 2 {
			base = jen.Qual(imp, path[1])
		} else {
			base = jen.Id(strings.Join(path, "."))
		}
	} else {
		base = jen.Id(path[0])
	}

	if len(rest) == 0 || rest[0] != "[" {
		return base, rest
	}
	args, rest, ok := parseTypeArgs(rest, imports)
	if !ok {
		return nil, nil
	}
	return base.Index(args...), rest
}

// parseTypeArgs consumes a bracketed, comma-separated type argument list.
func parseTypeArgs(toks []string, imports map[string]string) ([]jen.Code, []string, bool) {
	toks = toks[1:] // consume "["
	var args []jen.Code
	for {
		arg, rest := parseType(toks, imports)
		if arg == nil {
			return nil, nil, false
		}
		args = append(args, arg)
		if len(rest) == 0 {
			return nil, nil, false
		}
		switch rest[0] {
		case ",":
			toks = rest[1:]
		case "]":
			return args, rest[1:], true
		default:
			return nil, nil, false
		}
	}
}

// someFunc resolves the Some constructor assumed to live next to a named
// optional wrapper: qualified wrappers use the same package as the wrapper,
// local wrappers a local Some.
func someFunc(t *load.TypeExpr) *jen.Statement {
	toks := t.Tokens
	// Shape was validated by the classifier: ident ('.' ident)* '[' ... ']'.
	open := 0
	for i, tok := range toks {
		if tok == "[" {
			open = i
			break
		}
	}
	head := toks[:open]
	if len(head) == 1 {
		return jen.Id("Some")
	}
	if imp, ok := t.Imports[head[0]]; ok && len(head) == 3 {
		return jen.Qual(imp, "Some")
	}
	return jen.Id(strings.Join(head[:len(head)-1], ".") + ".Some")
}

package load

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"path"
	"reflect"
	"strconv"
	"strings"

	"github.com/syssam/buildgen"
)

// FromTypeSpec normalizes one parsed type declaration into a Schema. It
// recognizes only the plain struct-with-named-fields shape; any other shape
// is an ExtractError for the whole definition.
func FromTypeSpec(fset *token.FileSet, file *ast.File, ts *ast.TypeSpec) (*Schema, error) {
	pos := fset.Position(ts.Pos())
	name := ts.Name.Name
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return nil, NewExtractError(name, pos, "generic type parameters are not supported")
	}
	if ts.Assign.IsValid() {
		return nil, NewExtractError(name, pos, "type aliases cannot have builders")
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, NewExtractError(name, pos, "not a struct definition (only plain field lists are supported)")
	}
	imports := fileImports(file)
	s := &Schema{Name: name, Pos: pos}
	seen := make(map[string]struct{})
	for _, fd := range st.Fields.List {
		if len(fd.Names) == 0 {
			return nil, NewExtractError(name, fset.Position(fd.Pos()), "embedded fields are not supported")
		}
		typ := &TypeExpr{Tokens: flattenType(fset, fd.Type), Imports: imports}
		ans := fieldAnnotations(fd.Tag)
		for _, id := range fd.Names {
			if _, ok := seen[id.Name]; ok {
				return nil, NewExtractError(name, fset.Position(id.Pos()), "field %q redeclared", id.Name)
			}
			seen[id.Name] = struct{}{}
			s.Fields = append(s.Fields, &Field{
				Name:        id.Name,
				Type:        typ,
				Annotations: ans,
				Pos:         fset.Position(id.Pos()),
			})
		}
	}
	return s, nil
}

// flattenType lowers a type expression to its token sequence. Shapes the
// classifier never inspects (funcs, chans, anonymous structs) collapse to a
// single verbatim token.
func flattenType(fset *token.FileSet, expr ast.Expr) []string {
	switch e := expr.(type) {
	case *ast.Ident:
		return []string{e.Name}
	case *ast.StarExpr:
		return append([]string{"*"}, flattenType(fset, e.X)...)
	case *ast.ArrayType:
		toks := []string{"["}
		if e.Len != nil {
			toks = append(toks, rawToken(fset, e.Len))
		}
		toks = append(toks, "]")
		return append(toks, flattenType(fset, e.Elt)...)
	case *ast.SelectorExpr:
		toks := flattenType(fset, e.X)
		return append(toks, ".", e.Sel.Name)
	case *ast.IndexExpr:
		toks := flattenType(fset, e.X)
		toks = append(toks, "[")
		toks = append(toks, flattenType(fset, e.Index)...)
		return append(toks, "]")
	case *ast.IndexListExpr:
		toks := flattenType(fset, e.X)
		toks = append(toks, "[")
		for i, idx := range e.Indices {
			if i > 0 {
				toks = append(toks, ",")
			}
			toks = append(toks, flattenType(fset, idx)...)
		}
		return append(toks, "]")
	case *ast.MapType:
		toks := []string{"map", "["}
		toks = append(toks, flattenType(fset, e.Key)...)
		toks = append(toks, "]")
		return append(toks, flattenType(fset, e.Value)...)
	default:
		return []string{rawToken(fset, expr)}
	}
}

// rawToken prints an expression verbatim as one token.
func rawToken(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return ""
	}
	return buf.String()
}

// fieldAnnotations parses the builder tag namespace into annotation records.
// A present but empty tag yields one annotation with an empty key, so the
// classifier can report it as malformed rather than silently ignore it.
func fieldAnnotations(tag *ast.BasicLit) []Annotation {
	if tag == nil {
		return nil
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return nil
	}
	value, ok := reflect.StructTag(raw).Lookup(buildgen.TagNamespace)
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return []Annotation{{Namespace: buildgen.TagNamespace}}
	}
	var ans []Annotation
	for _, item := range strings.Split(value, ",") {
		k, v, _ := strings.Cut(strings.TrimSpace(item), "=")
		ans = append(ans, Annotation{
			Namespace: buildgen.TagNamespace,
			Key:       strings.TrimSpace(k),
			Value:     strings.TrimSpace(v),
		})
	}
	return ans
}

// fileImports builds the selector-to-path table from the file's import block.
// Named imports win over the path base; dot and blank imports are skipped.
func fileImports(file *ast.File) map[string]string {
	m := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		switch {
		case imp.Name == nil:
			m[path.Base(p)] = p
		case imp.Name.Name == "." || imp.Name.Name == "_":
		default:
			m[imp.Name.Name] = p
		}
	}
	return m
}

package load

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/syssam/buildgen"
)

// Result holds the outcome of a load pass: the schemas extracted from marked
// definitions, plus the per-definition extraction failures. A failed
// definition never aborts its siblings.
type Result struct {
	Schemas []*Schema
	Errors  []*ExtractError
}

// LoadDir extracts schemas from every non-test Go file directly under dir.
// Only syntax and I/O failures are returned as an error; definitions that
// are marked but malformed are collected in Result.Errors.
func LoadDir(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read schema directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go files found in %s", dir)
	}
	return LoadFiles(files...)
}

// LoadFiles extracts schemas from the given Go source files, in file order
// and declaration order within each file.
func LoadFiles(files ...string) (*Result, error) {
	fset := token.NewFileSet()
	res := &Result{}
	for _, file := range files {
		f, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		loadFile(fset, f, res)
	}
	return res, nil
}

func loadFile(fset *token.FileSet, file *ast.File, res *Result) {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if !marked(gd.Doc) && !marked(ts.Doc) {
				continue
			}
			s, err := FromTypeSpec(fset, file, ts)
			if err != nil {
				// FromTypeSpec only fails with *ExtractError.
				res.Errors = append(res.Errors, err.(*ExtractError))
				continue
			}
			res.Schemas = append(res.Schemas, s)
		}
	}
}

// marked reports whether a doc comment carries the buildgen marker directive.
func marked(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		line := strings.TrimPrefix(c.Text, "//")
		if strings.TrimSpace(line) == buildgen.Marker {
			return true
		}
	}
	return false
}

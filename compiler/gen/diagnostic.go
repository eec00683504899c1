package gen

import (
	"errors"
	"go/token"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/buildgen/compiler/load"
)

// Diagnostic is a generation failure pinned to the source position of the
// offending construct. Diagnostics are the only way generation failures
// surface: the process is never terminated from inside the generator.
type Diagnostic struct {
	Pos     token.Position
	Message string
}

// String renders the diagnostic in the conventional file:line:col form.
func (d *Diagnostic) String() string {
	if d.Pos.IsValid() {
		return d.Pos.String() + ": " + d.Message
	}
	return d.Message
}

// NewDiagnostic converts a generation-time error into a pinned diagnostic.
// Extraction and annotation errors carry their own positions; anything else
// is reported unpinned.
func NewDiagnostic(err error) *Diagnostic {
	var (
		ee *load.ExtractError
		ae *AnnotationError
	)
	switch {
	case errors.As(err, &ee):
		return &Diagnostic{Pos: ee.Pos, Message: ee.Error()}
	case errors.As(err, &ae):
		return &Diagnostic{Pos: ae.Pos, Message: ae.Error()}
	default:
		return &Diagnostic{Message: err.Error()}
	}
}

// Diagnostics is an ordered collection of diagnostics. It implements error
// so an entire failed run can be returned as one value.
type Diagnostics []*Diagnostic

// Error joins the diagnostics, one per line, in position order.
func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Sort orders the diagnostics by file, line and column.
func (ds Diagnostics) Sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Pos, ds[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Result is the tagged outcome of generating one definition: either a code
// artifact or a non-empty diagnostic list in its place, never both.
type Result struct {
	Name        string
	File        *jen.File
	Fingerprint string
	Diags       Diagnostics
}

// Ok reports whether the definition produced a code artifact.
func (r *Result) Ok() bool {
	return len(r.Diags) == 0 && r.File != nil
}

// FailedResult wraps generation-time errors for a definition into a
// diagnostic-shaped result.
func FailedResult(name string, errs ...error) *Result {
	r := &Result{Name: name}
	for _, err := range errs {
		r.Diags = append(r.Diags, NewDiagnostic(err))
	}
	return r
}

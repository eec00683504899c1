package builder

import (
	"context"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/buildgen/compiler/gen"
	"github.com/syssam/buildgen/compiler/load"
)

// Build generates the builder artifact for a single extracted definition.
// All field and method failures of the definition are collected into the
// result's diagnostics; a definition with diagnostics yields no artifact.
func Build(cfg *gen.Config, ls *load.Schema) (r *gen.Result) {
	defer func() {
		if v := recover(); v != nil {
			r = gen.FailedResult(ls.Name, fmt.Errorf("buildgen: internal error generating %q: %v", ls.Name, v))
		}
	}()
	s, diags := gen.NewSchema(cfg, ls)
	methods, mdiags := s.Methods()
	if diags = append(diags, mdiags...); len(diags) > 0 {
		return &gen.Result{Name: ls.Name, Diags: diags}
	}
	f := jen.NewFile(cfg.Package)
	f.HeaderComment(cfg.Header)
	genBuilder(f, s)
	genFactory(f, s)
	genSetters(f, s, methods)
	genBuild(f, s)
	genMustBuild(f, s)
	return &gen.Result{
		Name:        s.Name,
		File:        f,
		Fingerprint: gen.Fingerprint(ls, cfg.Package, cfg.Header),
	}
}

// GenerateSchemas generates builders for already-loaded definitions and
// writes them to the configured target. Extraction failures ride along as
// failed results so one run reports every broken definition.
func GenerateSchemas(ctx context.Context, cfg *gen.Config, res *load.Result) error {
	// The writer fills config defaults; creating it first keeps Build and
	// Fingerprint working on the final package and header values.
	w, err := gen.NewWriter(cfg)
	if err != nil {
		return err
	}
	results := make([]*gen.Result, 0, len(res.Schemas)+len(res.Errors))
	for _, ee := range res.Errors {
		results = append(results, gen.FailedResult(ee.Schema, ee))
	}
	for _, ls := range res.Schemas {
		results = append(results, Build(cfg, ls))
	}
	return w.WriteAll(ctx, results)
}

// Generate loads the marked definitions under dir and generates their
// builders.
func Generate(ctx context.Context, dir string, cfg *gen.Config) error {
	res, err := load.LoadDir(dir)
	if err != nil {
		return err
	}
	return GenerateSchemas(ctx, cfg, res)
}

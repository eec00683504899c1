// Package gen turns extracted schemas into classified builder models and
// coordinates code generation.
//
// The pipeline follows this flow:
//
//	Go source (schema structs)
//	        ↓
//	load.Schema (ordered fields, raw type tokens, annotations)
//	        ↓
//	gen.Schema (per-field Classification: Required / Optional / Repeated)
//	        ↓
//	method synthesis (setter and accumulator set, collision resolution)
//	        ↓
//	builder emission (compiler/gen/builder, Jennifer)
//	        ↓
//	Writer (parallel formatting and writes, or diagnostics)
//
// # Classification
//
// Classification is a pure function of a field's token shape and its builder
// annotations. No type resolution happens at generation time: a pointer or a
// single-argument Option/Optional instantiation is optional, a slice carrying
// a well-formed each annotation is repeated, everything else is required.
// Two different spellings of the same type classify independently, and a
// same-named foreign type is indistinguishable from the expected one. This
// is an accepted property of the design, not a defect to fix here.
//
// # Diagnostics
//
// Every generation failure becomes a Diagnostic pinned to the offending
// construct's source position. Generation never aborts the process: a failed
// definition yields a Result carrying diagnostics instead of a code artifact,
// and sibling definitions proceed.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - AnnotationError: a malformed builder annotation on one field
//   - GenerationError: a rendering or write failure
//   - ConfigError: an invalid configuration option
//
// Definition-shape failures are load.ExtractError, reported by the
// extractor. All of them convert to Diagnostics via NewDiagnostic.
//
// # Configuration
//
// Configuration uses functional options, optionally seeded from a YAML file:
//
//	cfg, err := gen.NewConfig(
//		gen.WithTarget("./internal/command"),
//		gen.WithPackage("command"),
//	)
package gen

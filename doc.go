// Package buildgen provides the runtime support for code generated by the
// buildgen compiler.
//
// buildgen reads Go struct definitions and generates a fluent companion
// builder type for each of them: chainable per-field setters, per-element
// accumulators for slice fields, and a validating Build method that either
// assembles the target value or reports the first missing required field.
//
// # Marking a struct
//
// A struct opts into generation with a marker comment, and slice fields may
// request an accumulator through the builder struct tag:
//
//	//buildgen:builder
//	type Command struct {
//		Executable string
//		Args       []string `builder:"each=arg"`
//		Env        []string
//		CurrentDir string
//	}
//
// Running the generator produces a CommandBuilder:
//
//	cmd, err := NewCommandBuilder().
//		Executable("cargo").
//		Arg("build").
//		Arg("--release").
//		Env(nil).
//		CurrentDir("..").
//		Build()
//
// Build returns a *buildgen.ValidationError when a required field was never
// set. Pointer fields and Option-shaped fields are optional by construction
// and never fail validation; slice fields default to an empty slice.
//
// # Field classification
//
// Classification is purely syntactic. The compiler never resolves type
// identity: a field is optional because it is spelled as a pointer or as a
// single-argument Option/Optional instantiation, and repeated because it is
// spelled as a slice and carries an each annotation. A same-named but
// unrelated Option type is indistinguishable at generation time; this is an
// accepted limitation of the approach.
//
// The compiler itself lives under compiler/load (schema extraction),
// compiler/gen (classification and method synthesis) and compiler/gen/builder
// (code emission). The buildgen command wires them together.
package buildgen

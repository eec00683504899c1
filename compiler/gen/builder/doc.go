// Package builder emits the companion builder artifact for classified
// schemas using Jennifer.
//
// Each definition yields one file holding the builder struct with per-field
// optional or accumulated storage, a factory, the synthesized chainable
// setters, and the validating Build/MustBuild pair. Generated Build methods
// report unset required fields as *buildgen.ValidationError values, in
// declaration order, first error wins.
//
// For fields spelled with a named Option wrapper the generated setter calls
// the wrapper package's Some constructor and absence is the wrapper's zero
// value. Like classification itself this is a convention assumed from the
// type's spelling, not a resolved fact.
package builder

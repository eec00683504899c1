package gen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser uppercases the first letter of a word without lowering the
// rest, so mixed-case segments like "currentDir" or "URL" survive intact.
var titleCaser = cases.Title(language.English, cases.NoLower)

// pascal converts a field name to its exported method spelling:
// "current_dir" and "currentDir" both become "CurrentDir".
func pascal(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		parts[i] = titleCaser.String(p)
	}
	return strings.Join(parts, "")
}

// lowerFirst lowercases the leading rune.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// builderField returns the unexported storage name for a field inside the
// generated builder struct, and ensures it doesn't conflict with Go keywords
// or predeclared identifiers.
func builderField(name string) string {
	s := lowerFirst(pascal(name))
	if token.Lookup(s).IsKeyword() || predeclared[s] {
		return "_" + s
	}
	return s
}

// names builds a membership set.
func names(ids ...string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

var (
	// methods every generated builder carries; field setters must not
	// shadow them.
	reservedMethods = names("Build", "MustBuild")

	// known single-argument optional wrapper names, matched against the
	// last path segment of a field's type. Name-based only: an unrelated
	// type spelled Option matches too.
	optionalTypeNames = names("Option", "Optional")

	predeclared = names(
		"any", "bool", "byte", "comparable", "complex64", "complex128",
		"error", "float32", "float64", "int", "int8", "int16", "int32",
		"int64", "rune", "string", "uint", "uint8", "uint16", "uint32",
		"uint64", "uintptr", "true", "false", "iota", "nil", "append",
		"cap", "clear", "close", "complex", "copy", "delete", "imag",
		"len", "make", "max", "min", "new", "panic", "print", "println",
		"real", "recover",
	)
)

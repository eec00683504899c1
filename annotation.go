package buildgen

// The builder annotation vocabulary. The compiler recognizes exactly one
// struct-tag namespace with one sub-key; everything else under the namespace
// is rejected with a diagnostic.
const (
	// Marker is the comment directive that opts a struct into generation.
	Marker = "buildgen:builder"

	// TagNamespace is the struct-tag key holding builder annotations.
	TagNamespace = "builder"

	// EachKey names the accumulator method for a slice field, e.g.
	// `builder:"each=arg"`.
	EachKey = "each"
)

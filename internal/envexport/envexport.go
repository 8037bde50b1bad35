// Package envexport implements the secrets-to-env pipeline: it parses the
// secrets and vars inputs, transforms their names, resolves collisions
// between the two sources, and publishes the result to an environment store.
package envexport

// Source tags an entry with the input collection it came from.
type Source int

const (
	SourceSecret Source = iota
	SourceVar
)

func (s Source) String() string {
	switch s {
	case SourceSecret:
		return "secret"
	case SourceVar:
		return "var"
	default:
		return "unknown"
	}
}

// Entry is a single key/value pair after name transformation. OriginalKey
// preserves the pre-transformation name for diagnostics.
type Entry struct {
	FinalKey    string
	Value       string
	Source      Source
	OriginalKey string
}

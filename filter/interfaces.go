package filter

import (
	"github.com/s0up4200/moviemate/moviemate"
)

// Subject is what a filter expression sees: a movie plus its relation to the
// user's collection. Entry is nil when the movie is not in the collection.
type Subject struct {
	Movie        moviemate.Movie
	InCollection bool
	Entry        *moviemate.CollectionEntry
}

// Filter defines the basic interface for movie filters
type Filter interface {
	// Evaluate checks if a subject matches the filter criteria
	Evaluate(subject Subject) (bool, error)
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		helperFuncs: make(map[string]any, 16),
	}
	addHelperFunctions(c.helperFuncs)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// a zero subject gives the type checker concrete field types
	env := createRuntimeEnvironment(Subject{}, c.helperFuncs)

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Evaluate runs the program against one subject
func (f *exprFilter) Evaluate(subject Subject) (bool, error) {
	result, err := expr.Run(f.program, createRuntimeEnvironment(subject, f.helpers))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieTitle: subject.Movie.Title,
			Err:        err,
		}
	}

	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the subject-independent helpers. The case-sensitive
// forms are expr's own contains, startsWith and endsWith operators.
func addHelperFunctions(env map[string]any) {
	env["containsText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["currentYear"] = func() int {
		return time.Now().Year()
	}
	env["yearsAgo"] = func(years int) int {
		return time.Now().Year() - years
	}
}

// createRuntimeEnvironment exposes a subject's fields and subject-bound helpers
func createRuntimeEnvironment(subject Subject, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+24)
	maps.Copy(env, helpers)

	movie := subject.Movie
	env["Movie"] = movie
	env["hasGenre"] = createHasGenreFunc(movie.Genres)

	env["Title"] = movie.Title
	env["OriginalTitle"] = movie.OriginalTitle
	env["Overview"] = movie.Overview
	env["Year"] = movie.YearNumber()
	env["ReleaseDate"] = movie.ReleaseDate
	env["Genres"] = movie.Genres
	env["Rating"] = movie.VoteAverage
	env["VoteCount"] = movie.VoteCount
	env["ImdbRating"] = movie.ImdbRating.Value
	env["HasImdbRating"] = movie.ImdbRating.Valid
	env["Runtime"] = movie.Runtime
	env["TmdbID"] = movie.TmdbID.String()
	env["ImdbID"] = movie.ImdbID
	env["HasPoster"] = movie.PosterPath != ""

	env["InCollection"] = subject.InCollection || subject.Entry != nil

	var (
		watched    bool
		userRating float64
		rated      bool
		notes      string
	)
	if e := subject.Entry; e != nil {
		watched = e.Watched
		if e.Rating != nil {
			userRating = *e.Rating
			rated = true
		}
		if e.Notes != nil {
			notes = *e.Notes
		}
	}
	env["Watched"] = watched
	env["UserRating"] = userRating
	env["Rated"] = rated
	env["Notes"] = notes

	return env
}

func createHasGenreFunc(genres []string) func(string) bool {
	lowerGenres := make([]string, len(genres))
	for i, g := range genres {
		lowerGenres[i] = strings.ToLower(g)
	}
	return func(genre string) bool {
		return slices.Contains(lowerGenres, strings.ToLower(genre))
	}
}

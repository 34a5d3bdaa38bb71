// Package moviemate provides a client for the MovieMate HTTP API.
//
// The API owns users, the movie catalog proxy, per-user collections and
// recommendations. This package maps each remote resource to one method and
// classifies every failure the same way, so callers never have to inspect
// raw responses.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := moviemate.NewClient(
//		"http://localhost:5000/api",
//		logger,
//		moviemate.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.SearchMovies(ctx, "matrix", "en")
//
// # Error Handling
//
// Every operation returns one of:
//
//   - ErrNoConnection: the request never produced a response
//   - ErrInvalidResponse: the body could not be decoded
//   - ErrCircuitOpen: the circuit breaker rejected the call
//   - *APIError: the server answered with a non-2xx status
//
// API errors include helper methods for classification:
//
//	var apiErr *moviemate.APIError
//	if errors.As(err, &apiErr) && apiErr.IsConflict() {
//		// movie already in collection
//	}
//
// # Images
//
// Poster paths returned by the API are partial; ImageResolver turns them
// into absolute URLs on the image host, falling back to a placeholder.
package moviemate

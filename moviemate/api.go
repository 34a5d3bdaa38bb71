package moviemate

import (
	"context"
)

// API defines the interface for MovieMate operations
type API interface {
	// CreateUser registers a new user
	CreateUser(ctx context.Context, username, email string) (*User, error)

	// GetUser fetches a user by identifier
	GetUser(ctx context.Context, userID string) (*User, error)

	// GetUserByUsername fetches a user by username
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// SearchMovies searches the catalog in the given language
	SearchMovies(ctx context.Context, query, language string) ([]Movie, error)

	// PopularMovies lists the server-curated popular movies
	PopularMovies(ctx context.Context, language string) ([]Movie, error)

	// Collection lists a user's collection entries
	Collection(ctx context.Context, userID string) ([]CollectionEntry, error)

	// AddToCollection saves a movie to a user's collection
	AddToCollection(ctx context.Context, userID string, movie Movie) (*CollectionEntry, error)

	// RemoveFromCollection deletes the entry holding movieID
	RemoveFromCollection(ctx context.Context, userID, movieID string) error

	// UpdateEntry patches watched/rating/notes on the entry holding movieID
	UpdateEntry(ctx context.Context, userID, movieID string, update EntryUpdate) (*CollectionEntry, error)

	// Recommendations lists movies recommended for a user
	Recommendations(ctx context.Context, userID, language string) ([]Movie, error)
}

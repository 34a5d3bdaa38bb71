package moviemate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// BreakerSettings configures a BreakerClient
type BreakerSettings struct {
	// MaxRequests is the number of trial requests allowed while half-open
	MaxRequests uint32
	// Interval is the cyclic period after which closed-state counts reset
	Interval time.Duration
	// Timeout is how long the circuit stays open before probing again
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the circuit
	FailureThreshold uint32
}

// BreakerClient wraps an API with the circuit breaker pattern. Only transport
// failures and 5xx answers count against the circuit; 4xx answers are the
// server doing its job.
type BreakerClient struct {
	api    API
	cb     *gobreaker.CircuitBreaker[any]
	logger zerolog.Logger
}

var _ API = (*BreakerClient)(nil)

// NewBreakerClient wraps api with a circuit breaker
func NewBreakerClient(api API, settings BreakerSettings, logger zerolog.Logger) *BreakerClient {
	if settings.MaxRequests == 0 {
		settings.MaxRequests = 1
	}
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 5
	}

	bc := &BreakerClient{api: api, logger: logger}
	bc.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "moviemate-api",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= settings.FailureThreshold
			if trip {
				logger.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("Opening circuit to movie API")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Circuit breaker state transition")
		},
		IsSuccessful: isBreakerSuccess,
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	})

	return bc
}

// State returns the breaker state as "closed", "half-open" or "open"
func (bc *BreakerClient) State() string {
	return stateToString(bc.cb.State())
}

func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsClientError()
	}
	return false
}

func (bc *BreakerClient) execute(fn func() (any, error)) (any, error) {
	result, err := bc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			bc.logger.Debug().Err(err).Msg("Request rejected by circuit breaker")
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		return nil, err
	}
	return result, nil
}

// cast narrows a breaker result to the wrapped call's return type
func cast[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// CreateUser registers a new user with circuit breaker protection
func (bc *BreakerClient) CreateUser(ctx context.Context, username, email string) (*User, error) {
	return cast[*User](bc.execute(func() (any, error) {
		return bc.api.CreateUser(ctx, username, email)
	}))
}

// GetUser fetches a user with circuit breaker protection
func (bc *BreakerClient) GetUser(ctx context.Context, userID string) (*User, error) {
	return cast[*User](bc.execute(func() (any, error) {
		return bc.api.GetUser(ctx, userID)
	}))
}

// GetUserByUsername fetches a user by username with circuit breaker protection
func (bc *BreakerClient) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return cast[*User](bc.execute(func() (any, error) {
		return bc.api.GetUserByUsername(ctx, username)
	}))
}

// SearchMovies searches with circuit breaker protection
func (bc *BreakerClient) SearchMovies(ctx context.Context, query, language string) ([]Movie, error) {
	return cast[[]Movie](bc.execute(func() (any, error) {
		return bc.api.SearchMovies(ctx, query, language)
	}))
}

// PopularMovies lists popular movies with circuit breaker protection
func (bc *BreakerClient) PopularMovies(ctx context.Context, language string) ([]Movie, error) {
	return cast[[]Movie](bc.execute(func() (any, error) {
		return bc.api.PopularMovies(ctx, language)
	}))
}

// Collection lists collection entries with circuit breaker protection
func (bc *BreakerClient) Collection(ctx context.Context, userID string) ([]CollectionEntry, error) {
	return cast[[]CollectionEntry](bc.execute(func() (any, error) {
		return bc.api.Collection(ctx, userID)
	}))
}

// AddToCollection saves a movie with circuit breaker protection
func (bc *BreakerClient) AddToCollection(ctx context.Context, userID string, movie Movie) (*CollectionEntry, error) {
	return cast[*CollectionEntry](bc.execute(func() (any, error) {
		return bc.api.AddToCollection(ctx, userID, movie)
	}))
}

// RemoveFromCollection deletes an entry with circuit breaker protection
func (bc *BreakerClient) RemoveFromCollection(ctx context.Context, userID, movieID string) error {
	_, err := bc.execute(func() (any, error) {
		return nil, bc.api.RemoveFromCollection(ctx, userID, movieID)
	})
	return err
}

// UpdateEntry patches an entry with circuit breaker protection
func (bc *BreakerClient) UpdateEntry(ctx context.Context, userID, movieID string, update EntryUpdate) (*CollectionEntry, error) {
	return cast[*CollectionEntry](bc.execute(func() (any, error) {
		return bc.api.UpdateEntry(ctx, userID, movieID, update)
	}))
}

// Recommendations lists recommendations with circuit breaker protection
func (bc *BreakerClient) Recommendations(ctx context.Context, userID, language string) ([]Movie, error) {
	return cast[[]Movie](bc.execute(func() (any, error) {
		return bc.api.Recommendations(ctx, userID, language)
	}))
}

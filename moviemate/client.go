package moviemate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client represents a MovieMate API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new MovieMate client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: API URL is required", ErrInvalidConfig)
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: API URL must be absolute: %q", ErrInvalidConfig, baseURL)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the API base the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request and decodes a 2xx body into out
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, payload, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoConnection, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrNoConnection, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Movie API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return nil
}

// newAPIError builds an APIError, preferring the server's own error message
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Body:       string(body),
	}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			apiErr.Message = payload.Error
		case payload.Message != "":
			apiErr.Message = payload.Message
		}
	}

	return apiErr
}

// CreateUser registers a new user. An empty email is sent as null.
func (c *Client) CreateUser(ctx context.Context, username, email string) (*User, error) {
	req := createUserRequest{Username: username}
	if email != "" {
		req.Email = &email
	}

	var resp userResponse
	if err := c.doRequest(ctx, http.MethodPost, "/users", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", username, err)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("failed to create user %s: %w: missing user", username, ErrInvalidResponse)
	}

	return resp.User, nil
}

// GetUser fetches a user by identifier
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var resp userResponse
	if err := c.doRequest(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("failed to get user %s: %w: missing user", userID, ErrInvalidResponse)
	}

	return resp.User, nil
}

// GetUserByUsername fetches a user by username
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var resp userResponse
	endpoint := "/users/username/" + url.PathEscape(username)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("failed to get user %s: %w: missing user", username, ErrInvalidResponse)
	}

	return resp.User, nil
}

// SearchMovies searches the catalog
func (c *Client) SearchMovies(ctx context.Context, query, language string) ([]Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("language", language)

	var resp resultsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/movies/search", params, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}

	c.logger.Debug().
		Str("query", query).
		Int("count", len(resp.Results)).
		Msg("Retrieved search results")

	return nonNil(resp.Results), nil
}

// PopularMovies lists popular movies
func (c *Client) PopularMovies(ctx context.Context, language string) ([]Movie, error) {
	params := url.Values{}
	params.Set("language", language)

	var resp resultsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/movies/popular", params, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get popular movies: %w", err)
	}

	return nonNil(resp.Results), nil
}

// Collection lists a user's collection entries
func (c *Client) Collection(ctx context.Context, userID string) ([]CollectionEntry, error) {
	var resp collectionResponse
	endpoint := "/movies/collection/" + url.PathEscape(userID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	if resp.Collection == nil {
		return []CollectionEntry{}, nil
	}
	return resp.Collection, nil
}

// AddToCollection saves a movie to a user's collection
func (c *Client) AddToCollection(ctx context.Context, userID string, movie Movie) (*CollectionEntry, error) {
	req := addToCollectionRequest{UserID: userID, Movie: movie}

	var resp entryResponse
	if err := c.doRequest(ctx, http.MethodPost, "/movies/collection", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to add %q to collection: %w", movie.Title, err)
	}

	c.logger.Debug().
		Str("movie_id", movie.ID).
		Str("tmdb_id", movie.TmdbID.String()).
		Msg("Added movie to collection")

	return resp.UserMovie, nil
}

// RemoveFromCollection deletes the entry holding movieID
func (c *Client) RemoveFromCollection(ctx context.Context, userID, movieID string) error {
	endpoint := "/movies/collection/" + url.PathEscape(userID) + "/" + url.PathEscape(movieID)
	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to remove movie %s from collection: %w", movieID, err)
	}

	return nil
}

// UpdateEntry patches the entry holding movieID
func (c *Client) UpdateEntry(ctx context.Context, userID, movieID string, update EntryUpdate) (*CollectionEntry, error) {
	var resp entryResponse
	endpoint := "/movies/collection/" + url.PathEscape(userID) + "/" + url.PathEscape(movieID)
	if err := c.doRequest(ctx, http.MethodPatch, endpoint, nil, update, &resp); err != nil {
		return nil, fmt.Errorf("failed to update movie %s: %w", movieID, err)
	}

	return resp.UserMovie, nil
}

// Recommendations lists movies recommended for a user
func (c *Client) Recommendations(ctx context.Context, userID, language string) ([]Movie, error) {
	params := url.Values{}
	params.Set("language", language)

	var resp recommendationsResponse
	endpoint := "/recommendations/" + url.PathEscape(userID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, params, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	return nonNil(resp.Recommendations), nil
}

func nonNil(movies []Movie) []Movie {
	if movies == nil {
		return []Movie{}
	}
	return movies
}

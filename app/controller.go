// Package app holds the client's state and the controller that turns user
// actions into API calls and screen updates.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/s0up4200/moviemate/filter"
	"github.com/s0up4200/moviemate/locale"
	"github.com/s0up4200/moviemate/moviemate"
	"github.com/s0up4200/moviemate/render"
)

// View is the screen the controller draws on
type View interface {
	SetTheme(theme render.Theme)
	SetLanguage(lang locale.Language)
	SetInput(value string)
	RenderHeader(active render.Target)
	ShowLoading(target render.Target)
	ShowMovies(target render.Target, list render.List)
	Notify(kind render.NoticeKind, key string)
}

// Store persists the client identity and display preferences
type Store interface {
	Username() string
	UserID() string
	Language() string
	Theme() string
	SetUser(username, userID string) error
	SetLanguage(lang string) error
	SetTheme(theme string) error
}

// Controller owns the client state. Its methods are safe for concurrent use;
// network calls run without holding the state lock and list responses that
// a newer load for the same target superseded are dropped.
type Controller struct {
	api     moviemate.API
	view    View
	store   Store
	logger  zerolog.Logger
	now     func() time.Time
	filters *filter.Manager

	mu     sync.Mutex
	state  State
	seq    map[render.Target]uint64
	adding map[moviemate.ExternalID]struct{}
	refine filter.Filter
}

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces the clock used to name new users
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithFilterManager sets the manager resolving refinement filters and presets
func WithFilterManager(m *filter.Manager) Option {
	return func(c *Controller) {
		if m != nil {
			c.filters = m
		}
	}
}

// NewController creates a controller
func NewController(api moviemate.API, view View, store Store, logger zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		api:     api,
		view:    view,
		store:   store,
		logger:  logger,
		now:     time.Now,
		filters: filter.NewManager(),
		state:   newState(),
		seq:     make(map[render.Target]uint64, len(render.Targets)),
		adding:  make(map[moviemate.ExternalID]struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Init bootstraps the session and shows popular movies
func (c *Controller) Init(ctx context.Context) error {
	if err := c.Bootstrap(ctx); err != nil {
		return err
	}
	return c.LoadPopular(ctx)
}

// Bootstrap resolves the current user, applies the stored theme and language
// and loads the collection, so that cards rendered afterwards know what is
// collected.
func (c *Controller) Bootstrap(ctx context.Context) error {
	user, err := c.resolveUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}

	lang, err := locale.Parse(c.store.Language())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Ignoring stored language")
		lang = locale.Russian
	}
	theme, err := render.ParseTheme(c.store.Theme())
	if err != nil {
		c.logger.Warn().Err(err).Msg("Ignoring stored theme")
		theme = render.Dark
	}

	c.mu.Lock()
	c.state.User = user
	c.state.Language = lang
	c.state.Theme = theme
	c.view.SetTheme(theme)
	c.view.SetLanguage(lang)
	c.view.RenderHeader(c.state.Active)
	c.mu.Unlock()

	c.logger.Debug().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Str("language", lang.String()).
		Str("theme", theme.String()).
		Msg("Session bootstrapped")

	return c.LoadCollection(ctx)
}

// resolveUser loads the stored identity, creating one when there is none or
// the server no longer knows it
func (c *Controller) resolveUser(ctx context.Context) (*moviemate.User, error) {
	if c.store.Username() != "" && c.store.UserID() != "" {
		user, err := c.api.GetUser(ctx, c.store.UserID())
		if err == nil {
			return user, nil
		}
		if !moviemate.IsNotFound(err) {
			return nil, err
		}
		c.logger.Warn().
			Str("user_id", c.store.UserID()).
			Msg("Stored user no longer exists, creating a new one")
	}

	username := fmt.Sprintf("user_%d", c.now().UnixMilli())
	user, err := c.api.CreateUser(ctx, username, "")
	if err != nil {
		return nil, err
	}
	if user.Username == "" {
		user.Username = username
	}

	if err := c.store.SetUser(user.Username, user.ID); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}

	c.logger.Info().Str("username", user.Username).Msg("Created user")
	return user, nil
}

// Search submits input. Empty input shows popular movies. Otherwise, once
// the results land, the search they replace is pushed onto the history when
// it had results.
func (c *Controller) Search(ctx context.Context, input string) error {
	query := strings.TrimSpace(input)

	c.mu.Lock()
	c.state.Input = input
	c.view.SetInput(input)
	c.activateLocked(render.TargetSearch)
	c.mu.Unlock()

	if query == "" {
		return c.LoadPopular(ctx)
	}

	return c.fetchSearch(ctx, query, true)
}

// fetchSearch loads results for query into the search target. Query and
// Results only change together, so history always pairs a query with its
// own results.
func (c *Controller) fetchSearch(ctx context.Context, query string, record bool) error {
	c.mu.Lock()
	n := c.beginLocked(render.TargetSearch)
	lang := c.state.Language
	c.mu.Unlock()

	movies, err := c.api.SearchMovies(ctx, query, lang.String())

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.currentLocked(render.TargetSearch, n) {
		c.logger.Debug().Str("query", query).Msg("Discarding stale search response")
		return nil
	}
	if err != nil {
		return c.loadFailedLocked(render.TargetSearch, err)
	}

	if record && c.state.pushHistory() {
		c.logger.Debug().
			Str("query", c.state.Query).
			Int("depth", len(c.state.History)).
			Msg("Pushed search history")
	}
	c.state.Query = query
	c.state.Results = movies
	c.renderIfActiveLocked(render.TargetSearch)
	return nil
}

// InputChanged reacts to edits of the search input. Clearing it restores the
// previous search from history without a fetch, or shows popular movies when
// the history is empty.
func (c *Controller) InputChanged(ctx context.Context, value string) error {
	c.mu.Lock()
	c.state.Input = value
	c.view.SetInput(value)

	if strings.TrimSpace(value) != "" {
		c.mu.Unlock()
		return nil
	}

	if c.state.popHistory() {
		// a search still in flight must not overwrite the restored results
		c.beginLocked(render.TargetSearch)
		c.logger.Debug().
			Str("query", c.state.Query).
			Int("depth", len(c.state.History)).
			Msg("Restored search from history")
		c.renderIfActiveLocked(render.TargetSearch)
		c.mu.Unlock()
		return nil
	}

	c.state.Query = ""
	c.mu.Unlock()

	return c.LoadPopular(ctx)
}

// LoadPopular replaces the search results with popular movies
func (c *Controller) LoadPopular(ctx context.Context) error {
	c.mu.Lock()
	n := c.beginLocked(render.TargetSearch)
	lang := c.state.Language
	c.mu.Unlock()

	movies, err := c.api.PopularMovies(ctx, lang.String())

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.currentLocked(render.TargetSearch, n) {
		c.logger.Debug().Msg("Discarding stale popular movies response")
		return nil
	}
	if err != nil {
		return c.loadFailedLocked(render.TargetSearch, err)
	}

	c.state.Results = movies
	c.state.Query = ""
	c.renderIfActiveLocked(render.TargetSearch)
	return nil
}

// LoadCollection reloads the collection cache
func (c *Controller) LoadCollection(ctx context.Context) error {
	c.mu.Lock()
	if c.state.User == nil {
		c.mu.Unlock()
		return ErrNoUser
	}
	userID := c.state.User.ID
	n := c.beginLocked(render.TargetCollection)
	c.mu.Unlock()

	entries, err := c.api.Collection(ctx, userID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.currentLocked(render.TargetCollection, n) {
		c.logger.Debug().Msg("Discarding stale collection response")
		return nil
	}
	if err != nil {
		return c.loadFailedLocked(render.TargetCollection, err)
	}

	c.state.Collection = entries
	c.renderIfActiveLocked(render.TargetCollection)
	return nil
}

// LoadRecommendations reloads the recommendations
func (c *Controller) LoadRecommendations(ctx context.Context) error {
	c.mu.Lock()
	if c.state.User == nil {
		c.mu.Unlock()
		return ErrNoUser
	}
	userID := c.state.User.ID
	lang := c.state.Language
	n := c.beginLocked(render.TargetRecommendations)
	c.mu.Unlock()

	movies, err := c.api.Recommendations(ctx, userID, lang.String())

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.currentLocked(render.TargetRecommendations, n) {
		c.logger.Debug().Msg("Discarding stale recommendations response")
		return nil
	}
	if err != nil {
		return c.loadFailedLocked(render.TargetRecommendations, err)
	}

	c.state.Recommendations = movies
	c.renderIfActiveLocked(render.TargetRecommendations)
	return nil
}

// Navigate activates a view and loads what it shows
func (c *Controller) Navigate(ctx context.Context, target render.Target) error {
	c.mu.Lock()
	c.activateLocked(target)

	switch target {
	case render.TargetSearch:
		if len(c.state.Results) > 0 {
			c.renderLocked(render.TargetSearch)
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()
		return c.LoadPopular(ctx)
	case render.TargetCollection:
		c.mu.Unlock()
		return c.LoadCollection(ctx)
	case render.TargetRecommendations:
		c.mu.Unlock()
		return c.LoadRecommendations(ctx)
	default:
		c.mu.Unlock()
		return fmt.Errorf("unknown view: %q", target)
	}
}

// Home clears the search history and input and shows popular movies
func (c *Controller) Home(ctx context.Context) error {
	c.mu.Lock()
	c.state.History = nil
	c.state.Query = ""
	c.state.Input = ""
	c.view.SetInput("")
	c.activateLocked(render.TargetSearch)
	c.mu.Unlock()

	return c.LoadPopular(ctx)
}

// Add saves the movie with external id id to the collection. The collection
// cache is consulted first and a duplicate never reaches the API.
func (c *Controller) Add(ctx context.Context, id moviemate.ExternalID) error {
	c.mu.Lock()
	if c.state.User == nil {
		c.mu.Unlock()
		return ErrNoUser
	}
	if _, busy := c.adding[id]; busy || c.state.InCollection(id) {
		c.view.Notify(render.NoticeError, locale.KeyAlreadyAdded)
		c.mu.Unlock()
		return ErrAlreadyInCollection
	}
	movie, ok := c.state.FindMovie(id)
	if !ok {
		c.view.Notify(render.NoticeError, locale.KeyUnknownMovie)
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownMovie, id)
	}
	c.adding[id] = struct{}{}
	userID := c.state.User.ID
	c.mu.Unlock()

	_, err := c.api.AddToCollection(ctx, userID, movie)

	c.mu.Lock()
	delete(c.adding, id)
	c.mu.Unlock()

	if err != nil {
		if moviemate.IsConflict(err) {
			c.logger.Debug().Err(err).Str("tmdb_id", id.String()).Msg("Server reports movie already collected")
			c.notify(render.NoticeError, locale.KeyAlreadyAdded)
			// the cache was behind the server
			if loadErr := c.LoadCollection(ctx); loadErr != nil {
				c.logger.Warn().Err(loadErr).Msg("Failed to reload collection")
			}
			return fmt.Errorf("%w: %w", ErrAlreadyInCollection, err)
		}
		c.logger.Error().Err(err).Str("tmdb_id", id.String()).Msg("Failed to add movie")
		c.notify(render.NoticeError, locale.KeyRequestFailed)
		return err
	}

	if err := c.LoadCollection(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Notify(render.NoticeSuccess, locale.KeyAdded)
	c.rerenderBrowseLocked()
	return nil
}

// Remove deletes the collection entry of the movie with external id id
func (c *Controller) Remove(ctx context.Context, id moviemate.ExternalID) error {
	c.mu.Lock()
	if c.state.User == nil {
		c.mu.Unlock()
		return ErrNoUser
	}
	entry, ok := c.state.FindEntry(id)
	if !ok {
		c.view.Notify(render.NoticeError, locale.KeyNotInCollection)
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotInCollection, id)
	}
	userID := c.state.User.ID
	// the server matches entries on the movie's own id
	movieID := entry.Movie.ID
	c.mu.Unlock()

	if err := c.api.RemoveFromCollection(ctx, userID, movieID); err != nil {
		if moviemate.IsNotFound(err) {
			c.notify(render.NoticeError, locale.KeyNotInCollection)
			if loadErr := c.LoadCollection(ctx); loadErr != nil {
				c.logger.Warn().Err(loadErr).Msg("Failed to reload collection")
			}
			return fmt.Errorf("%w: %w", ErrNotInCollection, err)
		}
		c.logger.Error().Err(err).Str("tmdb_id", id.String()).Msg("Failed to remove movie")
		c.notify(render.NoticeError, locale.KeyRequestFailed)
		return err
	}

	if err := c.LoadCollection(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Notify(render.NoticeSuccess, locale.KeyRemoved)
	c.rerenderBrowseLocked()
	return nil
}

// Update changes watched state, rating or notes of a collected movie
func (c *Controller) Update(ctx context.Context, id moviemate.ExternalID, update moviemate.EntryUpdate) error {
	if update.IsEmpty() {
		return ErrEmptyUpdate
	}

	c.mu.Lock()
	if c.state.User == nil {
		c.mu.Unlock()
		return ErrNoUser
	}
	entry, ok := c.state.FindEntry(id)
	if !ok {
		c.view.Notify(render.NoticeError, locale.KeyNotInCollection)
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotInCollection, id)
	}
	userID := c.state.User.ID
	movieID := entry.Movie.ID
	c.mu.Unlock()

	if _, err := c.api.UpdateEntry(ctx, userID, movieID, update); err != nil {
		c.logger.Error().Err(err).Str("tmdb_id", id.String()).Msg("Failed to update collection entry")
		c.notify(render.NoticeError, locale.KeyRequestFailed)
		return err
	}

	if err := c.LoadCollection(ctx); err != nil {
		return err
	}

	c.notify(render.NoticeSuccess, locale.KeyUpdated)
	return nil
}

// ToggleTheme flips and persists the theme
func (c *Controller) ToggleTheme() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Theme = c.state.Theme.Toggle()
	c.view.SetTheme(c.state.Theme)
	c.view.RenderHeader(c.state.Active)

	if err := c.store.SetTheme(c.state.Theme.String()); err != nil {
		c.logger.Error().Err(err).Msg("Failed to persist theme")
		return err
	}
	c.view.Notify(render.NoticeSuccess, locale.KeyThemeChanged)
	return nil
}

// ToggleLanguage flips and persists the language, redraws the translated
// chrome and reloads the active view in the new language
func (c *Controller) ToggleLanguage(ctx context.Context) error {
	c.mu.Lock()
	c.state.Language = c.state.Language.Toggle()
	lang := c.state.Language
	active := c.state.Active
	query := c.state.Query
	c.view.SetLanguage(lang)
	c.view.RenderHeader(active)
	c.mu.Unlock()

	var persistErr error
	if err := c.store.SetLanguage(lang.String()); err != nil {
		c.logger.Error().Err(err).Msg("Failed to persist language")
		persistErr = err
	} else {
		c.notify(render.NoticeSuccess, locale.KeyLanguageChanged)
	}

	var loadErr error
	switch active {
	case render.TargetCollection:
		loadErr = c.LoadCollection(ctx)
	case render.TargetRecommendations:
		loadErr = c.LoadRecommendations(ctx)
	default:
		if query != "" {
			loadErr = c.fetchSearch(ctx, query, false)
		} else {
			loadErr = c.LoadPopular(ctx)
		}
	}

	return errors.Join(persistErr, loadErr)
}

// Refine sets the filter applied to displayed lists: an expression, or a
// preset name when expression is empty. Both empty removes the filter. The
// active list is redrawn.
func (c *Controller) Refine(expression, preset string) error {
	f, err := c.filters.Resolve(strings.TrimSpace(expression), strings.TrimSpace(preset))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.refine = f
	c.renderLocked(c.state.Active)
	return nil
}

// notify shows a notification while holding the state lock so output from
// concurrent actions does not interleave
func (c *Controller) notify(kind render.NoticeKind, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Notify(kind, key)
}

func (c *Controller) activateLocked(target render.Target) {
	if c.state.Active == target {
		return
	}
	c.state.Active = target
	c.view.RenderHeader(target)
}

func (c *Controller) beginLocked(target render.Target) uint64 {
	c.seq[target]++
	n := c.seq[target]
	if c.state.Active == target {
		c.view.ShowLoading(target)
	}
	return n
}

func (c *Controller) currentLocked(target render.Target, n uint64) bool {
	return c.seq[target] == n
}

func (c *Controller) loadFailedLocked(target render.Target, err error) error {
	c.logger.Error().Err(err).Str("target", string(target)).Msg("Failed to load movies")
	c.view.Notify(render.NoticeError, locale.KeyRequestFailed)
	return err
}

// rerenderBrowseLocked redraws the active list after the collection changed,
// except the collection itself which its reload already drew
func (c *Controller) rerenderBrowseLocked() {
	if c.state.Active != render.TargetCollection {
		c.renderLocked(c.state.Active)
	}
}

func (c *Controller) renderIfActiveLocked(target render.Target) {
	if c.state.Active == target {
		c.renderLocked(target)
	}
}

func (c *Controller) renderLocked(target render.Target) {
	items := c.itemsLocked(target)

	if c.refine != nil {
		items = c.refineLocked(items)
	}

	c.view.ShowMovies(target, render.List{
		Items:        items,
		InCollection: target == render.TargetCollection,
		Member:       c.state.membership(),
	})
}

func (c *Controller) itemsLocked(target render.Target) []render.Item {
	if target == render.TargetCollection {
		items := make([]render.Item, len(c.state.Collection))
		for i := range c.state.Collection {
			entry := c.state.Collection[i]
			items[i] = render.Item{Movie: entry.Movie, Entry: &entry}
		}
		return items
	}

	movies := c.state.Results
	if target == render.TargetRecommendations {
		movies = c.state.Recommendations
	}

	items := make([]render.Item, len(movies))
	for i, m := range movies {
		items[i] = render.Item{Movie: m}
		if entry, ok := c.state.FindEntry(m.TmdbID); ok {
			e := *entry
			items[i].Entry = &e
		}
	}
	return items
}

func (c *Controller) refineLocked(items []render.Item) []render.Item {
	subjects := make([]filter.Subject, len(items))
	for i, item := range items {
		subjects[i] = filter.Subject{
			Movie:        item.Movie,
			InCollection: item.Entry != nil,
			Entry:        item.Entry,
		}
	}

	matches, err := filter.Apply(c.refine, subjects)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Filter evaluation failed for some movies")
	}

	out := make([]render.Item, len(matches))
	for i, s := range matches {
		out[i] = render.Item{Movie: s.Movie, Entry: s.Entry}
	}
	return out
}

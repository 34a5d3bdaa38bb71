package app

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/s0up4200/moviemate/locale"
	"github.com/s0up4200/moviemate/moviemate"
	"github.com/s0up4200/moviemate/render"
)

// fakeAPI is an in-memory movie API that records every call
type fakeAPI struct {
	mu sync.Mutex

	calls     []string
	languages []string

	users      map[string]*moviemate.User
	getUserErr error
	createErr  error

	search     map[string][]moviemate.Movie
	searchHook func(query string)
	searchErr  map[string]error

	popular    []moviemate.Movie
	popularErr error

	collection    []moviemate.CollectionEntry
	collectionErr error

	recommendations []moviemate.Movie

	addErr  error
	addHook func()
	added   []moviemate.Movie

	removeErr error
	removed   []string

	updateErr error
	updated   []string
	nextEntry int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users:  map[string]*moviemate.User{},
		search: map[string][]moviemate.Movie{},
	}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeAPI) CreateUser(_ context.Context, username, _ string) (*moviemate.User, error) {
	f.record("CreateUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	user := &moviemate.User{ID: fmt.Sprintf("u%d", len(f.users)+1), Username: username}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeAPI) GetUser(_ context.Context, userID string) (*moviemate.User, error) {
	f.record("GetUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, &moviemate.APIError{StatusCode: 404, Message: "User not found"}
	}
	return user, nil
}

func (f *fakeAPI) GetUserByUsername(_ context.Context, username string) (*moviemate.User, error) {
	f.record("GetUserByUsername")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, &moviemate.APIError{StatusCode: 404, Message: "User not found"}
}

func (f *fakeAPI) SearchMovies(_ context.Context, query, language string) ([]moviemate.Movie, error) {
	f.record("SearchMovies")
	f.mu.Lock()
	f.languages = append(f.languages, language)
	hook := f.searchHook
	results := slices.Clone(f.search[query])
	err := f.searchErr[query]
	f.mu.Unlock()

	if hook != nil {
		hook(query)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (f *fakeAPI) PopularMovies(_ context.Context, language string) ([]moviemate.Movie, error) {
	f.record("PopularMovies")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.languages = append(f.languages, language)
	if f.popularErr != nil {
		return nil, f.popularErr
	}
	return slices.Clone(f.popular), nil
}

func (f *fakeAPI) Collection(_ context.Context, _ string) ([]moviemate.CollectionEntry, error) {
	f.record("Collection")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.collectionErr != nil {
		return nil, f.collectionErr
	}
	return slices.Clone(f.collection), nil
}

func (f *fakeAPI) AddToCollection(_ context.Context, userID string, movie moviemate.Movie) (*moviemate.CollectionEntry, error) {
	f.record("AddToCollection")
	f.mu.Lock()
	hook := f.addHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.added = append(f.added, movie)
	f.nextEntry++
	entry := moviemate.CollectionEntry{ID: fmt.Sprintf("entry-%d", f.nextEntry), UserID: userID, Movie: movie}
	f.collection = append(f.collection, entry)
	return &entry, nil
}

func (f *fakeAPI) RemoveFromCollection(_ context.Context, _, movieID string) error {
	f.record("RemoveFromCollection")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, movieID)
	f.collection = slices.DeleteFunc(f.collection, func(e moviemate.CollectionEntry) bool {
		return e.Movie.ID == movieID
	})
	return nil
}

func (f *fakeAPI) UpdateEntry(_ context.Context, _, movieID string, update moviemate.EntryUpdate) (*moviemate.CollectionEntry, error) {
	f.record("UpdateEntry")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = append(f.updated, movieID)
	for i := range f.collection {
		e := &f.collection[i]
		if e.Movie.ID != movieID {
			continue
		}
		if update.Watched != nil {
			e.Watched = *update.Watched
		}
		if update.Rating != nil {
			e.Rating = update.Rating
		}
		if update.Notes != nil {
			e.Notes = update.Notes
		}
		return e, nil
	}
	return nil, &moviemate.APIError{StatusCode: 404, Message: "Movie not found in collection"}
}

func (f *fakeAPI) Recommendations(_ context.Context, _, language string) ([]moviemate.Movie, error) {
	f.record("Recommendations")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.languages = append(f.languages, language)
	return slices.Clone(f.recommendations), nil
}

// fakeView records what the controller drew
type fakeView struct {
	mu      sync.Mutex
	theme   render.Theme
	lang    locale.Language
	input   string
	headers []render.Target
	loading []render.Target
	shown   []render.Target
	lists   map[render.Target]render.List
	notices []string
}

func newFakeView() *fakeView {
	return &fakeView{lists: map[render.Target]render.List{}}
}

func (v *fakeView) SetTheme(theme render.Theme) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.theme = theme
}

func (v *fakeView) SetLanguage(lang locale.Language) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lang = lang
}

func (v *fakeView) SetInput(value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = value
}

func (v *fakeView) RenderHeader(active render.Target) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.headers = append(v.headers, active)
}

func (v *fakeView) ShowLoading(target render.Target) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, target)
}

func (v *fakeView) ShowMovies(target render.Target, list render.List) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.shown = append(v.shown, target)
	v.lists[target] = list
}

func (v *fakeView) Notify(kind render.NoticeKind, key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, string(kind)+":"+key)
}

func (v *fakeView) lastNotice() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.notices) == 0 {
		return ""
	}
	return v.notices[len(v.notices)-1]
}

func (v *fakeView) list(target render.Target) (render.List, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	l, ok := v.lists[target]
	return l, ok
}

func (v *fakeView) shownCount(target render.Target) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, t := range v.shown {
		if t == target {
			n++
		}
	}
	return n
}

// fakeStore keeps preferences in memory
type fakeStore struct {
	mu       sync.Mutex
	username string
	userID   string
	language string
	theme    string
	err      error
}

func (s *fakeStore) Username() string { s.mu.Lock(); defer s.mu.Unlock(); return s.username }
func (s *fakeStore) UserID() string   { s.mu.Lock(); defer s.mu.Unlock(); return s.userID }
func (s *fakeStore) Language() string { s.mu.Lock(); defer s.mu.Unlock(); return s.language }
func (s *fakeStore) Theme() string    { s.mu.Lock(); defer s.mu.Unlock(); return s.theme }

func (s *fakeStore) SetUser(username, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username, s.userID = username, userID
	return s.err
}

func (s *fakeStore) SetLanguage(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	return s.err
}

func (s *fakeStore) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return s.err
}

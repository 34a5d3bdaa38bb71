package app

import (
	"slices"

	"github.com/s0up4200/moviemate/locale"
	"github.com/s0up4200/moviemate/moviemate"
	"github.com/s0up4200/moviemate/render"
)

// HistoryEntry is a search that a newer search superseded
type HistoryEntry struct {
	Query   string
	Results []moviemate.Movie
}

// State is everything the client knows between actions
type State struct {
	User     *moviemate.User
	Language locale.Language
	Theme    render.Theme
	Active   render.Target

	// Input is the raw content of the search input; Query is the search
	// that produced Results, empty while popular movies are shown
	Input   string
	Query   string
	Results []moviemate.Movie
	History []HistoryEntry

	Recommendations []moviemate.Movie
	Collection      []moviemate.CollectionEntry
}

func newState() State {
	return State{
		Language: locale.Russian,
		Theme:    render.Dark,
		Active:   render.TargetSearch,
	}
}

// pushHistory saves the current search when there is one worth returning to
func (s *State) pushHistory() bool {
	if s.Query == "" || len(s.Results) == 0 {
		return false
	}
	s.History = append(s.History, HistoryEntry{
		Query:   s.Query,
		Results: slices.Clone(s.Results),
	})
	return true
}

// popHistory restores the most recent history entry
func (s *State) popHistory() bool {
	if len(s.History) == 0 {
		return false
	}
	last := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	s.Query = last.Query
	s.Results = last.Results
	return true
}

// InCollection reports whether some entry's movie has external id id
func (s *State) InCollection(id moviemate.ExternalID) bool {
	_, ok := s.FindEntry(id)
	return ok
}

// FindEntry returns the collection entry whose movie has external id id
func (s *State) FindEntry(id moviemate.ExternalID) (*moviemate.CollectionEntry, bool) {
	for i := range s.Collection {
		if s.Collection[i].Movie.TmdbID.Matches(id) {
			return &s.Collection[i], true
		}
	}
	return nil, false
}

// FindMovie looks id up in the current results, then in the recommendations
func (s *State) FindMovie(id moviemate.ExternalID) (moviemate.Movie, bool) {
	for _, list := range [][]moviemate.Movie{s.Results, s.Recommendations} {
		for _, m := range list {
			if m.TmdbID.Matches(id) {
				return m, true
			}
		}
	}
	return moviemate.Movie{}, false
}

// membership snapshots the collected external ids
func (s *State) membership() render.Membership {
	ids := make(map[moviemate.ExternalID]struct{}, len(s.Collection))
	for _, e := range s.Collection {
		if e.Movie.TmdbID != "" {
			ids[e.Movie.TmdbID] = struct{}{}
		}
	}
	return func(id moviemate.ExternalID) bool {
		_, ok := ids[id]
		return ok
	}
}

// clone returns a copy that shares no slices with s
func (s *State) clone() State {
	out := *s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	out.Results = slices.Clone(s.Results)
	out.Recommendations = slices.Clone(s.Recommendations)
	out.Collection = slices.Clone(s.Collection)
	out.History = make([]HistoryEntry, len(s.History))
	for i, h := range s.History {
		out.History[i] = HistoryEntry{Query: h.Query, Results: slices.Clone(h.Results)}
	}
	return out
}

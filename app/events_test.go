package app

import (
	"context"
	"testing"

	"github.com/s0up4200/moviemate/moviemate"
	"github.com/s0up4200/moviemate/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		line    string
		want    Event
		wantOK  bool
		wantErr bool
	}{
		{line: "", wantOK: false},
		{line: "   ", wantOK: false},
		{line: "search the matrix", want: Event{Kind: EventSearch, Text: "the matrix"}, wantOK: true},
		{line: "search", want: Event{Kind: EventSearch}, wantOK: true},
		{line: "the matrix", want: Event{Kind: EventSearch, Text: "the matrix"}, wantOK: true},
		{line: "clear", want: Event{Kind: EventInput}, wantOK: true},
		{line: "popular", want: Event{Kind: EventPopular}, wantOK: true},
		{line: "home", want: Event{Kind: EventHome}, wantOK: true},
		{line: "go collection", want: Event{Kind: EventNavigate, Target: render.TargetCollection}, wantOK: true},
		{line: "go nowhere", wantErr: true},
		{line: "recommend", want: Event{Kind: EventNavigate, Target: render.TargetRecommendations}, wantOK: true},
		{line: "add 603", want: Event{Kind: EventAdd, ID: "603"}, wantOK: true},
		{line: "REMOVE 603", want: Event{Kind: EventRemove, ID: "603"}, wantOK: true},
		{line: "add", wantErr: true},
		{line: "rate 603 abc", wantErr: true},
		{line: "rate 603", wantErr: true},
		{line: "theme", want: Event{Kind: EventToggleTheme}, wantOK: true},
		{line: "lang", want: Event{Kind: EventToggleLanguage}, wantOK: true},
		{line: `filter hasGenre("Action")`, want: Event{Kind: EventRefine, Text: `hasGenre("Action")`}, wantOK: true},
		{line: "filter", want: Event{Kind: EventRefine}, wantOK: true},
		{line: "preset unwatched", want: Event{Kind: EventRefine, Preset: "unwatched"}, wantOK: true},
		{line: "preset", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ev, ok, err := ParseEvent(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, ev)
			}
		})
	}
}

func TestParseEventUpdates(t *testing.T) {
	ev, ok, err := ParseEvent("watched 603")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, ev.Update.Watched)
	assert.True(t, *ev.Update.Watched)
	assert.Equal(t, moviemate.ExternalID("603"), ev.ID)

	ev, _, err = ParseEvent("unwatched 603")
	require.NoError(t, err)
	require.NotNil(t, ev.Update.Watched)
	assert.False(t, *ev.Update.Watched)

	ev, _, err = ParseEvent("rate 603 8.5")
	require.NoError(t, err)
	require.NotNil(t, ev.Update.Rating)
	assert.InDelta(t, 8.5, *ev.Update.Rating, 0.001)

	ev, _, err = ParseEvent("note 603 watch with friends")
	require.NoError(t, err)
	require.NotNil(t, ev.Update.Notes)
	assert.Equal(t, "watch with friends", *ev.Update.Notes)
	assert.Equal(t, EventUpdate, ev.Kind)

	_, _, err = ParseEvent("add")
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestDispatch(t *testing.T) {
	h := newHarness(t)
	h.init(t)
	ctx := context.Background()

	lines := []string{"matrix", "add 603", "go collection", "watched 603", "remove 603", "theme", "home"}
	for _, line := range lines {
		ev, ok, err := ParseEvent(line)
		require.NoError(t, err, line)
		require.True(t, ok, line)
		require.NoError(t, h.ctrl.Dispatch(ctx, ev), line)
	}

	assert.Equal(t, 1, h.api.count("SearchMovies"))
	assert.Equal(t, 1, h.api.count("AddToCollection"))
	assert.Equal(t, 1, h.api.count("UpdateEntry"))
	assert.Equal(t, []string{"m-603"}, h.api.removed)
	assert.Equal(t, "light", h.store.Theme())
	assert.Equal(t, render.TargetSearch, h.ctrl.State().Active)

	assert.Error(t, h.ctrl.Dispatch(ctx, Event{Kind: "bogus"}))
}

package render

import (
	"testing"

	"github.com/s0up4200/moviemate/locale"
	"github.com/s0up4200/moviemate/moviemate"
	"github.com/stretchr/testify/assert"
)

func TestBuildCard(t *testing.T) {
	builder := NewCardBuilder(moviemate.NewImageResolver("https://img.example/t/p/", "w500", "https://img.example/none.png"))

	matrix := moviemate.Movie{
		ID:          "m1",
		TmdbID:      "603",
		Title:       "The Matrix",
		ReleaseDate: "1999-03-30",
		VoteAverage: 8.216,
		ImdbRating:  moviemate.Score{Value: 8.7, Valid: true},
		Genres:      []string{"Action", "Science Fiction", "Thriller", "Cyberpunk"},
		Overview:    "A hacker learns the truth.",
		PosterPath:  "/matrix.jpg",
	}

	card := builder.BuildCard(Item{Movie: matrix}, false, nil, locale.English)
	assert.Equal(t, "The Matrix", card.Title)
	assert.Equal(t, "1999", card.Year)
	assert.Equal(t, "8.2", card.TmdbRating)
	assert.Equal(t, "8.7", card.ImdbRating)
	assert.Equal(t, []string{"Action", "Science Fiction", "Thriller"}, card.Genres)
	assert.Equal(t, "A hacker learns the truth.", card.Overview)
	assert.Equal(t, "https://img.example/t/p/w500/matrix.jpg", card.PosterURL)
	assert.False(t, card.InCollection)
	assert.Equal(t, "Add to Collection", card.ActionLabel)
	assert.Equal(t, "add 603", card.ActionCommand)
}

func TestBuildCardPlaceholders(t *testing.T) {
	builder := NewCardBuilder(nil)

	card := builder.BuildCard(Item{Movie: moviemate.Movie{TmdbID: "1", Title: "Unknown"}}, false, nil, locale.Russian)
	assert.Equal(t, "N/A", card.Year)
	assert.Equal(t, "N/A", card.TmdbRating)
	assert.Equal(t, "N/A", card.ImdbRating)
	assert.Empty(t, card.Genres)
	assert.Equal(t, "Нет описания", card.Overview)
	assert.Equal(t, moviemate.DefaultImagePlaceholder, card.PosterURL)
	assert.Equal(t, "Добавить в коллекцию", card.ActionLabel)
}

func TestBuildCardMembership(t *testing.T) {
	builder := NewCardBuilder(nil)
	collected := map[moviemate.ExternalID]bool{"603": true}
	member := func(id moviemate.ExternalID) bool { return collected[id] }

	tests := []struct {
		name         string
		movie        moviemate.Movie
		inCollection bool
		want         bool
		wantCommand  string
	}{
		{name: "cache hit", movie: moviemate.Movie{ID: "other-internal-id", TmdbID: "603"}, want: true, wantCommand: "remove 603"},
		{name: "cache miss", movie: moviemate.Movie{ID: "603", TmdbID: "27205"}, want: false, wantCommand: "add 27205"},
		{name: "flag set", movie: moviemate.Movie{TmdbID: "27205"}, inCollection: true, want: true, wantCommand: "remove 27205"},
		{name: "no external id", movie: moviemate.Movie{ID: "603"}, want: false, wantCommand: "add "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := builder.BuildCard(Item{Movie: tt.movie}, tt.inCollection, member, locale.English)
			assert.Equal(t, tt.want, card.InCollection)
			assert.Equal(t, tt.wantCommand, card.ActionCommand)
			if tt.want {
				assert.Equal(t, "Remove", card.ActionLabel)
			}
		})
	}
}

func TestBuildCardEntryDetails(t *testing.T) {
	rating := 9.5
	notes := "best ever"
	item := Item{
		Movie: moviemate.Movie{TmdbID: "603", Title: "The Matrix"},
		Entry: &moviemate.CollectionEntry{ID: "e1", Watched: true, Rating: &rating, Notes: &notes},
	}

	card := NewCardBuilder(nil).BuildCard(item, true, nil, locale.English)
	assert.True(t, card.Watched)
	assert.Equal(t, "9.5", card.UserRating)
	assert.Equal(t, "best ever", card.Notes)
}

func TestTheme(t *testing.T) {
	theme, err := ParseTheme("light")
	assert.NoError(t, err)
	assert.Equal(t, Light, theme)
	assert.Equal(t, Dark, theme.Toggle())
	assert.Equal(t, "🌙", Light.Icon())
	assert.Equal(t, "☀️", Dark.Icon())

	_, err = ParseTheme("sepia")
	assert.Error(t, err)

	assert.Equal(t, Palette{}, PaletteFor(Dark, false))
	assert.NotEqual(t, PaletteFor(Dark, true), PaletteFor(Light, true))
}

package render

import (
	"strconv"

	"github.com/s0up4200/moviemate/locale"
	"github.com/s0up4200/moviemate/moviemate"
)

const (
	maxGenres    = 3
	notAvailable = "N/A"
	actionAdd    = "add"
	actionRemove = "remove"
)

// Membership reports whether an external id is in the collection cache
type Membership func(id moviemate.ExternalID) bool

// Item is one movie to display, with its collection entry when it has one
type Item struct {
	Movie moviemate.Movie
	Entry *moviemate.CollectionEntry
}

// Card is the display model of one movie
type Card struct {
	Title        string
	Year         string
	TmdbRating   string
	ImdbRating   string
	Genres       []string
	Overview     string
	PosterURL    string
	TmdbID       string
	InCollection bool

	// ActionLabel and ActionCommand describe the one action the card offers
	ActionLabel   string
	ActionCommand string

	// Entry details, set for collection entries
	Watched    bool
	UserRating string
	Notes      string
}

// CardBuilder turns movies into cards
type CardBuilder struct {
	images *moviemate.ImageResolver
}

// NewCardBuilder creates a card builder resolving posters with images
func NewCardBuilder(images *moviemate.ImageResolver) *CardBuilder {
	if images == nil {
		images = moviemate.NewImageResolver("", "", "")
	}
	return &CardBuilder{images: images}
}

// BuildCard builds the card for item. The movie counts as collected when
// inCollection is set or member reports its external id.
func (b *CardBuilder) BuildCard(item Item, inCollection bool, member Membership, lang locale.Language) Card {
	movie := item.Movie

	collected := inCollection
	if !collected && member != nil && movie.TmdbID != "" {
		collected = member(movie.TmdbID)
	}

	card := Card{
		Title:        movie.Title,
		Year:         movie.Year(),
		TmdbRating:   notAvailable,
		ImdbRating:   notAvailable,
		Overview:     movie.Overview,
		PosterURL:    b.images.URL(movie.PosterPath),
		TmdbID:       movie.TmdbID.String(),
		InCollection: collected,
	}

	if card.Year == "" {
		card.Year = notAvailable
	}
	if movie.VoteAverage != 0 {
		card.TmdbRating = strconv.FormatFloat(movie.VoteAverage, 'f', 1, 64)
	}
	if movie.ImdbRating.Valid {
		card.ImdbRating = strconv.FormatFloat(movie.ImdbRating.Value, 'f', -1, 64)
	}
	if len(movie.Genres) > 0 {
		n := min(len(movie.Genres), maxGenres)
		card.Genres = append([]string(nil), movie.Genres[:n]...)
	}
	if card.Overview == "" {
		card.Overview = locale.Text(lang, locale.KeyNoOverview)
	}

	if collected {
		card.ActionLabel = locale.Text(lang, locale.KeyRemoveFromCollection)
		card.ActionCommand = actionRemove + " " + card.TmdbID
	} else {
		card.ActionLabel = locale.Text(lang, locale.KeyAddToCollection)
		card.ActionCommand = actionAdd + " " + card.TmdbID
	}

	if e := item.Entry; e != nil {
		card.Watched = e.Watched
		if e.Rating != nil {
			card.UserRating = strconv.FormatFloat(*e.Rating, 'f', -1, 64)
		}
		if e.Notes != nil {
			card.Notes = *e.Notes
		}
	}

	return card
}

package moviemate

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ExternalID is a movie's identifier in the upstream catalog (TMDb). The API
// sends it as a number or a string; it is kept and compared in string form.
type ExternalID string

// UnmarshalJSON accepts a JSON number, string or null
func (id *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("external id: %w", err)
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("external id: %w", err)
	}
	*id = ExternalID(n.String())
	return nil
}

// MarshalJSON writes canonical integer identifiers as numbers, the way the
// catalog issued them. Anything else, such as "0603" or "+5", stays a string.
func (id ExternalID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Matches reports whether both identifiers are set and equal
func (id ExternalID) Matches(other ExternalID) bool {
	return id != "" && other != "" && id == other
}

// String returns the identifier
func (id ExternalID) String() string {
	return string(id)
}

// Score is a rating that the API sends either as a number or as "N/A"
type Score struct {
	Value float64
	Valid bool
}

// UnmarshalJSON accepts a number, a numeric string, "N/A" or null
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = Score{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("score: %w", err)
		}
		raw = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// "N/A" and friends
		return nil
	}
	s.Value = v
	s.Valid = true
	return nil
}

// MarshalJSON writes the number, or "N/A" when unset
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte(`"N/A"`), nil
	}
	return []byte(strconv.FormatFloat(s.Value, 'f', -1, 64)), nil
}

// User represents a MovieMate user
type User struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
}

// Movie is a catalog record as returned by the API
type Movie struct {
	ID            string     `json:"id"`
	TmdbID        ExternalID `json:"tmdb_id"`
	ImdbID        string     `json:"imdb_id,omitempty"`
	Title         string     `json:"title"`
	OriginalTitle string     `json:"original_title,omitempty"`
	Overview      string     `json:"overview,omitempty"`
	PosterPath    string     `json:"poster_path,omitempty"`
	BackdropPath  string     `json:"backdrop_path,omitempty"`
	ReleaseDate   string     `json:"release_date,omitempty"`
	VoteAverage   float64    `json:"vote_average"`
	VoteCount     int        `json:"vote_count"`
	ImdbRating    Score      `json:"imdb_rating"`
	Genres        []string   `json:"genres"`
	Runtime       int        `json:"runtime,omitempty"`
}

// Year returns the leading segment of the release date, or "" when unknown
func (m *Movie) Year() string {
	if m.ReleaseDate == "" {
		return ""
	}
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	return year
}

// YearNumber returns the release year as an int, 0 when unknown
func (m *Movie) YearNumber() int {
	year, err := strconv.Atoi(m.Year())
	if err != nil {
		return 0
	}
	return year
}

// HasGenre checks genre membership case-insensitively
func (m *Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// CollectionEntry associates a movie with a user. ID is the entry's own
// identifier and is unrelated to Movie.ID and Movie.TmdbID.
type CollectionEntry struct {
	ID      string   `json:"id"`
	UserID  string   `json:"user_id"`
	Movie   Movie    `json:"movie"`
	AddedAt string   `json:"added_at,omitempty"`
	Rating  *float64 `json:"rating"`
	Watched bool     `json:"watched"`
	Notes   *string  `json:"notes"`
}

// EntryUpdate is a partial update of a collection entry. Nil fields are left
// untouched by the server.
type EntryUpdate struct {
	Watched *bool    `json:"watched,omitempty"`
	Rating  *float64 `json:"rating,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u EntryUpdate) IsEmpty() bool {
	return u.Watched == nil && u.Rating == nil && u.Notes == nil
}

type createUserRequest struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

type addToCollectionRequest struct {
	UserID string `json:"user_id"`
	Movie  Movie  `json:"movie"`
}

type userResponse struct {
	User *User `json:"user"`
}

type resultsResponse struct {
	Results []Movie `json:"results"`
}

type collectionResponse struct {
	Collection []CollectionEntry `json:"collection"`
}

type entryResponse struct {
	UserMovie *CollectionEntry `json:"user_movie"`
}

type recommendationsResponse struct {
	Recommendations []Movie `json:"recommendations"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

package moviemate

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalIDUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ExternalID
	}{
		{name: "number", input: `603`, want: "603"},
		{name: "string", input: `"603"`, want: "603"},
		{name: "padded string", input: `" 603 "`, want: "603"},
		{name: "null", input: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ExternalID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestExternalIDMatches(t *testing.T) {
	assert.True(t, ExternalID("603").Matches("603"))
	assert.False(t, ExternalID("603").Matches("604"))
	assert.False(t, ExternalID("").Matches(""))
}

func TestExternalIDMarshal(t *testing.T) {
	data, err := json.Marshal(struct {
		A ExternalID `json:"a"`
		B ExternalID `json:"b"`
		C ExternalID `json:"c"`
	}{A: "603", B: "tt0133093", C: ""})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":603,"b":"tt0133093","c":null}`, string(data))
}

func TestExternalIDMarshalNonCanonicalNumbers(t *testing.T) {
	tests := []struct {
		id   ExternalID
		want string
	}{
		{id: "0603", want: `"0603"`},
		{id: "+5", want: `"+5"`},
		{id: "-0", want: `"-0"`},
		{id: "-12", want: `-12`},
		{id: "0", want: `0`},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			data, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
			assert.True(t, json.Valid(data))
		})
	}
}

func TestScoreUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Score
	}{
		{name: "number", input: `8.7`, want: Score{Value: 8.7, Valid: true}},
		{name: "numeric string", input: `"7.5"`, want: Score{Value: 7.5, Valid: true}},
		{name: "not available", input: `"N/A"`, want: Score{}},
		{name: "null", input: `null`, want: Score{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestMovieYear(t *testing.T) {
	tests := []struct {
		date     string
		want     string
		wantYear int
	}{
		{date: "1999-03-30", want: "1999", wantYear: 1999},
		{date: "2010", want: "2010", wantYear: 2010},
		{date: "", want: "", wantYear: 0},
	}

	for _, tt := range tests {
		m := Movie{ReleaseDate: tt.date}
		assert.Equal(t, tt.want, m.Year(), tt.date)
		assert.Equal(t, tt.wantYear, m.YearNumber(), tt.date)
	}
}

func TestMovieHasGenre(t *testing.T) {
	m := Movie{Genres: []string{"Action", "Science Fiction"}}
	assert.True(t, m.HasGenre("action"))
	assert.True(t, m.HasGenre("Science Fiction"))
	assert.False(t, m.HasGenre("Drama"))
}

func TestEntryUpdateIsEmpty(t *testing.T) {
	assert.True(t, EntryUpdate{}.IsEmpty())
	watched := true
	assert.False(t, EntryUpdate{Watched: &watched}.IsEmpty())
}

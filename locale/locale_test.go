package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		code    string
		want    Language
		wantErr bool
	}{
		{code: "en", want: English},
		{code: "ru", want: Russian},
		{code: "de", wantErr: true},
		{code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Parse(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Russian, English.Toggle())
	assert.Equal(t, English, Russian.Toggle())
	assert.Equal(t, "EN", English.Label())
	assert.Equal(t, "RU", Russian.Label())
}

func TestText(t *testing.T) {
	assert.Equal(t, "No movies found", Text(English, KeyNoResults))
	assert.Equal(t, "Ничего не найдено", Text(Russian, KeyNoResults))
	assert.Equal(t, "Already in collection", Text(Language("de"), KeyAlreadyAdded))
	assert.Equal(t, "missingKey", Text(English, "missingKey"))
}

func TestCatalogsComplete(t *testing.T) {
	for _, key := range Keys() {
		_, ok := texts[Russian][key]
		assert.True(t, ok, "russian text missing for %s", key)
	}
	assert.Len(t, texts[Russian], len(texts[English]))
}

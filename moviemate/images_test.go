package moviemate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageResolver(t *testing.T) {
	r := NewImageResolver("", "", "")
	assert.Equal(t, DefaultImageBaseURL+"w500/abc.jpg", r.URL("/abc.jpg"))
	assert.Equal(t, DefaultImagePlaceholder, r.URL(""))
	assert.Equal(t, DefaultImageBaseURL+"original/abc.jpg", r.SizedURL("/abc.jpg", "original"))

	r = NewImageResolver("https://images.example.com/t/p", "w342", "none.png")
	assert.Equal(t, "https://images.example.com/t/p/w342/abc.jpg", r.URL("/abc.jpg"))
	assert.Equal(t, "none.png", r.URL(""))
}

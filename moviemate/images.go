package moviemate

import "strings"

// Image host defaults
const (
	DefaultImageBaseURL     = "https://image.tmdb.org/t/p/"
	DefaultImageSize        = "w500"
	DefaultImagePlaceholder = "https://via.placeholder.com/250x350?text=No+Image"
)

// ImageResolver builds absolute poster URLs from the partial paths the API returns
type ImageResolver struct {
	BaseURL     string
	Size        string
	Placeholder string
}

// NewImageResolver creates a resolver, filling empty settings with defaults
func NewImageResolver(baseURL, size, placeholder string) *ImageResolver {
	if baseURL == "" {
		baseURL = DefaultImageBaseURL
	}
	if size == "" {
		size = DefaultImageSize
	}
	if placeholder == "" {
		placeholder = DefaultImagePlaceholder
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ImageResolver{
		BaseURL:     baseURL,
		Size:        size,
		Placeholder: placeholder,
	}
}

// URL returns the poster URL at the default size
func (r *ImageResolver) URL(path string) string {
	return r.SizedURL(path, r.Size)
}

// SizedURL returns the poster URL at the given size, or the placeholder when
// path is empty
func (r *ImageResolver) SizedURL(path, size string) string {
	if path == "" {
		return r.Placeholder
	}
	if size == "" {
		size = r.Size
	}
	return r.BaseURL + size + path
}

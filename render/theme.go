package render

import "fmt"

// Theme is the screen color scheme
type Theme string

// Supported themes
const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ParseTheme validates a theme name
func ParseTheme(name string) (Theme, error) {
	switch Theme(name) {
	case Dark, Light:
		return Theme(name), nil
	default:
		return "", fmt.Errorf("unsupported theme: %q (must be 'dark' or 'light')", name)
	}
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Icon is shown on the theme switch: the sun offers light, the moon offers dark
func (t Theme) Icon() string {
	if t == Dark {
		return "☀️"
	}
	return "🌙"
}

// String returns the theme name
func (t Theme) String() string {
	return string(t)
}

// Palette holds the ANSI sequences used for each role. The zero Palette
// prints plain text.
type Palette struct {
	Title   string
	Accent  string
	Muted   string
	Success string
	Error   string
	Reset   string
}

// PaletteFor returns the palette for theme, or the plain palette when color
// is off
func PaletteFor(theme Theme, color bool) Palette {
	if !color {
		return Palette{}
	}
	if theme == Light {
		return Palette{
			Title:   "\x1b[1;30m",
			Accent:  "\x1b[34m",
			Muted:   "\x1b[90m",
			Success: "\x1b[32m",
			Error:   "\x1b[31m",
			Reset:   "\x1b[0m",
		}
	}
	return Palette{
		Title:   "\x1b[1;97m",
		Accent:  "\x1b[96m",
		Muted:   "\x1b[37m",
		Success: "\x1b[92m",
		Error:   "\x1b[91m",
		Reset:   "\x1b[0m",
	}
}

// paint wraps s in code when the palette is colored
func (p Palette) paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + p.Reset
}

package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/s0up4200/moviemate/locale"
)

// Target is a list area of the screen. Each one belongs to one view.
type Target string

// Targets
const (
	TargetSearch          Target = "search"
	TargetCollection      Target = "collection"
	TargetRecommendations Target = "recommendations"
)

// Targets lists every target in header order
var Targets = []Target{TargetSearch, TargetCollection, TargetRecommendations}

// ParseTarget validates a target name
func ParseTarget(name string) (Target, error) {
	for _, t := range Targets {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown view: %q (must be search, collection or recommendations)", name)
}

// key returns the locale key of the target's title
func (t Target) key() string {
	switch t {
	case TargetCollection:
		return locale.KeyCollection
	case TargetRecommendations:
		return locale.KeyRecommendations
	default:
		return locale.KeySearch
	}
}

// NoticeKind is the tone of a notification
type NoticeKind string

// Notification kinds
const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// List is a sequence of movies to display in a target
type List struct {
	Items []Item
	// InCollection marks every item as collected
	InCollection bool
	// Member reports collection-cache membership for single items
	Member Membership
}

const wrapWidth = 76

// Screen renders the client to a terminal
type Screen struct {
	mu      sync.Mutex
	out     io.Writer
	cards   *CardBuilder
	lang    locale.Language
	theme   Theme
	color   bool
	palette Palette
	input   string
}

// ScreenOption configures a Screen
type ScreenOption func(*Screen)

// WithColor forces colored output on or off
func WithColor(color bool) ScreenOption {
	return func(s *Screen) {
		s.color = color
	}
}

// NewScreen creates a screen writing to out. Color is enabled when out is a
// terminal and NO_COLOR is unset.
func NewScreen(out io.Writer, cards *CardBuilder, opts ...ScreenOption) *Screen {
	if cards == nil {
		cards = NewCardBuilder(nil)
	}

	s := &Screen{
		out:   out,
		cards: cards,
		lang:  locale.Russian,
		theme: Dark,
		color: isTerminal(out) && os.Getenv("NO_COLOR") == "",
	}

	for _, opt := range opts {
		opt(s)
	}

	s.palette = PaletteFor(s.theme, s.color)
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetTheme switches the palette
func (s *Screen) SetTheme(theme Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.palette = PaletteFor(theme, s.color)
}

// SetLanguage switches the language of all later output
func (s *Screen) SetLanguage(lang locale.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
}

// SetInput records the search input shown by the prompt
func (s *Screen) SetInput(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = value
}

// Prompt returns the interactive prompt: the current input, or the
// translated placeholder when it is empty
func (s *Screen) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	shown := s.input
	if shown == "" {
		shown = locale.Text(s.lang, locale.KeySearchPlaceholder)
	}
	return s.palette.paint(s.palette.Muted, "["+shown+"]") + " > "
}

// RenderHeader prints the translated navigation bar with active highlighted
func (s *Screen) RenderHeader(active Target) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.palette
	var sb strings.Builder
	sb.WriteString(p.paint(p.Title, "🎬 MovieMate"))
	for _, t := range Targets {
		label := locale.Text(s.lang, t.key())
		sb.WriteString("  ")
		if t == active {
			sb.WriteString(p.paint(p.Accent, "["+label+"]"))
		} else {
			sb.WriteString(" " + label + " ")
		}
	}
	fmt.Fprintf(&sb, "  %s %s\n", s.theme.Icon(), s.lang.Toggle().Label())

	io.WriteString(s.out, sb.String())
}

// ShowLoading prints the loading line for target
func (s *Screen) ShowLoading(target Target) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintf(s.out, "%s\n", s.palette.paint(s.palette.Muted, "⏳ "+locale.Text(s.lang, locale.KeyLoading)))
}

// ShowMovies replaces the content of target with list, or prints the
// translated "no results" line for an empty list
func (s *Screen) ShowMovies(target Target, list List) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.palette
	var sb strings.Builder

	title := locale.Text(s.lang, target.key())
	if len(list.Items) == 0 {
		fmt.Fprintf(&sb, "\n%s\n\n  %s\n\n", p.paint(p.Title, title), locale.Text(s.lang, locale.KeyNoResults))
		io.WriteString(s.out, sb.String())
		return
	}

	fmt.Fprintf(&sb, "\n%s (%d):\n\n", p.paint(p.Title, title), len(list.Items))

	for i, item := range list.Items {
		isLast := i == len(list.Items)-1
		card := s.cards.BuildCard(item, list.InCollection, list.Member, s.lang)
		s.writeCard(&sb, card, isLast)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	io.WriteString(s.out, sb.String())
}

func (s *Screen) writeCard(sb *strings.Builder, card Card, isLast bool) {
	p := s.palette

	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	fmt.Fprintf(sb, "%s── %s (%s)", prefix, p.paint(p.Title, card.Title), card.Year)
	if card.InCollection {
		sb.WriteString(" " + p.paint(p.Success, "✓"))
	}
	sb.WriteString("\n")

	fmt.Fprintf(sb, "%sTMDb: ⭐ %s | %s: 🎬 %s\n", indent, card.TmdbRating, locale.Text(s.lang, locale.KeyRating), card.ImdbRating)

	if len(card.Genres) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, p.paint(p.Accent, strings.Join(card.Genres, " · ")))
	}

	for _, line := range wrap(card.Overview, wrapWidth-len([]rune(indent))) {
		fmt.Fprintf(sb, "%s%s\n", indent, p.paint(p.Muted, line))
	}

	fmt.Fprintf(sb, "%s🖼  %s\n", indent, card.PosterURL)

	var details []string
	if card.Watched {
		details = append(details, locale.Text(s.lang, locale.KeyWatched))
	}
	if card.UserRating != "" {
		details = append(details, locale.Text(s.lang, locale.KeyRating)+" "+card.UserRating)
	}
	if card.Notes != "" {
		details = append(details, "“"+card.Notes+"”")
	}
	if len(details) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(details, " | "))
	}

	fmt.Fprintf(sb, "%s→ %s: %s\n", indent, card.ActionLabel, p.paint(p.Accent, card.ActionCommand))
}

// Notify prints the translated message for key
func (s *Screen) Notify(kind NoticeKind, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.palette
	text := locale.Text(s.lang, key)
	switch kind {
	case NoticeError:
		fmt.Fprintf(s.out, "%s\n", p.paint(p.Error, "✗ "+text))
	default:
		fmt.Fprintf(s.out, "%s\n", p.paint(p.Success, "✓ "+text))
	}
}

// Printf writes free-form output in the screen's stream
func (s *Screen) Printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// wrap breaks text into lines of at most width runes on word boundaries.
// Words longer than width get a line of their own.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var (
		lines []string
		line  strings.Builder
		n     int
	)
	for _, w := range words {
		wl := len([]rune(w))
		if n > 0 && n+1+wl > width {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
			n++
		}
		line.WriteString(w)
		n += wl
	}
	return append(lines, line.String())
}

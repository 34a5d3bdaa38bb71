package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/s0up4200/moviemate/moviemate"
	"github.com/s0up4200/moviemate/render"
)

// EventKind names a user action
type EventKind string

// Event kinds
const (
	EventSearch         EventKind = "search"
	EventInput          EventKind = "input"
	EventPopular        EventKind = "popular"
	EventNavigate       EventKind = "navigate"
	EventHome           EventKind = "home"
	EventAdd            EventKind = "add"
	EventRemove         EventKind = "remove"
	EventUpdate         EventKind = "update"
	EventToggleTheme    EventKind = "theme"
	EventToggleLanguage EventKind = "lang"
	EventRefine         EventKind = "refine"
)

// Event is one user action. Only the fields its kind needs are set.
type Event struct {
	Kind   EventKind
	Text   string
	Preset string
	Target render.Target
	ID     moviemate.ExternalID
	Update moviemate.EntryUpdate
}

// Dispatch runs the operation for ev
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case EventSearch:
		return c.Search(ctx, ev.Text)
	case EventInput:
		return c.InputChanged(ctx, ev.Text)
	case EventPopular:
		return c.LoadPopular(ctx)
	case EventNavigate:
		return c.Navigate(ctx, ev.Target)
	case EventHome:
		return c.Home(ctx)
	case EventAdd:
		return c.Add(ctx, ev.ID)
	case EventRemove:
		return c.Remove(ctx, ev.ID)
	case EventUpdate:
		return c.Update(ctx, ev.ID, ev.Update)
	case EventToggleTheme:
		return c.ToggleTheme()
	case EventToggleLanguage:
		return c.ToggleLanguage(ctx)
	case EventRefine:
		return c.Refine(ev.Text, ev.Preset)
	default:
		return fmt.Errorf("unknown event: %q", ev.Kind)
	}
}

// ParseEvent turns a shell line into an event. A line that starts with no
// known command is searched for as a whole. ok is false for a blank line.
//
//	search <query>       submit a search (empty shows popular movies)
//	clear                clear the search input
//	popular | home       popular movies | reset to the start screen
//	go <view>            search, collection or recommendations
//	collection | recommend
//	add <id> | remove <id>
//	watched <id> | unwatched <id> | rate <id> <n> | note <id> <text>
//	theme | lang
//	filter [expr] | preset <name>
func ParseEvent(line string) (ev Event, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Event{}, false, nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "search", "s":
		return Event{Kind: EventSearch, Text: rest}, true, nil
	case "clear", "back":
		return Event{Kind: EventInput, Text: ""}, true, nil
	case "popular":
		return Event{Kind: EventPopular}, true, nil
	case "home":
		return Event{Kind: EventHome}, true, nil
	case "go", "view":
		target, err := render.ParseTarget(rest)
		if err != nil {
			return Event{}, false, err
		}
		return Event{Kind: EventNavigate, Target: target}, true, nil
	case "collection":
		return Event{Kind: EventNavigate, Target: render.TargetCollection}, true, nil
	case "recommend", "recommendations":
		return Event{Kind: EventNavigate, Target: render.TargetRecommendations}, true, nil
	case "add", "remove":
		if rest == "" {
			return Event{}, false, fmt.Errorf("%w: %s <tmdb-id>", ErrMissingArgument, cmd)
		}
		kind := EventAdd
		if strings.EqualFold(cmd, "remove") {
			kind = EventRemove
		}
		return Event{Kind: kind, ID: moviemate.ExternalID(rest)}, true, nil
	case "watched", "unwatched":
		if rest == "" {
			return Event{}, false, fmt.Errorf("%w: %s <tmdb-id>", ErrMissingArgument, cmd)
		}
		watched := strings.EqualFold(cmd, "watched")
		return Event{Kind: EventUpdate, ID: moviemate.ExternalID(rest), Update: moviemate.EntryUpdate{Watched: &watched}}, true, nil
	case "rate":
		id, value, _ := strings.Cut(rest, " ")
		if id == "" || strings.TrimSpace(value) == "" {
			return Event{}, false, fmt.Errorf("%w: rate <tmdb-id> <rating>", ErrMissingArgument)
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return Event{}, false, fmt.Errorf("invalid rating %q: %w", value, err)
		}
		return Event{Kind: EventUpdate, ID: moviemate.ExternalID(id), Update: moviemate.EntryUpdate{Rating: &rating}}, true, nil
	case "note":
		id, text, _ := strings.Cut(rest, " ")
		if id == "" {
			return Event{}, false, fmt.Errorf("%w: note <tmdb-id> <text>", ErrMissingArgument)
		}
		notes := strings.TrimSpace(text)
		return Event{Kind: EventUpdate, ID: moviemate.ExternalID(id), Update: moviemate.EntryUpdate{Notes: &notes}}, true, nil
	case "theme":
		return Event{Kind: EventToggleTheme}, true, nil
	case "lang", "language":
		return Event{Kind: EventToggleLanguage}, true, nil
	case "filter":
		return Event{Kind: EventRefine, Text: rest}, true, nil
	case "preset":
		if rest == "" {
			return Event{}, false, fmt.Errorf("%w: preset <name>", ErrMissingArgument)
		}
		return Event{Kind: EventRefine, Preset: rest}, true, nil
	default:
		return Event{Kind: EventSearch, Text: line}, true, nil
	}
}

package event

import (
	"cmp"
	"context"
	"iter"
	"slices"
	"strings"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
)

// Sequence is a lazy, finite, restartable stream of events. Every range
// over it re-reads the same snapshot.
type Sequence = iter.Seq2[Event, error]

// Filter selects events. At least one of MatchIDs, PlayerID or TeamID must
// be set; Types alone only narrows.
type Filter struct {
	MatchIDs []string
	PlayerID string
	TeamID   string
	Types    []Type
}

func (f Filter) Validate() error {
	if len(f.MatchIDs) == 0 && strings.TrimSpace(f.PlayerID) == "" && strings.TrimSpace(f.TeamID) == "" {
		return analytics.InvalidParam("filter", "one of match, player or team is required")
	}
	for _, id := range f.MatchIDs {
		if strings.TrimSpace(id) == "" {
			return analytics.InvalidParam("match_id", "match id must not be empty")
		}
	}
	return nil
}

func (f Filter) Matches(e Event) bool {
	if len(f.MatchIDs) > 0 && !slices.Contains(f.MatchIDs, e.MatchID) {
		return false
	}
	if f.PlayerID != "" && e.PlayerID != f.PlayerID {
		return false
	}
	if f.TeamID != "" && e.TeamID != f.TeamID {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, e.Type) {
		return false
	}
	return true
}

// MatchesAppearance applies the selector part of the filter to an appearance.
func (f Filter) MatchesAppearance(a Appearance) bool {
	if len(f.MatchIDs) > 0 && !slices.Contains(f.MatchIDs, a.MatchID) {
		return false
	}
	if f.PlayerID != "" && a.PlayerID != f.PlayerID {
		return false
	}
	if f.TeamID != "" && a.TeamID != f.TeamID {
		return false
	}
	return true
}

// Appearance records how long a player was on the pitch in one match.
type Appearance struct {
	MatchID       string
	PlayerID      string
	TeamID        string
	MinutesPlayed int
}

func ValidateAppearance(a Appearance) error {
	if a.MatchID == "" || a.PlayerID == "" || a.TeamID == "" {
		return analytics.InvalidValue("appearance requires match, player and team")
	}
	if a.MinutesPlayed < 0 || a.MinutesPlayed > 150 {
		return analytics.InvalidValue("appearance %s/%s minutes %d out of range", a.MatchID, a.PlayerID, a.MinutesPlayed)
	}
	return nil
}

// Reader is the read side of the event store.
type Reader interface {
	EventsFor(ctx context.Context, filter Filter) (Sequence, error)
	AppearancesFor(ctx context.Context, filter Filter) ([]Appearance, error)
}

// Compare orders by minute, second, then insertion order.
func Compare(a, b Event) int {
	if c := cmp.Compare(a.Minute, b.Minute); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Second, b.Second); c != 0 {
		return c
	}
	return cmp.Compare(a.Seq, b.Seq)
}

func Sort(events []Event) {
	slices.SortStableFunc(events, Compare)
}

// FromSlice yields events that satisfy filter, stopping with ctx.Err() once
// the context is done. events must already be sorted.
func FromSlice(ctx context.Context, events []Event, filter Filter) Sequence {
	return func(yield func(Event, error) bool) {
		for _, e := range events {
			if err := ctx.Err(); err != nil {
				yield(Event{}, err)
				return
			}
			if !filter.Matches(e) {
				continue
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// Collect drains seq, returning the first error.
func Collect(seq Sequence) ([]Event, error) {
	out := make([]Event, 0, 64)
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Load validates filter, queries reader and collects the result.
func Load(ctx context.Context, reader Reader, filter Filter) ([]Event, error) {
	seq, err := reader.EventsFor(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Collect(seq)
}

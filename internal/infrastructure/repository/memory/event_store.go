package memory

import (
	"context"

	"github.com/riskibarqy/match-analytics/internal/domain/event"
)

// EventStore serves events from an immutable snapshot. Events are grouped by
// match so a match selector only scans that match.
type EventStore struct {
	all         []event.Event
	byMatch     map[string][]event.Event
	appearances []event.Appearance
}

func NewEventStore(events []event.Event, appearances []event.Appearance) *EventStore {
	all := append([]event.Event(nil), events...)
	event.Sort(all)

	byMatch := make(map[string][]event.Event)
	for _, e := range all {
		byMatch[e.MatchID] = append(byMatch[e.MatchID], e)
	}

	return &EventStore{
		all:         all,
		byMatch:     byMatch,
		appearances: append([]event.Appearance(nil), appearances...),
	}
}

// EventsFor returns a restartable sequence over the snapshot ordered by
// minute, second and insertion order.
func (s *EventStore) EventsFor(ctx context.Context, filter event.Filter) (event.Sequence, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if len(filter.MatchIDs) == 1 {
		return event.FromSlice(ctx, s.byMatch[filter.MatchIDs[0]], filter), nil
	}
	return event.FromSlice(ctx, s.all, filter), nil
}

func (s *EventStore) AppearancesFor(ctx context.Context, filter event.Filter) ([]event.Appearance, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]event.Appearance, 0)
	for _, a := range s.appearances {
		if filter.MatchesAppearance(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	qb "github.com/riskibarqy/match-analytics/internal/platform/querybuilder"
)

// EventStore reads events and appearances from postgres. Each range over a
// returned sequence re-runs the query.
type EventStore struct {
	db *sqlx.DB
}

func NewEventStore(db *sqlx.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) EventsFor(ctx context.Context, filter event.Filter) (event.Sequence, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query, args, err := qb.Select(eventColumns...).From("events").
		Where(eventConditions(filter)...).
		OrderBy("minute", "second", "seq").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	return func(yield func(event.Event, error) bool) {
		rows, err := s.db.QueryxContext(ctx, query, args...)
		if err != nil {
			yield(event.Event{}, fmt.Errorf("select events: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			if err := ctx.Err(); err != nil {
				yield(event.Event{}, err)
				return
			}
			var row eventTableModel
			if err := rows.StructScan(&row); err != nil {
				yield(event.Event{}, fmt.Errorf("scan event row: %w", err))
				return
			}
			if !yield(eventFromRow(row), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(event.Event{}, fmt.Errorf("iterate event rows: %w", err))
		}
	}, nil
}

func (s *EventStore) AppearancesFor(ctx context.Context, filter event.Filter) ([]event.Appearance, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query, args, err := qb.Select(appearanceColumns...).From("appearances").
		Where(selectorConditions(filter)...).
		OrderBy("match_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select appearances query: %w", err)
	}

	var rows []appearanceTableModel
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select appearances: %w", err)
	}

	out := make([]event.Appearance, 0, len(rows))
	for _, row := range rows {
		out = append(out, appearanceFromRow(row))
	}
	return out, nil
}

func selectorConditions(filter event.Filter) []qb.Condition {
	conds := make([]qb.Condition, 0, 4)
	if len(filter.MatchIDs) > 0 {
		conds = append(conds, qb.In("match_id", filter.MatchIDs))
	}
	if filter.PlayerID != "" {
		conds = append(conds, qb.Eq("player_id", filter.PlayerID))
	}
	if filter.TeamID != "" {
		conds = append(conds, qb.Eq("team_id", filter.TeamID))
	}
	return conds
}

func eventConditions(filter event.Filter) []qb.Condition {
	conds := selectorConditions(filter)
	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		conds = append(conds, qb.In("event_type", types))
	}
	return conds
}

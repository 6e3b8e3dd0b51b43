package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// TeamMatchLine is one finished match of a team with its aggregate line.
type TeamMatchLine struct {
	Match    match.Match
	Venue    match.Venue
	Opponent string
	Result   opt.Value[match.Result]
	Line     metrics.Line
}

// MatchEventSet groups the events loaded for several matches.
type MatchEventSet struct {
	Matches []match.Match
	Events  map[string][]event.Event
}

// loadMatchEvents reads the events of matches in one store call and splits
// them per match. Store order is kept inside each match.
func loadMatchEvents(ctx context.Context, reader event.Reader, matches []match.Match) (MatchEventSet, error) {
	set := MatchEventSet{Matches: matches, Events: make(map[string][]event.Event, len(matches))}
	if len(matches) == 0 {
		return set, nil
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	seq, err := reader.EventsFor(ctx, event.Filter{MatchIDs: ids})
	if err != nil {
		return MatchEventSet{}, fmt.Errorf("query match events: %w", err)
	}
	for e, err := range seq {
		if err != nil {
			return MatchEventSet{}, fmt.Errorf("read match events: %w", err)
		}
		set.Events[e.MatchID] = append(set.Events[e.MatchID], e)
	}
	return set, nil
}

// teamLines aggregates the last limit finished matches of teamID inside
// scope, oldest first. limit <= 0 keeps every match.
func teamLines(ctx context.Context, registry *Registry, reader event.Reader, scope analytics.Scope, teamID string, limit int) ([]TeamMatchLine, error) {
	matches, err := registry.Matches(ctx, scope, match.Filter{TeamID: teamID, FinishedOnly: true})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[len(matches)-limit:]
	}

	set, err := loadMatchEvents(ctx, reader, matches)
	if err != nil {
		return nil, err
	}

	out := make([]TeamMatchLine, 0, len(matches))
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		opponent := m.OpponentOf(teamID)
		line, err := metrics.MatchLine(set.Events[m.ID], m.ID, teamID, opponent)
		if err != nil {
			return nil, fmt.Errorf("aggregate match %s: %w", m.ID, err)
		}
		if gf, ga, ok := m.Goals(teamID); ok {
			line.GoalsFor, line.GoalsAgainst = gf, ga
		}
		row := TeamMatchLine{Match: m, Venue: m.VenueOf(teamID), Opponent: opponent, Line: line}
		if res, ok := m.ResultFor(teamID); ok {
			row.Result = opt.Present(res)
		}
		out = append(out, row)
	}
	return out, nil
}

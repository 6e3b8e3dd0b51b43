package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

const (
	defaultTrendWindow = 3
	maxTrendWindow     = 38
	profileFormMatches = 5
)

type PlayingTime struct {
	Appearances int
	Minutes     int
}

// PlayerMatchLine is a player's tally in one match.
type PlayerMatchLine struct {
	Match        match.Match
	TeamID       string
	OpponentID   string
	OpponentName string
	Minutes      int
	Tally        metrics.Tally
}

type PlayerProfile struct {
	Player player.Player
	Team   team.Team
	Time   PlayingTime
	Totals metrics.Tally
	// Per90 is Absent when the player has less than one minute.
	Per90 opt.Value[map[analytics.Metric]float64]
	Form  []PlayerMatchLine
}

type TrendPoint struct {
	Match      match.Match
	OpponentID string
	Value      float64
}

type PerformanceTrend struct {
	Player  player.Player
	Metric  analytics.Metric
	Window  int
	Points  []TrendPoint
	Rolling []float64
}

type EventMap struct {
	Player  player.Player
	Type    opt.Value[event.Type]
	MatchID opt.Value[string]
	Events  []event.Event
}

type PlayerAnalysisService struct {
	registry *Registry
	teams    team.Repository
	events   event.Reader
}

func NewPlayerAnalysisService(registry *Registry, teams team.Repository, events event.Reader) *PlayerAnalysisService {
	return &PlayerAnalysisService{registry: registry, teams: teams, events: events}
}

func (s *PlayerAnalysisService) Profile(ctx context.Context, scope analytics.Scope, playerID string) (PlayerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerAnalysisService.Profile")
	defer span.End()

	p, lines, err := s.playerLines(ctx, scope, playerID)
	if err != nil {
		return PlayerProfile{}, err
	}

	t, exists, err := s.teams.GetByID(ctx, p.TeamID)
	if err != nil {
		return PlayerProfile{}, fmt.Errorf("get player team: %w", err)
	}
	if !exists {
		t = team.Team{ID: p.TeamID, Name: p.TeamID}
	}

	out := PlayerProfile{Player: p, Team: t}
	for _, l := range lines {
		out.Totals = out.Totals.Merge(l.Tally)
		out.Time.Minutes += l.Minutes
		if l.Minutes > 0 {
			out.Time.Appearances++
		}
	}
	if per90, ok := per90Values(out.Totals, float64(out.Time.Minutes)); ok {
		out.Per90 = opt.Present(per90)
	}

	form := lines
	if len(form) > profileFormMatches {
		form = form[len(form)-profileFormMatches:]
	}
	out.Form = form
	return out, nil
}

// PerformanceTrend reports metric per match with a trailing average over
// window matches. Matches where a rate metric is undefined are skipped.
func (s *PlayerAnalysisService) PerformanceTrend(ctx context.Context, scope analytics.Scope, playerID string, m analytics.Metric, window int) (PerformanceTrend, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerAnalysisService.PerformanceTrend")
	defer span.End()

	if window == 0 {
		window = defaultTrendWindow
	}
	if window < 1 || window > maxTrendWindow {
		return PerformanceTrend{}, analytics.InvalidParam("window", fmt.Sprintf("window must be between 1 and %d", maxTrendWindow))
	}
	if _, ok := analytics.Info(m); !ok {
		return PerformanceTrend{}, analytics.InvalidParam("metric", fmt.Sprintf("unknown metric %q", m))
	}

	p, lines, err := s.playerLines(ctx, scope, playerID)
	if err != nil {
		return PerformanceTrend{}, err
	}

	out := PerformanceTrend{Player: p, Metric: m, Window: window, Points: make([]TrendPoint, 0, len(lines))}
	values := make([]float64, 0, len(lines))
	for _, l := range lines {
		if l.Minutes == 0 && l.Tally == (metrics.Tally{}) {
			continue
		}
		v, ok := l.Tally.Value(m).Get()
		if !ok {
			continue
		}
		out.Points = append(out.Points, TrendPoint{Match: l.Match, OpponentID: l.OpponentID, Value: v})
		values = append(values, v)
	}
	if len(out.Points) == 0 {
		return PerformanceTrend{}, analytics.InsufficientSample("player %s has no %s data", p.ID, m)
	}
	out.Rolling = metrics.RollingAverage(values, window)
	return out, nil
}

// EventMap lists the player's own located events, optionally for one match
// and one event type.
func (s *PlayerAnalysisService) EventMap(ctx context.Context, scope analytics.Scope, playerID, matchID, eventType string) (EventMap, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerAnalysisService.EventMap")
	defer span.End()

	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return EventMap{}, err
	}
	p, err := s.registry.ResolvePlayer(ctx, scope, "player_id", playerID)
	if err != nil {
		return EventMap{}, err
	}

	out := EventMap{Player: p}
	filter := event.Filter{PlayerID: p.ID}
	if eventType != "" && eventType != "all" {
		typ := event.ParseType(eventType)
		if typ == event.TypeUnknown {
			return EventMap{}, analytics.InvalidParam("event_type", fmt.Sprintf("unknown event type %q", eventType))
		}
		filter.Types = []event.Type{typ}
		out.Type = opt.Present(typ)
	}
	if matchID != "" {
		m, err := s.registry.ResolveMatch(ctx, scope, "match_id", matchID)
		if err != nil {
			return EventMap{}, err
		}
		filter.MatchIDs = []string{m.ID}
		out.MatchID = opt.Present(m.ID)
	} else if !scope.IsZero() {
		ids, err := s.registry.MatchIDs(ctx, scope, match.Filter{})
		if err != nil {
			return EventMap{}, err
		}
		if len(ids) == 0 {
			return out, nil
		}
		filter.MatchIDs = ids
	}

	events, err := event.Load(ctx, s.events, filter)
	if err != nil {
		return EventMap{}, fmt.Errorf("load player events: %w", err)
	}
	out.Events = events
	return out, nil
}

// playerLines resolves the player and aggregates every match the player
// took part in inside scope, oldest first.
func (s *PlayerAnalysisService) playerLines(ctx context.Context, scope analytics.Scope, playerID string) (player.Player, []PlayerMatchLine, error) {
	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return player.Player{}, nil, err
	}
	p, err := s.registry.ResolvePlayer(ctx, scope, "player_id", playerID)
	if err != nil {
		return player.Player{}, nil, err
	}
	lines, err := playerMatchLines(ctx, s.registry, s.events, scope, p.ID)
	if err != nil {
		return player.Player{}, nil, err
	}
	if len(lines) == 0 {
		return player.Player{}, nil, analytics.InsufficientSample("player %s has no matches in scope", p.ID)
	}
	return p, lines, nil
}

func playerMatchLines(ctx context.Context, registry *Registry, reader event.Reader, scope analytics.Scope, playerID string) ([]PlayerMatchLine, error) {
	scoped, err := registry.Matches(ctx, scope, match.Filter{})
	if err != nil {
		return nil, err
	}

	filter := event.Filter{PlayerID: playerID}
	if !scope.IsZero() {
		if len(scoped) == 0 {
			return nil, nil
		}
		for _, m := range scoped {
			filter.MatchIDs = append(filter.MatchIDs, m.ID)
		}
	}

	appearances, err := reader.AppearancesFor(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list player appearances: %w", err)
	}
	minutes := make(map[string]event.Appearance, len(appearances))
	for _, a := range appearances {
		minutes[a.MatchID] = a
	}
	if len(appearances) == 0 {
		own, err := event.Load(ctx, reader, filter)
		if err != nil {
			return nil, fmt.Errorf("load player events: %w", err)
		}
		for _, e := range own {
			if _, ok := minutes[e.MatchID]; !ok {
				minutes[e.MatchID] = event.Appearance{MatchID: e.MatchID, PlayerID: playerID, TeamID: e.TeamID}
			}
		}
	}

	played := make([]match.Match, 0, len(minutes))
	for _, m := range scoped {
		if _, ok := minutes[m.ID]; ok {
			played = append(played, m)
		}
	}
	set, err := loadMatchEvents(ctx, reader, played)
	if err != nil {
		return nil, err
	}

	opponents := make([]string, 0, len(played))
	for _, m := range played {
		opponents = append(opponents, m.OpponentOf(minutes[m.ID].TeamID))
	}
	names, err := registry.TeamNames(ctx, slices.Compact(slices.Sorted(slices.Values(opponents))))
	if err != nil {
		return nil, err
	}

	out := make([]PlayerMatchLine, 0, len(played))
	for _, m := range played {
		a := minutes[m.ID]
		opponent := m.OpponentOf(a.TeamID)
		out = append(out, PlayerMatchLine{
			Match:        m,
			TeamID:       a.TeamID,
			OpponentID:   opponent,
			OpponentName: names[opponent],
			Minutes:      a.MinutesPlayed,
			Tally:        metrics.TallyPlayer(set.Events[m.ID], playerID),
		})
	}
	return out, nil
}

func per90Values(t metrics.Tally, minutes float64) (map[analytics.Metric]float64, bool) {
	if minutes < 1 {
		return nil, false
	}
	out := make(map[analytics.Metric]float64)
	for _, m := range analytics.Metrics() {
		info, _ := analytics.Info(m)
		if info.Rate {
			continue
		}
		v, err := metrics.Per90(t.Value(m).OrElse(0), minutes)
		if err != nil {
			return nil, false
		}
		out[m] = v
	}
	return out, true
}

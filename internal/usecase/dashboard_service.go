package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// SideSummary is one team's headline numbers in a match.
type SideSummary struct {
	Team          team.Team
	Venue         match.Venue
	Goals         opt.Value[int]
	XG            float64
	Shots         int
	ShotsOnTarget int
	Possession    opt.Value[float64]
	PassAccuracy  opt.Value[float64]
}

type MatchSummary struct {
	Match    match.Match
	Team     SideSummary
	Opponent SideSummary
}

type MatchTimeline struct {
	Match    match.Match
	HomeTeam team.Team
	AwayTeam team.Team
	Timeline metrics.Timeline
}

type Shot struct {
	Event      event.Event
	PlayerName string
	Venue      match.Venue
}

type ShotMap struct {
	Match    match.Match
	HomeTeam team.Team
	AwayTeam team.Team
	Shots    []Shot
}

// DashboardService serves the single match views.
type DashboardService struct {
	registry *Registry
	teams    team.Repository
	events   event.Reader
}

func NewDashboardService(registry *Registry, teams team.Repository, events event.Reader) *DashboardService {
	return &DashboardService{registry: registry, teams: teams, events: events}
}

// Summary reports the match from teamID's perspective, or the home side
// when teamID is empty.
func (s *DashboardService) Summary(ctx context.Context, scope analytics.Scope, matchID, teamID string) (MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Summary")
	defer span.End()

	m, home, away, events, err := s.loadMatch(ctx, scope, matchID)
	if err != nil {
		return MatchSummary{}, err
	}

	own, opp := home, away
	switch teamID {
	case "", m.HomeTeamID:
	case m.AwayTeamID:
		own, opp = away, home
	default:
		return MatchSummary{}, analytics.InvalidParam("team_id", fmt.Sprintf("team %q did not play match %s", teamID, m.ID))
	}

	ownSide, err := sideSummary(m, own, events)
	if err != nil {
		return MatchSummary{}, err
	}
	oppSide, err := sideSummary(m, opp, events)
	if err != nil {
		return MatchSummary{}, err
	}
	return MatchSummary{Match: m, Team: ownSide, Opponent: oppSide}, nil
}

func (s *DashboardService) XGTimeline(ctx context.Context, scope analytics.Scope, matchID string) (MatchTimeline, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.XGTimeline")
	defer span.End()

	m, home, away, events, err := s.loadMatch(ctx, scope, matchID)
	if err != nil {
		return MatchTimeline{}, err
	}
	tl, err := metrics.XGTimeline(events, m.HomeTeamID, m.AwayTeamID)
	if err != nil {
		return MatchTimeline{}, fmt.Errorf("build xg timeline: %w", err)
	}
	return MatchTimeline{Match: m, HomeTeam: home, AwayTeam: away, Timeline: tl}, nil
}

func (s *DashboardService) ShotMap(ctx context.Context, scope analytics.Scope, matchID string) (ShotMap, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.ShotMap")
	defer span.End()

	m, home, away, events, err := s.loadMatch(ctx, scope, matchID)
	if err != nil {
		return ShotMap{}, err
	}

	shots := make([]event.Event, 0, 32)
	playerIDs := make([]string, 0, 32)
	for _, e := range events {
		if e.IsShot() {
			shots = append(shots, e)
			playerIDs = append(playerIDs, e.PlayerID)
		}
	}
	names, err := s.registry.PlayerNames(ctx, playerIDs)
	if err != nil {
		return ShotMap{}, err
	}

	out := ShotMap{Match: m, HomeTeam: home, AwayTeam: away, Shots: make([]Shot, 0, len(shots))}
	for _, e := range shots {
		out.Shots = append(out.Shots, Shot{Event: e, PlayerName: names[e.PlayerID], Venue: m.VenueOf(e.TeamID)})
	}
	return out, nil
}

func (s *DashboardService) loadMatch(ctx context.Context, scope analytics.Scope, matchID string) (match.Match, team.Team, team.Team, []event.Event, error) {
	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return match.Match{}, team.Team{}, team.Team{}, nil, err
	}
	m, err := s.registry.ResolveMatch(ctx, scope, "match_id", matchID)
	if err != nil {
		return match.Match{}, team.Team{}, team.Team{}, nil, err
	}

	teams, err := s.teams.GetByIDs(ctx, []string{m.HomeTeamID, m.AwayTeamID})
	if err != nil {
		return match.Match{}, team.Team{}, team.Team{}, nil, fmt.Errorf("get match teams: %w", err)
	}
	byID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	events, err := event.Load(ctx, s.events, event.Filter{MatchIDs: []string{m.ID}})
	if err != nil {
		return match.Match{}, team.Team{}, team.Team{}, nil, fmt.Errorf("load match events: %w", err)
	}
	return m, teamOrID(byID, m.HomeTeamID), teamOrID(byID, m.AwayTeamID), events, nil
}

func sideSummary(m match.Match, t team.Team, events []event.Event) (SideSummary, error) {
	xg, err := metrics.XGTotal(events, t.ID)
	if err != nil {
		return SideSummary{}, err
	}
	tally := metrics.TallyTeam(events, t.ID)

	side := SideSummary{
		Team:          t,
		Venue:         m.VenueOf(t.ID),
		XG:            xg,
		Shots:         tally.Shots,
		ShotsOnTarget: tally.ShotsOnTarget,
		PassAccuracy:  metrics.PassAccuracy(events, t.ID),
	}
	if gf, _, ok := m.Goals(t.ID); ok {
		side.Goals = opt.Present(gf)
	}
	possession, err := metrics.Possession(events, t.ID)
	switch {
	case err == nil:
		side.Possession = opt.Present(possession)
	case !errors.Is(err, analytics.ErrInsufficientSampleSize):
		return SideSummary{}, err
	}
	return side, nil
}

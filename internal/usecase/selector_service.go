package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
)

// MatchOption is a match with both team names resolved for selectors.
type MatchOption struct {
	Match    match.Match
	HomeTeam team.Team
	AwayTeam team.Team
}

// SelectorService backs the filter dropdowns of the dashboard.
type SelectorService struct {
	registry     *Registry
	competitions competition.Repository
	teams        team.Repository
	players      player.Repository
}

func NewSelectorService(
	registry *Registry,
	competitions competition.Repository,
	teams team.Repository,
	players player.Repository,
) *SelectorService {
	return &SelectorService{
		registry:     registry,
		competitions: competitions,
		teams:        teams,
		players:      players,
	}
}

func (s *SelectorService) ListCompetitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectorService.ListCompetitions")
	defer span.End()

	items, err := s.competitions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	slices.SortFunc(items, func(a, b competition.Competition) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return items, nil
}

func (s *SelectorService) ListSeasons(ctx context.Context, competitionID string) ([]competition.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectorService.ListSeasons")
	defer span.End()

	c, err := s.registry.ResolveCompetition(ctx, "competition_id", competitionID)
	if err != nil {
		return nil, err
	}
	items, err := s.competitions.ListSeasons(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	// Latest season first.
	slices.SortFunc(items, func(a, b competition.Season) int { return cmp.Compare(b.ID, a.ID) })
	return items, nil
}

// ListTeams returns the teams that play in scope, or every team for the
// zero scope.
func (s *SelectorService) ListTeams(ctx context.Context, scope analytics.Scope) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectorService.ListTeams")
	defer span.End()

	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return nil, err
	}

	var items []team.Team
	if scope.IsZero() {
		all, err := s.teams.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		items = all
	} else {
		matches, err := s.registry.Matches(ctx, scope, match.Filter{})
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, 2*len(matches))
		for _, m := range matches {
			ids = append(ids, m.HomeTeamID, m.AwayTeamID)
		}
		slices.Sort(ids)
		ids = slices.Compact(ids)

		scoped, err := s.teams.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("get teams by ids: %w", err)
		}
		items = scoped
	}

	slices.SortFunc(items, func(a, b team.Team) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return items, nil
}

// ListMatches returns matches in scope, most recent first. teamID is
// optional.
func (s *SelectorService) ListMatches(ctx context.Context, scope analytics.Scope, teamID string) ([]MatchOption, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectorService.ListMatches")
	defer span.End()

	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return nil, err
	}
	filter := match.Filter{}
	if teamID != "" {
		t, err := s.registry.ResolveTeam(ctx, scope, "team_id", teamID)
		if err != nil {
			return nil, err
		}
		filter.TeamID = t.ID
	}

	matches, err := s.registry.Matches(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, 2*len(matches))
	for _, m := range matches {
		ids = append(ids, m.HomeTeamID, m.AwayTeamID)
	}
	teams, err := s.teams.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get teams by ids: %w", err)
	}
	byID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	out := make([]MatchOption, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		out = append(out, MatchOption{
			Match:    m,
			HomeTeam: teamOrID(byID, m.HomeTeamID),
			AwayTeam: teamOrID(byID, m.AwayTeamID),
		})
	}
	return out, nil
}

func (s *SelectorService) ListPlayers(ctx context.Context, scope analytics.Scope, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectorService.ListPlayers")
	defer span.End()

	if err := s.registry.CheckScope(ctx, scope); err != nil {
		return nil, err
	}
	t, err := s.registry.ResolveTeam(ctx, scope, "team_id", teamID)
	if err != nil {
		return nil, err
	}

	items, err := s.players.ListByTeam(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}
	slices.SortFunc(items, func(a, b player.Player) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return items, nil
}

func teamOrID(byID map[string]team.Team, id string) team.Team {
	if t, ok := byID[id]; ok {
		return t
	}
	return team.Team{ID: id, Name: id}
}

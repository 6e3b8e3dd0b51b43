package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
)

type Kind string

const (
	KindCompetition Kind = "competition"
	KindSeason      Kind = "season"
	KindTeam        Kind = "team"
	KindPlayer      Kind = "player"
	KindMatch       Kind = "match"
)

// Entity is the kind-agnostic view of a resolved identifier.
type Entity struct {
	Kind Kind
	ID   string
	Name string
}

// Registry answers whether a client supplied identifier exists, optionally
// inside one competition season.
type Registry struct {
	competitions competition.Repository
	teams        team.Repository
	players      player.Repository
	matches      match.Repository
	events       event.Reader
}

func NewRegistry(
	competitions competition.Repository,
	teams team.Repository,
	players player.Repository,
	matches match.Repository,
	events event.Reader,
) *Registry {
	return &Registry{
		competitions: competitions,
		teams:        teams,
		players:      players,
		matches:      matches,
		events:       events,
	}
}

// Resolve looks up id of kind inside scope. The error names the query
// parameter of the same name as kind.
func (r *Registry) Resolve(ctx context.Context, scope analytics.Scope, kind Kind, id string) (Entity, error) {
	param := string(kind) + "_id"
	switch kind {
	case KindCompetition:
		c, err := r.ResolveCompetition(ctx, param, id)
		if err != nil {
			return Entity{}, err
		}
		return Entity{Kind: kind, ID: c.ID, Name: c.Name}, nil
	case KindSeason:
		s, err := r.ResolveSeason(ctx, scope.CompetitionID, param, id)
		if err != nil {
			return Entity{}, err
		}
		return Entity{Kind: kind, ID: s.ID, Name: s.Name}, nil
	case KindTeam:
		t, err := r.ResolveTeam(ctx, scope, param, id)
		if err != nil {
			return Entity{}, err
		}
		return Entity{Kind: kind, ID: t.ID, Name: t.Name}, nil
	case KindPlayer:
		p, err := r.ResolvePlayer(ctx, scope, param, id)
		if err != nil {
			return Entity{}, err
		}
		return Entity{Kind: kind, ID: p.ID, Name: p.Name}, nil
	case KindMatch:
		m, err := r.ResolveMatch(ctx, scope, param, id)
		if err != nil {
			return Entity{}, err
		}
		return Entity{Kind: kind, ID: m.ID, Name: m.HomeTeamID + " vs " + m.AwayTeamID}, nil
	default:
		return Entity{}, analytics.InvalidParam("kind", fmt.Sprintf("unsupported entity kind %q", kind))
	}
}

// CheckScope verifies that a non-zero scope names a loaded competition and
// season.
func (r *Registry) CheckScope(ctx context.Context, scope analytics.Scope) error {
	if scope.IsZero() {
		return nil
	}
	if scope.SeasonID != "" && scope.CompetitionID == "" {
		return analytics.InvalidParam("competition_id", "competition_id is required when season_id is set")
	}
	if _, err := r.ResolveCompetition(ctx, "competition_id", scope.CompetitionID); err != nil {
		return err
	}
	if scope.SeasonID == "" {
		return nil
	}
	_, err := r.ResolveSeason(ctx, scope.CompetitionID, "season_id", scope.SeasonID)
	return err
}

func (r *Registry) ResolveCompetition(ctx context.Context, param, id string) (competition.Competition, error) {
	id, err := requiredID(param, id)
	if err != nil {
		return competition.Competition{}, err
	}
	c, exists, err := r.competitions.GetByID(ctx, id)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, analytics.UnknownID(param, string(KindCompetition), id)
	}
	return c, nil
}

func (r *Registry) ResolveSeason(ctx context.Context, competitionID, param, id string) (competition.Season, error) {
	id, err := requiredID(param, id)
	if err != nil {
		return competition.Season{}, err
	}
	if strings.TrimSpace(competitionID) == "" {
		return competition.Season{}, analytics.InvalidParam("competition_id", "competition_id is required when season_id is set")
	}
	s, exists, err := r.competitions.GetSeason(ctx, competitionID, id)
	if err != nil {
		return competition.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return competition.Season{}, analytics.UnknownID(param, string(KindSeason), id)
	}
	return s, nil
}

// ResolveTeam requires the team to play at least one match of a non-zero
// scope.
func (r *Registry) ResolveTeam(ctx context.Context, scope analytics.Scope, param, id string) (team.Team, error) {
	id, err := requiredID(param, id)
	if err != nil {
		return team.Team{}, err
	}
	t, exists, err := r.teams.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, analytics.UnknownID(param, string(KindTeam), id)
	}
	if scope.IsZero() {
		return t, nil
	}

	played, err := r.Matches(ctx, scope, match.Filter{TeamID: id})
	if err != nil {
		return team.Team{}, err
	}
	if len(played) == 0 {
		return team.Team{}, analytics.UnknownID(param, string(KindTeam), id)
	}
	return t, nil
}

// ResolvePlayer requires an appearance, or failing that an event, in a
// match of a non-zero scope.
func (r *Registry) ResolvePlayer(ctx context.Context, scope analytics.Scope, param, id string) (player.Player, error) {
	id, err := requiredID(param, id)
	if err != nil {
		return player.Player{}, err
	}
	p, exists, err := r.players.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, analytics.UnknownID(param, string(KindPlayer), id)
	}
	if scope.IsZero() {
		return p, nil
	}

	matchIDs, err := r.MatchIDs(ctx, scope, match.Filter{})
	if err != nil {
		return player.Player{}, err
	}
	if len(matchIDs) == 0 {
		return player.Player{}, analytics.UnknownID(param, string(KindPlayer), id)
	}

	filter := event.Filter{PlayerID: id, MatchIDs: matchIDs}
	appearances, err := r.events.AppearancesFor(ctx, filter)
	if err != nil {
		return player.Player{}, fmt.Errorf("list player appearances: %w", err)
	}
	if len(appearances) > 0 {
		return p, nil
	}

	seq, err := r.events.EventsFor(ctx, filter)
	if err != nil {
		return player.Player{}, fmt.Errorf("list player events: %w", err)
	}
	for _, err := range seq {
		if err != nil {
			return player.Player{}, fmt.Errorf("read player events: %w", err)
		}
		return p, nil
	}
	return player.Player{}, analytics.UnknownID(param, string(KindPlayer), id)
}

func (r *Registry) ResolveMatch(ctx context.Context, scope analytics.Scope, param, id string) (match.Match, error) {
	id, err := requiredID(param, id)
	if err != nil {
		return match.Match{}, err
	}
	m, exists, err := r.matches.GetByID(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists || !scope.Contains(m.CompetitionID, m.SeasonID) {
		return match.Match{}, analytics.UnknownID(param, string(KindMatch), id)
	}
	return m, nil
}

// Matches lists matches inside scope narrowed by filter, chronologically.
func (r *Registry) Matches(ctx context.Context, scope analytics.Scope, filter match.Filter) ([]match.Match, error) {
	filter.CompetitionID = scope.CompetitionID
	filter.SeasonID = scope.SeasonID
	items, err := r.matches.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

func (r *Registry) MatchIDs(ctx context.Context, scope analytics.Scope, filter match.Filter) ([]string, error) {
	items, err := r.Matches(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, m := range items {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// TeamNames maps team IDs to names for display. Unknown IDs map to the ID.
func (r *Registry) TeamNames(ctx context.Context, ids []string) (map[string]string, error) {
	items, err := r.teams.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get teams by ids: %w", err)
	}
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = id
	}
	for _, t := range items {
		out[t.ID] = t.Name
	}
	return out, nil
}

// PlayerNames maps player IDs to names for display. Unknown IDs map to the ID.
func (r *Registry) PlayerNames(ctx context.Context, ids []string) (map[string]string, error) {
	items, err := r.players.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = id
	}
	for _, p := range items {
		out[p.ID] = p.Name
	}
	return out, nil
}

func requiredID(param, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", analytics.InvalidParam(param, param+" is required")
	}
	return id, nil
}

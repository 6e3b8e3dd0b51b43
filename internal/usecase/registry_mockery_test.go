package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	competitionmock "github.com/riskibarqy/match-analytics/internal/mocks/domain/competition"
	eventmock "github.com/riskibarqy/match-analytics/internal/mocks/domain/event"
	matchmock "github.com/riskibarqy/match-analytics/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/match-analytics/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/match-analytics/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

type registryMocks struct {
	competitions *competitionmock.Repository
	teams        *teammock.Repository
	players      *playermock.Repository
	matches      *matchmock.Repository
	events       *eventmock.Reader
}

func newMockedRegistry(t *testing.T) (*Registry, registryMocks) {
	m := registryMocks{
		competitions: competitionmock.NewRepository(t),
		teams:        teammock.NewRepository(t),
		players:      playermock.NewRepository(t),
		matches:      matchmock.NewRepository(t),
		events:       eventmock.NewReader(t),
	}
	return NewRegistry(m.competitions, m.teams, m.players, m.matches, m.events), m
}

func sameCtx(ctx context.Context) any {
	return mock.MatchedBy(func(v context.Context) bool { return v == ctx })
}

func TestRegistry_ResolveTeam_UnknownUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry, m := newMockedRegistry(t)
	m.teams.
		On("GetByID", sameCtx(ctx), "missing-team").
		Return(team.Team{}, false, nil).
		Once()

	_, err := registry.Resolve(ctx, analytics.Scope{}, KindTeam, "missing-team")
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Fatalf("expected ErrUnknownIdentifier, got %v", err)
	}
	pe, ok := analytics.ParamOf(err)
	if !ok || pe.Param != "team_id" {
		t.Fatalf("unexpected param error: %+v", pe)
	}
}

func TestRegistry_ResolveTeam_OutsideScopeUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry, m := newMockedRegistry(t)
	scope := analytics.Scope{CompetitionID: "comp-1", SeasonID: "2024"}

	m.teams.
		On("GetByID", sameCtx(ctx), "team-1").
		Return(team.Team{ID: "team-1", Name: "Team One"}, true, nil).
		Once()
	m.matches.
		On("List", sameCtx(ctx), match.Filter{CompetitionID: "comp-1", SeasonID: "2024", TeamID: "team-1"}).
		Return([]match.Match{}, nil).
		Once()

	_, err := registry.ResolveTeam(ctx, scope, "team1", "team-1")
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Fatalf("expected ErrUnknownIdentifier, got %v", err)
	}
	if pe, ok := analytics.ParamOf(err); !ok || pe.Param != "team1" {
		t.Fatalf("unexpected param error: %+v", pe)
	}
}

func TestRegistry_ResolvePlayer_FallsBackToEventsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry, m := newMockedRegistry(t)
	scope := analytics.Scope{CompetitionID: "comp-1", SeasonID: "2024"}
	filter := event.Filter{PlayerID: "player-1", MatchIDs: []string{"match-1"}}

	m.players.
		On("GetByID", sameCtx(ctx), "player-1").
		Return(player.Player{ID: "player-1", Name: "Player One", TeamID: "team-1"}, true, nil).
		Once()
	m.matches.
		On("List", sameCtx(ctx), match.Filter{CompetitionID: "comp-1", SeasonID: "2024"}).
		Return([]match.Match{{ID: "match-1", CompetitionID: "comp-1", SeasonID: "2024"}}, nil).
		Once()
	m.events.
		On("AppearancesFor", sameCtx(ctx), filter).
		Return([]event.Appearance{}, nil).
		Once()
	m.events.
		On("EventsFor", sameCtx(ctx), filter).
		Return(event.FromSlice(ctx, []event.Event{{ID: "e1", MatchID: "match-1", PlayerID: "player-1"}}, filter), nil).
		Once()

	got, err := registry.ResolvePlayer(ctx, scope, "player_id", "player-1")
	if err != nil {
		t.Fatalf("resolve player: %v", err)
	}
	if got.ID != "player-1" {
		t.Fatalf("unexpected player id: got=%s want=player-1", got.ID)
	}
}

func TestRegistry_CheckScope_SeasonWithoutCompetitionUsingMockery(t *testing.T) {
	t.Parallel()

	registry, _ := newMockedRegistry(t)

	err := registry.CheckScope(context.Background(), analytics.Scope{SeasonID: "2024"})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	if pe, ok := analytics.ParamOf(err); !ok || pe.Param != "competition_id" {
		t.Fatalf("unexpected param error: %+v", pe)
	}
}

func TestRegistry_ResolveSeason_UnknownUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry, m := newMockedRegistry(t)

	m.competitions.
		On("GetByID", sameCtx(ctx), "comp-1").
		Return(competition.Competition{ID: "comp-1", Name: "Comp"}, true, nil).
		Once()
	m.competitions.
		On("GetSeason", sameCtx(ctx), "comp-1", "1999").
		Return(competition.Season{}, false, nil).
		Once()

	err := registry.CheckScope(ctx, analytics.Scope{CompetitionID: "comp-1", SeasonID: "1999"})
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Fatalf("expected ErrUnknownIdentifier, got %v", err)
	}
	if pe, ok := analytics.ParamOf(err); !ok || pe.Param != "season_id" {
		t.Fatalf("unexpected param error: %+v", pe)
	}
}

func TestRegistry_RepositoryErrorIsWrapped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry, m := newMockedRegistry(t)
	boom := errors.New("db down")

	m.matches.
		On("GetByID", sameCtx(ctx), "match-1").
		Return(match.Match{}, false, boom).
		Once()

	_, err := registry.ResolveMatch(ctx, analytics.Scope{}, "match_id", "match-1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
	if analytics.IsClientError(err) {
		t.Fatalf("repository failure must not be a client error")
	}
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	basecache "github.com/riskibarqy/match-analytics/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTeamRepo struct {
	calls int
	teams []team.Team
	err   error
}

func (r *countingTeamRepo) List(context.Context) ([]team.Team, error) {
	r.calls++
	return r.teams, r.err
}

func (r *countingTeamRepo) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.calls++
	for _, t := range r.teams {
		if t.ID == teamID {
			return t, true, nil
		}
	}
	return team.Team{}, false, r.err
}

func (r *countingTeamRepo) GetByIDs(context.Context, []string) ([]team.Team, error) {
	r.calls++
	return r.teams, r.err
}

func TestTeamRepositoryCachesMisses(t *testing.T) {
	t.Parallel()

	next := &countingTeamRepo{teams: []team.Team{{ID: "t1", Name: "Arsenal"}}}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	for range 3 {
		_, exists, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	}
	assert.Equal(t, 1, next.calls)

	got, exists, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "Arsenal", got.Name)
}

func TestTeamRepositoryListReturnsCopies(t *testing.T) {
	t.Parallel()

	next := &countingTeamRepo{teams: []team.Team{{ID: "t1", Name: "Arsenal"}}}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.List(context.Background())
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Arsenal", second[0].Name)
	assert.Equal(t, 1, next.calls)
}

func TestTeamRepositoryDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	next := &countingTeamRepo{err: errors.New("db down")}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	_, err = repo.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, idsKey([]string{"b", "a", "b"}), idsKey([]string{"a", "b"}))
	assert.NotEqual(t,
		matchFilterKey(match.Filter{TeamID: "t1"}),
		matchFilterKey(match.Filter{TeamID: "t1", FinishedOnly: true}),
	)
}

package memory

import (
	"context"

	"github.com/riskibarqy/match-analytics/internal/domain/team"
)

type TeamRepository struct {
	teams []team.Team
	index map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	index := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		index[t.ID] = t
	}

	return &TeamRepository{teams: append([]team.Team(nil), teams...), index: index}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	return append([]team.Team(nil), r.teams...), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	t, ok := r.index[teamID]
	return t, ok, nil
}

func (r *TeamRepository) GetByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	out := make([]team.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		t, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, t)
	}

	return out, nil
}

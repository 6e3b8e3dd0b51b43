package memory

import (
	"context"

	"github.com/riskibarqy/match-analytics/internal/domain/competition"
)

type CompetitionRepository struct {
	competitions []competition.Competition
	byID         map[string]competition.Competition
	seasons      map[string][]competition.Season
}

func NewCompetitionRepository(competitions []competition.Competition, seasons []competition.Season) *CompetitionRepository {
	byID := make(map[string]competition.Competition, len(competitions))
	for _, c := range competitions {
		byID[c.ID] = c
	}
	byCompetition := make(map[string][]competition.Season)
	for _, s := range seasons {
		byCompetition[s.CompetitionID] = append(byCompetition[s.CompetitionID], s)
	}

	return &CompetitionRepository{
		competitions: append([]competition.Competition(nil), competitions...),
		byID:         byID,
		seasons:      byCompetition,
	}
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	return append([]competition.Competition(nil), r.competitions...), nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	c, ok := r.byID[competitionID]
	return c, ok, nil
}

func (r *CompetitionRepository) ListSeasons(_ context.Context, competitionID string) ([]competition.Season, error) {
	return append([]competition.Season(nil), r.seasons[competitionID]...), nil
}

func (r *CompetitionRepository) GetSeason(_ context.Context, competitionID, seasonID string) (competition.Season, bool, error) {
	for _, s := range r.seasons[competitionID] {
		if s.ID == seasonID {
			return s, true, nil
		}
	}
	return competition.Season{}, false, nil
}

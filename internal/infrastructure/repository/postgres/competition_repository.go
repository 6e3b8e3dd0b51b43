package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	qb "github.com/riskibarqy/match-analytics/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select(competitionColumns...).From("competitions").
		OrderBy("competition_name", "competition_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	query, args, err := qb.Select(competitionColumns...).From("competitions").
		Where(qb.Eq("competition_id", competitionID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition %s: %w", competitionID, err)
	}
	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) ListSeasons(ctx context.Context, competitionID string) ([]competition.Season, error) {
	query, args, err := qb.Select(seasonColumns...).From("seasons").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("season_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons of %s: %w", competitionID, err)
	}

	out := make([]competition.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *CompetitionRepository) GetSeason(ctx context.Context, competitionID, seasonID string) (competition.Season, bool, error) {
	query, args, err := qb.Select(seasonColumns...).From("seasons").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("season_id", seasonID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return competition.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Season{}, false, nil
		}
		return competition.Season{}, false, fmt.Errorf("get season %s/%s: %w", competitionID, seasonID, err)
	}
	return seasonFromRow(row), true, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	qb "github.com/riskibarqy/match-analytics/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.Eq("match_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match %s: %w", matchID, err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(matchConditions(filter)...).
		OrderBy("match_date", "match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func matchConditions(filter match.Filter) []qb.Condition {
	conds := make([]qb.Condition, 0, 5)
	if filter.CompetitionID != "" {
		conds = append(conds, qb.Eq("competition_id", filter.CompetitionID))
	}
	if filter.SeasonID != "" {
		conds = append(conds, qb.Eq("season_id", filter.SeasonID))
	}
	if filter.TeamID != "" {
		conds = append(conds, qb.Expr("(home_team_id = ? OR away_team_id = ?)", filter.TeamID, filter.TeamID))
	}
	if filter.OpponentID != "" {
		conds = append(conds, qb.Expr("(home_team_id = ? OR away_team_id = ?)", filter.OpponentID, filter.OpponentID))
	}
	if filter.FinishedOnly {
		conds = append(conds, qb.Expr("home_score IS NOT NULL AND away_score IS NOT NULL"))
	}
	return conds
}

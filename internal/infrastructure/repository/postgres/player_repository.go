package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	qb "github.com/riskibarqy/match-analytics/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func playerBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select(playerColumns...).From("players")
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := playerBaseSelectBuilder().
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(qb.Eq("player_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player %s: %w", playerID, err)
	}
	return playerFromRow(row), true, nil
}

// GetByIDs binds the id list as one array parameter when the expanded IN
// list is rejected by the pooler.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := playerBaseSelectBuilder().
		Where(qb.In("player_id", playerIDs)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players by ids query: %w", err)
	}

	out, err := r.selectPlayers(ctx, query, args)
	if err != nil && isRetryableStatementError(err) {
		return r.getByIDsSingleParam(ctx, playerIDs)
	}
	return out, err
}

func (r *PlayerRepository) getByIDsSingleParam(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	query, _, err := playerBaseSelectBuilder().
		Where(qb.Expr("player_id = ANY($1::text[])")).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get players single param fallback query: %w", err)
	}
	return r.selectPlayers(ctx, query, []any{pq.Array(playerIDs)})
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := playerBaseSelectBuilder().
		Where(qb.Eq("team_id", teamID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by team query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

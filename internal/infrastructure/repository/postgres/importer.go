package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/dataset"
	qb "github.com/riskibarqy/match-analytics/internal/platform/querybuilder"
)

// importBatchRows keeps every INSERT under the 65535 bind parameter limit
// for the widest table.
const importBatchRows = 500

// Import validates ds and writes it in one transaction. Rows that already
// exist are left untouched; the returned counts are rows actually inserted.
func Import(ctx context.Context, db *sqlx.DB, ds dataset.Dataset) (dataset.Counts, error) {
	if err := dataset.Validate(ds).Err(); err != nil {
		return dataset.Counts{}, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return dataset.Counts{}, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var counts dataset.Counts
	steps := []struct {
		name  string
		count *int
		run   func() (int, error)
	}{
		{"competitions", &counts.Competitions, func() (int, error) {
			return insertBatches(ctx, tx, "competitions", mapRows(ds.Competitions, competitionToRow))
		}},
		{"seasons", &counts.Seasons, func() (int, error) {
			return insertBatches(ctx, tx, "seasons", mapRows(ds.Seasons, seasonToRow))
		}},
		{"teams", &counts.Teams, func() (int, error) {
			return insertBatches(ctx, tx, "teams", mapRows(ds.Teams, teamToRow))
		}},
		{"players", &counts.Players, func() (int, error) {
			return insertBatches(ctx, tx, "players", mapRows(ds.Players, playerToRow))
		}},
		{"matches", &counts.Matches, func() (int, error) {
			return insertBatches(ctx, tx, "matches", mapRows(ds.Matches, matchToRow))
		}},
		{"appearances", &counts.Appearances, func() (int, error) {
			return insertBatches(ctx, tx, "appearances", mapRows(ds.Appearances, appearanceToRow))
		}},
		{"events", &counts.Events, func() (int, error) {
			return insertBatches(ctx, tx, "events", mapRows(ds.Events, eventToRow))
		}},
	}
	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			return dataset.Counts{}, fmt.Errorf("import %s: %w", step.name, err)
		}
		*step.count = n
	}

	if counts.Events > 0 {
		if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('events', 'seq'), (SELECT MAX(seq) FROM events))`); err != nil {
			return dataset.Counts{}, fmt.Errorf("advance event seq: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return dataset.Counts{}, fmt.Errorf("commit import tx: %w", err)
	}
	return counts, nil
}

func mapRows[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func insertBatches[T any](ctx context.Context, tx *sqlx.Tx, table string, rows []T) (int, error) {
	inserted := 0
	for start := 0; start < len(rows); start += importBatchRows {
		end := min(start+importBatchRows, len(rows))
		query, args, err := qb.InsertModels(table, rows[start:end], "ON CONFLICT DO NOTHING")
		if err != nil {
			return inserted, fmt.Errorf("build insert %s query: %w", table, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("insert %s rows %d-%d: %w", table, start, end, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

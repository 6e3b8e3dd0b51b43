package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/repository/memory"
)

// BootstrapSeed imports the built-in dataset into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM competitions`); err != nil {
		return fmt.Errorf("count competitions for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := Import(ctx, db, memory.Seed()); err != nil {
		return fmt.Errorf("bootstrap seed: %w", err)
	}
	return nil
}

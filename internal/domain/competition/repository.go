package competition

import "context"

// Repository describes competition and season lookups needed by use cases.
type Repository interface {
	List(ctx context.Context) ([]Competition, error)
	GetByID(ctx context.Context, competitionID string) (Competition, bool, error)
	ListSeasons(ctx context.Context, competitionID string) ([]Season, error)
	GetSeason(ctx context.Context, competitionID, seasonID string) (Season, bool, error)
}

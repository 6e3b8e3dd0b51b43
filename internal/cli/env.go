package cli

import (
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/dataset"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-analytics/internal/usecase"
)

type scopeFlags struct {
	competitionID string
	seasonID      string
}

func (f scopeFlags) scope() (analytics.Scope, error) {
	return analytics.NewScope(f.competitionID, f.seasonID)
}

type services struct {
	matchups *usecase.MatchupService
	tactical *usecase.TacticalService
}

func loadDataset(path string) (dataset.Dataset, error) {
	if path == "" {
		return memory.Seed(), nil
	}
	ds, err := dataset.Load(path)
	if err != nil {
		return dataset.Dataset{}, errors.Wrapf(err, "load dataset %s", path)
	}
	return ds, nil
}

func loadServices(path string) (services, error) {
	ds, err := loadDataset(path)
	if err != nil {
		return services{}, err
	}

	snap := memory.NewSnapshot(ds)
	registry := usecase.NewRegistry(snap.Competitions, snap.Teams, snap.Players, snap.Matches, snap.Events)
	cfg := usecase.DefaultAnalyticsConfig()

	return services{
		matchups: usecase.NewMatchupService(registry, snap.Events, cfg),
		tactical: usecase.NewTacticalService(registry, snap.Events),
	}, nil
}

package memory

import "github.com/riskibarqy/match-analytics/internal/infrastructure/dataset"

// Snapshot bundles read-only repositories over one dataset.
type Snapshot struct {
	Competitions *CompetitionRepository
	Teams        *TeamRepository
	Players      *PlayerRepository
	Matches      *MatchRepository
	Events       *EventStore
}

func NewSnapshot(ds dataset.Dataset) *Snapshot {
	return &Snapshot{
		Competitions: NewCompetitionRepository(ds.Competitions, ds.Seasons),
		Teams:        NewTeamRepository(ds.Teams),
		Players:      NewPlayerRepository(ds.Players),
		Matches:      NewMatchRepository(ds.Matches),
		Events:       NewEventStore(ds.Events, ds.Appearances),
	}
}

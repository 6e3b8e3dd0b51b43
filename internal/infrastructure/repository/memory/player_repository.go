package memory

import (
	"context"

	"github.com/riskibarqy/match-analytics/internal/domain/player"
)

type PlayerRepository struct {
	players []player.Player
	index   map[string]player.Player
	byTeam  map[string][]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	byTeam := make(map[string][]player.Player)
	for _, p := range players {
		index[p.ID] = p
		byTeam[p.TeamID] = append(byTeam[p.TeamID], p)
	}

	return &PlayerRepository{
		players: append([]player.Player(nil), players...),
		index:   index,
		byTeam:  byTeam,
	}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	return append([]player.Player(nil), r.players...), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	p, ok := r.index[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	return append([]player.Player(nil), r.byTeam[teamID]...), nil
}

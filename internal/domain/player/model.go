package player

import (
	"fmt"

	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// Player is an athlete. TeamID is the current affiliation; events keep the
// team the player represented when they happened.
type Player struct {
	ID       string
	Name     string
	Position opt.Value[string]
	TeamID   string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player %s name is required", p.ID)
	}
	if p.TeamID == "" {
		return fmt.Errorf("player %s team id is required", p.ID)
	}
	return nil
}

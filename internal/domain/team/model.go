package team

import (
	"fmt"

	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// Team is a club. Its identity is stable across seasons; season membership
// is derived from the matches it plays.
type Team struct {
	ID      string
	Name    string
	LogoURL opt.Value[string]
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team %s name is required", t.ID)
	}
	return nil
}

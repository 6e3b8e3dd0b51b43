package competition

import (
	"fmt"

	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// Competition is a league or cup whose seasons scope every other entity.
type Competition struct {
	ID          string
	Name        string
	CountryName opt.Value[string]
	Gender      opt.Value[string]
}

func (c Competition) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("competition id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("competition name is required")
	}
	return nil
}

// Season belongs to exactly one competition. Its ID is only unique inside
// that competition.
type Season struct {
	ID            string
	CompetitionID string
	Name          string
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.CompetitionID == "" {
		return fmt.Errorf("season %s competition id is required", s.ID)
	}
	if s.Name == "" {
		return fmt.Errorf("season %s name is required", s.ID)
	}
	return nil
}

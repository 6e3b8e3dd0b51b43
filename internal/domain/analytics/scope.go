package analytics

import "strings"

// Scope pins identifier resolution to one competition season. The zero
// Scope spans the whole loaded dataset.
type Scope struct {
	CompetitionID string
	SeasonID      string
}

// NewScope trims both parts. A season without its competition is rejected
// because season IDs are only unique inside a competition.
func NewScope(competitionID, seasonID string) (Scope, error) {
	s := Scope{
		CompetitionID: strings.TrimSpace(competitionID),
		SeasonID:      strings.TrimSpace(seasonID),
	}
	if s.SeasonID != "" && s.CompetitionID == "" {
		return Scope{}, InvalidParam("competition_id", "competition_id is required when season_id is set")
	}
	return s, nil
}

func (s Scope) IsZero() bool {
	return s.CompetitionID == "" && s.SeasonID == ""
}

// Contains reports whether an entity owned by competitionID/seasonID lies
// inside the scope.
func (s Scope) Contains(competitionID, seasonID string) bool {
	if s.CompetitionID != "" && s.CompetitionID != competitionID {
		return false
	}
	if s.SeasonID != "" && s.SeasonID != seasonID {
		return false
	}
	return true
}

func (s Scope) Key() string {
	if s.IsZero() {
		return "*"
	}
	return s.CompetitionID + "/" + s.SeasonID
}

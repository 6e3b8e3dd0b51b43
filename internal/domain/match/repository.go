package match

import "context"

// Filter narrows a match listing. Empty fields do not filter.
type Filter struct {
	CompetitionID string
	SeasonID      string
	TeamID        string
	OpponentID    string
	FinishedOnly  bool
}

func (f Filter) Matches(m Match) bool {
	if f.CompetitionID != "" && m.CompetitionID != f.CompetitionID {
		return false
	}
	if f.SeasonID != "" && m.SeasonID != f.SeasonID {
		return false
	}
	if f.TeamID != "" && !m.Involves(f.TeamID) {
		return false
	}
	if f.OpponentID != "" && !m.Involves(f.OpponentID) {
		return false
	}
	if f.FinishedOnly && !m.Finished() {
		return false
	}
	return true
}

// Repository describes match lookups. List returns matches in chronological
// order.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	List(ctx context.Context, filter Filter) ([]Match, error)
}

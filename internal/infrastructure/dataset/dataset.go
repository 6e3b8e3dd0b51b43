package dataset

import (
	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
)

// Dataset is an immutable snapshot of reference data and events. Events are
// kept in insertion order with Seq assigned from 1.
type Dataset struct {
	Competitions []competition.Competition
	Seasons      []competition.Season
	Teams        []team.Team
	Players      []player.Player
	Matches      []match.Match
	Appearances  []event.Appearance
	Events       []event.Event
}

type Counts struct {
	Competitions int `json:"competitions"`
	Seasons      int `json:"seasons"`
	Teams        int `json:"teams"`
	Players      int `json:"players"`
	Matches      int `json:"matches"`
	Appearances  int `json:"appearances"`
	Events       int `json:"events"`
}

func (d Dataset) Counts() Counts {
	return Counts{
		Competitions: len(d.Competitions),
		Seasons:      len(d.Seasons),
		Teams:        len(d.Teams),
		Players:      len(d.Players),
		Matches:      len(d.Matches),
		Appearances:  len(d.Appearances),
		Events:       len(d.Events),
	}
}

package metrics

import (
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// Line is one team's aggregate for one match, the unit behind form, trends
// and the tactical summaries.
type Line struct {
	MatchID              string
	TeamID               string
	OpponentID           string
	XGFor                float64
	XGAgainst            float64
	ShotsFor             int
	ShotsAgainst         int
	ShotsOnTargetFor     int
	ShotsOnTargetAgainst int
	GoalsFor             int
	GoalsAgainst         int
	Passes               int
	PassesCompleted      int
	ProgressivePasses    int
	PassAccuracy         opt.Value[float64]
	Possession           opt.Value[float64]
	Tackles              int
	Interceptions        int
	Blocks               int
	Clearances           int
	Pressures            int
	DefensiveActions     int
	PPDA                 opt.Value[float64]
}

// MatchLine aggregates events of a single match from teamID's side. Goals are
// counted from shot outcomes; callers overlay the official score when known.
func MatchLine(events []event.Event, matchID, teamID, opponentID string) (Line, error) {
	xgFor, err := XGTotal(events, teamID)
	if err != nil {
		return Line{}, err
	}
	xgAgainst, err := XGTotal(events, opponentID)
	if err != nil {
		return Line{}, err
	}

	own := TallyTeam(events, teamID)
	opp := TallyTeam(events, opponentID)

	line := Line{
		MatchID:              matchID,
		TeamID:               teamID,
		OpponentID:           opponentID,
		XGFor:                xgFor,
		XGAgainst:            xgAgainst,
		ShotsFor:             own.Shots,
		ShotsAgainst:         opp.Shots,
		ShotsOnTargetFor:     own.ShotsOnTarget,
		ShotsOnTargetAgainst: opp.ShotsOnTarget,
		GoalsFor:             own.Goals,
		GoalsAgainst:         opp.Goals,
		Passes:               own.Passes,
		PassesCompleted:      own.PassesCompleted,
		ProgressivePasses:    own.ProgressivePasses,
		PassAccuracy:         own.PassAccuracy(),
		Tackles:              own.Tackles,
		Interceptions:        own.Interceptions,
		Blocks:               own.Blocks,
		Clearances:           own.Clearances,
		Pressures:            own.Pressures,
		DefensiveActions:     own.DefensiveActions(),
		PPDA:                 PPDA(events, teamID),
	}
	if p, err := Possession(events, teamID); err == nil {
		line.Possession = opt.Present(p)
	}
	return line, nil
}

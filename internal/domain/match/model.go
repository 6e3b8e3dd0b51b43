package match

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

type Result string

const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

// Match is one fixture. It is immutable once both scores are known.
type Match struct {
	ID            string
	Date          time.Time
	KickOff       opt.Value[string]
	HomeTeamID    string
	AwayTeamID    string
	HomeScore     opt.Value[int]
	AwayScore     opt.Value[int]
	CompetitionID string
	SeasonID      string
	MatchWeek     opt.Value[int]
	StadiumName   opt.Value[string]
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match %s requires both team ids", m.ID)
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match %s home and away team must differ", m.ID)
	}
	if m.CompetitionID == "" || m.SeasonID == "" {
		return fmt.Errorf("match %s requires competition and season", m.ID)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match %s date is required", m.ID)
	}
	if m.HomeScore.IsPresent() != m.AwayScore.IsPresent() {
		return fmt.Errorf("match %s has only one score", m.ID)
	}
	if h, ok := m.HomeScore.Get(); ok && h < 0 {
		return fmt.Errorf("match %s home score must be >= 0", m.ID)
	}
	if a, ok := m.AwayScore.Get(); ok && a < 0 {
		return fmt.Errorf("match %s away score must be >= 0", m.ID)
	}
	return nil
}

func (m Match) Finished() bool {
	return m.HomeScore.IsPresent() && m.AwayScore.IsPresent()
}

func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

// OpponentOf returns the other side, or "" when teamID did not play.
func (m Match) OpponentOf(teamID string) string {
	switch teamID {
	case m.HomeTeamID:
		return m.AwayTeamID
	case m.AwayTeamID:
		return m.HomeTeamID
	default:
		return ""
	}
}

func (m Match) VenueOf(teamID string) Venue {
	if teamID == m.HomeTeamID {
		return VenueHome
	}
	return VenueAway
}

// Goals returns goals for and against teamID once the match is finished.
func (m Match) Goals(teamID string) (int, int, bool) {
	home, okH := m.HomeScore.Get()
	away, okA := m.AwayScore.Get()
	if !okH || !okA || !m.Involves(teamID) {
		return 0, 0, false
	}
	if teamID == m.HomeTeamID {
		return home, away, true
	}
	return away, home, true
}

func (m Match) ResultFor(teamID string) (Result, bool) {
	gf, ga, ok := m.Goals(teamID)
	if !ok {
		return "", false
	}
	switch {
	case gf > ga:
		return ResultWin, true
	case gf < ga:
		return ResultLoss, true
	default:
		return ResultDraw, true
	}
}

// SortChronological orders by date, then ID.
func SortChronological(matches []Match) {
	slices.SortStableFunc(matches, func(a, b Match) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

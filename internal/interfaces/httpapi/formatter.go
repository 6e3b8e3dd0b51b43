package httpapi

import (
	"fmt"
	"math"
	"strings"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
	"github.com/riskibarqy/match-analytics/internal/usecase"
)

const dateLayout = "2006-01-02"

// schemaCheck collects invariant breaches found while mapping engine output
// to the wire schema. Values are never clamped.
type schemaCheck struct {
	problems []string
}

func (c *schemaCheck) fail(format string, args ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, args...))
}

func (c *schemaCheck) finite(field string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.fail("%s is not finite", field)
		return false
	}
	return true
}

func (c *schemaCheck) between(field string, v, lo, hi float64) {
	if !c.finite(field, v) {
		return
	}
	if v < lo || v > hi {
		c.fail("%s=%v outside [%v,%v]", field, v, lo, hi)
	}
}

func (c *schemaCheck) percent(field string, v float64)     { c.between(field, v, 0, 100) }
func (c *schemaCheck) coordinate(field string, v float64)  { c.between(field, v, 0, 100) }
func (c *schemaCheck) probability(field string, v float64) { c.between(field, v, 0, 1) }
func (c *schemaCheck) shotXG(field string, v float64)      { c.between(field, v, 0, 1) }

func (c *schemaCheck) nonNegative(field string, v float64) {
	if c.finite(field, v) && v < 0 {
		c.fail("%s=%v is negative", field, v)
	}
}

func (c *schemaCheck) optPercent(field string, v opt.Value[float64]) {
	if x, ok := v.Get(); ok {
		c.percent(field, x)
	}
}

func (c *schemaCheck) optNonNegative(field string, v opt.Value[float64]) {
	if x, ok := v.Get(); ok {
		c.nonNegative(field, x)
	}
}

// probabilitySum checks a distribution that must add up to one.
func (c *schemaCheck) probabilitySum(field string, values ...float64) {
	sum := 0.0
	for i, v := range values {
		c.probability(fmt.Sprintf("%s[%d]", field, i), v)
		sum += v
	}
	if math.Abs(sum-1) > 1e-6 {
		c.fail("%s sums to %v", field, sum)
	}
}

func (c *schemaCheck) err() error {
	if len(c.problems) == 0 {
		return nil
	}
	return analytics.Violation("%s", strings.Join(c.problems, "; "))
}

func round(v float64, decimals int) float64 {
	return metrics.Round(v, decimals)
}

func roundOpt(v opt.Value[float64], decimals int) opt.Value[float64] {
	return opt.Map(v, func(x float64) float64 { return round(x, decimals) })
}

type competitionDTO struct {
	CompetitionID   string            `json:"competition_id"`
	CompetitionName string            `json:"competition_name"`
	CountryName     opt.Value[string] `json:"country_name"`
	Gender          opt.Value[string] `json:"competition_gender"`
}

type seasonDTO struct {
	SeasonID   string `json:"season_id"`
	SeasonName string `json:"season_name"`
}

type teamDTO struct {
	TeamID   string            `json:"team_id"`
	TeamName string            `json:"team_name"`
	LogoURL  opt.Value[string] `json:"logo_url"`
}

type teamRefDTO struct {
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
}

type matchOptionDTO struct {
	MatchID      string            `json:"match_id"`
	Name         string            `json:"name"`
	MatchDate    string            `json:"match_date"`
	KickOff      opt.Value[string] `json:"kick_off"`
	HomeTeamID   string            `json:"home_team_id"`
	HomeTeamName string            `json:"home_team_name"`
	AwayTeamID   string            `json:"away_team_id"`
	AwayTeamName string            `json:"away_team_name"`
	HomeScore    opt.Value[int]    `json:"home_score"`
	AwayScore    opt.Value[int]    `json:"away_score"`
	MatchWeek    opt.Value[int]    `json:"match_week"`
	StadiumName  opt.Value[string] `json:"stadium_name"`
}

type playerOptionDTO struct {
	PlayerID     string            `json:"player_id"`
	PlayerName   string            `json:"player_name"`
	PositionName opt.Value[string] `json:"position_name"`
	TeamID       string            `json:"team_id"`
}

func competitionsToDTO(items []competition.Competition) []competitionDTO {
	out := make([]competitionDTO, 0, len(items))
	for _, c := range items {
		out = append(out, competitionDTO{
			CompetitionID:   c.ID,
			CompetitionName: c.Name,
			CountryName:     c.CountryName,
			Gender:          c.Gender,
		})
	}
	return out
}

func seasonsToDTO(items []competition.Season) []seasonDTO {
	out := make([]seasonDTO, 0, len(items))
	for _, s := range items {
		out = append(out, seasonDTO{SeasonID: s.ID, SeasonName: s.Name})
	}
	return out
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{TeamID: t.ID, TeamName: t.Name, LogoURL: t.LogoURL}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, t := range items {
		out = append(out, teamToDTO(t))
	}
	return out
}

func teamRef(t team.Team) teamRefDTO {
	return teamRefDTO{TeamID: t.ID, TeamName: t.Name}
}

func matchOptionToDTO(o usecase.MatchOption) matchOptionDTO {
	m := o.Match
	return matchOptionDTO{
		MatchID:      m.ID,
		Name:         o.HomeTeam.Name + " vs " + o.AwayTeam.Name,
		MatchDate:    m.Date.UTC().Format(dateLayout),
		KickOff:      m.KickOff,
		HomeTeamID:   m.HomeTeamID,
		HomeTeamName: o.HomeTeam.Name,
		AwayTeamID:   m.AwayTeamID,
		AwayTeamName: o.AwayTeam.Name,
		HomeScore:    m.HomeScore,
		AwayScore:    m.AwayScore,
		MatchWeek:    m.MatchWeek,
		StadiumName:  m.StadiumName,
	}
}

func matchOptionsToDTO(items []usecase.MatchOption) []matchOptionDTO {
	out := make([]matchOptionDTO, 0, len(items))
	for _, o := range items {
		out = append(out, matchOptionToDTO(o))
	}
	return out
}

func playersToDTO(items []player.Player) []playerOptionDTO {
	out := make([]playerOptionDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerOptionDTO{
			PlayerID:     p.ID,
			PlayerName:   p.Name,
			PositionName: p.Position,
			TeamID:       p.TeamID,
		})
	}
	return out
}

// matchInfoDTO is the compact fixture header shared by several payloads.
type matchInfoDTO struct {
	MatchID     string            `json:"match_id"`
	MatchDate   string            `json:"match_date"`
	HomeTeamID  string            `json:"home_team_id"`
	AwayTeamID  string            `json:"away_team_id"`
	HomeScore   opt.Value[int]    `json:"home_score"`
	AwayScore   opt.Value[int]    `json:"away_score"`
	StadiumName opt.Value[string] `json:"stadium_name"`
}

func matchInfo(m match.Match) matchInfoDTO {
	return matchInfoDTO{
		MatchID:     m.ID,
		MatchDate:   m.Date.UTC().Format(dateLayout),
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		StadiumName: m.StadiumName,
	}
}

type sideSummaryDTO struct {
	TeamID        string             `json:"team_id"`
	TeamName      string             `json:"team_name"`
	Venue         string             `json:"venue"`
	Goals         opt.Value[int]     `json:"goals"`
	XG            float64            `json:"xg"`
	Shots         int                `json:"shots"`
	ShotsOnTarget int                `json:"shots_on_target"`
	Possession    opt.Value[float64] `json:"possession"`
	PassAccuracy  opt.Value[float64] `json:"pass_accuracy"`
}

type matchSummaryDTO struct {
	MatchID      string            `json:"match_id"`
	MatchDate    string            `json:"match_date"`
	KickOff      opt.Value[string] `json:"kick_off"`
	Venue        opt.Value[string] `json:"venue"`
	TeamName     string            `json:"team_name"`
	OpponentName string            `json:"opponent_name"`
	Scoreline    opt.Value[string] `json:"scoreline"`
	Team         sideSummaryDTO    `json:"team"`
	Opponent     sideSummaryDTO    `json:"opponent"`
}

func sideSummaryToDTO(c *schemaCheck, field string, s usecase.SideSummary) sideSummaryDTO {
	c.nonNegative(field+".xg", s.XG)
	c.optPercent(field+".possession", s.Possession)
	c.optPercent(field+".pass_accuracy", s.PassAccuracy)
	return sideSummaryDTO{
		TeamID:        s.Team.ID,
		TeamName:      s.Team.Name,
		Venue:         string(s.Venue),
		Goals:         s.Goals,
		XG:            round(s.XG, 2),
		Shots:         s.Shots,
		ShotsOnTarget: s.ShotsOnTarget,
		Possession:    roundOpt(s.Possession, 1),
		PassAccuracy:  roundOpt(s.PassAccuracy, 1),
	}
}

func matchSummaryToDTO(s usecase.MatchSummary) (matchSummaryDTO, error) {
	var c schemaCheck
	out := matchSummaryDTO{
		MatchID:      s.Match.ID,
		MatchDate:    s.Match.Date.UTC().Format(dateLayout),
		KickOff:      s.Match.KickOff,
		Venue:        s.Match.StadiumName,
		TeamName:     s.Team.Team.Name,
		OpponentName: s.Opponent.Team.Name,
		Team:         sideSummaryToDTO(&c, "team", s.Team),
		Opponent:     sideSummaryToDTO(&c, "opponent", s.Opponent),
	}
	if gf, ok := s.Team.Goals.Get(); ok {
		if ga, ok := s.Opponent.Goals.Get(); ok {
			out.Scoreline = opt.Present(fmt.Sprintf("%d-%d", gf, ga))
		}
	}

	own, okOwn := s.Team.Possession.Get()
	opp, okOpp := s.Opponent.Possession.Get()
	if okOwn && okOpp && math.Abs(own+opp-100) > 0.1 {
		c.fail("possession sums to %v", own+opp)
	}
	return out, c.err()
}

type timelinePointDTO struct {
	Minute int     `json:"minute"`
	HomeXG float64 `json:"home_xg"`
	AwayXG float64 `json:"away_xg"`
}

type timelineTotalsDTO struct {
	HomeXG float64 `json:"home_xg"`
	AwayXG float64 `json:"away_xg"`
}

type xgTimelineDTO struct {
	MatchID      string             `json:"match_id"`
	HomeTeamID   string             `json:"home_team_id"`
	HomeTeamName string             `json:"home_team_name"`
	AwayTeamID   string             `json:"away_team_id"`
	AwayTeamName string             `json:"away_team_name"`
	Points       []timelinePointDTO `json:"points"`
	Totals       timelineTotalsDTO  `json:"totals"`
}

func xgTimelineToDTO(t usecase.MatchTimeline) (xgTimelineDTO, error) {
	var c schemaCheck
	points := make([]timelinePointDTO, 0, len(t.Timeline.Points))
	for i, p := range t.Timeline.Points {
		c.nonNegative(fmt.Sprintf("points[%d].home_xg", i), p.HomeXG)
		c.nonNegative(fmt.Sprintf("points[%d].away_xg", i), p.AwayXG)
		points = append(points, timelinePointDTO{
			Minute: p.Minute,
			HomeXG: round(p.HomeXG, 3),
			AwayXG: round(p.AwayXG, 3),
		})
	}
	c.nonNegative("totals.home_xg", t.Timeline.HomeTotal)
	c.nonNegative("totals.away_xg", t.Timeline.AwayTotal)
	return xgTimelineDTO{
		MatchID:      t.Match.ID,
		HomeTeamID:   t.HomeTeam.ID,
		HomeTeamName: t.HomeTeam.Name,
		AwayTeamID:   t.AwayTeam.ID,
		AwayTeamName: t.AwayTeam.Name,
		Points:       points,
		Totals: timelineTotalsDTO{
			HomeXG: round(t.Timeline.HomeTotal, 3),
			AwayXG: round(t.Timeline.AwayTotal, 3),
		},
	}, c.err()
}

type shotDTO struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	XG         float64 `json:"xg"`
	Outcome    string  `json:"outcome"`
	RawOutcome string  `json:"raw_outcome"`
	Minute     int     `json:"minute"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	TeamID     string  `json:"team_id"`
	Side       string  `json:"side"`
}

type shotMapDTO struct {
	MatchID    string    `json:"match_id"`
	HomeTeamID string    `json:"home_team_id"`
	AwayTeamID string    `json:"away_team_id"`
	Shots      []shotDTO `json:"shots"`
}

func shotMapToDTO(s usecase.ShotMap) (shotMapDTO, error) {
	var c schemaCheck
	shots := make([]shotDTO, 0, len(s.Shots))
	for i, shot := range s.Shots {
		e := shot.Event
		field := fmt.Sprintf("shots[%d]", i)
		c.coordinate(field+".x", e.X)
		c.coordinate(field+".y", e.Y)
		c.shotXG(field+".xg", e.XG())
		raw := e.RawOutcome
		if raw == "" {
			raw = string(e.Outcome)
		}
		shots = append(shots, shotDTO{
			ID:         e.ID,
			X:          e.X,
			Y:          e.Y,
			XG:         round(e.XG(), 3),
			Outcome:    string(e.Outcome),
			RawOutcome: raw,
			Minute:     e.Minute,
			PlayerID:   e.PlayerID,
			PlayerName: shot.PlayerName,
			TeamID:     e.TeamID,
			Side:       string(shot.Venue),
		})
	}
	return shotMapDTO{
		MatchID:    s.Match.ID,
		HomeTeamID: s.HomeTeam.ID,
		AwayTeamID: s.AwayTeam.ID,
		Shots:      shots,
	}, c.err()
}

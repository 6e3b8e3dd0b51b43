package httpapi

import (
	"fmt"

	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/domain/prediction"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
	"github.com/riskibarqy/match-analytics/internal/usecase"
)

type headToHeadSummaryDTO struct {
	Matches    int     `json:"matches"`
	Team1Wins  int     `json:"team1_wins"`
	Draws      int     `json:"draws"`
	Team2Wins  int     `json:"team2_wins"`
	Team1Goals int     `json:"team1_goals"`
	Team2Goals int     `json:"team2_goals"`
	Team1XG    float64 `json:"team1_xg"`
	Team2XG    float64 `json:"team2_xg"`
}

type headToHeadMatchDTO struct {
	matchInfoDTO
	Team1Goals int               `json:"team1_goals"`
	Team2Goals int               `json:"team2_goals"`
	Team1XG    float64           `json:"team1_xg"`
	Team2XG    float64           `json:"team2_xg"`
	WinnerID   opt.Value[string] `json:"winner_team_id"`
}

type headToHeadDTO struct {
	Team1             teamRefDTO           `json:"team1"`
	Team2             teamRefDTO           `json:"team2"`
	Summary           headToHeadSummaryDTO `json:"summary"`
	HistoricalMatches []headToHeadMatchDTO `json:"historical_matches"`
}

func headToHeadToDTO(h usecase.HeadToHead) (headToHeadDTO, error) {
	var c schemaCheck
	s := h.Summary
	if s.Team1Wins+s.Draws+s.Team2Wins != s.Matches {
		c.fail("summary results %d+%d+%d do not add up to %d matches", s.Team1Wins, s.Draws, s.Team2Wins, s.Matches)
	}
	c.nonNegative("summary.team1_xg", s.Team1XG)
	c.nonNegative("summary.team2_xg", s.Team2XG)

	out := headToHeadDTO{
		Team1: teamRef(h.Team1),
		Team2: teamRef(h.Team2),
		Summary: headToHeadSummaryDTO{
			Matches:    s.Matches,
			Team1Wins:  s.Team1Wins,
			Draws:      s.Draws,
			Team2Wins:  s.Team2Wins,
			Team1Goals: s.Team1Goals,
			Team2Goals: s.Team2Goals,
			Team1XG:    round(s.Team1XG, 2),
			Team2XG:    round(s.Team2XG, 2),
		},
		HistoricalMatches: make([]headToHeadMatchDTO, 0, len(h.History)),
	}
	for i, m := range h.History {
		c.nonNegative(fmt.Sprintf("historical_matches[%d].team1_xg", i), m.Team1XG)
		c.nonNegative(fmt.Sprintf("historical_matches[%d].team2_xg", i), m.Team2XG)
		out.HistoricalMatches = append(out.HistoricalMatches, headToHeadMatchDTO{
			matchInfoDTO: matchInfo(m.Match),
			Team1Goals:   m.Team1Goals,
			Team2Goals:   m.Team2Goals,
			Team1XG:      round(m.Team1XG, 2),
			Team2XG:      round(m.Team2XG, 2),
			WinnerID:     m.WinnerID,
		})
	}
	return out, c.err()
}

type styleDTO struct {
	Possession        opt.Value[float64] `json:"possession"`
	Directness        opt.Value[float64] `json:"directness"`
	PressingIntensity float64            `json:"pressing_intensity"`
	BuildUpSpeed      opt.Value[float64] `json:"build_up_speed"`
	Width             opt.Value[float64] `json:"width"`
	PPDA              opt.Value[float64] `json:"ppda"`
}

type teamStyleDTO struct {
	Team            teamRefDTO          `json:"team"`
	MatchesAnalyzed int                 `json:"matches_analyzed"`
	TeamStyle       opt.Value[styleDTO] `json:"team_style"`
	NoData          bool                `json:"no_data"`
}

type teamStylesDTO struct {
	Teams []teamStyleDTO `json:"teams"`
}

func styleToDTO(c *schemaCheck, field string, s metrics.StyleProfile) styleDTO {
	c.optPercent(field+".possession", s.Possession)
	c.optPercent(field+".directness", s.Directness)
	c.optPercent(field+".width", s.Width)
	c.nonNegative(field+".pressing_intensity", s.PressingIntensity)
	c.optNonNegative(field+".ppda", s.PPDA)
	if v, ok := s.BuildUpSpeed.Get(); ok {
		c.finite(field+".build_up_speed", v)
	}
	return styleDTO{
		Possession:        roundOpt(s.Possession, 1),
		Directness:        roundOpt(s.Directness, 1),
		PressingIntensity: round(s.PressingIntensity, 2),
		BuildUpSpeed:      roundOpt(s.BuildUpSpeed, 2),
		Width:             roundOpt(s.Width, 1),
		PPDA:              roundOpt(s.PPDA, 2),
	}
}

func teamStylesToDTO(items []usecase.TeamStyle) (teamStylesDTO, error) {
	var c schemaCheck
	out := teamStylesDTO{Teams: make([]teamStyleDTO, 0, len(items))}
	for i, item := range items {
		row := teamStyleDTO{
			Team:            teamRef(item.Team),
			MatchesAnalyzed: item.MatchesAnalyzed,
			TeamStyle:       opt.Absent[styleDTO](),
			NoData:          true,
		}
		if s, ok := item.Style.Get(); ok {
			row.TeamStyle = opt.Present(styleToDTO(&c, fmt.Sprintf("teams[%d].team_style", i), s))
			row.NoData = false
		}
		out.Teams = append(out.Teams, row)
	}
	return out, c.err()
}

type driverDTO struct {
	Factor       string  `json:"factor"`
	Description  string  `json:"description"`
	Contribution float64 `json:"contribution"`
}

type matchupFactorDTO struct {
	Factor     string  `json:"factor"`
	Team1Value float64 `json:"team1_value"`
	Team2Value float64 `json:"team2_value"`
	Advantage  string  `json:"advantage"`
	Importance float64 `json:"importance"`
}

type scoreProbabilityDTO struct {
	Score       string  `json:"score"`
	Team1Goals  int     `json:"team1_goals"`
	Team2Goals  int     `json:"team2_goals"`
	Probability float64 `json:"probability"`
}

type distributionDTO struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

type teamDistributionDTO struct {
	XG         distributionDTO            `json:"xg"`
	XGAgainst  distributionDTO            `json:"xg_against"`
	Shots      distributionDTO            `json:"shots"`
	Possession opt.Value[distributionDTO] `json:"possession"`
}

type metricDistributionsDTO struct {
	Team1 teamDistributionDTO `json:"team1"`
	Team2 teamDistributionDTO `json:"team2"`
}

type winProbabilityDTO struct {
	Team1 float64 `json:"team1"`
	Draw  float64 `json:"draw"`
	Team2 float64 `json:"team2"`
}

type strengthDTO struct {
	Attack     float64 `json:"attack"`
	Defense    float64 `json:"defense"`
	Samples    int     `json:"samples"`
	VenueSplit bool    `json:"venue_split"`
}

type predictionModelDTO struct {
	Name            string      `json:"name"`
	FormWindow      int         `json:"form_window"`
	HomeAdvantage   float64     `json:"home_advantage"`
	MaxGoals        int         `json:"max_goals"`
	MinSplitMatches int         `json:"min_split_matches"`
	LambdaTeam1     float64     `json:"lambda_team1"`
	LambdaTeam2     float64     `json:"lambda_team2"`
	Team1Strength   strengthDTO `json:"team1_strength"`
	Team2Strength   strengthDTO `json:"team2_strength"`
}

type matchupPredictionDTO struct {
	Team1               teamRefDTO             `json:"team1"`
	Team2               teamRefDTO             `json:"team2"`
	WinProbability      winProbabilityDTO      `json:"win_probability"`
	HomeWinProbability  float64                `json:"home_win_probability"`
	DrawProbability     float64                `json:"draw_probability"`
	AwayWinProbability  float64                `json:"away_win_probability"`
	KeyDrivers          []driverDTO            `json:"key_drivers"`
	KeyMatchupFactors   []matchupFactorDTO     `json:"key_matchup_factors"`
	ScoreProbabilities  []scoreProbabilityDTO  `json:"score_probabilities"`
	MetricDistributions metricDistributionsDTO `json:"metric_distributions"`
	Model               predictionModelDTO     `json:"model"`
}

func distributionToDTO(c *schemaCheck, field string, d prediction.Distribution) distributionDTO {
	c.finite(field+".mean", d.Mean)
	c.nonNegative(field+".std_dev", d.StdDev)
	return distributionDTO{Mean: round(d.Mean, 3), StdDev: round(d.StdDev, 3)}
}

func teamDistributionToDTO(c *schemaCheck, field string, d prediction.TeamDistribution) teamDistributionDTO {
	out := teamDistributionDTO{
		XG:         distributionToDTO(c, field+".xg", d.XG),
		XGAgainst:  distributionToDTO(c, field+".xg_against", d.XGAgainst),
		Shots:      distributionToDTO(c, field+".shots", d.Shots),
		Possession: opt.Absent[distributionDTO](),
	}
	if p, ok := d.Possession.Get(); ok {
		c.percent(field+".possession.mean", p.Mean)
		out.Possession = opt.Present(distributionToDTO(c, field+".possession", p))
	}
	return out
}

func strengthToDTO(s prediction.Strength) strengthDTO {
	return strengthDTO{
		Attack:     round(s.Attack, 3),
		Defense:    round(s.Defense, 3),
		Samples:    s.Samples,
		VenueSplit: s.VenueSplit,
	}
}

// matchupPredictionToDTO keeps probabilities unrounded so the sum invariant
// holds on the wire.
func matchupPredictionToDTO(p usecase.MatchupPrediction) (matchupPredictionDTO, error) {
	var c schemaCheck
	r := p.Result
	c.probabilitySum("win_probability", r.HomeWin, r.Draw, r.AwayWin)
	c.nonNegative("model.lambda_team1", r.LambdaHome)
	c.nonNegative("model.lambda_team2", r.LambdaAway)

	out := matchupPredictionDTO{
		Team1:              teamRef(p.Home),
		Team2:              teamRef(p.Away),
		WinProbability:     winProbabilityDTO{Team1: r.HomeWin, Draw: r.Draw, Team2: r.AwayWin},
		HomeWinProbability: r.HomeWin,
		DrawProbability:    r.Draw,
		AwayWinProbability: r.AwayWin,
		KeyDrivers:         make([]driverDTO, 0, len(r.KeyDrivers)),
		KeyMatchupFactors:  make([]matchupFactorDTO, 0, len(r.Factors)),
		ScoreProbabilities: make([]scoreProbabilityDTO, 0, len(r.TopScores)),
		MetricDistributions: metricDistributionsDTO{
			Team1: teamDistributionToDTO(&c, "metric_distributions.team1", r.HomeForm),
			Team2: teamDistributionToDTO(&c, "metric_distributions.team2", r.AwayForm),
		},
		Model: predictionModelDTO{
			Name:            "independent_poisson",
			FormWindow:      p.FormWindow,
			HomeAdvantage:   p.Config.HomeAdvantage,
			MaxGoals:        p.Config.MaxGoals,
			MinSplitMatches: p.Config.MinSplitSamples,
			LambdaTeam1:     round(r.LambdaHome, 3),
			LambdaTeam2:     round(r.LambdaAway, 3),
			Team1Strength:   strengthToDTO(r.HomeStrength),
			Team2Strength:   strengthToDTO(r.AwayStrength),
		},
	}
	for i, d := range r.KeyDrivers {
		c.finite(fmt.Sprintf("key_drivers[%d].contribution", i), d.Contribution)
		out.KeyDrivers = append(out.KeyDrivers, driverDTO{
			Factor:       d.Name,
			Description:  d.Description,
			Contribution: round(d.Contribution, 3),
		})
	}
	for i, f := range r.Factors {
		c.probability(fmt.Sprintf("key_matchup_factors[%d].importance", i), f.Importance)
		out.KeyMatchupFactors = append(out.KeyMatchupFactors, matchupFactorDTO{
			Factor:     f.Name,
			Team1Value: round(f.HomeValue, 2),
			Team2Value: round(f.AwayValue, 2),
			Advantage:  advantageLabel(f.Advantage),
			Importance: round(f.Importance, 3),
		})
	}
	for i, s := range r.TopScores {
		c.probability(fmt.Sprintf("score_probabilities[%d].probability", i), s.Probability)
		out.ScoreProbabilities = append(out.ScoreProbabilities, scoreProbabilityDTO{
			Score:       fmt.Sprintf("%d-%d", s.Home, s.Away),
			Team1Goals:  s.Home,
			Team2Goals:  s.Away,
			Probability: round(s.Probability, 4),
		})
	}
	return out, c.err()
}

func advantageLabel(a prediction.Advantage) string {
	switch a {
	case prediction.AdvantageHome:
		return "team1"
	case prediction.AdvantageAway:
		return "team2"
	default:
		return "even"
	}
}

type networkNodeDTO struct {
	PlayerID       string  `json:"player_id"`
	PlayerName     string  `json:"player_name"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Touches        int     `json:"touches"`
	PassCount      int     `json:"pass_count"`
	PassesReceived int     `json:"passes_received"`
	Betweenness    float64 `json:"betweenness"`
	Eigenvector    float64 `json:"eigenvector"`
}

type networkEdgeDTO struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	PassCount int    `json:"pass_count"`
}

type networkMetricsDTO struct {
	Nodes           int                `json:"nodes"`
	Edges           int                `json:"edges"`
	TotalPasses     int                `json:"total_passes"`
	Density         float64            `json:"density"`
	AvgShortestPath opt.Value[float64] `json:"avg_shortest_path"`
}

type passNetworkDTO struct {
	TeamID          string                       `json:"team_id"`
	TeamName        string                       `json:"team_name"`
	MatchesAnalyzed int                          `json:"matches_analyzed"`
	Nodes           []networkNodeDTO             `json:"nodes"`
	Edges           []networkEdgeDTO             `json:"edges"`
	Metrics         opt.Value[networkMetricsDTO] `json:"metrics"`
	MatchInfo       opt.Value[matchInfoDTO]      `json:"match_info"`
	NoData          bool                         `json:"no_data"`
}

// passNetworkToDTO renders the network; empty marks a valid network-less
// result.
func passNetworkToDTO(p usecase.PassNetwork, empty bool) (passNetworkDTO, error) {
	var c schemaCheck
	out := passNetworkDTO{
		TeamID:          p.Team.ID,
		TeamName:        p.Team.Name,
		MatchesAnalyzed: p.MatchesAnalyzed,
		Nodes:           make([]networkNodeDTO, 0, len(p.Network.Nodes)),
		Edges:           make([]networkEdgeDTO, 0, len(p.Network.Edges)),
		Metrics:         opt.Absent[networkMetricsDTO](),
		MatchInfo:       opt.Map(p.Match, matchInfo),
		NoData:          empty,
	}
	if empty {
		return out, nil
	}

	for i, n := range p.Network.Nodes {
		field := fmt.Sprintf("nodes[%d]", i)
		c.coordinate(field+".x", n.X)
		c.coordinate(field+".y", n.Y)
		c.between(field+".betweenness", n.Betweenness, 0, 1+1e-9)
		c.between(field+".eigenvector", n.Eigenvector, 0, 1+1e-9)
		name, ok := p.PlayerNames[n.PlayerID]
		if !ok {
			name = n.PlayerID
		}
		out.Nodes = append(out.Nodes, networkNodeDTO{
			PlayerID:       n.PlayerID,
			PlayerName:     name,
			X:              round(n.X, 1),
			Y:              round(n.Y, 1),
			Touches:        n.Touches,
			PassCount:      n.PassCount,
			PassesReceived: n.PassesReceived,
			Betweenness:    round(n.Betweenness, 4),
			Eigenvector:    round(n.Eigenvector, 4),
		})
	}
	for _, e := range p.Network.Edges {
		if e.Source == e.Target {
			c.fail("self loop on %s", e.Source)
		}
		out.Edges = append(out.Edges, networkEdgeDTO{Source: e.Source, Target: e.Target, PassCount: e.PassCount})
	}
	m := p.Network.Metrics
	c.probability("metrics.density", m.Density)
	c.optNonNegative("metrics.avg_shortest_path", m.AvgShortestPath)
	out.Metrics = opt.Present(networkMetricsDTO{
		Nodes:           m.Nodes,
		Edges:           m.Edges,
		TotalPasses:     m.TotalPasses,
		Density:         round(m.Density, 4),
		AvgShortestPath: roundOpt(m.AvgShortestPath, 3),
	})
	return out, c.err()
}

type teamMatchMetricsDTO struct {
	MatchID              string             `json:"match_id"`
	MatchDate            string             `json:"match_date"`
	OpponentID           string             `json:"opponent_id"`
	Venue                string             `json:"venue"`
	Result               opt.Value[string]  `json:"result"`
	GoalsFor             int                `json:"goals_for"`
	GoalsAgainst         int                `json:"goals_against"`
	XGFor                float64            `json:"xg_for"`
	XGAgainst            float64            `json:"xg_against"`
	ShotsFor             int                `json:"shots_for"`
	ShotsAgainst         int                `json:"shots_against"`
	ShotsOnTargetFor     int                `json:"shots_on_target_for"`
	ShotsOnTargetAgainst int                `json:"shots_on_target_against"`
	Passes               int                `json:"passes"`
	PassAccuracy         opt.Value[float64] `json:"pass_accuracy"`
	Possession           opt.Value[float64] `json:"possession"`
	ProgressivePasses    int                `json:"progressive_passes"`
	Tackles              int                `json:"tackles"`
	Interceptions        int                `json:"interceptions"`
	Blocks               int                `json:"blocks"`
	Clearances           int                `json:"clearances"`
	Pressures            int                `json:"pressures"`
	DefensiveActions     int                `json:"defensive_actions"`
	PPDA                 opt.Value[float64] `json:"ppda"`
}

func teamLinesToDTO(c *schemaCheck, lines []usecase.TeamMatchLine) []teamMatchMetricsDTO {
	out := make([]teamMatchMetricsDTO, 0, len(lines))
	for i, row := range lines {
		l := row.Line
		field := fmt.Sprintf("match_metrics[%d]", i)
		c.nonNegative(field+".xg_for", l.XGFor)
		c.nonNegative(field+".xg_against", l.XGAgainst)
		c.optPercent(field+".pass_accuracy", l.PassAccuracy)
		c.optPercent(field+".possession", l.Possession)
		c.optNonNegative(field+".ppda", l.PPDA)
		out = append(out, teamMatchMetricsDTO{
			MatchID:              row.Match.ID,
			MatchDate:            row.Match.Date.UTC().Format(dateLayout),
			OpponentID:           row.Opponent,
			Venue:                string(row.Venue),
			Result:               opt.Map(row.Result, func(r match.Result) string { return string(r) }),
			GoalsFor:             l.GoalsFor,
			GoalsAgainst:         l.GoalsAgainst,
			XGFor:                round(l.XGFor, 2),
			XGAgainst:            round(l.XGAgainst, 2),
			ShotsFor:             l.ShotsFor,
			ShotsAgainst:         l.ShotsAgainst,
			ShotsOnTargetFor:     l.ShotsOnTargetFor,
			ShotsOnTargetAgainst: l.ShotsOnTargetAgainst,
			Passes:               l.Passes,
			PassAccuracy:         roundOpt(l.PassAccuracy, 1),
			Possession:           roundOpt(l.Possession, 1),
			ProgressivePasses:    l.ProgressivePasses,
			Tackles:              l.Tackles,
			Interceptions:        l.Interceptions,
			Blocks:               l.Blocks,
			Clearances:           l.Clearances,
			Pressures:            l.Pressures,
			DefensiveActions:     l.DefensiveActions,
			PPDA:                 roundOpt(l.PPDA, 2),
		})
	}
	return out
}

type defensiveMetricsDTO struct {
	TeamID                   string                `json:"team_id"`
	TeamName                 string                `json:"team_name"`
	Matches                  int                   `json:"matches"`
	GoalsConceded            int                   `json:"goals_conceded"`
	CleanSheets              int                   `json:"clean_sheets"`
	XGAgainstPerMatch        float64               `json:"xg_against_per_match"`
	ShotsAgainstPerMatch     float64               `json:"shots_against_per_match"`
	TacklesPerMatch          float64               `json:"tackles_per_match"`
	InterceptionsPerMatch    float64               `json:"interceptions_per_match"`
	BlocksPerMatch           float64               `json:"blocks_per_match"`
	ClearancesPerMatch       float64               `json:"clearances_per_match"`
	PressuresPerMatch        float64               `json:"pressures_per_match"`
	DefensiveActionsPerMatch float64               `json:"defensive_actions_per_match"`
	PPDA                     opt.Value[float64]    `json:"ppda"`
	MatchMetrics             []teamMatchMetricsDTO `json:"match_metrics"`
}

func defensiveMetricsToDTO(r usecase.DefensiveReport) (defensiveMetricsDTO, error) {
	var c schemaCheck
	s := r.Summary
	c.nonNegative("xg_against_per_match", s.XGAgainstPerMatch)
	c.nonNegative("shots_against_per_match", s.ShotsAgainstPerMatch)
	c.nonNegative("tackles_per_match", s.TacklesPerMatch)
	c.nonNegative("interceptions_per_match", s.InterceptionsPerMatch)
	c.nonNegative("blocks_per_match", s.BlocksPerMatch)
	c.nonNegative("clearances_per_match", s.ClearancesPerMatch)
	c.nonNegative("pressures_per_match", s.PressuresPerMatch)
	c.nonNegative("defensive_actions_per_match", s.DefensiveActionsPerMatch)
	c.optNonNegative("ppda", s.PPDA)
	if s.CleanSheets > s.Matches {
		c.fail("clean_sheets %d exceed matches %d", s.CleanSheets, s.Matches)
	}

	out := defensiveMetricsDTO{
		TeamID:                   r.Team.ID,
		TeamName:                 r.Team.Name,
		Matches:                  s.Matches,
		GoalsConceded:            s.GoalsConceded,
		CleanSheets:              s.CleanSheets,
		XGAgainstPerMatch:        round(s.XGAgainstPerMatch, 2),
		ShotsAgainstPerMatch:     round(s.ShotsAgainstPerMatch, 2),
		TacklesPerMatch:          round(s.TacklesPerMatch, 2),
		InterceptionsPerMatch:    round(s.InterceptionsPerMatch, 2),
		BlocksPerMatch:           round(s.BlocksPerMatch, 2),
		ClearancesPerMatch:       round(s.ClearancesPerMatch, 2),
		PressuresPerMatch:        round(s.PressuresPerMatch, 2),
		DefensiveActionsPerMatch: round(s.DefensiveActionsPerMatch, 2),
		PPDA:                     roundOpt(s.PPDA, 2),
	}
	out.MatchMetrics = teamLinesToDTO(&c, r.Lines)
	return out, c.err()
}

type offensiveMetricsDTO struct {
	TeamID                    string                `json:"team_id"`
	TeamName                  string                `json:"team_name"`
	Matches                   int                   `json:"matches"`
	Goals                     int                   `json:"goals"`
	GoalsPerMatch             float64               `json:"goals_per_match"`
	XGPerMatch                float64               `json:"xg_per_match"`
	ShotsPerMatch             float64               `json:"shots_per_match"`
	ShotsOnTargetPerMatch     float64               `json:"shots_on_target_per_match"`
	ProgressivePassesPerMatch float64               `json:"progressive_passes_per_match"`
	ShotAccuracy              opt.Value[float64]    `json:"shot_accuracy"`
	Conversion                opt.Value[float64]    `json:"conversion_rate"`
	PassAccuracy              opt.Value[float64]    `json:"pass_accuracy"`
	Possession                opt.Value[float64]    `json:"possession"`
	MatchMetrics              []teamMatchMetricsDTO `json:"match_metrics"`
}

func offensiveMetricsToDTO(r usecase.OffensiveReport) (offensiveMetricsDTO, error) {
	var c schemaCheck
	s := r.Summary
	c.nonNegative("goals_per_match", s.GoalsPerMatch)
	c.nonNegative("xg_per_match", s.XGPerMatch)
	c.nonNegative("shots_per_match", s.ShotsPerMatch)
	c.nonNegative("shots_on_target_per_match", s.ShotsOnTargetPerMatch)
	c.nonNegative("progressive_passes_per_match", s.ProgressivePassesPerMatch)
	c.optPercent("shot_accuracy", s.ShotAccuracy)
	c.optPercent("conversion_rate", s.Conversion)
	c.optPercent("pass_accuracy", s.PassAccuracy)
	c.optPercent("possession", s.Possession)

	out := offensiveMetricsDTO{
		TeamID:                    r.Team.ID,
		TeamName:                  r.Team.Name,
		Matches:                   s.Matches,
		Goals:                     s.Goals,
		GoalsPerMatch:             round(s.GoalsPerMatch, 2),
		XGPerMatch:                round(s.XGPerMatch, 2),
		ShotsPerMatch:             round(s.ShotsPerMatch, 2),
		ShotsOnTargetPerMatch:     round(s.ShotsOnTargetPerMatch, 2),
		ProgressivePassesPerMatch: round(s.ProgressivePassesPerMatch, 2),
		ShotAccuracy:              roundOpt(s.ShotAccuracy, 1),
		Conversion:                roundOpt(s.Conversion, 1),
		PassAccuracy:              roundOpt(s.PassAccuracy, 1),
		Possession:                roundOpt(s.Possession, 1),
	}
	out.MatchMetrics = teamLinesToDTO(&c, r.Lines)
	return out, c.err()
}

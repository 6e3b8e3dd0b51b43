package httpapi

import (
	"fmt"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
	"github.com/riskibarqy/match-analytics/internal/usecase"
)

type playerInfoDTO struct {
	PlayerID     string            `json:"player_id"`
	PlayerName   string            `json:"player_name"`
	PositionName opt.Value[string] `json:"position_name"`
	TeamID       string            `json:"team_id"`
	TeamName     string            `json:"team_name,omitempty"`
}

type playingTimeDTO struct {
	Appearances int `json:"appearances"`
	Minutes     int `json:"minutes"`
}

type formLineDTO struct {
	MatchID      string  `json:"match_id"`
	MatchDate    string  `json:"match_date"`
	OpponentID   string  `json:"opponent_id"`
	OpponentName string  `json:"opponent_name"`
	Minutes      int     `json:"minutes"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	XG           float64 `json:"xg"`
	Shots        int     `json:"shots"`
	Passes       int     `json:"passes"`
	Tackles      int     `json:"tackles"`
}

type playerProfileDTO struct {
	PlayerInfo         playerInfoDTO                 `json:"player_info"`
	PlayingTime        playingTimeDTO                `json:"playing_time"`
	PerformanceMetrics map[string]opt.Value[float64] `json:"performance_metrics"`
	Per90Metrics       opt.Value[map[string]float64] `json:"per_90_metrics"`
	Form               []formLineDTO                 `json:"form"`
}

func playerInfo(p player.Player, teamName string) playerInfoDTO {
	return playerInfoDTO{
		PlayerID:     p.ID,
		PlayerName:   p.Name,
		PositionName: p.Position,
		TeamID:       p.TeamID,
		TeamName:     teamName,
	}
}

// tallyMetrics renders the whole catalog. Only rate metrics can be null.
func tallyMetrics(c *schemaCheck, field string, t metrics.Tally) map[string]opt.Value[float64] {
	out := make(map[string]opt.Value[float64])
	for _, m := range analytics.Metrics() {
		v := t.Value(m)
		info, _ := analytics.Info(m)
		if info.Rate {
			c.optPercent(field+"."+string(m), v)
		} else {
			c.optNonNegative(field+"."+string(m), v)
		}
		out[string(m)] = roundOpt(v, 2)
	}
	return out
}

func playerProfileToDTO(p usecase.PlayerProfile) (playerProfileDTO, error) {
	var c schemaCheck
	out := playerProfileDTO{
		PlayerInfo:         playerInfo(p.Player, p.Team.Name),
		PlayingTime:        playingTimeDTO{Appearances: p.Time.Appearances, Minutes: p.Time.Minutes},
		PerformanceMetrics: tallyMetrics(&c, "performance_metrics", p.Totals),
		Per90Metrics:       opt.Absent[map[string]float64](),
		Form:               make([]formLineDTO, 0, len(p.Form)),
	}
	if per90, ok := p.Per90.Get(); ok {
		values := make(map[string]float64, len(per90))
		for m, v := range per90 {
			c.nonNegative("per_90_metrics."+string(m), v)
			values[string(m)] = round(v, 2)
		}
		out.Per90Metrics = opt.Present(values)
	}
	for i, line := range p.Form {
		c.nonNegative(fmt.Sprintf("form[%d].xg", i), line.Tally.XG)
		out.Form = append(out.Form, formLineDTO{
			MatchID:      line.Match.ID,
			MatchDate:    line.Match.Date.UTC().Format(dateLayout),
			OpponentID:   line.OpponentID,
			OpponentName: line.OpponentName,
			Minutes:      line.Minutes,
			Goals:        line.Tally.Goals,
			Assists:      line.Tally.Assists,
			XG:           round(line.Tally.XG, 2),
			Shots:        line.Tally.Shots,
			Passes:       line.Tally.Passes,
			Tackles:      line.Tally.Tackles,
		})
	}
	return out, c.err()
}

type trendPointDTO struct {
	MatchID    string  `json:"match_id"`
	MatchDate  string  `json:"match_date"`
	OpponentID string  `json:"opponent_id"`
	Value      float64 `json:"value"`
}

type performanceTrendDTO struct {
	PlayerID       string          `json:"player_id"`
	PlayerName     string          `json:"player_name"`
	Metric         string          `json:"metric"`
	Window         int             `json:"window"`
	TrendData      []trendPointDTO `json:"trend_data"`
	RollingAverage []float64       `json:"rolling_average"`
}

func performanceTrendToDTO(t usecase.PerformanceTrend) (performanceTrendDTO, error) {
	var c schemaCheck
	info, _ := analytics.Info(t.Metric)
	check := c.nonNegative
	if info.Rate {
		check = c.percent
	}

	out := performanceTrendDTO{
		PlayerID:       t.Player.ID,
		PlayerName:     t.Player.Name,
		Metric:         string(t.Metric),
		Window:         t.Window,
		TrendData:      make([]trendPointDTO, 0, len(t.Points)),
		RollingAverage: make([]float64, 0, len(t.Rolling)),
	}
	for i, p := range t.Points {
		check(fmt.Sprintf("trend_data[%d].value", i), p.Value)
		out.TrendData = append(out.TrendData, trendPointDTO{
			MatchID:    p.Match.ID,
			MatchDate:  p.Match.Date.UTC().Format(dateLayout),
			OpponentID: p.OpponentID,
			Value:      round(p.Value, 2),
		})
	}
	for i, v := range t.Rolling {
		check(fmt.Sprintf("rolling_average[%d]", i), v)
		out.RollingAverage = append(out.RollingAverage, round(v, 2))
	}
	if len(out.RollingAverage) != len(out.TrendData) {
		c.fail("rolling_average has %d points for %d trend points", len(out.RollingAverage), len(out.TrendData))
	}
	return out, c.err()
}

type mapEventDTO struct {
	ID      string             `json:"id"`
	MatchID string             `json:"match_id"`
	Type    string             `json:"type"`
	X       float64            `json:"x"`
	Y       float64            `json:"y"`
	Minute  int                `json:"minute"`
	Second  int                `json:"second"`
	Success opt.Value[bool]    `json:"success"`
	EndX    opt.Value[float64] `json:"end_x"`
	EndY    opt.Value[float64] `json:"end_y"`
	XG      opt.Value[float64] `json:"xg"`
}

type eventMapDTO struct {
	PlayerID  string            `json:"player_id"`
	EventType string            `json:"event_type"`
	MatchID   opt.Value[string] `json:"match_id"`
	Events    []mapEventDTO     `json:"events"`
}

func eventMapToDTO(m usecase.EventMap) (eventMapDTO, error) {
	var c schemaCheck
	out := eventMapDTO{
		PlayerID:  m.Player.ID,
		EventType: "all",
		MatchID:   m.MatchID,
		Events:    make([]mapEventDTO, 0, len(m.Events)),
	}
	if t, ok := m.Type.Get(); ok {
		out.EventType = string(t)
	}
	for i, e := range m.Events {
		field := fmt.Sprintf("events[%d]", i)
		c.coordinate(field+".x", e.X)
		c.coordinate(field+".y", e.Y)
		if v, ok := e.EndX.Get(); ok {
			c.coordinate(field+".end_x", v)
		}
		if v, ok := e.EndY.Get(); ok {
			c.coordinate(field+".end_y", v)
		}
		xg := opt.Absent[float64]()
		if e.Type == event.TypeShot {
			c.shotXG(field+".xg", e.XG())
			xg = opt.Present(round(e.XG(), 3))
		}
		out.Events = append(out.Events, mapEventDTO{
			ID:      e.ID,
			MatchID: e.MatchID,
			Type:    string(e.Type),
			X:       e.X,
			Y:       e.Y,
			Minute:  e.Minute,
			Second:  e.Second,
			Success: e.Succeeded(),
			EndX:    e.EndX,
			EndY:    e.EndY,
			XG:      xg,
		})
	}
	return out, c.err()
}

type comparedPlayerDTO struct {
	PlayerID     string            `json:"player_id"`
	PlayerName   string            `json:"player_name"`
	PositionName opt.Value[string] `json:"position_name"`
	TeamID       string            `json:"team_id"`
	Minutes      float64           `json:"minutes"`
}

func comparedPlayer(c usecase.ComparedPlayer) comparedPlayerDTO {
	return comparedPlayerDTO{
		PlayerID:     c.Player.ID,
		PlayerName:   c.Player.Name,
		PositionName: c.Player.Position,
		TeamID:       c.Player.TeamID,
		Minutes:      c.Profile.Minutes,
	}
}

type metricDTO struct {
	Metric string `json:"metric"`
	Label  string `json:"label"`
}

func metricsToDTO(ms []analytics.Metric) []metricDTO {
	out := make([]metricDTO, 0, len(ms))
	for _, m := range ms {
		info, _ := analytics.Info(m)
		out = append(out, metricDTO{Metric: string(m), Label: info.Label})
	}
	return out
}

type rangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type radarRowDTO struct {
	Metric       string  `json:"metric"`
	Label        string  `json:"label"`
	PlayerAValue float64 `json:"player_a_value"`
	PlayerBValue float64 `json:"player_b_value"`
	FullMark     float64 `json:"full_mark"`
}

type radarDTO struct {
	Players      []comparedPlayerDTO `json:"players"`
	Metrics      []metricDTO         `json:"metrics"`
	MetricRanges map[string]rangeDTO `json:"metric_ranges"`
	Normalized   bool                `json:"normalized"`
	Scale        string              `json:"scale"`
	Per90        bool                `json:"per_90"`
	Rows         []radarRowDTO       `json:"rows"`
}

func radarToDTO(r usecase.RadarComparison) (radarDTO, error) {
	var c schemaCheck
	out := radarDTO{
		Players:      []comparedPlayerDTO{comparedPlayer(r.Players[0]), comparedPlayer(r.Players[1])},
		Metrics:      metricsToDTO(r.Metrics),
		MetricRanges: make(map[string]rangeDTO, len(r.Result.Ranges)),
		Normalized:   r.Result.Normalized,
		Scale:        string(r.Result.Scale),
		Per90:        true,
		Rows:         make([]radarRowDTO, 0, len(r.Result.Rows)),
	}
	for m, rg := range r.Result.Ranges {
		c.finite("metric_ranges."+string(m)+".min", rg.Min)
		c.finite("metric_ranges."+string(m)+".max", rg.Max)
		out.MetricRanges[string(m)] = rangeDTO{Min: round(rg.Min, 2), Max: round(rg.Max, 2)}
	}
	for i, row := range r.Result.Rows {
		field := fmt.Sprintf("rows[%d]", i)
		if r.Result.Normalized {
			c.percent(field+".player_a_value", row.ValueA)
			c.percent(field+".player_b_value", row.ValueB)
			if row.FullMark != 100 {
				c.fail("%s.full_mark=%v on a normalized radar", field, row.FullMark)
			}
		} else {
			c.nonNegative(field+".player_a_value", row.ValueA)
			c.nonNegative(field+".player_b_value", row.ValueB)
			c.nonNegative(field+".full_mark", row.FullMark)
		}
		info, _ := analytics.Info(row.Metric)
		out.Rows = append(out.Rows, radarRowDTO{
			Metric:       string(row.Metric),
			Label:        info.Label,
			PlayerAValue: round(row.ValueA, 2),
			PlayerBValue: round(row.ValueB, 2),
			FullMark:     round(row.FullMark, 2),
		})
	}
	return out, c.err()
}

type barPlayerDTO struct {
	PlayerID   string             `json:"player_id"`
	PlayerName string             `json:"player_name"`
	Value      float64            `json:"value"`
	Per90Value opt.Value[float64] `json:"per_90_value"`
	Minutes    float64            `json:"minutes"`
}

type barRowDTO struct {
	Metric       string  `json:"metric"`
	PlayerAValue float64 `json:"player_a_value"`
	PlayerBValue float64 `json:"player_b_value"`
}

type barChartDTO struct {
	Metric  string         `json:"metric"`
	Label   string         `json:"label"`
	Per90   bool           `json:"per_90"`
	Players []barPlayerDTO `json:"players"`
	Row     barRowDTO      `json:"row"`
}

func barChartToDTO(b usecase.BarComparison) (barChartDTO, error) {
	var c schemaCheck
	info, _ := analytics.Info(b.Row.Metric)
	check := c.nonNegative
	if info.Rate {
		check = c.percent
	}
	check("row.player_a_value", b.Row.ValueA)
	check("row.player_b_value", b.Row.ValueB)
	if v, ok := b.Row.Per90A.Get(); ok {
		check("players[0].per_90_value", v)
	}
	if v, ok := b.Row.Per90B.Get(); ok {
		check("players[1].per_90_value", v)
	}

	a, bb := b.Players[0], b.Players[1]
	return barChartDTO{
		Metric: string(b.Row.Metric),
		Label:  info.Label,
		Per90:  !info.Rate,
		Players: []barPlayerDTO{
			{
				PlayerID:   a.Player.ID,
				PlayerName: a.Player.Name,
				Value:      round(b.Row.ValueA, 2),
				Per90Value: roundOpt(b.Row.Per90A, 2),
				Minutes:    a.Profile.Minutes,
			},
			{
				PlayerID:   bb.Player.ID,
				PlayerName: bb.Player.Name,
				Value:      round(b.Row.ValueB, 2),
				Per90Value: roundOpt(b.Row.Per90B, 2),
				Minutes:    bb.Profile.Minutes,
			},
		},
		Row: barRowDTO{
			Metric:       string(b.Row.Metric),
			PlayerAValue: round(b.Row.ValueA, 2),
			PlayerBValue: round(b.Row.ValueB, 2),
		},
	}, c.err()
}

type scatterPointDTO struct {
	PlayerID    string  `json:"player_id"`
	PlayerName  string  `json:"player_name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Minutes     float64 `json:"minutes"`
	Highlighted bool    `json:"highlighted"`
}

type scatterDTO struct {
	XMetric    string            `json:"x_metric"`
	YMetric    string            `json:"y_metric"`
	XAverage   float64           `json:"x_average"`
	YAverage   float64           `json:"y_average"`
	MinMinutes int               `json:"min_minutes"`
	Players    []scatterPointDTO `json:"players"`
}

func scatterToDTO(s usecase.ScatterComparison) (scatterDTO, error) {
	var c schemaCheck
	res := s.Result
	c.finite("x_average", res.XAverage)
	c.finite("y_average", res.YAverage)
	out := scatterDTO{
		XMetric:    string(res.XMetric),
		YMetric:    string(res.YMetric),
		XAverage:   round(res.XAverage, 2),
		YAverage:   round(res.YAverage, 2),
		MinMinutes: s.MinMinutes,
		Players:    make([]scatterPointDTO, 0, len(res.Points)),
	}
	for i, p := range res.Points {
		c.finite(fmt.Sprintf("players[%d].x", i), p.X)
		c.finite(fmt.Sprintf("players[%d].y", i), p.Y)
		out.Players = append(out.Players, scatterPointDTO{
			PlayerID:    p.ID,
			PlayerName:  p.Name,
			X:           round(p.X, 2),
			Y:           round(p.Y, 2),
			Minutes:     p.Minutes,
			Highlighted: p.Highlighted,
		})
	}
	return out, c.err()
}

type similarPlayerDTO struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Similarity float64 `json:"similarity"`
}

type similarityDTO struct {
	ReferencePlayer comparedPlayerDTO  `json:"reference_player"`
	Metrics         []metricDTO        `json:"metrics"`
	SimilarPlayers  []similarPlayerDTO `json:"similar_players"`
}

func similarityToDTO(s usecase.SimilarityResult) (similarityDTO, error) {
	var c schemaCheck
	out := similarityDTO{
		ReferencePlayer: comparedPlayer(s.Reference),
		Metrics:         metricsToDTO(s.Metrics),
		SimilarPlayers:  make([]similarPlayerDTO, 0, len(s.Similar)),
	}
	for i, item := range s.Similar {
		c.between(fmt.Sprintf("similar_players[%d].similarity", i), item.Score, 0, 100+1e-9)
		out.SimilarPlayers = append(out.SimilarPlayers, similarPlayerDTO{
			PlayerID:   item.ID,
			PlayerName: item.Name,
			Similarity: round(item.Score, 2),
		})
	}
	return out, c.err()
}

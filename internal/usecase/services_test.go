package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/comparison"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	seedArsenal   = "eng-ars"
	seedLiverpool = "eng-liv"
	seedSpurs     = "eng-tot"
	seedArsenalFW = "eng-ars-06"
	seedArsenalCM = "eng-ars-04"
	seedArsenalSB = "eng-ars-07"
)

var season2024 = analytics.Scope{CompetitionID: memory.CompetitionIDPremierLeague, SeasonID: memory.SeasonID2024}

type seedServices struct {
	registry   *Registry
	selectors  *SelectorService
	dashboard  *DashboardService
	players    *PlayerAnalysisService
	comparison *PlayerComparisonService
	matchups   *MatchupService
	tactical   *TacticalService
}

func newSeedServices(t *testing.T) seedServices {
	t.Helper()

	snap := memory.NewSnapshot(memory.Seed())
	registry := NewRegistry(snap.Competitions, snap.Teams, snap.Players, snap.Matches, snap.Events)
	cfg := DefaultAnalyticsConfig()
	cfg.PopulationWorkers = 4
	return seedServices{
		registry:   registry,
		selectors:  NewSelectorService(registry, snap.Competitions, snap.Teams, snap.Players),
		dashboard:  NewDashboardService(registry, snap.Teams, snap.Events),
		players:    NewPlayerAnalysisService(registry, snap.Teams, snap.Events),
		comparison: NewPlayerComparisonService(registry, snap.Events, cfg),
		matchups:   NewMatchupService(registry, snap.Events, cfg),
		tactical:   NewTacticalService(registry, snap.Events),
	}
}

func TestSelectorService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	t.Run("seasons latest first", func(t *testing.T) {
		seasons, err := svc.selectors.ListSeasons(ctx, memory.CompetitionIDPremierLeague)
		require.NoError(t, err)
		require.Len(t, seasons, 2)
		assert.Equal(t, memory.SeasonID2024, seasons[0].ID)
	})

	t.Run("teams derive from scope matches", func(t *testing.T) {
		teams, err := svc.selectors.ListTeams(ctx, analytics.Scope{CompetitionID: memory.CompetitionIDPremierLeague, SeasonID: memory.SeasonID2023})
		require.NoError(t, err)
		ids := make([]string, 0, len(teams))
		for _, tm := range teams {
			ids = append(ids, tm.ID)
		}
		assert.ElementsMatch(t, []string{seedArsenal, seedLiverpool, seedSpurs}, ids)
	})

	t.Run("matches most recent first", func(t *testing.T) {
		items, err := svc.selectors.ListMatches(ctx, season2024, seedArsenal)
		require.NoError(t, err)
		require.Len(t, items, 6)
		for i := 1; i < len(items); i++ {
			assert.False(t, items[i].Match.Date.After(items[i-1].Match.Date))
		}
		assert.NotEmpty(t, items[0].HomeTeam.Name)
	})

	t.Run("unknown competition", func(t *testing.T) {
		_, err := svc.selectors.ListSeasons(ctx, "missing")
		assert.True(t, errors.Is(err, analytics.ErrUnknownIdentifier))
	})
}

func TestDashboardService_SummaryPossessionSumsTo100(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	summary, err := svc.dashboard.Summary(ctx, season2024, memory.SeasonID2024+"-m01", "")
	require.NoError(t, err)

	home, ok := summary.Team.Possession.Get()
	require.True(t, ok)
	away, ok := summary.Opponent.Possession.Get()
	require.True(t, ok)
	assert.InDelta(t, 100, home+away, 0.1)
	assert.Equal(t, summary.Match.HomeTeamID, summary.Team.Team.ID)
}

func TestPlayerAnalysisService_Profile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	profile, err := svc.players.Profile(ctx, season2024, seedArsenalCM)
	require.NoError(t, err)
	assert.Equal(t, seedArsenal, profile.Team.ID)
	assert.Equal(t, 6, profile.Time.Appearances)
	assert.Equal(t, 540, profile.Time.Minutes)
	assert.Len(t, profile.Form, 5)

	per90, ok := profile.Per90.Get()
	require.True(t, ok)
	assert.InDelta(t, float64(profile.Totals.Passes)*90/540, per90[analytics.MetricPasses], 1e-9)
	_, hasRate := per90[analytics.MetricPassAccuracy]
	assert.False(t, hasRate)
}

func TestPlayerAnalysisService_UnusedSubstitute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	profile, err := svc.players.Profile(ctx, season2024, seedArsenalSB)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.Time.Appearances)
	assert.False(t, profile.Per90.IsPresent())

	_, err = svc.players.PerformanceTrend(ctx, season2024, seedArsenalSB, analytics.MetricPasses, 0)
	assert.True(t, errors.Is(err, analytics.ErrInsufficientSampleSize))
}

func TestPlayerAnalysisService_PerformanceTrend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	trend, err := svc.players.PerformanceTrend(ctx, analytics.Scope{}, seedArsenalCM, analytics.MetricPasses, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultTrendWindow, trend.Window)
	require.Len(t, trend.Rolling, len(trend.Points))
	assert.Equal(t, trend.Points[0].Value, trend.Rolling[0])

	for _, window := range []int{-1, maxTrendWindow + 1} {
		_, err := svc.players.PerformanceTrend(ctx, analytics.Scope{}, seedArsenalCM, analytics.MetricPasses, window)
		require.True(t, errors.Is(err, analytics.ErrInvalidFilter), "window=%d", window)
		pe, ok := analytics.ParamOf(err)
		require.True(t, ok)
		assert.Equal(t, "window", pe.Param)
	}

	_, err = svc.players.PerformanceTrend(ctx, analytics.Scope{}, "nobody", analytics.MetricPasses, 3)
	assert.True(t, errors.Is(err, analytics.ErrUnknownIdentifier))
}

func TestPlayerAnalysisService_EventMap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	res, err := svc.players.EventMap(ctx, season2024, seedArsenalFW, "", "shot")
	require.NoError(t, err)
	require.NotEmpty(t, res.Events)
	for _, e := range res.Events {
		assert.Equal(t, event.TypeShot, e.Type)
		assert.Equal(t, seedArsenalFW, e.PlayerID)
	}
	assert.Equal(t, opt.Present(event.TypeShot), res.Type)

	_, err = svc.players.EventMap(ctx, season2024, seedArsenalFW, "", "teleport")
	assert.True(t, errors.Is(err, analytics.ErrInvalidFilter))

	_, err = svc.players.EventMap(ctx, season2024, seedArsenalFW, memory.SeasonID2023+"-m01", "all")
	assert.True(t, errors.Is(err, analytics.ErrUnknownIdentifier))
}

func TestPlayerAnalysisService_CancelledContext(t *testing.T) {
	t.Parallel()
	svc := newSeedServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.players.Profile(ctx, analytics.Scope{}, seedArsenalCM)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestPlayerComparisonService_Radar(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	for _, scale := range []comparison.Scale{comparison.ScaleFixed, comparison.ScalePopulation} {
		res, err := svc.comparison.Radar(ctx, season2024, RadarQuery{
			Player1:    seedArsenalCM,
			Player2:    "eng-liv-04",
			Normalized: true,
			Scale:      scale,
		})
		require.NoError(t, err, scale)
		require.Len(t, res.Result.Rows, len(analytics.DefaultRadarMetrics()))
		for _, row := range res.Result.Rows {
			assert.Equal(t, 100.0, row.FullMark, "%s %s", scale, row.Metric)
			assert.GreaterOrEqual(t, row.ValueA, 0.0)
			assert.LessOrEqual(t, row.ValueA, 100.0)
		}
	}

	_, err := svc.comparison.Radar(ctx, season2024, RadarQuery{Player1: seedArsenalCM, Player2: "nobody"})
	require.True(t, errors.Is(err, analytics.ErrUnknownIdentifier))
	pe, ok := analytics.ParamOf(err)
	require.True(t, ok)
	assert.Equal(t, "player2", pe.Param)

	_, err = svc.comparison.Radar(ctx, season2024, RadarQuery{Player1: seedArsenalCM, Player2: seedArsenalSB})
	assert.True(t, errors.Is(err, analytics.ErrInsufficientSampleSize))
}

func TestPlayerComparisonService_BarCountsZeroAsValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	// the goalkeeper never makes a tackle in the seed
	res, err := svc.comparison.Bar(ctx, season2024, "eng-ars-01", seedArsenalCM, analytics.MetricTackles)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Row.ValueA)
	assert.Equal(t, opt.Present(0.0), res.Row.Per90A)
	assert.Positive(t, res.Row.ValueB)
}

func TestPlayerComparisonService_ScatterAndSimilar(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	scatter, err := svc.comparison.Scatter(ctx, season2024, ScatterQuery{
		XMetric:   analytics.MetricXG,
		YMetric:   analytics.MetricPasses,
		Highlight: []string{seedArsenalCM},
	})
	require.NoError(t, err)
	assert.Equal(t, 90, scatter.MinMinutes)
	highlighted := 0
	for _, p := range scatter.Result.Points {
		assert.GreaterOrEqual(t, p.Minutes, 90.0)
		if p.Highlighted {
			highlighted++
		}
	}
	assert.Equal(t, 1, highlighted)

	_, err = svc.comparison.Scatter(ctx, season2024, ScatterQuery{XMetric: analytics.MetricXG, YMetric: analytics.MetricPasses, MinMinutes: opt.Present(100000)})
	assert.True(t, errors.Is(err, analytics.ErrInsufficientSampleSize))

	similar, err := svc.comparison.Similar(ctx, season2024, SimilarityQuery{PlayerID: seedArsenalCM})
	require.NoError(t, err)
	require.Len(t, similar.Similar, defaultSimilarLimit)
	for i, s := range similar.Similar {
		assert.NotEqual(t, seedArsenalCM, s.ID)
		if i > 0 {
			assert.LessOrEqual(t, s.Score, similar.Similar[i-1].Score)
		}
	}

	_, err = svc.comparison.Similar(ctx, season2024, SimilarityQuery{PlayerID: seedArsenalCM, Limit: maxSimilarLimit + 1})
	assert.True(t, errors.Is(err, analytics.ErrInvalidFilter))
}

func TestMatchupService_HeadToHead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	h2h, err := svc.matchups.HeadToHead(ctx, analytics.Scope{}, seedArsenal, seedLiverpool)
	require.NoError(t, err)
	assert.Equal(t, 4, h2h.Summary.Matches)
	assert.Equal(t, h2h.Summary.Matches, h2h.Summary.Team1Wins+h2h.Summary.Draws+h2h.Summary.Team2Wins)
	require.Len(t, h2h.History, 4)
	assert.False(t, h2h.History[0].Match.Date.Before(h2h.History[3].Match.Date))

	_, err = svc.matchups.HeadToHead(ctx, analytics.Scope{}, seedArsenal, seedArsenal)
	require.True(t, errors.Is(err, analytics.ErrInvalidFilter))
	pe, _ := analytics.ParamOf(err)
	assert.Equal(t, "team2", pe.Param)
}

func TestMatchupService_TeamStyle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	styles, err := svc.matchups.TeamStyle(ctx, season2024, TeamParam{Param: "team1", ID: seedArsenal}, TeamParam{Param: "team2", ID: seedLiverpool})
	require.NoError(t, err)
	require.Len(t, styles, 2)
	assert.Equal(t, seedArsenal, styles[0].Team.ID)
	assert.Equal(t, 6, styles[0].MatchesAnalyzed)
	assert.True(t, styles[1].Style.IsPresent())

	_, err = svc.matchups.TeamStyle(ctx, season2024, TeamParam{Param: "team_id", ID: seedSpurs})
	assert.True(t, errors.Is(err, analytics.ErrUnknownIdentifier))
}

func TestMatchupService_Predict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	res, err := svc.matchups.Predict(ctx, analytics.Scope{}, seedArsenal, seedLiverpool)
	require.NoError(t, err)
	sum := res.Result.HomeWin + res.Result.Draw + res.Result.AwayWin
	assert.InDelta(t, 1, sum, 1e-6)
	assert.Equal(t, seedArsenal, res.Home.ID)
	assert.Len(t, res.Result.KeyDrivers, 3)
	assert.False(t, math.IsNaN(res.Result.LambdaHome))
}

func TestTacticalService_PassNetwork(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	res, err := svc.tactical.PassNetwork(ctx, season2024, seedArsenal, memory.SeasonID2024+"-m01")
	require.NoError(t, err)
	assert.True(t, res.Match.IsPresent())
	assert.Equal(t, 1, res.MatchesAnalyzed)
	assert.Greater(t, len(res.Network.Nodes), 1)
	assert.GreaterOrEqual(t, res.Network.Metrics.Density, 0.0)
	assert.LessOrEqual(t, res.Network.Metrics.Density, 1.0)

	all, err := svc.tactical.PassNetwork(ctx, season2024, seedArsenal, "")
	require.NoError(t, err)
	assert.Equal(t, 6, all.MatchesAnalyzed)
	assert.Greater(t, all.Network.Metrics.TotalPasses, res.Network.Metrics.TotalPasses)

	// m12 is the unplayed Chelsea v Manchester City fixture
	_, err = svc.tactical.PassNetwork(ctx, season2024, seedArsenal, memory.SeasonID2024+"-m12")
	assert.True(t, errors.Is(err, analytics.ErrInvalidFilter))
}

func TestTacticalService_Summaries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSeedServices(t)

	def, err := svc.tactical.DefensiveMetrics(ctx, season2024, seedLiverpool)
	require.NoError(t, err)
	assert.Equal(t, 6, def.Summary.Matches)
	assert.Len(t, def.Lines, 6)
	assert.LessOrEqual(t, def.Summary.CleanSheets, def.Summary.Matches)

	off, err := svc.tactical.OffensiveMetrics(ctx, season2024, seedLiverpool)
	require.NoError(t, err)
	if acc, ok := off.Summary.ShotAccuracy.Get(); ok {
		assert.GreaterOrEqual(t, acc, 0.0)
		assert.LessOrEqual(t, acc, 100.0)
	}
	poss, ok := off.Summary.Possession.Get()
	require.True(t, ok)
	assert.Greater(t, poss, 0.0)
}

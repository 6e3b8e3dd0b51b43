package metrics

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pass(team, player string, x float64, completed bool) event.Event {
	outcome := event.OutcomeComplete
	if !completed {
		outcome = event.OutcomeIncomplete
	}
	return event.Event{MatchID: "m1", TeamID: team, PlayerID: player, Type: event.TypePass, X: x, Y: 50, Outcome: outcome}
}

func shotAt(team, player string, minute int, xg float64, outcome event.Outcome) event.Event {
	return event.Event{MatchID: "m1", TeamID: team, PlayerID: player, Type: event.TypeShot, Minute: minute, X: 90, Y: 50, Outcome: outcome, Value: opt.Present(xg)}
}

func TestPossessionSumsToHundred(t *testing.T) {
	t.Parallel()

	events := []event.Event{}
	for i := 0; i < 7; i++ {
		events = append(events, pass("home", "h1", 30, true))
	}
	for i := 0; i < 4; i++ {
		events = append(events, pass("away", "a1", 30, i%2 == 0))
	}

	home, err := Possession(events, "home")
	require.NoError(t, err)
	away, err := Possession(events, "away")
	require.NoError(t, err)
	assert.InDelta(t, 100, home+away, 0.1)
	assert.InDelta(t, 63.636, home, 0.001)

	_, err = Possession(nil, "home")
	assert.True(t, errors.Is(err, analytics.ErrInsufficientSampleSize))
}

func TestPassAccuracyAbsentWithoutAttempts(t *testing.T) {
	t.Parallel()

	events := []event.Event{pass("home", "h1", 30, true), pass("home", "h1", 30, false)}

	acc, ok := PassAccuracy(events, "home").Get()
	require.True(t, ok)
	assert.InDelta(t, 50, acc, 1e-9)

	assert.False(t, PassAccuracy(events, "away").IsPresent())
}

func TestXGTotalTenShots(t *testing.T) {
	t.Parallel()

	xgs := []float64{0.05, 0.12, 0.33, 0.07, 0.76, 0.02, 0.18, 0.09, 0.41, 0.11}
	events := make([]event.Event, 0, len(xgs)+1)
	for i, xg := range xgs {
		events = append(events, shotAt("home", "h1", i*9, xg, event.OutcomeMissed))
	}
	events = append(events, shotAt("away", "a1", 50, 0.5, event.OutcomeGoal))

	total, err := XGTotal(events, "home")
	require.NoError(t, err)
	assert.Equal(t, 2.14, Round(total, 2))
}

func TestXGTotalRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	events := []event.Event{shotAt("home", "h1", 3, 1.4, event.OutcomeGoal)}
	_, err := XGTotal(events, "home")
	require.Error(t, err)
	assert.True(t, errors.Is(err, analytics.ErrInvalidMetricValue))

	missing := []event.Event{{MatchID: "m1", TeamID: "home", Type: event.TypeShot}}
	_, err = XGTotal(missing, "home")
	assert.True(t, errors.Is(err, analytics.ErrInvalidMetricValue))
}

func TestPer90(t *testing.T) {
	t.Parallel()

	v, err := Per90(3, 270)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)

	for _, minutes := range []float64{0, 0.5, math.NaN()} {
		v, err := Per90(2, minutes)
		require.Error(t, err)
		assert.True(t, errors.Is(err, analytics.ErrInsufficientSampleSize))
		assert.False(t, math.IsInf(v, 0) || math.IsNaN(v))
	}
}

func TestPPDA(t *testing.T) {
	t.Parallel()

	events := []event.Event{
		pass("away", "a1", 20, true),
		pass("away", "a1", 40, true),
		pass("away", "a1", 59, true),
		pass("away", "a1", 80, true),
		{TeamID: "home", Type: event.TypeTackle, X: 70},
		{TeamID: "home", Type: event.TypeInterception, X: 30},
	}

	v, ok := PPDA(events, "home").Get()
	require.True(t, ok)
	assert.InDelta(t, 3.0, v, 1e-9)
	assert.False(t, PPDA(events, "away").IsPresent())
}

func TestTallyPlayerCountsAssistsAndZeroes(t *testing.T) {
	t.Parallel()

	goal := shotAt("home", "h9", 12, 0.4, event.OutcomeGoal)
	goal.AssistPlayerID = opt.Present("h7")
	events := []event.Event{goal, pass("home", "h7", 60, true), shotAt("home", "h9", 40, 0.1, event.OutcomeSaved)}

	striker := TallyPlayer(events, "h9")
	assert.Equal(t, 1, striker.Goals)
	assert.Equal(t, 2, striker.Shots)
	assert.Equal(t, 2, striker.ShotsOnTarget)
	assert.InDelta(t, 0.5, striker.XG, 1e-9)

	creator := TallyPlayer(events, "h7")
	assert.Equal(t, 1, creator.Assists)

	tackles, ok := striker.Value(analytics.MetricTackles).Get()
	require.True(t, ok)
	assert.Zero(t, tackles)
	assert.False(t, striker.Value(analytics.MetricPassAccuracy).IsPresent())
}

func TestXGTimeline(t *testing.T) {
	t.Parallel()

	events := []event.Event{
		shotAt("home", "h1", 10, 0.2, event.OutcomeMissed),
		shotAt("away", "a1", 10, 0.3, event.OutcomeSaved),
		shotAt("home", "h1", 55, 0.5, event.OutcomeGoal),
		{TeamID: "home", Type: event.TypePass, Minute: 93, Outcome: event.OutcomeComplete},
	}

	tl, err := XGTimeline(events, "home", "away")
	require.NoError(t, err)
	require.Len(t, tl.Points, 4)
	assert.Equal(t, TimelinePoint{Minute: 0}, tl.Points[0])
	assert.Equal(t, 10, tl.Points[1].Minute)
	assert.InDelta(t, 0.3, tl.Points[1].AwayXG, 1e-9)
	assert.InDelta(t, 0.7, tl.Points[2].HomeXG, 1e-9)
	assert.Equal(t, 93, tl.Points[3].Minute)
	assert.InDelta(t, 0.7, tl.HomeTotal, 1e-9)
	assert.InDelta(t, 0.3, tl.AwayTotal, 1e-9)
}

func TestStyle(t *testing.T) {
	t.Parallel()

	forward := pass("home", "h1", 40, true)
	forward.EndX = opt.Present(70.0)
	forward.EndY = opt.Present(50.0)
	sideways := pass("home", "h1", 40, true)
	sideways.Y = 90
	sideways.EndX = opt.Present(40.0)
	sideways.EndY = opt.Present(70.0)

	matches := []MatchEvents{{MatchID: "m1", Events: []event.Event{
		forward, sideways,
		pass("away", "a1", 30, true),
		{TeamID: "home", Type: event.TypePressure, X: 70},
	}}}

	style, err := Style(matches, "home")
	require.NoError(t, err)
	assert.Equal(t, 1, style.MatchesAnalyzed)
	assert.InDelta(t, 66.667, style.Possession.OrElse(0), 0.001)
	assert.InDelta(t, 50, style.Directness.OrElse(0), 1e-9)
	assert.InDelta(t, 15, style.BuildUpSpeed.OrElse(0), 1e-9)
	assert.InDelta(t, 40, style.Width.OrElse(0), 1e-9)
	assert.InDelta(t, 1, style.PressingIntensity, 1e-9)

	_, err = Style(nil, "home")
	assert.True(t, errors.Is(err, analytics.ErrInsufficientSampleSize))
}

func TestRollingAverage(t *testing.T) {
	t.Parallel()

	got := RollingAverage([]float64{1, 2, 3, 4}, 2)
	assert.Equal(t, []float64{1, 1.5, 2.5, 3.5}, got)
	assert.InDelta(t, 1.118, StdDev([]float64{1, 2, 3, 4}), 0.001)
}

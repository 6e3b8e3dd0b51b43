package comparison

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(id string, minutes float64, t metrics.Tally) Profile {
	return Profile{ID: id, Name: "Player " + id, Minutes: minutes, Tally: t}
}

func TestRadarNormalizedSharesFullMark(t *testing.T) {
	t.Parallel()

	a := profile("a", 900, metrics.Tally{Goals: 10, Shots: 40, Tackles: 0, Passes: 400, PassesCompleted: 340})
	b := profile("b", 450, metrics.Tally{Goals: 1, Shots: 5, Tackles: 20, Passes: 100, PassesCompleted: 70})
	ms := []analytics.Metric{analytics.MetricGoals, analytics.MetricShots, analytics.MetricTackles, analytics.MetricPassAccuracy}

	for _, scale := range []Scale{ScaleFixed, ScalePopulation} {
		res, err := Radar(a, b, ms, Options{Normalized: true, Scale: scale, Per90: true})
		require.NoError(t, err)
		require.Len(t, res.Rows, len(ms))
		for _, row := range res.Rows {
			assert.Equal(t, 100.0, row.FullMark, "%s %s", scale, row.Metric)
			assert.GreaterOrEqual(t, row.ValueA, 0.0)
			assert.LessOrEqual(t, row.ValueA, 100.0)
			assert.GreaterOrEqual(t, row.ValueB, 0.0)
			assert.LessOrEqual(t, row.ValueB, 100.0)
		}
	}

	res, err := Radar(a, b, ms, Options{Normalized: true, Scale: ScalePopulation, Per90: true})
	require.NoError(t, err)
	// a is the population max on goals, b the min.
	assert.Equal(t, 100.0, res.Rows[0].ValueA)
	assert.Equal(t, 0.0, res.Rows[0].ValueB)
	// a's zero tackles is a real zero.
	assert.Equal(t, 0.0, res.Rows[2].ValueA)
}

func TestRadarRawUsesScaleUpperBound(t *testing.T) {
	t.Parallel()

	a := profile("a", 90, metrics.Tally{Goals: 3})
	b := profile("b", 90, metrics.Tally{})
	res, err := Radar(a, b, []analytics.Metric{analytics.MetricGoals, analytics.MetricTouches}, Options{Per90: true})
	require.NoError(t, err)

	assert.Equal(t, 3.0, res.Rows[0].ValueA)
	assert.Equal(t, 3.0, res.Rows[0].FullMark)
	assert.Equal(t, 100.0, res.Rows[1].FullMark)
	assert.Equal(t, 0.0, res.Rows[1].ValueB)
}

func TestRadarDegenerateRange(t *testing.T) {
	t.Parallel()

	a := profile("a", 90, metrics.Tally{Blocks: 2})
	b := profile("b", 90, metrics.Tally{Blocks: 2})
	res, err := Radar(a, b, []analytics.Metric{analytics.MetricBlocks, analytics.MetricDribbles}, Options{Normalized: true, Scale: ScalePopulation, Per90: true})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Rows[0].ValueA)
	assert.Equal(t, 0.0, res.Rows[1].ValueA)
}

func TestRadarInsufficientMinutes(t *testing.T) {
	t.Parallel()

	_, err := Radar(profile("a", 0, metrics.Tally{}), profile("b", 90, metrics.Tally{}), []analytics.Metric{analytics.MetricGoals}, Options{Per90: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, analytics.ErrInsufficientSampleSize))
}

func TestBar(t *testing.T) {
	t.Parallel()

	row := Bar(profile("a", 180, metrics.Tally{Tackles: 4}), profile("b", 0, metrics.Tally{}), analytics.MetricTackles)
	assert.Equal(t, 4.0, row.ValueA)
	assert.Equal(t, 0.0, row.ValueB)
	assert.Equal(t, 2.0, row.Per90A.OrElse(-1))
	assert.False(t, row.Per90B.IsPresent())
}

func TestScatterAndSimilar(t *testing.T) {
	t.Parallel()

	pop := []Profile{
		profile("c", 90, metrics.Tally{Goals: 1, Tackles: 1}),
		profile("a", 90, metrics.Tally{Goals: 2, Tackles: 0}),
		profile("b", 90, metrics.Tally{Goals: 0, Tackles: 4}),
		profile("z", 0, metrics.Tally{Goals: 9}),
	}

	sc := Scatter(pop, analytics.MetricGoals, analytics.MetricTackles, []string{"b"})
	require.Len(t, sc.Points, 3)
	assert.Equal(t, "a", sc.Points[0].ID)
	assert.True(t, sc.Points[1].Highlighted)
	assert.InDelta(t, 1.0, sc.XAverage, 1e-9)
	assert.InDelta(t, 5.0/3, sc.YAverage, 1e-9)

	sim, err := Similar(pop[1], pop, []analytics.Metric{analytics.MetricGoals, analytics.MetricTackles}, 5)
	require.NoError(t, err)
	require.Len(t, sim, 2)
	assert.Equal(t, "c", sim[0].ID)
	assert.Equal(t, "b", sim[1].ID)
	assert.Greater(t, sim[0].Score, sim[1].Score)
}

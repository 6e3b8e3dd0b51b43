package analytics

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScope(t *testing.T) {
	t.Parallel()

	s, err := NewScope(" 11 ", "90")
	require.NoError(t, err)
	assert.Equal(t, Scope{CompetitionID: "11", SeasonID: "90"}, s)
	assert.True(t, s.Contains("11", "90"))
	assert.False(t, s.Contains("11", "42"))
	assert.False(t, s.Contains("2", "90"))

	zero, err := NewScope("", "")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.True(t, zero.Contains("any", "thing"))

	_, err = NewScope("", "90")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFilter))
	pe, ok := ParamOf(err)
	require.True(t, ok)
	assert.Equal(t, "competition_id", pe.Param)
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	err := errors.Wrap(UnknownID("player_id", "player", "999999"), "resolve")
	assert.True(t, errors.Is(err, ErrUnknownIdentifier))
	assert.True(t, IsClientError(err))
	pe, ok := ParamOf(err)
	require.True(t, ok)
	assert.Equal(t, "player_id", pe.Param)
	assert.Contains(t, pe.Reason, "999999")

	assert.True(t, IsEmptyResult(InsufficientSample("player %s has no minutes", "p1")))
	assert.True(t, IsEmptyResult(errors.Wrap(ErrEmptyNetwork, "team t1")))
	assert.False(t, IsEmptyResult(Violation("probabilities sum to %f", 0.9)))
	assert.True(t, errors.Is(InvalidValue("xg %f", 1.2), ErrInvalidMetricValue))
}

func TestParseMetricList(t *testing.T) {
	t.Parallel()

	metrics, err := ParseMetricList("metrics", "xg, goals,xg,,TACKLES")
	require.NoError(t, err)
	assert.Equal(t, []Metric{MetricXG, MetricGoals, MetricTackles}, metrics)

	defaults, err := ParseMetricList("metrics", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultRadarMetrics(), defaults)

	_, err = ParseMetricList("metrics", "xg,height")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFilter))

	_, err = ParseMetric("metric", "")
	assert.True(t, errors.Is(err, ErrInvalidFilter))
}

func TestMetricCatalogIsComplete(t *testing.T) {
	t.Parallel()

	for _, m := range Metrics() {
		info, ok := Info(m)
		require.True(t, ok, m)
		assert.Greater(t, info.Domain, 0.0, m)
		assert.NotEmpty(t, info.Label, m)
	}
	info, _ := Info(MetricPassAccuracy)
	assert.True(t, info.Rate)
}

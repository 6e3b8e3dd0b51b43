package httpapi

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/comparison"
	"github.com/riskibarqy/match-analytics/internal/domain/prediction"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	"github.com/riskibarqy/match-analytics/internal/usecase"
)

func TestSchemaCheck(t *testing.T) {
	var c schemaCheck
	c.percent("possession", 55)
	c.probability("p", 0.4)
	require.NoError(t, c.err())

	c.coordinate("x", 101)
	c.nonNegative("shots", -1)
	c.finite("xg", math.Inf(1))
	err := c.err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, analytics.ErrSchemaViolation))
	assert.Len(t, c.problems, 3)
}

func TestMatchupPredictionToDTO(t *testing.T) {
	valid := usecase.MatchupPrediction{
		Home: team.Team{ID: "eng-ars", Name: "Arsenal"},
		Away: team.Team{ID: "eng-liv", Name: "Liverpool"},
		Result: prediction.Result{
			HomeWin:    0.45,
			Draw:       0.27,
			AwayWin:    0.28,
			LambdaHome: 1.6,
			LambdaAway: 1.1,
		},
	}

	dto, err := matchupPredictionToDTO(valid)
	require.NoError(t, err)
	assert.Equal(t, "independent_poisson", dto.Model.Name)
	assert.InDelta(t, 1, dto.HomeWinProbability+dto.DrawProbability+dto.AwayWinProbability, 1e-9)
	assert.Equal(t, dto.HomeWinProbability, dto.WinProbability.Team1)

	broken := valid
	broken.Result.AwayWin = 0.4
	_, err = matchupPredictionToDTO(broken)
	assert.True(t, analytics.IsSchemaViolation(err))

	broken = valid
	broken.Result.LambdaHome = math.NaN()
	_, err = matchupPredictionToDTO(broken)
	assert.True(t, analytics.IsSchemaViolation(err))
}

func TestRadarToDTO_NormalizedFullMark(t *testing.T) {
	radar := usecase.RadarComparison{
		Metrics: []analytics.Metric{analytics.MetricPasses},
		Result: comparison.RadarResult{
			Normalized: true,
			Rows: []comparison.RadarRow{
				{Metric: analytics.MetricPasses, ValueA: 80, ValueB: 40, FullMark: 100},
			},
		},
	}

	dto, err := radarToDTO(radar)
	require.NoError(t, err)
	require.Len(t, dto.Rows, 1)
	assert.True(t, dto.Per90)

	radar.Result.Rows[0].FullMark = 64
	_, err = radarToDTO(radar)
	assert.True(t, analytics.IsSchemaViolation(err))

	radar.Result.Rows[0].FullMark = 100
	radar.Result.Rows[0].ValueA = 120
	_, err = radarToDTO(radar)
	assert.True(t, analytics.IsSchemaViolation(err))
}

func TestPassNetworkToDTO_Empty(t *testing.T) {
	dto, err := passNetworkToDTO(usecase.PassNetwork{Team: team.Team{ID: "eng-che"}}, true)
	require.NoError(t, err)
	assert.True(t, dto.NoData)
	assert.NotNil(t, dto.Nodes)
	assert.Empty(t, dto.Nodes)
	assert.NotNil(t, dto.Edges)
}

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/match-analytics/internal/config"
	"github.com/riskibarqy/match-analytics/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                     config.EnvDev,
		HTTPAddr:                   ":0",
		StoreDriver:                config.StoreMemory,
		CacheEnabled:               true,
		CacheTTL:                   time.Minute,
		CacheMaxEntries:            128,
		CORSAllowedOrigins:         []string{"*"},
		MetricsEnabled:             true,
		MetricsNamespace:           "match_analytics_test",
		PredictionHomeAdvantage:    1.1,
		PredictionMaxGoals:         10,
		PredictionFormWindow:       10,
		PredictionMinSplitMatches:  3,
		AnalyticsPopulationWorkers: 2,
		AnalyticsMinMinutes:        90,
	}
}

func TestNew_MemoryStoreServesSelectors(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/core-selectors/competitions", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "eng-premier-league")

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, err := New(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestNew_MissingDatasetFails(t *testing.T) {
	cfg := memoryConfig()
	cfg.DatasetPath = "testdata/does-not-exist.json"

	_, err := New(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestAnalyticsConfigMapsPrediction(t *testing.T) {
	cfg := memoryConfig()
	cfg.PredictionHomeAdvantage = 1.3
	cfg.PredictionMaxGoals = 7

	out := analyticsConfig(cfg)
	assert.Equal(t, 1.3, out.Prediction.HomeAdvantage)
	assert.Equal(t, 7, out.Prediction.MaxGoals)
	assert.Equal(t, 2, out.PopulationWorkers)
	assert.Equal(t, 10, out.FormWindow)
}

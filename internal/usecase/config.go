package usecase

import "github.com/riskibarqy/match-analytics/internal/domain/prediction"

const (
	defaultPopulationWorkers = 8
	defaultFormWindow        = 10
)

// AnalyticsConfig tunes the population and prediction pipelines.
type AnalyticsConfig struct {
	PopulationWorkers int
	// MinMinutes is the default minutes threshold for population members.
	MinMinutes int
	// FormWindow is how many finished matches feed a team's prediction form.
	FormWindow int
	Prediction prediction.Config
}

func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		PopulationWorkers: defaultPopulationWorkers,
		MinMinutes:        90,
		FormWindow:        defaultFormWindow,
		Prediction:        prediction.DefaultConfig(),
	}
}

func (c AnalyticsConfig) normalized() AnalyticsConfig {
	if c.PopulationWorkers < 1 {
		c.PopulationWorkers = defaultPopulationWorkers
	}
	if c.MinMinutes < 0 {
		c.MinMinutes = 0
	}
	if c.FormWindow < 1 {
		c.FormWindow = defaultFormWindow
	}
	return c
}

package prediction

import (
	"math"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

const lambdaFloor = 0.05

// Sample is one finished match of a team's recent form.
type Sample struct {
	MatchID    string
	Venue      match.Venue
	XGFor      float64
	XGAgainst  float64
	Shots      int
	Possession opt.Value[float64]
}

type Form struct {
	TeamID  string
	Samples []Sample
}

type Config struct {
	// HomeAdvantage multiplies the home rate and divides the away rate.
	HomeAdvantage float64
	// MaxGoals bounds the scoreline grid per side.
	MaxGoals int
	// MinSplitSamples is how many venue matches are needed before the venue
	// split replaces the overall means.
	MinSplitSamples int
	TopScores       int
}

func DefaultConfig() Config {
	return Config{HomeAdvantage: 1.1, MaxGoals: 10, MinSplitSamples: 3, TopScores: 5}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.HomeAdvantage <= 0 || math.IsNaN(c.HomeAdvantage) {
		c.HomeAdvantage = d.HomeAdvantage
	}
	if c.MaxGoals < 1 {
		c.MaxGoals = d.MaxGoals
	}
	if c.MinSplitSamples < 1 {
		c.MinSplitSamples = d.MinSplitSamples
	}
	if c.TopScores < 1 {
		c.TopScores = d.TopScores
	}
	return c
}

// Strength is a team's attack (mean xG for) and defense (mean xG against).
type Strength struct {
	Attack  float64
	Defense float64
	Samples int
	// VenueSplit is set when only matches at the fixture venue were used.
	VenueSplit bool
}

// strengthAt prefers the venue split once it has minSplit matches.
func strengthAt(form Form, venue match.Venue, minSplit int) (Strength, error) {
	if len(form.Samples) == 0 {
		return Strength{}, analytics.InsufficientSample("team %s has no finished matches", form.TeamID)
	}
	for _, s := range form.Samples {
		if !finiteNonNegative(s.XGFor) || !finiteNonNegative(s.XGAgainst) {
			return Strength{}, analytics.InvalidValue("team %s match %s has invalid xg", form.TeamID, s.MatchID)
		}
	}

	split := make([]Sample, 0, len(form.Samples))
	for _, s := range form.Samples {
		if s.Venue == venue {
			split = append(split, s)
		}
	}
	if len(split) >= minSplit {
		st := means(split)
		st.VenueSplit = true
		return st, nil
	}
	return means(form.Samples), nil
}

func means(samples []Sample) Strength {
	var f, a float64
	for _, s := range samples {
		f += s.XGFor
		a += s.XGAgainst
	}
	n := float64(len(samples))
	return Strength{Attack: f / n, Defense: a / n, Samples: len(samples)}
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

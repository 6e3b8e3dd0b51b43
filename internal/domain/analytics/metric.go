package analytics

import (
	"slices"
	"strings"
)

// Metric names one entry in the player and team metric catalog.
type Metric string

const (
	MetricGoals             Metric = "goals"
	MetricAssists           Metric = "assists"
	MetricXG                Metric = "xg"
	MetricShots             Metric = "shots"
	MetricShotsOnTarget     Metric = "shots_on_target"
	MetricPasses            Metric = "passes"
	MetricPassesCompleted   Metric = "passes_completed"
	MetricPassAccuracy      Metric = "pass_accuracy"
	MetricProgressivePasses Metric = "progressive_passes"
	MetricTackles           Metric = "tackles"
	MetricInterceptions     Metric = "interceptions"
	MetricBlocks            Metric = "blocks"
	MetricClearances        Metric = "clearances"
	MetricDribbles          Metric = "dribbles"
	MetricPressures         Metric = "pressures"
	MetricTouches           Metric = "touches"
	MetricDefensiveActions  Metric = "defensive_actions"
)

// MetricInfo describes how a metric is displayed and scaled.
type MetricInfo struct {
	Name  Metric
	Label string
	// Rate metrics are already normalized (percentages) and never scaled per 90.
	Rate bool
	// Domain is the fixed per-90 upper bound used by fixed-scale radars.
	Domain float64
}

var catalog = map[Metric]MetricInfo{
	MetricGoals:             {Name: MetricGoals, Label: "Goals", Domain: 1},
	MetricAssists:           {Name: MetricAssists, Label: "Assists", Domain: 1},
	MetricXG:                {Name: MetricXG, Label: "xG", Domain: 1},
	MetricShots:             {Name: MetricShots, Label: "Shots", Domain: 5},
	MetricShotsOnTarget:     {Name: MetricShotsOnTarget, Label: "Shots on Target", Domain: 3},
	MetricPasses:            {Name: MetricPasses, Label: "Passes", Domain: 80},
	MetricPassesCompleted:   {Name: MetricPassesCompleted, Label: "Passes Completed", Domain: 70},
	MetricPassAccuracy:      {Name: MetricPassAccuracy, Label: "Pass Accuracy", Rate: true, Domain: 100},
	MetricProgressivePasses: {Name: MetricProgressivePasses, Label: "Progressive Passes", Domain: 10},
	MetricTackles:           {Name: MetricTackles, Label: "Tackles", Domain: 5},
	MetricInterceptions:     {Name: MetricInterceptions, Label: "Interceptions", Domain: 4},
	MetricBlocks:            {Name: MetricBlocks, Label: "Blocks", Domain: 3},
	MetricClearances:        {Name: MetricClearances, Label: "Clearances", Domain: 8},
	MetricDribbles:          {Name: MetricDribbles, Label: "Dribbles", Domain: 5},
	MetricPressures:         {Name: MetricPressures, Label: "Pressures", Domain: 25},
	MetricTouches:           {Name: MetricTouches, Label: "Touches", Domain: 100},
	MetricDefensiveActions:  {Name: MetricDefensiveActions, Label: "Defensive Actions", Domain: 12},
}

var defaultRadarMetrics = []Metric{
	MetricGoals,
	MetricAssists,
	MetricXG,
	MetricShots,
	MetricPassAccuracy,
	MetricProgressivePasses,
	MetricTackles,
	MetricInterceptions,
	MetricDribbles,
}

func Info(m Metric) (MetricInfo, bool) {
	info, ok := catalog[m]
	return info, ok
}

// Metrics returns the whole catalog sorted by name.
func Metrics() []Metric {
	out := make([]Metric, 0, len(catalog))
	for m := range catalog {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

func DefaultRadarMetrics() []Metric {
	return slices.Clone(defaultRadarMetrics)
}

// ParseMetric resolves a client supplied metric name; param names the query
// parameter it came from.
func ParseMetric(param, raw string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(raw)))
	if m == "" {
		return "", InvalidParam(param, "metric is required")
	}
	if _, ok := catalog[m]; !ok {
		return "", InvalidParam(param, "unsupported metric "+string(m))
	}
	return m, nil
}

// ParseMetricList parses a comma separated list, dropping duplicates while
// keeping the first-seen order. An empty list yields the default radar set.
func ParseMetricList(param, raw string) ([]Metric, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultRadarMetrics(), nil
	}
	seen := make(map[Metric]struct{})
	out := make([]Metric, 0)
	for part := range strings.SplitSeq(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		m, err := ParseMetric(param, part)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, InvalidParam(param, "at least one metric is required")
	}
	return out, nil
}

package comparison

import (
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
)

type Scale string

const (
	// ScaleFixed uses the catalog per-90 domain of each metric.
	ScaleFixed Scale = "fixed"
	// ScalePopulation uses the min/max observed over Options.Population.
	ScalePopulation Scale = "population"
)

func ParseScale(raw string) (Scale, error) {
	switch Scale(raw) {
	case "", ScaleFixed:
		return ScaleFixed, nil
	case ScalePopulation:
		return ScalePopulation, nil
	default:
		return "", analytics.InvalidParam("scale", "scale must be fixed or population")
	}
}

type Options struct {
	Normalized bool
	Scale      Scale
	Per90      bool
	Population []Profile
}

type RadarRow struct {
	Metric   analytics.Metric
	ValueA   float64
	ValueB   float64
	FullMark float64
}

type RadarResult struct {
	Rows       []RadarRow
	Ranges     map[analytics.Metric]Range
	Normalized bool
	Scale      Scale
}

// Radar aligns a and b on metrics. Normalized rows all carry FullMark 100.
// Raw rows carry the scale's upper bound for their metric.
func Radar(a, b Profile, ms []analytics.Metric, opts Options) (RadarResult, error) {
	if len(ms) == 0 {
		return RadarResult{}, analytics.InvalidParam("metrics", "at least one metric is required")
	}
	if opts.Scale == "" {
		opts.Scale = ScaleFixed
	}

	ranges := make(map[analytics.Metric]Range, len(ms))
	if opts.Scale == ScalePopulation {
		ranges = Ranges(append([]Profile{a, b}, opts.Population...), ms, opts.Per90)
	} else {
		for _, m := range ms {
			info, _ := analytics.Info(m)
			ranges[m] = Range{Min: 0, Max: info.Domain}
		}
	}

	rows := make([]RadarRow, 0, len(ms))
	for _, m := range ms {
		va, err := a.Value(m, opts.Per90)
		if err != nil {
			return RadarResult{}, analytics.InsufficientSample("entity %s: %v", a.ID, err)
		}
		vb, err := b.Value(m, opts.Per90)
		if err != nil {
			return RadarResult{}, analytics.InsufficientSample("entity %s: %v", b.ID, err)
		}

		r := ranges[m]
		row := RadarRow{Metric: m, ValueA: va, ValueB: vb}
		if opts.Normalized {
			row.ValueA = normalize(va, r)
			row.ValueB = normalize(vb, r)
			row.FullMark = 100
		} else {
			row.FullMark = max(r.Max, va, vb)
		}
		rows = append(rows, row)
	}

	return RadarResult{Rows: rows, Ranges: ranges, Normalized: opts.Normalized, Scale: opts.Scale}, nil
}

package comparison

import (
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/metrics"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// Profile is a comparable entity: its raw tally and the minutes it covers.
type Profile struct {
	ID      string
	Name    string
	Minutes float64
	Tally   metrics.Tally
}

// Value reads m from the tally. With per90 set, count metrics are scaled by
// minutes; rate metrics are returned as is. A metric the entity never
// recorded reads as 0.
func (p Profile) Value(m analytics.Metric, per90 bool) (float64, error) {
	raw := p.Tally.Value(m).OrElse(0)
	info, _ := analytics.Info(m)
	if !per90 || info.Rate {
		return raw, nil
	}
	return metrics.Per90(raw, p.Minutes)
}

// Range is the observed span of one metric over a population.
type Range struct {
	Min float64
	Max float64
}

func (r Range) extend(v float64) Range {
	return Range{Min: min(r.Min, v), Max: max(r.Max, v)}
}

// Ranges computes min/max per metric. Profiles without a per-90 value are
// skipped.
func Ranges(population []Profile, ms []analytics.Metric, per90 bool) map[analytics.Metric]Range {
	out := make(map[analytics.Metric]Range, len(ms))
	for _, m := range ms {
		var (
			r    Range
			seen bool
		)
		for _, p := range population {
			v, err := p.Value(m, per90)
			if err != nil {
				continue
			}
			if !seen {
				r, seen = Range{Min: v, Max: v}, true
				continue
			}
			r = r.extend(v)
		}
		if seen {
			out[m] = r
		}
	}
	return out
}

// normalize maps v into [0,100] against r. A degenerate range maps 0 to 0
// and anything else to 100.
func normalize(v float64, r Range) float64 {
	if r.Max <= r.Min {
		if v == 0 {
			return 0
		}
		return 100
	}
	scaled := (v - r.Min) / (r.Max - r.Min) * 100
	return min(100, max(0, scaled))
}

func optional(v float64, err error) opt.Value[float64] {
	if err != nil {
		return opt.Absent[float64]()
	}
	return opt.Present(v)
}

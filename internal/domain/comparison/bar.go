package comparison

import (
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

type BarRow struct {
	Metric analytics.Metric
	ValueA float64
	ValueB float64
	Per90A opt.Value[float64]
	Per90B opt.Value[float64]
}

// Bar compares raw totals. Per-90 values are attached when the minutes allow.
func Bar(a, b Profile, m analytics.Metric) BarRow {
	va, _ := a.Value(m, false)
	vb, _ := b.Value(m, false)
	return BarRow{
		Metric: m,
		ValueA: va,
		ValueB: vb,
		Per90A: optional(a.Value(m, true)),
		Per90B: optional(b.Value(m, true)),
	}
}

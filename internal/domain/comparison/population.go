package comparison

import (
	"cmp"
	"math"
	"slices"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
)

type ScatterPoint struct {
	ID          string
	Name        string
	X           float64
	Y           float64
	Minutes     float64
	Highlighted bool
}

type ScatterResult struct {
	XMetric  analytics.Metric
	YMetric  analytics.Metric
	XAverage float64
	YAverage float64
	Points   []ScatterPoint
}

// Scatter plots per-90 values of population on two metrics, sorted by ID.
// Profiles without enough minutes are left out.
func Scatter(population []Profile, xm, ym analytics.Metric, highlight []string) ScatterResult {
	res := ScatterResult{XMetric: xm, YMetric: ym, Points: make([]ScatterPoint, 0, len(population))}
	for _, p := range population {
		x, err := p.Value(xm, true)
		if err != nil {
			continue
		}
		y, err := p.Value(ym, true)
		if err != nil {
			continue
		}
		res.Points = append(res.Points, ScatterPoint{
			ID:          p.ID,
			Name:        p.Name,
			X:           x,
			Y:           y,
			Minutes:     p.Minutes,
			Highlighted: slices.Contains(highlight, p.ID),
		})
		res.XAverage += x
		res.YAverage += y
	}
	if n := len(res.Points); n > 0 {
		res.XAverage /= float64(n)
		res.YAverage /= float64(n)
	}
	slices.SortFunc(res.Points, func(a, b ScatterPoint) int { return cmp.Compare(a.ID, b.ID) })
	return res
}

type Similarity struct {
	ID    string
	Name  string
	Score float64
}

// Similar ranks population by cosine similarity to ref over population
// normalized per-90 vectors, scored 0..100. Ties break by ID.
func Similar(ref Profile, population []Profile, ms []analytics.Metric, limit int) ([]Similarity, error) {
	if _, err := vector(ref, ms, nil); err != nil {
		return nil, err
	}
	ranges := Ranges(append([]Profile{ref}, population...), ms, true)
	refVec, _ := vector(ref, ms, ranges)

	out := make([]Similarity, 0, len(population))
	for _, p := range population {
		if p.ID == ref.ID {
			continue
		}
		vec, err := vector(p, ms, ranges)
		if err != nil {
			continue
		}
		out = append(out, Similarity{ID: p.ID, Name: p.Name, Score: cosine(refVec, vec) * 100})
	}
	slices.SortFunc(out, func(a, b Similarity) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func vector(p Profile, ms []analytics.Metric, ranges map[analytics.Metric]Range) ([]float64, error) {
	out := make([]float64, 0, len(ms))
	for _, m := range ms {
		v, err := p.Value(m, true)
		if err != nil {
			return nil, analytics.InsufficientSample("entity %s: %v", p.ID, err)
		}
		if ranges != nil {
			v = normalize(v, ranges[m])
		}
		out = append(out, v)
	}
	return out, nil
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

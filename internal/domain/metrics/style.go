package metrics

import (
	"math"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// MatchEvents is the event set of one match.
type MatchEvents struct {
	MatchID string
	Events  []event.Event
}

// StyleProfile summarizes how a team plays across matches. Every component is
// a per-match mean.
type StyleProfile struct {
	MatchesAnalyzed int
	// Possession is the share of passes, 0..100.
	Possession opt.Value[float64]
	// Directness is the share of completed passes that are progressive, 0..100.
	Directness opt.Value[float64]
	// PressingIntensity is pressures per match.
	PressingIntensity float64
	// BuildUpSpeed is the mean forward gain of completed passes, in pitch %.
	BuildUpSpeed opt.Value[float64]
	// Width is the mean lateral distance of passes from the centre line scaled
	// to 0..100.
	Width opt.Value[float64]
	PPDA  opt.Value[float64]
}

func Style(matches []MatchEvents, teamID string) (StyleProfile, error) {
	if len(matches) == 0 {
		return StyleProfile{}, analytics.InsufficientSample("team %s has no matches", teamID)
	}

	var (
		possession, directness, speed, width, ppda meanAcc
		pressures                                  int
	)
	for _, m := range matches {
		if p, err := Possession(m.Events, teamID); err == nil {
			possession.add(p)
		}
		if v, ok := PPDA(m.Events, teamID).Get(); ok {
			ppda.add(v)
		}

		var completed, progressive int
		var gain, lateral float64
		var passes int
		for _, e := range m.Events {
			if e.TeamID != teamID {
				continue
			}
			if e.Type == event.TypePressure {
				pressures++
			}
			if !e.IsPass() {
				continue
			}
			passes++
			lateral += math.Abs(e.Y-50) * 2
			if !e.IsCompletedPass() {
				continue
			}
			completed++
			if e.IsProgressive() {
				progressive++
			}
			if endX, ok := e.EndX.Get(); ok {
				gain += endX - e.X
			}
		}
		if completed > 0 {
			directness.add(float64(progressive) / float64(completed) * 100)
			speed.add(gain / float64(completed))
		}
		if passes > 0 {
			width.add(lateral / float64(passes))
		}
	}

	return StyleProfile{
		MatchesAnalyzed:   len(matches),
		Possession:        possession.mean(),
		Directness:        directness.mean(),
		PressingIntensity: float64(pressures) / float64(len(matches)),
		BuildUpSpeed:      speed.mean(),
		Width:             width.mean(),
		PPDA:              ppda.mean(),
	}, nil
}

type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) {
	a.sum += v
	a.n++
}

func (a meanAcc) mean() opt.Value[float64] {
	if a.n == 0 {
		return opt.Absent[float64]()
	}
	return opt.Present(a.sum / float64(a.n))
}

package metrics

import (
	"math"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// pressingLine is the X coordinate splitting a team's own 60% from the
// opponent's 40%, in the acting team's attacking frame.
const pressingLine = 60.0

// Possession is the team's share of all attempted passes in events, as a
// percentage. events should hold exactly one match.
func Possession(events []event.Event, teamID string) (float64, error) {
	var own, total int
	for _, e := range events {
		if !e.IsPass() {
			continue
		}
		total++
		if e.TeamID == teamID {
			own++
		}
	}
	if total == 0 {
		return 0, analytics.InsufficientSample("no passes recorded")
	}
	return float64(own) / float64(total) * 100, nil
}

// PassAccuracy is completed over attempted passes. Absent when the team
// attempted none.
func PassAccuracy(events []event.Event, teamID string) opt.Value[float64] {
	var attempted, completed int
	for _, e := range events {
		if e.TeamID != teamID || !e.IsPass() {
			continue
		}
		attempted++
		if e.IsCompletedPass() {
			completed++
		}
	}
	return ratio(completed, attempted)
}

// XGTotal sums shot xG for the team. Any shot xG outside [0,1] fails.
func XGTotal(events []event.Event, teamID string) (float64, error) {
	var total float64
	for _, e := range events {
		if e.TeamID != teamID || !e.IsShot() {
			continue
		}
		xg, err := shotXG(e)
		if err != nil {
			return 0, err
		}
		total += xg
	}
	return total, nil
}

// Per90 scales a total to a full match. Fewer than one minute played is an
// insufficient sample, never Inf or NaN.
func Per90(total, minutesPlayed float64) (float64, error) {
	if math.IsNaN(minutesPlayed) || minutesPlayed < 1 {
		return 0, analytics.InsufficientSample("%.1f minutes played", minutesPlayed)
	}
	return total * 90 / minutesPlayed, nil
}

// PPDA is opponent passes in their own 60% divided by the team's defensive
// actions in the opponent's 60%. Absent when the team made none there.
func PPDA(events []event.Event, teamID string) opt.Value[float64] {
	var oppPasses, actions int
	for _, e := range events {
		switch {
		case e.TeamID != teamID && e.IsPass() && e.X < pressingLine:
			oppPasses++
		case e.TeamID == teamID && e.IsDefensiveAction() && e.X > 100-pressingLine:
			actions++
		}
	}
	if actions == 0 {
		return opt.Absent[float64]()
	}
	return opt.Present(float64(oppPasses) / float64(actions))
}

func shotXG(e event.Event) (float64, error) {
	xg, ok := e.Value.Get()
	if !ok || math.IsNaN(xg) || xg < 0 || xg > 1 {
		return 0, analytics.InvalidValue("shot %s xg %v outside [0,1]", e.ID, e.Value.OrElse(math.NaN()))
	}
	return xg, nil
}

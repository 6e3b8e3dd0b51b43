package metrics

import (
	"github.com/riskibarqy/match-analytics/internal/domain/event"
)

type TimelinePoint struct {
	Minute int
	HomeXG float64
	AwayXG float64
}

// Timeline is the cumulative xG of both sides through a match.
type Timeline struct {
	Points    []TimelinePoint
	HomeTotal float64
	AwayTotal float64
}

// XGTimeline starts at minute 0, adds one point per shot minute and closes at
// max(90, last minute). events must be in store order.
func XGTimeline(events []event.Event, homeTeamID, awayTeamID string) (Timeline, error) {
	tl := Timeline{Points: []TimelinePoint{{Minute: 0}}}
	lastMinute := 0

	for _, e := range events {
		if e.Minute > lastMinute {
			lastMinute = e.Minute
		}
		if !e.IsShot() || (e.TeamID != homeTeamID && e.TeamID != awayTeamID) {
			continue
		}
		xg, err := shotXG(e)
		if err != nil {
			return Timeline{}, err
		}
		if e.TeamID == homeTeamID {
			tl.HomeTotal += xg
		} else {
			tl.AwayTotal += xg
		}

		point := TimelinePoint{Minute: e.Minute, HomeXG: tl.HomeTotal, AwayXG: tl.AwayTotal}
		if last := &tl.Points[len(tl.Points)-1]; last.Minute == e.Minute {
			*last = point
			continue
		}
		tl.Points = append(tl.Points, point)
	}

	end := max(90, lastMinute)
	if tl.Points[len(tl.Points)-1].Minute < end {
		tl.Points = append(tl.Points, TimelinePoint{Minute: end, HomeXG: tl.HomeTotal, AwayXG: tl.AwayTotal})
	}
	return tl, nil
}

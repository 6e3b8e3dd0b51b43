package metrics

import (
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// Tally is the raw count sheet for one subject (a player or a team) over a
// set of events. A zero count is a real zero.
type Tally struct {
	Goals             int
	Assists           int
	XG                float64
	Shots             int
	ShotsOnTarget     int
	Passes            int
	PassesCompleted   int
	ProgressivePasses int
	Tackles           int
	Interceptions     int
	Blocks            int
	Clearances        int
	Dribbles          int
	Pressures         int
	Touches           int
}

// Add counts one event performed by the subject.
func (t *Tally) Add(e event.Event) {
	if e.OnBall() {
		t.Touches++
	}
	switch e.Type {
	case event.TypeShot:
		t.Shots++
		t.XG += e.XG()
		if e.OnTarget() {
			t.ShotsOnTarget++
		}
		if e.IsGoal() {
			t.Goals++
		}
	case event.TypePass:
		t.Passes++
		if e.IsCompletedPass() {
			t.PassesCompleted++
		}
		if e.IsProgressive() {
			t.ProgressivePasses++
		}
	case event.TypeTackle:
		t.Tackles++
	case event.TypeInterception:
		t.Interceptions++
	case event.TypeBlock:
		t.Blocks++
	case event.TypeClearance:
		t.Clearances++
	case event.TypeDribble:
		t.Dribbles++
	case event.TypePressure:
		t.Pressures++
	}
}

func (t Tally) DefensiveActions() int {
	return t.Tackles + t.Interceptions + t.Blocks + t.Clearances
}

// PassAccuracy is Absent when no pass was attempted.
func (t Tally) PassAccuracy() opt.Value[float64] {
	return ratio(t.PassesCompleted, t.Passes)
}

func (t Tally) Merge(o Tally) Tally {
	return Tally{
		Goals:             t.Goals + o.Goals,
		Assists:           t.Assists + o.Assists,
		XG:                t.XG + o.XG,
		Shots:             t.Shots + o.Shots,
		ShotsOnTarget:     t.ShotsOnTarget + o.ShotsOnTarget,
		Passes:            t.Passes + o.Passes,
		PassesCompleted:   t.PassesCompleted + o.PassesCompleted,
		ProgressivePasses: t.ProgressivePasses + o.ProgressivePasses,
		Tackles:           t.Tackles + o.Tackles,
		Interceptions:     t.Interceptions + o.Interceptions,
		Blocks:            t.Blocks + o.Blocks,
		Clearances:        t.Clearances + o.Clearances,
		Dribbles:          t.Dribbles + o.Dribbles,
		Pressures:         t.Pressures + o.Pressures,
		Touches:           t.Touches + o.Touches,
	}
}

// Value reads a catalog metric. Only rate metrics can be Absent.
func (t Tally) Value(m analytics.Metric) opt.Value[float64] {
	switch m {
	case analytics.MetricGoals:
		return count(t.Goals)
	case analytics.MetricAssists:
		return count(t.Assists)
	case analytics.MetricXG:
		return opt.Present(t.XG)
	case analytics.MetricShots:
		return count(t.Shots)
	case analytics.MetricShotsOnTarget:
		return count(t.ShotsOnTarget)
	case analytics.MetricPasses:
		return count(t.Passes)
	case analytics.MetricPassesCompleted:
		return count(t.PassesCompleted)
	case analytics.MetricPassAccuracy:
		return t.PassAccuracy()
	case analytics.MetricProgressivePasses:
		return count(t.ProgressivePasses)
	case analytics.MetricTackles:
		return count(t.Tackles)
	case analytics.MetricInterceptions:
		return count(t.Interceptions)
	case analytics.MetricBlocks:
		return count(t.Blocks)
	case analytics.MetricClearances:
		return count(t.Clearances)
	case analytics.MetricDribbles:
		return count(t.Dribbles)
	case analytics.MetricPressures:
		return count(t.Pressures)
	case analytics.MetricTouches:
		return count(t.Touches)
	case analytics.MetricDefensiveActions:
		return count(t.DefensiveActions())
	default:
		return opt.Absent[float64]()
	}
}

// TallyPlayer counts the player's own events plus assists credited on goals.
func TallyPlayer(events []event.Event, playerID string) Tally {
	var t Tally
	for _, e := range events {
		if e.PlayerID == playerID {
			t.Add(e)
		}
		if e.IsGoal() {
			if assist, ok := e.AssistPlayerID.Get(); ok && assist == playerID {
				t.Assists++
			}
		}
	}
	return t
}

func TallyTeam(events []event.Event, teamID string) Tally {
	var t Tally
	for _, e := range events {
		if e.TeamID != teamID {
			continue
		}
		t.Add(e)
		if e.IsGoal() && e.AssistPlayerID.IsPresent() {
			t.Assists++
		}
	}
	return t
}

func count(n int) opt.Value[float64] {
	return opt.Present(float64(n))
}

func ratio(num, den int) opt.Value[float64] {
	if den == 0 {
		return opt.Absent[float64]()
	}
	return opt.Present(float64(num) / float64(den) * 100)
}

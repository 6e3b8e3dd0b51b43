package event

import (
	"math"
	"strings"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

// Type is the closed set of event kinds. TypeUnknown keeps provider kinds
// this service does not aggregate yet.
type Type string

const (
	TypePass         Type = "pass"
	TypeShot         Type = "shot"
	TypeTackle       Type = "tackle"
	TypeInterception Type = "interception"
	TypeBlock        Type = "block"
	TypeClearance    Type = "clearance"
	TypeDribble      Type = "dribble"
	TypePressure     Type = "pressure"
	TypeCarry        Type = "carry"
	TypeUnknown      Type = "unknown"
)

var knownTypes = map[string]Type{
	"pass":         TypePass,
	"shot":         TypeShot,
	"tackle":       TypeTackle,
	"duel":         TypeTackle,
	"interception": TypeInterception,
	"block":        TypeBlock,
	"clearance":    TypeClearance,
	"dribble":      TypeDribble,
	"pressure":     TypePressure,
	"carry":        TypeCarry,
}

func ParseType(raw string) Type {
	if t, ok := knownTypes[normalize(raw)]; ok {
		return t
	}
	return TypeUnknown
}

// Outcome is the closed set of event results.
type Outcome string

const (
	OutcomeGoal       Outcome = "goal"
	OutcomeSaved      Outcome = "saved"
	OutcomeMissed     Outcome = "missed"
	OutcomeBlocked    Outcome = "blocked"
	OutcomePost       Outcome = "post"
	OutcomeComplete   Outcome = "complete"
	OutcomeIncomplete Outcome = "incomplete"
	OutcomeWon        Outcome = "won"
	OutcomeLost       Outcome = "lost"
	OutcomeUnknown    Outcome = "unknown"
)

var outcomeAliases = map[string]Outcome{
	"goal":             OutcomeGoal,
	"saved":            OutcomeSaved,
	"saved to post":    OutcomePost,
	"post":             OutcomePost,
	"missed":           OutcomeMissed,
	"off t":            OutcomeMissed,
	"off target":       OutcomeMissed,
	"wayward":          OutcomeMissed,
	"saved off target": OutcomeMissed,
	"blocked":          OutcomeBlocked,
	"complete":         OutcomeComplete,
	"completed":        OutcomeComplete,
	"success":          OutcomeComplete,
	"incomplete":       OutcomeIncomplete,
	"out":              OutcomeIncomplete,
	"pass offside":     OutcomeIncomplete,
	"won":              OutcomeWon,
	"success in play":  OutcomeWon,
	"successful":       OutcomeWon,
	"lost":             OutcomeLost,
	"lost in play":     OutcomeLost,
	"lost out":         OutcomeLost,
	"fail":             OutcomeLost,
}

// ParseOutcome maps a provider outcome onto the closed set. A pass without
// an outcome is complete, following the common event-feed convention.
func ParseOutcome(t Type, raw string) Outcome {
	key := normalize(raw)
	if key == "" && t == TypePass {
		return OutcomeComplete
	}
	if o, ok := outcomeAliases[key]; ok {
		return o
	}
	return OutcomeUnknown
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Event is one on-pitch action. Coordinates are percentages of pitch length
// (X, attacking left to right) and width (Y).
type Event struct {
	ID             string
	MatchID        string
	PlayerID       string
	TeamID         string
	Type           Type
	Minute         int
	Second         int
	X              float64
	Y              float64
	Outcome        Outcome
	RawOutcome     string
	Value          opt.Value[float64]
	EndX           opt.Value[float64]
	EndY           opt.Value[float64]
	RecipientID    opt.Value[string]
	AssistPlayerID opt.Value[string]
	// Seq is the insertion order inside the store; it breaks minute ties.
	Seq int64
}

func (e Event) IsShot() bool { return e.Type == TypeShot }

func (e Event) IsGoal() bool { return e.Type == TypeShot && e.Outcome == OutcomeGoal }

func (e Event) OnTarget() bool {
	return e.Type == TypeShot && (e.Outcome == OutcomeGoal || e.Outcome == OutcomeSaved)
}

func (e Event) IsPass() bool { return e.Type == TypePass }

func (e Event) IsCompletedPass() bool {
	return e.Type == TypePass && e.Outcome == OutcomeComplete
}

// XG is the shot value; non-shots have none.
func (e Event) XG() float64 {
	if e.Type != TypeShot {
		return 0
	}
	return e.Value.OrElse(0)
}

func (e Event) IsDefensiveAction() bool {
	switch e.Type {
	case TypeTackle, TypeInterception, TypeBlock, TypeClearance:
		return true
	default:
		return false
	}
}

// OnBall reports events in which the player touches the ball.
func (e Event) OnBall() bool {
	switch e.Type {
	case TypePressure, TypeUnknown:
		return false
	default:
		return true
	}
}

// Succeeded returns whether the action worked; Absent when the type has no
// binary outcome.
func (e Event) Succeeded() opt.Value[bool] {
	switch e.Outcome {
	case OutcomeGoal, OutcomeComplete, OutcomeWon:
		return opt.Present(true)
	case OutcomeSaved, OutcomeMissed, OutcomeBlocked, OutcomePost, OutcomeIncomplete, OutcomeLost:
		return opt.Present(false)
	default:
		return opt.Absent[bool]()
	}
}

// IsProgressive reports a completed pass that cuts the distance to the
// opponent goal centre by at least a quarter.
func (e Event) IsProgressive() bool {
	if !e.IsCompletedPass() {
		return false
	}
	endX, okX := e.EndX.Get()
	endY, okY := e.EndY.Get()
	if !okX || !okY {
		return false
	}
	before := math.Hypot(100-e.X, 50-e.Y)
	after := math.Hypot(100-endX, 50-endY)
	return before > 0 && after <= 0.75*before
}

// Validate rejects events that would break downstream invariants. Values are
// never clamped.
func Validate(e Event) error {
	if e.ID == "" {
		return analytics.InvalidValue("event id is required")
	}
	if e.MatchID == "" || e.TeamID == "" {
		return analytics.InvalidValue("event %s requires match and team", e.ID)
	}
	if e.Minute < 0 || e.Second < 0 || e.Second > 59 {
		return analytics.InvalidValue("event %s has invalid clock %d:%02d", e.ID, e.Minute, e.Second)
	}
	if !inPitch(e.X) || !inPitch(e.Y) {
		return analytics.InvalidValue("event %s coordinates (%v, %v) outside [0,100]", e.ID, e.X, e.Y)
	}
	if v, ok := e.EndX.Get(); ok && !inPitch(v) {
		return analytics.InvalidValue("event %s end x %v outside [0,100]", e.ID, v)
	}
	if v, ok := e.EndY.Get(); ok && !inPitch(v) {
		return analytics.InvalidValue("event %s end y %v outside [0,100]", e.ID, v)
	}

	value, hasValue := e.Value.Get()
	if hasValue && (math.IsNaN(value) || math.IsInf(value, 0)) {
		return analytics.InvalidValue("event %s value is not finite", e.ID)
	}
	if e.Type == TypeShot {
		if !hasValue {
			return analytics.InvalidValue("shot %s is missing xg", e.ID)
		}
		if value < 0 || value > 1 {
			return analytics.InvalidValue("shot %s xg %v outside [0,1]", e.ID, value)
		}
	}
	return nil
}

func inPitch(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 100
}

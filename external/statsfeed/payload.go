package statsfeed

import (
	"strings"

	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

type eventsEnvelope struct {
	Data       []feedEvent `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

type appearancesEnvelope struct {
	Data       []feedAppearance `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

type Pagination struct {
	Count       int  `json:"count"`
	PerPage     int  `json:"per_page"`
	CurrentPage int  `json:"current_page"`
	HasMore     bool `json:"has_more"`
}

type feedEvent struct {
	ID             string             `json:"id"`
	Seq            int64              `json:"seq"`
	MatchID        string             `json:"match_id"`
	PlayerID       string             `json:"player_id"`
	TeamID         string             `json:"team_id"`
	Type           string             `json:"type"`
	Minute         int                `json:"minute"`
	Second         int                `json:"second"`
	X              float64            `json:"x"`
	Y              float64            `json:"y"`
	Outcome        string             `json:"outcome"`
	Value          opt.Value[float64] `json:"value"`
	EndX           opt.Value[float64] `json:"end_x"`
	EndY           opt.Value[float64] `json:"end_y"`
	RecipientID    opt.Value[string]  `json:"recipient_id"`
	AssistPlayerID opt.Value[string]  `json:"assist_player_id"`
}

type feedAppearance struct {
	MatchID       string `json:"match_id"`
	PlayerID      string `json:"player_id"`
	TeamID        string `json:"team_id"`
	MinutesPlayed int    `json:"minutes_played"`
}

// toEvent maps one feed row. offset keeps seq unique across pages when the
// provider omits it.
func (f feedEvent) toEvent(offset int) event.Event {
	typ := event.ParseType(f.Type)
	seq := f.Seq
	if seq <= 0 {
		seq = int64(offset + 1)
	}
	return event.Event{
		ID:             strings.TrimSpace(f.ID),
		MatchID:        strings.TrimSpace(f.MatchID),
		PlayerID:       strings.TrimSpace(f.PlayerID),
		TeamID:         strings.TrimSpace(f.TeamID),
		Type:           typ,
		Minute:         f.Minute,
		Second:         f.Second,
		X:              f.X,
		Y:              f.Y,
		Outcome:        event.ParseOutcome(typ, f.Outcome),
		RawOutcome:     f.Outcome,
		Value:          f.Value,
		EndX:           f.EndX,
		EndY:           f.EndY,
		RecipientID:    f.RecipientID,
		AssistPlayerID: f.AssistPlayerID,
		Seq:            seq,
	}
}

func (f feedAppearance) toAppearance() event.Appearance {
	return event.Appearance{
		MatchID:       strings.TrimSpace(f.MatchID),
		PlayerID:      strings.TrimSpace(f.PlayerID),
		TeamID:        strings.TrimSpace(f.TeamID),
		MinutesPlayed: f.MinutesPlayed,
	}
}

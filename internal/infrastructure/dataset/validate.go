package dataset

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
)

// Problem is one rejected record.
type Problem struct {
	Entity string
	ID     string
	Err    error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s %s: %v", p.Entity, p.ID, p.Err)
}

type Report struct {
	Counts   Counts
	Problems []Problem
}

func (r Report) OK() bool { return len(r.Problems) == 0 }

// Err folds problems into one error marked as an invalid metric value.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	lines := make([]string, 0, min(len(r.Problems), 5))
	for _, p := range r.Problems[:min(len(r.Problems), 5)] {
		lines = append(lines, p.String())
	}
	return analytics.InvalidValue("dataset rejected %d records: %s", len(r.Problems), strings.Join(lines, "; "))
}

// Validate checks every record and every reference between records.
// Nothing is clamped or dropped.
func Validate(ds Dataset) Report {
	rep := Report{Counts: ds.Counts()}
	add := func(entity, id string, err error) {
		rep.Problems = append(rep.Problems, Problem{Entity: entity, ID: id, Err: err})
	}

	competitions := make(map[string]struct{}, len(ds.Competitions))
	for _, c := range ds.Competitions {
		if err := c.Validate(); err != nil {
			add("competition", c.ID, err)
			continue
		}
		if _, dup := competitions[c.ID]; dup {
			add("competition", c.ID, fmt.Errorf("duplicate id"))
		}
		competitions[c.ID] = struct{}{}
	}

	seasons := make(map[[2]string]struct{}, len(ds.Seasons))
	for _, s := range ds.Seasons {
		if err := s.Validate(); err != nil {
			add("season", s.ID, err)
			continue
		}
		if _, ok := competitions[s.CompetitionID]; !ok {
			add("season", s.ID, fmt.Errorf("unknown competition %s", s.CompetitionID))
		}
		key := [2]string{s.CompetitionID, s.ID}
		if _, dup := seasons[key]; dup {
			add("season", s.ID, fmt.Errorf("duplicate id in competition %s", s.CompetitionID))
		}
		seasons[key] = struct{}{}
	}

	teams := make(map[string]struct{}, len(ds.Teams))
	for _, t := range ds.Teams {
		if err := t.Validate(); err != nil {
			add("team", t.ID, err)
			continue
		}
		if _, dup := teams[t.ID]; dup {
			add("team", t.ID, fmt.Errorf("duplicate id"))
		}
		teams[t.ID] = struct{}{}
	}

	players := make(map[string]struct{}, len(ds.Players))
	for _, p := range ds.Players {
		if err := p.Validate(); err != nil {
			add("player", p.ID, err)
			continue
		}
		if _, ok := teams[p.TeamID]; !ok {
			add("player", p.ID, fmt.Errorf("unknown team %s", p.TeamID))
		}
		if _, dup := players[p.ID]; dup {
			add("player", p.ID, fmt.Errorf("duplicate id"))
		}
		players[p.ID] = struct{}{}
	}

	matchTeams := make(map[string][2]string, len(ds.Matches))
	for _, m := range ds.Matches {
		if err := m.Validate(); err != nil {
			add("match", m.ID, err)
			continue
		}
		if _, ok := seasons[[2]string{m.CompetitionID, m.SeasonID}]; !ok {
			add("match", m.ID, fmt.Errorf("unknown season %s/%s", m.CompetitionID, m.SeasonID))
		}
		for _, id := range []string{m.HomeTeamID, m.AwayTeamID} {
			if _, ok := teams[id]; !ok {
				add("match", m.ID, fmt.Errorf("unknown team %s", id))
			}
		}
		if _, dup := matchTeams[m.ID]; dup {
			add("match", m.ID, fmt.Errorf("duplicate id"))
		}
		matchTeams[m.ID] = [2]string{m.HomeTeamID, m.AwayTeamID}
	}

	checkSide := func(matchID, teamID string) error {
		sides, ok := matchTeams[matchID]
		if !ok {
			return fmt.Errorf("unknown match %s", matchID)
		}
		if teamID != sides[0] && teamID != sides[1] {
			return fmt.Errorf("team %s did not play match %s", teamID, matchID)
		}
		return nil
	}

	for _, a := range ds.Appearances {
		id := a.MatchID + "/" + a.PlayerID
		if err := event.ValidateAppearance(a); err != nil {
			add("appearance", id, err)
			continue
		}
		if _, ok := players[a.PlayerID]; !ok {
			add("appearance", id, fmt.Errorf("unknown player %s", a.PlayerID))
		}
		if err := checkSide(a.MatchID, a.TeamID); err != nil {
			add("appearance", id, err)
		}
	}

	eventIDs := make(map[string]struct{}, len(ds.Events))
	for _, e := range ds.Events {
		if err := event.Validate(e); err != nil {
			add("event", e.ID, err)
			continue
		}
		if _, dup := eventIDs[e.ID]; dup {
			add("event", e.ID, fmt.Errorf("duplicate id"))
		}
		eventIDs[e.ID] = struct{}{}
		if err := checkSide(e.MatchID, e.TeamID); err != nil {
			add("event", e.ID, err)
		}
		for _, ref := range []string{e.PlayerID, e.RecipientID.OrElse(""), e.AssistPlayerID.OrElse("")} {
			if ref == "" {
				continue
			}
			if _, ok := players[ref]; !ok {
				add("event", e.ID, fmt.Errorf("unknown player %s", ref))
			}
		}
	}

	return rep
}

// IsRejected reports a dataset load that failed validation.
func IsRejected(err error) bool {
	return errors.Is(err, analytics.ErrInvalidMetricValue)
}

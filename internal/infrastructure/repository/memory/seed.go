package memory

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	"github.com/riskibarqy/match-analytics/internal/infrastructure/dataset"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

const (
	CompetitionIDPremierLeague = "eng-premier-league"
	SeasonID2023               = "2023-2024"
	SeasonID2024               = "2024-2025"

	seedPCG1 = 0x5eed
	seedPCG2 = 0xba11
)

type seedSquad struct {
	team    team.Team
	players []player.Player
	// strength tilts territory and chance quality, 1 is average
	strength float64
}

var seedSquadSpecs = []struct {
	id, name string
	strength float64
}{
	{"eng-ars", "Arsenal", 1.25},
	{"eng-liv", "Liverpool", 1.2},
	{"eng-mci", "Manchester City", 1.3},
	{"eng-che", "Chelsea", 1.0},
	{"eng-tot", "Tottenham Hotspur", 0.95},
}

var seedSeasonTeams = map[string][]string{
	SeasonID2023: {"eng-ars", "eng-liv", "eng-tot"},
	SeasonID2024: {"eng-ars", "eng-liv", "eng-mci", "eng-che"},
}

var seedPositions = []string{"Goalkeeper", "Center Back", "Center Back", "Center Midfield", "Attacking Midfield", "Center Forward", "Substitute"}

// Seed builds a small deterministic dataset for local development and tests.
// The same call always yields the same dataset.
func Seed() dataset.Dataset {
	rng := rand.New(rand.NewPCG(seedPCG1, seedPCG2))

	squads := make(map[string]*seedSquad, len(seedSquadSpecs))
	ds := dataset.Dataset{
		Competitions: []competition.Competition{{
			ID:          CompetitionIDPremierLeague,
			Name:        "Premier League",
			CountryName: opt.Present("England"),
			Gender:      opt.Present("male"),
		}},
		Seasons: []competition.Season{
			{ID: SeasonID2023, CompetitionID: CompetitionIDPremierLeague, Name: "2023/2024"},
			{ID: SeasonID2024, CompetitionID: CompetitionIDPremierLeague, Name: "2024/2025"},
		},
	}

	for _, spec := range seedSquadSpecs {
		sq := &seedSquad{
			team:     team.Team{ID: spec.id, Name: spec.name, LogoURL: opt.Present("https://static.example.com/logos/" + spec.id + ".png")},
			strength: spec.strength,
		}
		for i, pos := range seedPositions {
			sq.players = append(sq.players, player.Player{
				ID:       fmt.Sprintf("%s-%02d", spec.id, i+1),
				Name:     fmt.Sprintf("%s Player %d", spec.name, i+1),
				Position: opt.Present(pos),
				TeamID:   spec.id,
			})
		}
		squads[spec.id] = sq
		ds.Teams = append(ds.Teams, sq.team)
		ds.Players = append(ds.Players, sq.players...)
	}

	g := &seedGenerator{rng: rng, ds: &ds}
	for _, seasonID := range []string{SeasonID2023, SeasonID2024} {
		start := time.Date(2023, 8, 12, 0, 0, 0, 0, time.UTC)
		if seasonID == SeasonID2024 {
			start = time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)
		}
		fixtures := roundRobin(seedSeasonTeams[seasonID])
		for i, fx := range fixtures {
			m := match.Match{
				ID:            fmt.Sprintf("%s-m%02d", seasonID, i+1),
				Date:          start.AddDate(0, 0, 7*(i/2)),
				KickOff:       opt.Present("15:00:00.000"),
				HomeTeamID:    fx[0],
				AwayTeamID:    fx[1],
				CompetitionID: CompetitionIDPremierLeague,
				SeasonID:      seasonID,
				MatchWeek:     opt.Present(i/2 + 1),
				StadiumName:   opt.Present(squads[fx[0]].team.Name + " Stadium"),
			}
			// the last fixture of the current season is still to be played
			if seasonID == SeasonID2024 && i == len(fixtures)-1 {
				ds.Matches = append(ds.Matches, m)
				continue
			}
			ds.Matches = append(ds.Matches, g.play(m, squads[fx[0]], squads[fx[1]]))
		}
	}

	return ds
}

// roundRobin pairs every team home and away.
func roundRobin(teamIDs []string) [][2]string {
	out := make([][2]string, 0, len(teamIDs)*(len(teamIDs)-1))
	for _, home := range teamIDs {
		for _, away := range teamIDs {
			if home != away {
				out = append(out, [2]string{home, away})
			}
		}
	}
	return out
}

type seedGenerator struct {
	rng *rand.Rand
	ds  *dataset.Dataset
	seq int64
}

func (g *seedGenerator) play(m match.Match, home, away *seedSquad) match.Match {
	goals := map[string]int{home.team.ID: 0, away.team.ID: 0}

	for _, sq := range []*seedSquad{home, away} {
		for i, p := range sq.players {
			minutes := 90
			switch {
			case i == len(sq.players)-1:
				minutes = 0
			case i == len(sq.players)-2:
				minutes = 60 + g.rng.IntN(31)
			}
			g.ds.Appearances = append(g.ds.Appearances, event.Appearance{
				MatchID:       m.ID,
				PlayerID:      p.ID,
				TeamID:        sq.team.ID,
				MinutesPlayed: minutes,
			})
		}
	}

	homeShare := home.strength * 1.08 / (home.strength*1.08 + away.strength)
	for minute := 0; minute < 94; minute++ {
		for second := 0; second < 60; second += 12 {
			atk, def := away, home
			if g.rng.Float64() < homeShare {
				atk, def = home, away
			}
			if g.actionAt(m.ID, minute, second, atk, def) {
				goals[atk.team.ID]++
			}
		}
	}

	m.HomeScore = opt.Present(goals[home.team.ID])
	m.AwayScore = opt.Present(goals[away.team.ID])
	return m
}

// actionAt emits one short passage of play and reports a goal.
func (g *seedGenerator) actionAt(matchID string, minute, second int, atk, def *seedSquad) bool {
	outfield := atk.players[1 : len(atk.players)-1]
	passer := outfield[g.rng.IntN(len(outfield))]
	x := 15 + g.rng.Float64()*70
	y := 5 + g.rng.Float64()*90

	roll := g.rng.Float64()
	switch {
	case roll < 0.72:
		receiver := outfield[g.rng.IntN(len(outfield))]
		if receiver.ID == passer.ID {
			receiver = atk.players[0]
		}
		endX := clampPitch(x + (g.rng.Float64()*40 - 12))
		endY := clampPitch(y + (g.rng.Float64()*40 - 20))
		outcome := "Complete"
		if g.rng.Float64() > 0.78+0.08*(atk.strength-1) {
			outcome = "Incomplete"
		}
		e := g.event(matchID, passer, event.TypePass, minute, second, x, y, outcome)
		e.EndX, e.EndY = opt.Present(endX), opt.Present(endY)
		if outcome == "Complete" {
			e.RecipientID = opt.Present(receiver.ID)
		}
		g.ds.Events = append(g.ds.Events, e)

		if outcome == "Complete" && endX > 78 && g.rng.Float64() < 0.35 {
			return g.shot(matchID, receiver, passer.ID, minute, second+6, endX, endY, atk)
		}
	case roll < 0.80:
		shooter := atk.players[3+g.rng.IntN(3)]
		return g.shot(matchID, shooter, "", minute, second, 70+g.rng.Float64()*28, 25+g.rng.Float64()*50, atk)
	case roll < 0.92:
		kinds := []event.Type{event.TypeTackle, event.TypeInterception, event.TypeBlock, event.TypeClearance}
		defender := def.players[1+g.rng.IntN(4)]
		kind := kinds[g.rng.IntN(len(kinds))]
		outcome := ""
		if kind == event.TypeTackle {
			outcome = "Won"
			if g.rng.Float64() < 0.4 {
				outcome = "Lost"
			}
		}
		g.ds.Events = append(g.ds.Events, g.event(matchID, defender, kind, minute, second, 100-x, 100-y, outcome))
	case roll < 0.97:
		presser := def.players[1+g.rng.IntN(5)]
		g.ds.Events = append(g.ds.Events, g.event(matchID, presser, event.TypePressure, minute, second, 100-x, 100-y, ""))
	default:
		outcome := "Success In Play"
		if g.rng.Float64() < 0.45 {
			outcome = "Lost In Play"
		}
		g.ds.Events = append(g.ds.Events, g.event(matchID, passer, event.TypeDribble, minute, second, x, y, outcome))
	}
	return false
}

func (g *seedGenerator) shot(matchID string, shooter player.Player, assist string, minute, second int, x, y float64, atk *seedSquad) bool {
	if second > 59 {
		second = 59
	}
	xg := min(0.95, (0.02+g.rng.Float64()*0.3)*atk.strength)
	outcome := "Goal"
	r := g.rng.Float64()
	switch {
	case r < xg:
	case r < xg+0.3:
		outcome = "Saved"
	case r < xg+0.5:
		outcome = "Blocked"
	case r < xg+0.53:
		outcome = "Saved to Post"
	default:
		outcome = "Off T"
	}

	e := g.event(matchID, shooter, event.TypeShot, minute, second, x, y, outcome)
	e.Value = opt.Present(xg)
	if outcome == "Goal" && assist != "" {
		e.AssistPlayerID = opt.Present(assist)
	}
	g.ds.Events = append(g.ds.Events, e)
	return outcome == "Goal"
}

func (g *seedGenerator) event(matchID string, p player.Player, typ event.Type, minute, second int, x, y float64, rawOutcome string) event.Event {
	g.seq++
	return event.Event{
		ID:         fmt.Sprintf("%s-e%05d", matchID, g.seq),
		MatchID:    matchID,
		PlayerID:   p.ID,
		TeamID:     p.TeamID,
		Type:       typ,
		Minute:     minute,
		Second:     second,
		X:          clampPitch(x),
		Y:          clampPitch(y),
		Outcome:    event.ParseOutcome(typ, rawOutcome),
		RawOutcome: rawOutcome,
		Seq:        g.seq,
	}
}

// clampPitch keeps generated coordinates on the pitch. It is only used to
// synthesize seed data; ingested events are validated, never clamped.
func clampPitch(v float64) float64 {
	return min(100, max(0, v))
}

package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

const matchDateLayout = "2006-01-02"

type fileCompetition struct {
	ID          string            `json:"competition_id"`
	Name        string            `json:"competition_name"`
	CountryName opt.Value[string] `json:"country_name"`
	Gender      opt.Value[string] `json:"competition_gender"`
}

type fileSeason struct {
	CompetitionID string `json:"competition_id"`
	ID            string `json:"season_id"`
	Name          string `json:"season_name"`
}

type fileTeam struct {
	ID      string            `json:"team_id"`
	Name    string            `json:"team_name"`
	LogoURL opt.Value[string] `json:"logo_url"`
}

type filePlayer struct {
	ID       string            `json:"player_id"`
	Name     string            `json:"player_name"`
	Position opt.Value[string] `json:"position_name"`
	TeamID   string            `json:"team_id"`
}

type fileMatch struct {
	ID            string            `json:"match_id"`
	Date          string            `json:"match_date"`
	KickOff       opt.Value[string] `json:"kick_off"`
	HomeTeamID    string            `json:"home_team_id"`
	AwayTeamID    string            `json:"away_team_id"`
	HomeScore     opt.Value[int]    `json:"home_score"`
	AwayScore     opt.Value[int]    `json:"away_score"`
	CompetitionID string            `json:"competition_id"`
	SeasonID      string            `json:"season_id"`
	MatchWeek     opt.Value[int]    `json:"match_week"`
	StadiumName   opt.Value[string] `json:"stadium_name"`
}

type fileAppearance struct {
	MatchID       string `json:"match_id"`
	PlayerID      string `json:"player_id"`
	TeamID        string `json:"team_id"`
	MinutesPlayed int    `json:"minutes_played"`
}

type fileEvent struct {
	ID             string             `json:"id"`
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

type file struct {
	Competitions []fileCompetition `json:"competitions"`
	Seasons      []fileSeason      `json:"seasons"`
	Teams        []fileTeam        `json:"teams"`
	Players      []filePlayer      `json:"players"`
	Matches      []fileMatch       `json:"matches"`
	Appearances  []fileAppearance  `json:"appearances"`
	Events       []fileEvent       `json:"events"`
}

// ReadFile decodes a dataset file without validating it.
func ReadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) (Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}

	var doc file
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return fromFile(doc)
}

// Load reads, validates and returns a dataset. Any rejected record fails
// the whole load.
func Load(path string) (Dataset, error) {
	ds, err := ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	if report := Validate(ds); !report.OK() {
		return Dataset{}, report.Err()
	}
	return ds, nil
}

func fromFile(doc file) (Dataset, error) {
	ds := Dataset{
		Competitions: make([]competition.Competition, 0, len(doc.Competitions)),
		Seasons:      make([]competition.Season, 0, len(doc.Seasons)),
		Teams:        make([]team.Team, 0, len(doc.Teams)),
		Players:      make([]player.Player, 0, len(doc.Players)),
		Matches:      make([]match.Match, 0, len(doc.Matches)),
		Appearances:  make([]event.Appearance, 0, len(doc.Appearances)),
		Events:       make([]event.Event, 0, len(doc.Events)),
	}

	for _, c := range doc.Competitions {
		ds.Competitions = append(ds.Competitions, competition.Competition{
			ID:          strings.TrimSpace(c.ID),
			Name:        strings.TrimSpace(c.Name),
			CountryName: c.CountryName,
			Gender:      c.Gender,
		})
	}
	for _, s := range doc.Seasons {
		ds.Seasons = append(ds.Seasons, competition.Season{
			ID:            strings.TrimSpace(s.ID),
			CompetitionID: strings.TrimSpace(s.CompetitionID),
			Name:          strings.TrimSpace(s.Name),
		})
	}
	for _, t := range doc.Teams {
		ds.Teams = append(ds.Teams, team.Team{ID: strings.TrimSpace(t.ID), Name: strings.TrimSpace(t.Name), LogoURL: t.LogoURL})
	}
	for _, p := range doc.Players {
		ds.Players = append(ds.Players, player.Player{
			ID:       strings.TrimSpace(p.ID),
			Name:     strings.TrimSpace(p.Name),
			Position: p.Position,
			TeamID:   strings.TrimSpace(p.TeamID),
		})
	}
	for _, m := range doc.Matches {
		date, err := time.Parse(matchDateLayout, strings.TrimSpace(m.Date))
		if err != nil {
			return Dataset{}, fmt.Errorf("match %s: parse match_date %q: %w", m.ID, m.Date, err)
		}
		ds.Matches = append(ds.Matches, match.Match{
			ID:            strings.TrimSpace(m.ID),
			Date:          date,
			KickOff:       m.KickOff,
			HomeTeamID:    strings.TrimSpace(m.HomeTeamID),
			AwayTeamID:    strings.TrimSpace(m.AwayTeamID),
			HomeScore:     m.HomeScore,
			AwayScore:     m.AwayScore,
			CompetitionID: strings.TrimSpace(m.CompetitionID),
			SeasonID:      strings.TrimSpace(m.SeasonID),
			MatchWeek:     m.MatchWeek,
			StadiumName:   m.StadiumName,
		})
	}
	for _, a := range doc.Appearances {
		ds.Appearances = append(ds.Appearances, event.Appearance{
			MatchID:       strings.TrimSpace(a.MatchID),
			PlayerID:      strings.TrimSpace(a.PlayerID),
			TeamID:        strings.TrimSpace(a.TeamID),
			MinutesPlayed: a.MinutesPlayed,
		})
	}
	for i, e := range doc.Events {
		typ := event.ParseType(e.Type)
		ds.Events = append(ds.Events, event.Event{
			ID:             strings.TrimSpace(e.ID),
			MatchID:        strings.TrimSpace(e.MatchID),
			PlayerID:       strings.TrimSpace(e.PlayerID),
			TeamID:         strings.TrimSpace(e.TeamID),
			Type:           typ,
			Minute:         e.Minute,
			Second:         e.Second,
			X:              e.X,
			Y:              e.Y,
			Outcome:        event.ParseOutcome(typ, e.Outcome),
			RawOutcome:     e.Outcome,
			Value:          e.Value,
			EndX:           e.EndX,
			EndY:           e.EndY,
			RecipientID:    e.RecipientID,
			AssistPlayerID: e.AssistPlayerID,
			Seq:            int64(i + 1),
		})
	}
	return ds, nil
}

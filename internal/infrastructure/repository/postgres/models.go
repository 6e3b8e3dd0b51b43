package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/match-analytics/internal/domain/competition"
	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/riskibarqy/match-analytics/internal/domain/match"
	"github.com/riskibarqy/match-analytics/internal/domain/player"
	"github.com/riskibarqy/match-analytics/internal/domain/team"
)

type competitionTableModel struct {
	CompetitionID string         `db:"competition_id"`
	Name          string         `db:"competition_name"`
	CountryName   sql.NullString `db:"country_name"`
	Gender        sql.NullString `db:"gender"`
}

type seasonTableModel struct {
	CompetitionID string `db:"competition_id"`
	SeasonID      string `db:"season_id"`
	Name          string `db:"season_name"`
}

type teamTableModel struct {
	TeamID  string         `db:"team_id"`
	Name    string         `db:"team_name"`
	LogoURL sql.NullString `db:"logo_url"`
}

type playerTableModel struct {
	PlayerID string         `db:"player_id"`
	Name     string         `db:"player_name"`
	Position sql.NullString `db:"position_name"`
	TeamID   string         `db:"team_id"`
}

type matchTableModel struct {
	MatchID       string         `db:"match_id"`
	MatchDate     time.Time      `db:"match_date"`
	KickOff       sql.NullString `db:"kick_off"`
	HomeTeamID    string         `db:"home_team_id"`
	AwayTeamID    string         `db:"away_team_id"`
	HomeScore     sql.NullInt64  `db:"home_score"`
	AwayScore     sql.NullInt64  `db:"away_score"`
	CompetitionID string         `db:"competition_id"`
	SeasonID      string         `db:"season_id"`
	MatchWeek     sql.NullInt64  `db:"match_week"`
	StadiumName   sql.NullString `db:"stadium_name"`
}

type appearanceTableModel struct {
	MatchID       string `db:"match_id"`
	PlayerID      string `db:"player_id"`
	TeamID        string `db:"team_id"`
	MinutesPlayed int    `db:"minutes_played"`
}

// eventTableModel maps the events table. Imports pass seq explicitly so the
// file order survives the round trip.
type eventTableModel struct {
	Seq            int64           `db:"seq"`
	EventID        string          `db:"event_id"`
	MatchID        string          `db:"match_id"`
	PlayerID       string          `db:"player_id"`
	TeamID         string          `db:"team_id"`
	EventType      string          `db:"event_type"`
	Minute         int             `db:"minute"`
	Second         int             `db:"second"`
	X              float64         `db:"x"`
	Y              float64         `db:"y"`
	Outcome        string          `db:"outcome"`
	RawOutcome     string          `db:"raw_outcome"`
	Value          sql.NullFloat64 `db:"value"`
	EndX           sql.NullFloat64 `db:"end_x"`
	EndY           sql.NullFloat64 `db:"end_y"`
	RecipientID    sql.NullString  `db:"recipient_id"`
	AssistPlayerID sql.NullString  `db:"assist_player_id"`
}

var (
	competitionColumns = []string{"competition_id", "competition_name", "country_name", "gender"}
	seasonColumns      = []string{"competition_id", "season_id", "season_name"}
	teamColumns        = []string{"team_id", "team_name", "logo_url"}
	playerColumns      = []string{"player_id", "player_name", "position_name", "team_id"}
	matchColumns       = []string{
		"match_id", "match_date", "kick_off", "home_team_id", "away_team_id", "home_score", "away_score",
		"competition_id", "season_id", "match_week", "stadium_name",
	}
	appearanceColumns = []string{"match_id", "player_id", "team_id", "minutes_played"}
	eventColumns      = []string{
		"seq", "event_id", "match_id", "player_id", "team_id", "event_type", "minute", "second", "x", "y",
		"outcome", "raw_outcome", "value", "end_x", "end_y", "recipient_id", "assist_player_id",
	}
)

func competitionFromRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:          row.CompetitionID,
		Name:        row.Name,
		CountryName: optString(row.CountryName),
		Gender:      optString(row.Gender),
	}
}

func competitionToRow(c competition.Competition) competitionTableModel {
	return competitionTableModel{
		CompetitionID: c.ID,
		Name:          c.Name,
		CountryName:   nullString(c.CountryName),
		Gender:        nullString(c.Gender),
	}
}

func seasonFromRow(row seasonTableModel) competition.Season {
	return competition.Season{ID: row.SeasonID, CompetitionID: row.CompetitionID, Name: row.Name}
}

func seasonToRow(s competition.Season) seasonTableModel {
	return seasonTableModel{CompetitionID: s.CompetitionID, SeasonID: s.ID, Name: s.Name}
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{ID: row.TeamID, Name: row.Name, LogoURL: optString(row.LogoURL)}
}

func teamToRow(t team.Team) teamTableModel {
	return teamTableModel{TeamID: t.ID, Name: t.Name, LogoURL: nullString(t.LogoURL)}
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{ID: row.PlayerID, Name: row.Name, Position: optString(row.Position), TeamID: row.TeamID}
}

func playerToRow(p player.Player) playerTableModel {
	return playerTableModel{PlayerID: p.ID, Name: p.Name, Position: nullString(p.Position), TeamID: p.TeamID}
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.MatchID,
		Date:          row.MatchDate.UTC(),
		KickOff:       optString(row.KickOff),
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		HomeScore:     optInt(row.HomeScore),
		AwayScore:     optInt(row.AwayScore),
		CompetitionID: row.CompetitionID,
		SeasonID:      row.SeasonID,
		MatchWeek:     optInt(row.MatchWeek),
		StadiumName:   optString(row.StadiumName),
	}
}

func matchToRow(m match.Match) matchTableModel {
	return matchTableModel{
		MatchID:       m.ID,
		MatchDate:     m.Date.UTC(),
		KickOff:       nullString(m.KickOff),
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		HomeScore:     nullInt(m.HomeScore),
		AwayScore:     nullInt(m.AwayScore),
		CompetitionID: m.CompetitionID,
		SeasonID:      m.SeasonID,
		MatchWeek:     nullInt(m.MatchWeek),
		StadiumName:   nullString(m.StadiumName),
	}
}

func appearanceFromRow(row appearanceTableModel) event.Appearance {
	return event.Appearance{MatchID: row.MatchID, PlayerID: row.PlayerID, TeamID: row.TeamID, MinutesPlayed: row.MinutesPlayed}
}

func appearanceToRow(a event.Appearance) appearanceTableModel {
	return appearanceTableModel{MatchID: a.MatchID, PlayerID: a.PlayerID, TeamID: a.TeamID, MinutesPlayed: a.MinutesPlayed}
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:             row.EventID,
		MatchID:        row.MatchID,
		PlayerID:       row.PlayerID,
		TeamID:         row.TeamID,
		Type:           event.ParseType(row.EventType),
		Minute:         row.Minute,
		Second:         row.Second,
		X:              row.X,
		Y:              row.Y,
		Outcome:        event.Outcome(row.Outcome),
		RawOutcome:     row.RawOutcome,
		Value:          optFloat(row.Value),
		EndX:           optFloat(row.EndX),
		EndY:           optFloat(row.EndY),
		RecipientID:    optString(row.RecipientID),
		AssistPlayerID: optString(row.AssistPlayerID),
		Seq:            row.Seq,
	}
}

func eventToRow(e event.Event) eventTableModel {
	return eventTableModel{
		Seq:            e.Seq,
		EventID:        e.ID,
		MatchID:        e.MatchID,
		PlayerID:       e.PlayerID,
		TeamID:         e.TeamID,
		EventType:      string(e.Type),
		Minute:         e.Minute,
		Second:         e.Second,
		X:              e.X,
		Y:              e.Y,
		Outcome:        string(e.Outcome),
		RawOutcome:     e.RawOutcome,
		Value:          nullFloat(e.Value),
		EndX:           nullFloat(e.EndX),
		EndY:           nullFloat(e.EndY),
		RecipientID:    nullString(e.RecipientID),
		AssistPlayerID: nullString(e.AssistPlayerID),
	}
}

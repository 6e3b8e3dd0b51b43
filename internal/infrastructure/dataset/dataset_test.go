package dataset

import (
	"strings"
	"testing"

	"github.com/riskibarqy/match-analytics/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `{
  "competitions": [{"competition_id": "11", "competition_name": "La Liga", "country_name": "Spain"}],
  "seasons": [{"competition_id": "11", "season_id": "90", "season_name": "2020/2021"}],
  "teams": [{"team_id": "217", "team_name": "Barcelona"}, {"team_id": "220", "team_name": "Cadiz", "logo_url": "https://img/220.png"}],
  "players": [
    {"player_id": "5503", "player_name": "Lionel Messi", "position_name": "Right Wing", "team_id": "217"},
    {"player_id": "5470", "player_name": "Ivan Rakitic", "team_id": "217"},
    {"player_id": "6001", "player_name": "Alvaro Negredo", "team_id": "220"}
  ],
  "matches": [{"match_id": "303", "match_date": "2020-12-05", "kick_off": "16:15:00.000", "home_team_id": "220", "away_team_id": "217", "home_score": 2, "away_score": 1, "competition_id": "11", "season_id": "90", "match_week": 12}],
  "appearances": [{"match_id": "303", "player_id": "5503", "team_id": "217", "minutes_played": 90}],
  "events": [
    {"id": "e1", "match_id": "303", "player_id": "5470", "team_id": "217", "type": "Pass", "minute": 1, "x": 50, "y": 50, "end_x": 70, "end_y": 40, "recipient_id": "5503"},
    {"id": "e2", "match_id": "303", "player_id": "5503", "team_id": "217", "type": "Shot", "minute": 2, "second": 5, "x": 88, "y": 45, "outcome": "Off T", "value": 0.12},
    {"id": "e3", "match_id": "303", "player_id": "6001", "team_id": "220", "type": "Foul Committed", "minute": 3, "x": 10, "y": 10}
  ]
}`

func TestDecodeMapsFields(t *testing.T) {
	t.Parallel()

	ds, err := Decode(strings.NewReader(sampleDataset))
	require.NoError(t, err)

	assert.Equal(t, Counts{Competitions: 1, Seasons: 1, Teams: 2, Players: 3, Matches: 1, Appearances: 1, Events: 3}, ds.Counts())
	assert.Equal(t, "Spain", ds.Competitions[0].CountryName.OrElse(""))
	assert.False(t, ds.Teams[0].LogoURL.IsPresent())
	assert.Equal(t, "https://img/220.png", ds.Teams[1].LogoURL.OrElse(""))
	assert.False(t, ds.Players[1].Position.IsPresent())

	m := ds.Matches[0]
	assert.Equal(t, 2020, m.Date.Year())
	assert.Equal(t, 2, m.HomeScore.OrElse(-1))
	assert.Equal(t, 12, m.MatchWeek.OrElse(0))
	assert.False(t, m.StadiumName.IsPresent())

	pass, shot, foul := ds.Events[0], ds.Events[1], ds.Events[2]
	assert.Equal(t, event.TypePass, pass.Type)
	assert.Equal(t, event.OutcomeComplete, pass.Outcome)
	assert.Equal(t, "5503", pass.RecipientID.OrElse(""))
	assert.Equal(t, event.OutcomeMissed, shot.Outcome)
	assert.Equal(t, "Off T", shot.RawOutcome)
	assert.Equal(t, event.TypeUnknown, foul.Type)
	assert.Equal(t, []int64{1, 2, 3}, []int64{pass.Seq, shot.Seq, foul.Seq})

	rep := Validate(ds)
	assert.True(t, rep.OK(), "%v", rep.Problems)
}

func TestValidateRejectsWithoutClamping(t *testing.T) {
	t.Parallel()

	ds, err := Decode(strings.NewReader(sampleDataset))
	require.NoError(t, err)

	ds.Events[1].X = 104
	ds.Events[0].TeamID = "999"
	ds.Appearances[0].PlayerID = "nobody"

	rep := Validate(ds)
	require.False(t, rep.OK())
	assert.Len(t, rep.Problems, 3)
	assert.Equal(t, 104.0, ds.Events[1].X)
	assert.True(t, IsRejected(rep.Err()))
}

func TestDecodeRejectsBadDate(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"matches": [{"match_id": "1", "match_date": "05/12/2020"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match_date")
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/match-analytics/internal/infrastructure/repository/memory"
)

const smallDataset = `{
  "competitions": [{"competition_id": "c1", "competition_name": "Test League"}],
  "seasons": [{"competition_id": "c1", "season_id": "s1", "season_name": "2024"}],
  "teams": [{"team_id": "t1", "team_name": "Reds"}, {"team_id": "t2", "team_name": "Blues"}],
  "players": [
    {"player_id": "p1", "player_name": "One", "team_id": "t1"},
    {"player_id": "p2", "player_name": "Two", "team_id": "t1"}
  ],
  "matches": [{"match_id": "m1", "match_date": "2024-08-10", "home_team_id": "t1", "away_team_id": "t2", "home_score": 1, "away_score": 0, "competition_id": "c1", "season_id": "s1"}],
  "appearances": [{"match_id": "m1", "player_id": "p1", "team_id": "t1", "minutes_played": 90}],
  "events": [
    {"id": "e1", "match_id": "m1", "player_id": "p1", "team_id": "t1", "type": "Pass", "minute": 1, "x": 50, "y": 50, "end_x": 60, "end_y": 40, "recipient_id": "p2"},
    {"id": "e2", "match_id": "m1", "player_id": "p2", "team_id": "t1", "type": "Shot", "minute": 2, "x": %s, "y": 45, "outcome": "Goal", "value": 0.3}
  ]
}`

func writeDataset(t *testing.T, shotX string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(smallDataset, "%s", shotX, 1)), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	t.Run("accepts a clean dataset", func(t *testing.T) {
		out, err := execute(t, "validate", "--dataset", writeDataset(t, "88"))
		require.NoError(t, err)
		assert.Contains(t, out, "dataset ok")
		assert.Contains(t, out, "events")
	})

	t.Run("lists rejected records", func(t *testing.T) {
		out, err := execute(t, "validate", "--dataset", writeDataset(t, "104"))
		require.Error(t, err)
		assert.Contains(t, out, "1 rejected record(s)")
		assert.Contains(t, out, "e2")
	})

	t.Run("requires a file", func(t *testing.T) {
		_, err := execute(t, "validate")
		assert.Error(t, err)
	})
}

func TestPredict(t *testing.T) {
	out, err := execute(t, "predict",
		"--team1", "eng-ars",
		"--team2", "eng-liv",
		"--competition", memory.CompetitionIDPremierLeague,
		"--season", memory.SeasonID2024,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "(home) vs")
	assert.Contains(t, out, "draw")
	assert.Contains(t, out, "expected goals")
}

func TestPredict_UnknownTeam(t *testing.T) {
	_, err := execute(t, "predict", "--team1", "eng-ars", "--team2", "nobody")
	assert.Error(t, err)
}

func TestNetwork(t *testing.T) {
	out, err := execute(t, "network",
		"--team", "eng-ars",
		"--match", memory.SeasonID2024+"-m01",
		"--competition", memory.CompetitionIDPremierLeague,
		"--season", memory.SeasonID2024,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "BETWEENNESS")
	assert.Contains(t, out, "density")
}

func TestNetwork_NoPasses(t *testing.T) {
	out, err := execute(t, "network",
		"--team", "eng-che",
		"--match", memory.SeasonID2024+"-m12",
		"--competition", memory.CompetitionIDPremierLeague,
		"--season", memory.SeasonID2024,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "no completed passes")
}

func TestMigrateArgParsing(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	_, err = parseSteps([]string{"0"})
	assert.Error(t, err)

	_, err = parseVersion("-1")
	assert.Error(t, err)

	target, err := parseTarget("1771776034")
	require.NoError(t, err)
	assert.Equal(t, uint(1771776034), target)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1610612751, cfg.TeamID)
	assert.Equal(t, "BKN", cfg.TeamAbbr)
	assert.Equal(t, "BRK", cfg.TeamBBRef)
	assert.Equal(t, []string{"2023-24", "2024-25"}, cfg.Seasons)
	assert.Equal(t, "PHI", cfg.OpponentAbbr)
	assert.Equal(t, time.Second, cfg.RequestDelay)
	assert.Equal(t, "8050", cfg.TeamDashPort)
	assert.Equal(t, "8051", cfg.PlayerDashPort)

	require.Len(t, cfg.Players, 3)
	assert.Equal(t, Player{ID: 1630560, Name: "Cam Thomas"}, cfg.Players[0])
	assert.Equal(t, "D'Angelo Russell", cfg.Players[2].Name)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TEAM_ID", "1610612755")
	t.Setenv("SEASONS", " 2021-22 , 2022-23 ")
	t.Setenv("REQUEST_DELAY", "250ms")
	t.Setenv("CHART_ENGINE", "html")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1610612755, cfg.TeamID)
	assert.Equal(t, []string{"2021-22", "2022-23"}, cfg.Seasons)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, "html", cfg.ChartEngine)
}

func TestLoadRejectsBadSeason(t *testing.T) {
	t.Setenv("SEASONS", "2023/24")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2023/24")
}

func TestLoadRejectsBadTeamID(t *testing.T) {
	t.Setenv("TEAM_ID", "nets")
	_, err := Load()
	assert.Error(t, err)
}

func TestParsePlayers(t *testing.T) {
	players, err := parsePlayers("1:One, 2:Two Jr. ,")
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, Player{ID: 1, Name: "One"}, players[0])
	assert.Equal(t, Player{ID: 2, Name: "Two Jr."}, players[1])

	_, err = parsePlayers("nocolon")
	assert.Error(t, err)

	_, err = parsePlayers("x:Name")
	assert.Error(t, err)

	_, err = parsePlayers("")
	assert.Error(t, err)
}

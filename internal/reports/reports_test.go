package reports

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/clean"
	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/nba"
	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/scrape"
)

// fakeStats serves deterministic data and can fail selected players.
type fakeStats struct {
	failPlayers map[int]bool
}

func (f *fakeStats) gameLog(seed int) []nba.GameRecord {
	games := make([]nba.GameRecord, 12)
	for i := range games {
		home := i%2 == 0
		venue := clean.VenueAway
		matchup := "BKN @ PHI"
		if home {
			venue = clean.VenueHome
			matchup = "BKN vs. PHI"
		}
		games[i] = nba.GameRecord{
			GameID:    fmt.Sprintf("002%05d", seed*100+i),
			Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i*2),
			Matchup:   matchup,
			Opponent:  "PHI",
			Venue:     venue,
			Win:       i%3 != 0,
			Played:    true,
			Minutes:   30 + float64(i%6),
			Points:    15 + (seed+i)%12,
			Rebounds:  4 + i%5,
			Assists:   3 + i%4,
			Steals:    1, Blocks: 1, Turnovers: 2, Fouls: 2,
			FGM: 8, FGA: 16, FG3M: 2, FG3A: 6, FTM: 3, FTA: 4,
		}
	}
	return games
}

func (f *fakeStats) TeamGameLog(_ context.Context, teamID int, season string) ([]nba.GameRecord, error) {
	return f.gameLog(1), nil
}

func (f *fakeStats) PlayerGameLog(_ context.Context, playerID int, season string) ([]nba.GameRecord, error) {
	if f.failPlayers[playerID] {
		return nil, fmt.Errorf("provider unavailable for player %d", playerID)
	}
	return f.gameLog(playerID % 97), nil
}

func (f *fakeStats) LeagueDashPlayerStats(_ context.Context, teamID int, season string) ([]nba.PlayerSeasonLine, error) {
	lines := []nba.PlayerSeasonLine{
		{PlayerID: 1630560, Name: "Cam Thomas", Minutes: 31.4, FGA: 18.4, TOV: 2.3, Points: 24.0, Assists: 3.8, Rebounds: 3.3},
		{PlayerID: 1629661, Name: "Cameron Johnson", Minutes: 28.5, FGA: 10.6, TOV: 1.2, Points: 13.4, Assists: 2.4, Rebounds: 4.3},
		{PlayerID: 1626156, Name: "D'Angelo Russell", Minutes: 30.1, FGA: 14.0, TOV: 2.5, Points: 17.2, Assists: 6.2, Rebounds: 3.1},
	}
	for i := 0; i < 8; i++ {
		lines = append(lines, nba.PlayerSeasonLine{
			PlayerID: 200000 + i,
			Name:     fmt.Sprintf("Bench Player %d", i),
			Minutes:  12 + float64(i),
			FGA:      5 + float64(i)/2,
			TOV:      1,
			Points:   4 + float64(i),
			Assists:  1 + float64(i)/3,
			Rebounds: 2 + float64(i)/2,
		})
	}
	return lines, nil
}

func (f *fakeStats) CommonPlayerInfo(_ context.Context, playerID int) (*nba.PlayerProfile, error) {
	if f.failPlayers[playerID] {
		return nil, fmt.Errorf("provider unavailable for player %d", playerID)
	}
	return &nba.PlayerProfile{
		PlayerID:  playerID,
		Name:      fmt.Sprintf("Player %d", playerID),
		BirthDate: time.Date(1998, 7, 1, 0, 0, 0, 0, time.UTC),
		Height:    "6-4", Weight: "210", Experience: 4,
		Position: "Guard", College: "LSU", Country: "USA",
	}, nil
}

func (f *fakeStats) PlayerCareerStats(_ context.Context, playerID int) (*nba.CareerTotals, error) {
	return &nba.CareerTotals{PlayerID: playerID, GamesPlayed: 250, Minutes: 6400, Points: 4100, Rebounds: 800, Assists: 600}, nil
}

func (f *fakeStats) LeagueStandings(_ context.Context, season string) ([]nba.StandingRow, error) {
	return []nba.StandingRow{
		{Team: "Celtics", Conference: "East", Rank: 1, Wins: 58, Losses: 24, WinPct: 0.707},
		{Team: "Nets", Conference: "East", Rank: 11, Wins: 32, Losses: 50, WinPct: 0.390},
		{Team: "Thunder", Conference: "West", Rank: 1, Wins: 57, Losses: 25, WinPct: 0.695},
	}, nil
}

type fakeScraper struct{}

func (fakeScraper) SeasonSchedule(_ context.Context, baseURL, teamAbbr, season string) ([]scrape.ScheduleGame, error) {
	return []scrape.ScheduleGame{
		{Season: season, Date: "Wed, Oct 25, 2023", Opponent: "Cleveland Cavaliers", Points: 113, OppPoints: 114, Wins: 0, Losses: 1, Streak: "L 1", Home: true},
		{Season: season, Date: "Fri, Oct 27, 2023", Opponent: "Charlotte Hornets", Points: 133, OppPoints: 121, Wins: 1, Losses: 1, Streak: "W 1", Home: false},
	}, nil
}

func (fakeScraper) FetchSalaries(_ context.Context, url string) (*scrape.SalaryTable, error) {
	return &scrape.SalaryTable{}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		TeamID:       1610612751,
		TeamAbbr:     "BKN",
		TeamBBRef:    "BRK",
		TeamName:     "Brooklyn Nets",
		Seasons:      []string{"2023-24"},
		OpponentAbbr: "PHI",
		Players: []config.Player{
			{ID: 1630560, Name: "Cam Thomas"},
			{ID: 1629661, Name: "Cameron Johnson"},
			{ID: 1626156, Name: "D'Angelo Russell"},
		},
		ReportsDir:  t.TempDir(),
		ChartEngine: "png",
	}
}

func newTestGenerator(t *testing.T, stats *fakeStats) (*Generator, *report.Writer) {
	t.Helper()
	cfg := testConfig(t)
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	writer, err := report.NewWriter(cfg.ReportsDir, log)
	require.NoError(t, err)
	return NewGenerator(cfg, stats, fakeScraper{}, writer, log), writer
}

func TestBatchProducesArtifacts(t *testing.T) {
	gen, writer := newTestGenerator(t, &fakeStats{})
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	runner := NewRunner(0, log)

	summary := runner.Run(context.Background(), gen.Jobs())
	assert.Empty(t, summary.Failed, "no job should fail with a healthy provider")

	for _, code := range []string{
		"league_teams",
		"league_standings",
		"team_win_loss_2023_24",
		"team_totals_2023_24",
		"team_schedule_2023_24",
		"player_gamelog_cam_thomas",
		"player_means_cam_thomas",
		"player_modes_dangelo_russell",
		"gumbel_tails_cam_thomas",
		"linear_regression_pts_2023_24",
		"gam_predictions",
	} {
		_, err := os.Stat(writer.CSVPath(code))
		assert.NoError(t, err, "missing artifact %s", code)
	}

	for _, code := range []string{
		"gam_pmf_pts_cam_thomas",
		"gam_fit_pts_cam_thomas",
		"gam_confusion_pts_cam_thomas",
		"gam_roc_pts_cam_thomas",
		"regression_confusion_pts_2023_24",
		"regression_roc_pts_2023_24",
	} {
		_, err := os.Stat(writer.ImagePath(code))
		assert.NoError(t, err, "missing chart %s", code)
	}
}

func TestModelingInteractiveVariants(t *testing.T) {
	cfg := testConfig(t)
	cfg.ChartEngine = "html"
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	writer, err := report.NewWriter(cfg.ReportsDir, log)
	require.NoError(t, err)
	gen := NewGenerator(cfg, &fakeStats{}, fakeScraper{}, writer, log)

	require.NoError(t, gen.gamPredictions(context.Background()))

	for _, code := range []string{
		"gam_pmf_pts_cam_thomas",
		"gam_fit_pts_cam_thomas",
		"gam_roc_pts_cam_thomas",
	} {
		_, err := os.Stat(writer.HTMLPath(code))
		assert.NoError(t, err, "missing interactive artifact %s", code)
	}
}

func TestBatchIsolatesFailingPlayer(t *testing.T) {
	// Cam Thomas's provider calls fail; the other players' units must
	// still produce artifacts.
	stats := &fakeStats{failPlayers: map[int]bool{1630560: true}}
	gen, writer := newTestGenerator(t, stats)
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	runner := NewRunner(0, log)

	summary := runner.Run(context.Background(), gen.Jobs())
	assert.NotEmpty(t, summary.Failed)
	assert.Contains(t, summary.Failed, "player_gamelog_cam_thomas")

	_, err := os.Stat(writer.CSVPath("player_gamelog_cam_thomas"))
	assert.True(t, os.IsNotExist(err), "failed unit must not leave artifacts")

	_, err = os.Stat(writer.CSVPath("player_gamelog_cameron_johnson"))
	assert.NoError(t, err)
	_, err = os.Stat(writer.CSVPath("player_means_dangelo_russell"))
	assert.NoError(t, err)
}

func TestRunnerRecoversPanics(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	runner := NewRunner(0, log)

	ran := false
	summary := runner.Run(context.Background(), []Job{
		{Name: "boom", Run: func(context.Context) error { panic("bad index") }},
		{Name: "after", Run: func(context.Context) error { ran = true; return nil }},
	})
	assert.True(t, ran, "batch continues past a panicking job")
	assert.Equal(t, []string{"boom"}, summary.Failed)
	assert.Equal(t, []string{"after"}, summary.Succeeded)
}

func TestRunnerStopsOnCancel(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	runner := NewRunner(0, log)

	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	jobs := []Job{
		{Name: "first", Run: func(context.Context) error { count++; cancel(); return nil }},
		{Name: "second", Run: func(context.Context) error { count++; return nil }},
	}
	runner.Run(ctx, jobs)
	assert.Equal(t, 1, count)
}

func TestPlayerSlug(t *testing.T) {
	assert.Equal(t, "dangelo_russell", playerSlug("D'Angelo Russell"))
	assert.Equal(t, "cam_thomas", playerSlug("Cam Thomas"))
}

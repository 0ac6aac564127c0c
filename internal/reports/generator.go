// Package reports assembles the batch: each report is a named job that
// fetches its data, builds tables and charts, and writes artifacts. Jobs
// fail independently; the runner keeps the batch going.
package reports

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/nba"
	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/scrape"
)

// StatsProvider is the slice of the stats API the report jobs consume.
type StatsProvider interface {
	TeamGameLog(ctx context.Context, teamID int, season string) ([]nba.GameRecord, error)
	PlayerGameLog(ctx context.Context, playerID int, season string) ([]nba.GameRecord, error)
	LeagueDashPlayerStats(ctx context.Context, teamID int, season string) ([]nba.PlayerSeasonLine, error)
	CommonPlayerInfo(ctx context.Context, playerID int) (*nba.PlayerProfile, error)
	PlayerCareerStats(ctx context.Context, playerID int) (*nba.CareerTotals, error)
	LeagueStandings(ctx context.Context, season string) ([]nba.StandingRow, error)
}

// Scraper is the HTML fallback surface the jobs consume.
type Scraper interface {
	SeasonSchedule(ctx context.Context, baseURL, teamAbbr, season string) ([]scrape.ScheduleGame, error)
	FetchSalaries(ctx context.Context, url string) (*scrape.SalaryTable, error)
}

// Generator builds the full ordered job list for one batch run.
type Generator struct {
	cfg     *config.Config
	stats   StatsProvider
	scraper Scraper
	writer  *report.Writer
	engine  report.ChartEngine
	log     *logrus.Entry
}

// NewGenerator wires the batch dependencies.
func NewGenerator(cfg *config.Config, stats StatsProvider, scraper Scraper, writer *report.Writer, log *logrus.Logger) *Generator {
	return &Generator{
		cfg:     cfg,
		stats:   stats,
		scraper: scraper,
		writer:  writer,
		engine:  report.ParseChartEngine(cfg.ChartEngine),
		log:     log.WithField("component", "reports"),
	}
}

// Jobs returns the complete batch in execution order: league context
// first, then team, player and modeling groups.
func (g *Generator) Jobs() []Job {
	var jobs []Job
	jobs = append(jobs, g.leagueJobs()...)
	jobs = append(jobs, g.teamJobs()...)
	jobs = append(jobs, g.playerJobs()...)
	jobs = append(jobs, g.modelingJobs()...)
	return jobs
}

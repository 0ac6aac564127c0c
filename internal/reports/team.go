package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/fortuna/courtside/internal/nba"
	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/stats"
)

func seasonTag(season string) string {
	return strings.ReplaceAll(season, "-", "_")
}

func (g *Generator) teamJobs() []Job {
	var jobs []Job
	for _, season := range g.cfg.Seasons {
		season := season
		tag := seasonTag(season)
		jobs = append(jobs,
			Job{Name: "team_win_loss_" + tag, Run: func(ctx context.Context) error {
				return g.teamWinLoss(ctx, season)
			}},
			Job{Name: "team_totals_" + tag, Run: func(ctx context.Context) error {
				return g.teamTotals(ctx, season)
			}},
			Job{Name: "team_scoring_" + tag, Run: func(ctx context.Context) error {
				return g.teamScoring(ctx, season)
			}},
			Job{Name: "team_defense_" + tag, Run: func(ctx context.Context) error {
				return g.teamDefense(ctx, season)
			}},
			Job{Name: "team_schedule_scraped_" + tag, Run: func(ctx context.Context) error {
				return g.teamScrapedSchedule(ctx, season)
			}},
			Job{Name: "team_charts_" + tag, Run: func(ctx context.Context) error {
				return g.teamCharts(ctx, season)
			}},
		)
	}
	return jobs
}

func (g *Generator) teamGames(ctx context.Context, season string) ([]nba.GameRecord, error) {
	games, err := g.stats.TeamGameLog(ctx, g.cfg.TeamID, season)
	if err != nil {
		return nil, fmt.Errorf("fetching team game log %s: %w", season, err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("no games for %s in %s", g.cfg.TeamName, season)
	}
	return games, nil
}

// teamWinLoss writes win/loss totals split by venue.
func (g *Generator) teamWinLoss(ctx context.Context, season string) error {
	games, err := g.teamGames(ctx, season)
	if err != nil {
		return err
	}
	agg := stats.Aggregate(games)

	table := &report.Table{
		Title:   fmt.Sprintf("%s Win/Loss %s", g.cfg.TeamName, season),
		Columns: []string{"Split", "Wins", "Losses", "Games"},
	}
	table.AddRow("Overall", report.I(agg.Wins), report.I(agg.Losses), report.I(agg.Games))
	table.AddRow("Home", report.I(agg.HomeWins), report.I(agg.HomeLosses), report.I(agg.HomeWins+agg.HomeLosses))
	table.AddRow("Away", report.I(agg.AwayWins), report.I(agg.AwayLosses), report.I(agg.AwayWins+agg.AwayLosses))
	return g.writer.WriteTable("team_win_loss_"+seasonTag(season), table)
}

// teamTotals writes the season sums of the counting stats.
func (g *Generator) teamTotals(ctx context.Context, season string) error {
	games, err := g.teamGames(ctx, season)
	if err != nil {
		return err
	}
	agg := stats.Aggregate(games)

	table := &report.Table{
		Title:   fmt.Sprintf("%s Season Totals %s", g.cfg.TeamName, season),
		Columns: []string{"Stat", "Total", "Per Game"},
	}
	perGame := func(total int) string {
		if agg.Games == 0 {
			return report.F2(0)
		}
		return report.F2(float64(total) / float64(agg.Games))
	}
	for _, row := range []struct {
		name  string
		total int
	}{
		{"Points", agg.Points},
		{"Rebounds", agg.Rebounds},
		{"Offensive Rebounds", agg.OffReb},
		{"Defensive Rebounds", agg.DefReb},
		{"Assists", agg.Assists},
		{"Steals", agg.Steals},
		{"Blocks", agg.Blocks},
		{"Turnovers", agg.Turnovers},
		{"Personal Fouls", agg.Fouls},
		{"Field Goals Made", agg.FGM},
		{"Three Pointers Made", agg.FG3M},
		{"Free Throws Made", agg.FTM},
	} {
		table.AddRow(row.name, report.I(row.total), perGame(row.total))
	}
	return g.writer.WriteTable("team_totals_"+seasonTag(season), table)
}

// teamScoring writes the per-game scoring breakdown.
func (g *Generator) teamScoring(ctx context.Context, season string) error {
	games, err := g.teamGames(ctx, season)
	if err != nil {
		return err
	}

	table := &report.Table{
		Title:   fmt.Sprintf("%s Scoring by Game %s", g.cfg.TeamName, season),
		Columns: []string{"Date", "Opponent", "Venue", "Result", "PTS", "2PM", "3PM", "FTM"},
	}
	for _, game := range games {
		venue := "Away"
		if game.Home() {
			venue = "Home"
		}
		result := ""
		if game.Played {
			result = "L"
			if game.Win {
				result = "W"
			}
		}
		table.AddRow(
			game.Date.Format("2006-01-02"),
			nba.TeamName(game.Opponent),
			venue,
			result,
			report.I(game.Points),
			report.I(game.FGM-game.FG3M),
			report.I(game.FG3M),
			report.I(game.FTM),
		)
	}
	return g.writer.WriteTable("team_scoring_"+seasonTag(season), table)
}

// teamDefense writes the per-game defensive line.
func (g *Generator) teamDefense(ctx context.Context, season string) error {
	games, err := g.teamGames(ctx, season)
	if err != nil {
		return err
	}

	table := &report.Table{
		Title:   fmt.Sprintf("%s Defensive Summary %s", g.cfg.TeamName, season),
		Columns: []string{"Date", "Opponent", "STL", "BLK", "DREB", "TOV", "PF"},
	}
	for _, game := range games {
		table.AddRow(
			game.Date.Format("2006-01-02"),
			nba.TeamName(game.Opponent),
			report.I(game.Steals),
			report.I(game.Blocks),
			report.I(game.DefReb),
			report.I(game.Turnovers),
			report.I(game.Fouls),
		)
	}
	return g.writer.WriteTable("team_defense_"+seasonTag(season), table)
}

// teamScrapedSchedule writes the season schedule from the HTML fallback
// source.
func (g *Generator) teamScrapedSchedule(ctx context.Context, season string) error {
	schedule, err := g.scraper.SeasonSchedule(ctx, g.cfg.BBRefBaseURL, g.cfg.TeamBBRef, season)
	if err != nil {
		return fmt.Errorf("scraping schedule %s: %w", season, err)
	}

	table := &report.Table{
		Title:   fmt.Sprintf("%s Schedule %s", g.cfg.TeamName, season),
		Columns: []string{"Date", "Opponent", "PTS", "Opp PTS", "Result", "W", "L", "Streak", "Venue"},
	}
	for _, game := range schedule {
		venue := "Away"
		if game.Home {
			venue = "Home"
		}
		table.AddRow(
			game.Date,
			game.Opponent,
			report.I(game.Points),
			report.I(game.OppPoints),
			game.Result(),
			report.I(game.Wins),
			report.I(game.Losses),
			game.Streak,
			venue,
		)
	}
	return g.writer.WriteTable("team_schedule_"+seasonTag(season), table)
}

// teamCharts renders the season's aggregate charts, static and
// interactive.
func (g *Generator) teamCharts(ctx context.Context, season string) error {
	games, err := g.teamGames(ctx, season)
	if err != nil {
		return err
	}
	agg := stats.Aggregate(games)
	tag := seasonTag(season)

	if err := report.GroupedBarChart(
		g.writer.ImagePath("team_wl_bar_"+tag),
		fmt.Sprintf("Wins and Losses by Venue %s", season), "Games",
		[]string{"Home", "Away"},
		map[string][]float64{
			"Wins":   {float64(agg.HomeWins), float64(agg.AwayWins)},
			"Losses": {float64(agg.HomeLosses), float64(agg.AwayLosses)},
		},
	); err != nil {
		return err
	}

	if err := report.PieChart(
		g.writer.ImagePath("team_wl_pie_"+tag),
		fmt.Sprintf("Win Share %s", season),
		[]string{"Wins", "Losses"},
		[]float64{float64(agg.Wins), float64(agg.Losses)},
	); err != nil {
		return err
	}

	// Per-game points, oldest first for a readable time axis.
	points := make([]report.XY, 0, len(games))
	for i := len(games) - 1; i >= 0; i-- {
		points = append(points, report.XY{X: float64(len(games) - i), Y: float64(games[i].Points)})
	}
	if err := report.LineChart(
		g.writer.ImagePath("team_points_line_"+tag),
		fmt.Sprintf("Points per Game %s", season), "Game", "Points",
		map[string][]report.XY{"Points": points},
	); err != nil {
		return err
	}
	if err := report.ScatterChart(
		g.writer.ImagePath("team_points_scatter_"+tag),
		fmt.Sprintf("Points Distribution %s", season), "Game", "Points",
		points,
	); err != nil {
		return err
	}

	home, away := stats.SplitHomeAway(games)
	axes := []string{"PTS", "REB", "AST", "STL", "BLK"}
	radar := map[string][]float64{
		"Home": venueMeans(home),
		"Away": venueMeans(away),
	}
	if err := report.RadarChart(
		g.writer.ImagePath("team_venue_radar_"+tag),
		fmt.Sprintf("Per-Game Means by Venue %s", season),
		axes, radar,
	); err != nil {
		return err
	}

	// Interactive variants.
	if err := report.InteractiveBar(
		g.writer.HTMLPath("team_wl_bar_"+tag),
		fmt.Sprintf("Wins and Losses by Venue %s", season),
		[]string{"Home", "Away"},
		map[string][]float64{
			"Wins":   {float64(agg.HomeWins), float64(agg.AwayWins)},
			"Losses": {float64(agg.HomeLosses), float64(agg.AwayLosses)},
		},
	); err != nil {
		return err
	}
	if err := report.InteractivePie(
		g.writer.HTMLPath("team_wl_pie_"+tag),
		fmt.Sprintf("Win Share %s", season),
		[]string{"Wins", "Losses"},
		[]float64{float64(agg.Wins), float64(agg.Losses)},
	); err != nil {
		return err
	}
	return report.InteractiveRadar(
		g.writer.HTMLPath("team_venue_radar_"+tag),
		fmt.Sprintf("Per-Game Means by Venue %s", season),
		axes, radar,
	)
}

func venueMeans(games []nba.GameRecord) []float64 {
	return []float64{
		stats.Mean(stats.Column(games, stats.Points)),
		stats.Mean(stats.Column(games, stats.Rebounds)),
		stats.Mean(stats.Column(games, stats.Assists)),
		stats.Mean(stats.Column(games, func(g nba.GameRecord) float64 { return float64(g.Steals) })),
		stats.Mean(stats.Column(games, func(g nba.GameRecord) float64 { return float64(g.Blocks) })),
	}
}

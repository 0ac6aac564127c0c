package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/nba"
	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/stats"
)

func playerSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, slug)
	return slug
}

func (g *Generator) playerJobs() []Job {
	jobs := []Job{
		{Name: "player_profiles", Run: g.playerProfiles},
	}
	for _, player := range g.cfg.Players {
		player := player
		slug := playerSlug(player.Name)
		jobs = append(jobs,
			Job{Name: "player_gamelog_" + slug, Run: func(ctx context.Context) error {
				return g.playerGameLog(ctx, player)
			}},
			Job{Name: "player_opponent_" + slug, Run: func(ctx context.Context) error {
				return g.playerOpponentGames(ctx, player)
			}},
			Job{Name: "player_central_" + slug, Run: func(ctx context.Context) error {
				return g.playerCentralTendency(ctx, player)
			}},
			Job{Name: "player_career_" + slug, Run: func(ctx context.Context) error {
				return g.playerCareer(ctx, player)
			}},
			Job{Name: "player_distribution_" + slug, Run: func(ctx context.Context) error {
				return g.playerDistributionCharts(ctx, player)
			}},
		)
	}
	return jobs
}

// currentSeason is the newest configured season, the one player reports
// default to.
func (g *Generator) currentSeason() string {
	return g.cfg.Seasons[len(g.cfg.Seasons)-1]
}

// playerSeasonGames fetches one player's game log across all configured
// seasons, oldest game first.
func (g *Generator) playerSeasonGames(ctx context.Context, player config.Player) ([]nba.GameRecord, error) {
	var all []nba.GameRecord
	for _, season := range g.cfg.Seasons {
		games, err := g.stats.PlayerGameLog(ctx, player.ID, season)
		if err != nil {
			return nil, fmt.Errorf("fetching %s game log %s: %w", player.Name, season, err)
		}
		// Provider sends newest first.
		for i := len(games) - 1; i >= 0; i-- {
			all = append(all, games[i])
		}
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no games for %s", player.Name)
	}
	return all, nil
}

// playerProfiles writes the bio table for every configured player, with
// the scraped salary joined in.
func (g *Generator) playerProfiles(ctx context.Context) error {
	salaries, err := g.scraper.FetchSalaries(ctx, g.cfg.SalaryURL)
	if err != nil {
		g.log.WithError(err).Warn("salary scrape failed, profiles continue without salaries")
		salaries = nil
	}

	table := &report.Table{
		Title:   "Player Profiles",
		Columns: []string{"ID", "Name", "Height", "Weight", "Age", "Experience", "Position", "College", "Country", "Salary"},
	}
	for _, player := range g.cfg.Players {
		profile, err := g.stats.CommonPlayerInfo(ctx, player.ID)
		if err != nil {
			g.log.WithError(err).WithField("player", player.Name).Warn("skipping profile")
			continue
		}
		salary := "N/A"
		if salaries != nil {
			salary = salaries.Find(profile.Name)
		}
		table.AddRow(
			report.I(profile.PlayerID),
			profile.Name,
			profile.Height,
			profile.Weight,
			report.I(profile.Age(time.Now())),
			report.I(profile.Experience),
			profile.Position,
			profile.College,
			profile.Country,
			salary,
		)
	}
	return g.writer.WriteTable("player_profiles", table)
}

// playerGameLog writes the per-game stat line for the current season.
func (g *Generator) playerGameLog(ctx context.Context, player config.Player) error {
	season := g.currentSeason()
	games, err := g.stats.PlayerGameLog(ctx, player.ID, season)
	if err != nil {
		return fmt.Errorf("fetching %s game log %s: %w", player.Name, season, err)
	}

	table := &report.Table{
		Title:   fmt.Sprintf("%s Game Log %s", player.Name, season),
		Columns: []string{"Date", "Matchup", "Result", "MIN", "PTS", "REB", "AST"},
	}
	for _, game := range games {
		result := ""
		if game.Played {
			result = "L"
			if game.Win {
				result = "W"
			}
		}
		table.AddRow(
			game.Date.Format("2006-01-02"),
			game.Matchup,
			result,
			report.F2(game.Minutes),
			report.I(game.Points),
			report.I(game.Rebounds),
			report.I(game.Assists),
		)
	}
	return g.writer.WriteTable("player_gamelog_"+playerSlug(player.Name), table)
}

// playerOpponentGames writes games against the configured opponent plus
// home/away counts overall and in that matchup.
func (g *Generator) playerOpponentGames(ctx context.Context, player config.Player) error {
	games, err := g.playerSeasonGames(ctx, player)
	if err != nil {
		return err
	}
	opp := g.cfg.OpponentAbbr

	table := &report.Table{
		Title:   fmt.Sprintf("%s vs %s", player.Name, nba.TeamName(opp)),
		Columns: []string{"Date", "Matchup", "Venue", "PTS", "REB", "AST"},
	}
	var vsGames []nba.GameRecord
	for _, game := range games {
		if !strings.EqualFold(game.Opponent, opp) {
			continue
		}
		vsGames = append(vsGames, game)
		venue := "Away"
		if game.Home() {
			venue = "Home"
		}
		table.AddRow(
			game.Date.Format("2006-01-02"),
			game.Matchup,
			venue,
			report.I(game.Points),
			report.I(game.Rebounds),
			report.I(game.Assists),
		)
	}
	slug := playerSlug(player.Name)
	if err := g.writer.WriteTable("player_vs_"+strings.ToLower(opp)+"_"+slug, table); err != nil {
		return err
	}

	homeAll, awayAll := stats.SplitHomeAway(games)
	homeVs, awayVs := stats.SplitHomeAway(vsGames)
	counts := &report.Table{
		Title:   fmt.Sprintf("%s Home/Away Game Counts", player.Name),
		Columns: []string{"Scope", "Home", "Away", "Total"},
	}
	counts.AddRow("All games", report.I(len(homeAll)), report.I(len(awayAll)), report.I(len(games)))
	counts.AddRow("vs "+nba.TeamName(opp), report.I(len(homeVs)), report.I(len(awayVs)), report.I(len(vsGames)))
	return g.writer.WriteTable("player_venue_counts_"+slug, counts)
}

// statSeries is the per-stat series set the central tendency and
// distribution reports share.
func statSeries(games []nba.GameRecord) (names []string, series [][]float64) {
	names = []string{"PTS", "REB", "AST"}
	series = [][]float64{
		stats.Column(games, stats.Points),
		stats.Column(games, stats.Rebounds),
		stats.Column(games, stats.Assists),
	}
	return names, series
}

// playerCentralTendency writes means, medians and modes per stat, each
// with the share of games strictly below the measure.
func (g *Generator) playerCentralTendency(ctx context.Context, player config.Player) error {
	games, err := g.playerSeasonGames(ctx, player)
	if err != nil {
		return err
	}
	names, series := statSeries(games)
	slug := playerSlug(player.Name)

	means := &report.Table{
		Title:   fmt.Sprintf("%s Means", player.Name),
		Columns: []string{"Stat", "Mean", "Games Below (%)"},
	}
	medians := &report.Table{
		Title:   fmt.Sprintf("%s Medians", player.Name),
		Columns: []string{"Stat", "Median", "Games Below (%)"},
	}
	modes := &report.Table{
		Title:   fmt.Sprintf("%s Modes", player.Name),
		Columns: []string{"Stat", "Mode", "Occurrences", "Games Below Mean (%)"},
	}
	for i, name := range names {
		mean := stats.Mean(series[i])
		median := stats.Median(series[i])
		mode := stats.Mode(series[i])
		means.AddRow(name, report.F2(mean), report.Pct(stats.PctBelow(series[i], mean)))
		medians.AddRow(name, report.F2(median), report.Pct(stats.PctBelow(series[i], median)))
		modes.AddRow(name, mode.String(), mode.CountString(), report.Pct(stats.PctBelow(series[i], mean)))
	}
	if err := g.writer.WriteTable("player_means_"+slug, means); err != nil {
		return err
	}
	if err := g.writer.WriteTable("player_medians_"+slug, medians); err != nil {
		return err
	}
	return g.writer.WriteTable("player_modes_"+slug, modes)
}

// playerCareer writes career totals.
func (g *Generator) playerCareer(ctx context.Context, player config.Player) error {
	totals, err := g.stats.PlayerCareerStats(ctx, player.ID)
	if err != nil {
		return fmt.Errorf("fetching %s career stats: %w", player.Name, err)
	}

	table := &report.Table{
		Title:   fmt.Sprintf("%s Career Totals", player.Name),
		Columns: []string{"Games", "Minutes", "Points", "Rebounds", "Assists"},
	}
	table.AddRow(
		report.I(totals.GamesPlayed),
		report.F2(totals.Minutes),
		report.I(totals.Points),
		report.I(totals.Rebounds),
		report.I(totals.Assists),
	)
	return g.writer.WriteTable("player_career_"+playerSlug(player.Name), table)
}

// playerDistributionCharts renders the histogram and box plot per stat.
// The chart engine selects static or interactive export.
func (g *Generator) playerDistributionCharts(ctx context.Context, player config.Player) error {
	games, err := g.playerSeasonGames(ctx, player)
	if err != nil {
		return err
	}
	names, series := statSeries(games)
	slug := playerSlug(player.Name)

	for i, name := range names {
		refs := map[string]float64{
			"mean":   stats.Mean(series[i]),
			"median": stats.Median(series[i]),
		}
		if mode := stats.Mode(series[i]); mode.HasMode() {
			refs["mode"] = mode.Values[0]
		}

		code := fmt.Sprintf("player_hist_%s_%s", strings.ToLower(name), slug)
		if g.engine == report.EngineHTML {
			labels := make([]string, len(series[i]))
			for j := range series[i] {
				labels[j] = report.I(j + 1)
			}
			if err := report.InteractiveBar(
				g.writer.HTMLPath(code),
				fmt.Sprintf("%s %s by Game", player.Name, name),
				labels,
				map[string][]float64{name: series[i]},
			); err != nil {
				return err
			}
		} else {
			if err := report.HistogramChart(
				g.writer.ImagePath(code),
				fmt.Sprintf("%s %s Distribution", player.Name, name),
				name, series[i], refs,
			); err != nil {
				return err
			}
		}
	}

	return report.BoxChart(
		g.writer.ImagePath("player_box_"+slug),
		fmt.Sprintf("%s Stat Spread", player.Name),
		"Value", names, series,
	)
}

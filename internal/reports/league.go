package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/fortuna/courtside/internal/nba"
	"github.com/fortuna/courtside/internal/report"
)

func (g *Generator) leagueJobs() []Job {
	return []Job{
		{Name: "league_conference_teams", Run: g.conferenceTeams},
		{Name: "league_standings", Run: g.leagueStandings},
	}
}

// conferenceTeams writes the static franchise directory: one table per
// conference plus a unified listing.
func (g *Generator) conferenceTeams(ctx context.Context) error {
	for _, conference := range []string{"East", "West"} {
		table := &report.Table{
			Title:   fmt.Sprintf("%sern Conference Teams", conference),
			Columns: []string{"Team", "Abbreviation", "Conference"},
		}
		for _, t := range nba.TeamsByConference(conference) {
			table.AddRow(t.FullName, t.Abbreviation, t.Conference)
		}
		code := "league_teams_east"
		if conference == "West" {
			code = "league_teams_west"
		}
		if err := g.writer.WriteTable(code, table); err != nil {
			return err
		}
	}

	all := &report.Table{
		Title:   "NBA Teams",
		Columns: []string{"Team", "Abbreviation", "Conference"},
	}
	teams := append([]nba.Team(nil), nba.Teams...)
	sort.Slice(teams, func(i, j int) bool { return teams[i].FullName < teams[j].FullName })
	for _, t := range teams {
		all.AddRow(t.FullName, t.Abbreviation, t.Conference)
	}
	return g.writer.WriteTable("league_teams", all)
}

// leagueStandings writes the current standings per conference and a
// unified ordering by win percentage.
func (g *Generator) leagueStandings(ctx context.Context) error {
	season := g.cfg.Seasons[len(g.cfg.Seasons)-1]
	rows, err := g.stats.LeagueStandings(ctx, season)
	if err != nil {
		return fmt.Errorf("fetching standings: %w", err)
	}

	for _, conference := range []string{"East", "West"} {
		table := &report.Table{
			Title:   fmt.Sprintf("%s Standings %s", conference, season),
			Columns: []string{"Rank", "Team", "Wins", "Losses", "Win %"},
		}
		var conf []nba.StandingRow
		for _, r := range rows {
			if r.Conference == conference {
				conf = append(conf, r)
			}
		}
		sort.Slice(conf, func(i, j int) bool { return conf[i].Rank < conf[j].Rank })
		for _, r := range conf {
			table.AddRow(report.I(r.Rank), r.Team, report.I(r.Wins), report.I(r.Losses), report.F2(r.WinPct))
		}
		code := "league_standings_east"
		if conference == "West" {
			code = "league_standings_west"
		}
		if err := g.writer.WriteTable(code, table); err != nil {
			return err
		}
	}

	unified := &report.Table{
		Title:   fmt.Sprintf("League Standings %s", season),
		Columns: []string{"Team", "Conference", "Wins", "Losses", "Win %"},
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].WinPct > rows[j].WinPct })
	for _, r := range rows {
		unified.AddRow(r.Team, r.Conference, report.I(r.Wins), report.I(r.Losses), report.F2(r.WinPct))
	}
	return g.writer.WriteTable("league_standings", unified)
}

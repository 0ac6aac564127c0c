package scrape

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/courtside/internal/clean"
)

// ScheduleGame is one row of a team's season schedule as published by
// Basketball Reference.
type ScheduleGame struct {
	Season    string
	Date      string
	Opponent  string
	Points    int
	OppPoints int
	Wins      int
	Losses    int
	Streak    string
	Home      bool
}

// Result renders the row's outcome relative to the team.
func (g ScheduleGame) Result() string {
	switch {
	case g.Points > g.OppPoints:
		return "W"
	case g.Points < g.OppPoints:
		return "L"
	default:
		return ""
	}
}

// SeasonSchedule fetches and parses one season's schedule page. The season
// argument uses the league's "2023-24" form; the site keys pages by the
// ending year.
func (c *Client) SeasonSchedule(ctx context.Context, baseURL, teamAbbr, season string) ([]ScheduleGame, error) {
	endYear, err := scheduleYear(season)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/teams/%s/%d_games.html", strings.TrimSuffix(baseURL, "/"), teamAbbr, endYear)
	c.log.WithField("url", url).Info("fetching season schedule")

	doc, err := c.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}
	games := parseSchedule(doc, season)
	if len(games) == 0 {
		return nil, fmt.Errorf("no schedule rows found at %s", url)
	}
	return games, nil
}

// scheduleYear maps "2023-24" to 2024.
func scheduleYear(season string) (int, error) {
	start, _, ok := strings.Cut(season, "-")
	if !ok {
		return 0, fmt.Errorf("malformed season %q", season)
	}
	year, err := strconv.Atoi(start)
	if err != nil {
		return 0, fmt.Errorf("malformed season %q", season)
	}
	return year + 1, nil
}

// parseSchedule walks the games table. Month separator rows repeat the
// header inside tbody and carry no data cells, so they fall out naturally.
func parseSchedule(doc *goquery.Document, season string) []ScheduleGame {
	var games []ScheduleGame
	var pts, oppPts, wins, losses []float64
	doc.Find("table#games tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("thead") {
			return
		}
		cells := map[string]string{}
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			if stat, ok := cell.Attr("data-stat"); ok {
				cells[stat] = strings.TrimSpace(cell.Text())
			}
		})
		if len(cells) == 0 || cells["opp_name"] == "" {
			return
		}
		games = append(games, ScheduleGame{
			Season:   season,
			Date:     cells["date_game"],
			Opponent: cells["opp_name"],
			Streak:   cells["game_streak"],
			Home:     cells["game_location"] != "@",
		})
		pts = append(pts, cellNumber(cells["pts"]))
		oppPts = append(oppPts, cellNumber(cells["opp_pts"]))
		wins = append(wins, cellNumber(cells["wins"]))
		losses = append(losses, cellNumber(cells["losses"]))
	})

	// Unplayed rows have empty score cells: scores zero-fill, the
	// cumulative win and loss columns carry the last played value forward.
	pts = clean.FillNumeric(pts)
	oppPts = clean.FillNumeric(oppPts)
	wins = clean.ForwardFill(wins)
	losses = clean.ForwardFill(losses)
	for i := range games {
		games[i].Points = int(pts[i])
		games[i].OppPoints = int(oppPts[i])
		games[i].Wins = int(wins[i])
		games[i].Losses = int(losses[i])
	}
	return games
}

// cellNumber parses a numeric cell, reporting gaps as NaN for the fill
// stage.
func cellNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

package nba

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/fortuna/courtside/internal/clean"
)

// gameDateLayout is the provider's game log date format, e.g. "APR 14, 2024".
const gameDateLayout = "Jan 02, 2006"

// TeamGameLog returns one season of games for a team, newest first as the
// provider sends them.
func (c *Client) TeamGameLog(ctx context.Context, teamID int, season string) ([]GameRecord, error) {
	params := url.Values{}
	params.Set("TeamID", strconv.Itoa(teamID))
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")

	resp, err := c.fetch(ctx, "teamgamelog", params)
	if err != nil {
		return nil, fmt.Errorf("team game log %s: %w", season, err)
	}
	rs, err := resp.Set("TeamGameLog")
	if err != nil {
		return nil, err
	}
	return decodeGameLog(rs)
}

// PlayerGameLog returns one season of games for a player.
func (c *Client) PlayerGameLog(ctx context.Context, playerID int, season string) ([]GameRecord, error) {
	params := url.Values{}
	params.Set("PlayerID", strconv.Itoa(playerID))
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")

	resp, err := c.fetch(ctx, "playergamelog", params)
	if err != nil {
		return nil, fmt.Errorf("player %d game log %s: %w", playerID, season, err)
	}
	rs, err := resp.Set("PlayerGameLog")
	if err != nil {
		return nil, err
	}
	return decodeGameLog(rs)
}

// decodeGameLog converts a team or player game log result set. The two
// endpoints share their statistical columns; PLUS_MINUS is optional.
func decodeGameLog(rs *ResultSet) ([]GameRecord, error) {
	cols, err := rs.columns("Game_ID", "GAME_DATE", "MATCHUP", "WL", "MIN",
		"FGM", "FGA", "FG3M", "FG3A", "FTM", "FTA",
		"OREB", "DREB", "REB", "AST", "STL", "BLK", "TOV", "PF", "PTS")
	if err != nil {
		return nil, err
	}
	plusMinus := -1
	if pm, err := rs.columns("PLUS_MINUS"); err == nil {
		plusMinus = pm["PLUS_MINUS"]
	}

	games := make([]GameRecord, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		g := GameRecord{
			GameID:    cellString(row, cols["Game_ID"]),
			Matchup:   cellString(row, cols["MATCHUP"]),
			Minutes:   cellFloat(row, cols["MIN"]),
			Points:    cellInt(row, cols["PTS"]),
			Rebounds:  cellInt(row, cols["REB"]),
			OffReb:    cellInt(row, cols["OREB"]),
			DefReb:    cellInt(row, cols["DREB"]),
			Assists:   cellInt(row, cols["AST"]),
			Steals:    cellInt(row, cols["STL"]),
			Blocks:    cellInt(row, cols["BLK"]),
			Turnovers: cellInt(row, cols["TOV"]),
			Fouls:     cellInt(row, cols["PF"]),
			FGM:       cellInt(row, cols["FGM"]),
			FGA:       cellInt(row, cols["FGA"]),
			FG3M:      cellInt(row, cols["FG3M"]),
			FG3A:      cellInt(row, cols["FG3A"]),
			FTM:       cellInt(row, cols["FTM"]),
			FTA:       cellInt(row, cols["FTA"]),
		}
		if plusMinus >= 0 {
			g.PlusMinus = cellFloat(row, plusMinus)
		}
		if d, err := time.Parse(gameDateLayout, cellString(row, cols["GAME_DATE"])); err == nil {
			g.Date = d
		}
		g.Venue, g.Opponent = clean.ParseMatchup(g.Matchup)
		g.Win, g.Played = clean.ParseWinLoss(cellString(row, cols["WL"]))
		games = append(games, g)
	}
	return games, nil
}

// LeagueDashPlayerStats returns aggregated per-player lines for one team
// and season from the league-wide player dashboard.
func (c *Client) LeagueDashPlayerStats(ctx context.Context, teamID int, season string) ([]PlayerSeasonLine, error) {
	params := url.Values{}
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	params.Set("TeamID", strconv.Itoa(teamID))

	resp, err := c.fetch(ctx, "leaguedashplayerstats", params)
	if err != nil {
		return nil, fmt.Errorf("league player dashboard %s: %w", season, err)
	}
	rs, err := resp.Set("LeagueDashPlayerStats")
	if err != nil {
		return nil, err
	}
	cols, err := rs.columns("PLAYER_ID", "PLAYER_NAME", "MIN", "FGA", "TOV", "PTS", "AST", "REB")
	if err != nil {
		return nil, err
	}

	lines := make([]PlayerSeasonLine, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		lines = append(lines, PlayerSeasonLine{
			PlayerID: cellInt(row, cols["PLAYER_ID"]),
			Name:     cellString(row, cols["PLAYER_NAME"]),
			Minutes:  cellFloat(row, cols["MIN"]),
			FGA:      cellFloat(row, cols["FGA"]),
			TOV:      cellFloat(row, cols["TOV"]),
			Points:   cellFloat(row, cols["PTS"]),
			Assists:  cellFloat(row, cols["AST"]),
			Rebounds: cellFloat(row, cols["REB"]),
		})
	}
	return lines, nil
}

// CommonPlayerInfo returns a player's bio attributes.
func (c *Client) CommonPlayerInfo(ctx context.Context, playerID int) (*PlayerProfile, error) {
	params := url.Values{}
	params.Set("PlayerID", strconv.Itoa(playerID))

	resp, err := c.fetch(ctx, "commonplayerinfo", params)
	if err != nil {
		return nil, fmt.Errorf("player %d info: %w", playerID, err)
	}
	rs, err := resp.Set("CommonPlayerInfo")
	if err != nil {
		return nil, err
	}
	cols, err := rs.columns("PERSON_ID", "DISPLAY_FIRST_LAST", "BIRTHDATE",
		"HEIGHT", "WEIGHT", "SEASON_EXP", "POSITION", "SCHOOL", "COUNTRY")
	if err != nil {
		return nil, err
	}
	if len(rs.RowSet) == 0 {
		return nil, fmt.Errorf("player %d info: empty result", playerID)
	}

	row := rs.RowSet[0]
	p := &PlayerProfile{
		PlayerID:   cellInt(row, cols["PERSON_ID"]),
		Name:       cellString(row, cols["DISPLAY_FIRST_LAST"]),
		Height:     cellString(row, cols["HEIGHT"]),
		Weight:     cellString(row, cols["WEIGHT"]),
		Experience: cellInt(row, cols["SEASON_EXP"]),
		Position:   cellString(row, cols["POSITION"]),
		College:    cellString(row, cols["SCHOOL"]),
		Country:    cellString(row, cols["COUNTRY"]),
	}
	// Birthdate arrives as "1996-02-23T00:00:00".
	if raw := cellString(row, cols["BIRTHDATE"]); raw != "" {
		if d, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
			p.BirthDate = d
		} else if d, err := time.Parse("2006-01-02", raw); err == nil {
			p.BirthDate = d
		}
	}
	return p, nil
}

// PlayerCareerStats returns career sums across the player's league seasons.
func (c *Client) PlayerCareerStats(ctx context.Context, playerID int) (*CareerTotals, error) {
	params := url.Values{}
	params.Set("PlayerID", strconv.Itoa(playerID))
	params.Set("PerMode", "Totals")

	resp, err := c.fetch(ctx, "playercareerstats", params)
	if err != nil {
		return nil, fmt.Errorf("player %d career stats: %w", playerID, err)
	}
	rs, err := resp.Set("SeasonTotalsRegularSeason")
	if err != nil {
		return nil, err
	}
	cols, err := rs.columns("LEAGUE_ID", "GP", "MIN", "PTS", "REB", "AST")
	if err != nil {
		return nil, err
	}

	totals := &CareerTotals{PlayerID: playerID}
	for _, row := range rs.RowSet {
		if cellString(row, cols["LEAGUE_ID"]) != "00" {
			continue
		}
		totals.GamesPlayed += cellInt(row, cols["GP"])
		totals.Minutes += cellFloat(row, cols["MIN"])
		totals.Points += cellInt(row, cols["PTS"])
		totals.Rebounds += cellInt(row, cols["REB"])
		totals.Assists += cellInt(row, cols["AST"])
	}
	return totals, nil
}

// LeagueStandings returns the current standings, one row per team.
func (c *Client) LeagueStandings(ctx context.Context, season string) ([]StandingRow, error) {
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")

	resp, err := c.fetch(ctx, "leaguestandingsv3", params)
	if err != nil {
		return nil, fmt.Errorf("league standings %s: %w", season, err)
	}
	rs, err := resp.Set("Standings")
	if err != nil {
		return nil, err
	}
	cols, err := rs.columns("TeamName", "Conference", "PlayoffRank", "WINS", "LOSSES", "WinPCT")
	if err != nil {
		return nil, err
	}

	rows := make([]StandingRow, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		rows = append(rows, StandingRow{
			Team:       cellString(row, cols["TeamName"]),
			Conference: cellString(row, cols["Conference"]),
			Rank:       cellInt(row, cols["PlayoffRank"]),
			Wins:       cellInt(row, cols["WINS"]),
			Losses:     cellInt(row, cols["LOSSES"]),
			WinPct:     cellFloat(row, cols["WinPCT"]),
		})
	}
	return rows, nil
}

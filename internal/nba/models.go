package nba

import (
	"time"

	"github.com/fortuna/courtside/internal/clean"
)

// GameRecord is one row of per-game statistics for a team or player.
// Venue, Opponent and Win are derived from the raw matchup and win-loss
// text during decoding.
type GameRecord struct {
	GameID  string
	Date    time.Time
	Matchup string

	Opponent string
	Venue    clean.Venue
	Win      bool
	Played   bool // false when the win-loss flag was absent

	Minutes   float64
	Points    int
	Rebounds  int
	OffReb    int
	DefReb    int
	Assists   int
	Steals    int
	Blocks    int
	Turnovers int
	Fouls     int

	FGM  int
	FGA  int
	FG3M int
	FG3A int
	FTM  int
	FTA  int

	PlusMinus float64
}

// Home reports whether the game was played at home.
func (g GameRecord) Home() bool { return g.Venue == clean.VenueHome }

// PlayerProfile holds the static attributes of a player. Salary is filled
// separately by the salary scraper.
type PlayerProfile struct {
	PlayerID   int
	Name       string
	BirthDate  time.Time
	Height     string
	Weight     string
	Experience int
	Position   string
	College    string
	Country    string
	Salary     string
}

// Age returns the player's age in whole years at the given date.
func (p PlayerProfile) Age(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	age := now.Year() - p.BirthDate.Year()
	if now.YearDay() < p.BirthDate.YearDay() {
		age--
	}
	return age
}

// PlayerSeasonLine is one player's aggregated line from the league-wide
// player dashboard for a single season.
type PlayerSeasonLine struct {
	PlayerID int
	Name     string
	Minutes  float64
	FGA      float64
	TOV      float64
	Points   float64
	Assists  float64
	Rebounds float64
}

// CareerTotals are league career sums for one player.
type CareerTotals struct {
	PlayerID    int
	GamesPlayed int
	Minutes     float64
	Points      int
	Rebounds    int
	Assists     int
}

// StandingRow is one team's line from the league standings.
type StandingRow struct {
	Team       string
	Conference string
	Rank       int
	Wins       int
	Losses     int
	WinPct     float64
}

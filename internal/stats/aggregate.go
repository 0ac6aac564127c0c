package stats

import "github.com/fortuna/courtside/internal/nba"

// SeasonAggregate holds the sums of the counting stats for one set of
// games, with wins and losses split by venue.
type SeasonAggregate struct {
	Games  int
	Wins   int
	Losses int

	HomeWins   int
	HomeLosses int
	AwayWins   int
	AwayLosses int

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
}

// Aggregate sums one slice of game records. Games without a result flag
// are counted but contribute to neither wins nor losses.
func Aggregate(games []nba.GameRecord) SeasonAggregate {
	var a SeasonAggregate
	for _, g := range games {
		a.Games++
		if g.Played {
			if g.Win {
				a.Wins++
				if g.Home() {
					a.HomeWins++
				} else {
					a.AwayWins++
				}
			} else {
				a.Losses++
				if g.Home() {
					a.HomeLosses++
				} else {
					a.AwayLosses++
				}
			}
		}
		a.Points += g.Points
		a.Rebounds += g.Rebounds
		a.OffReb += g.OffReb
		a.DefReb += g.DefReb
		a.Assists += g.Assists
		a.Steals += g.Steals
		a.Blocks += g.Blocks
		a.Turnovers += g.Turnovers
		a.Fouls += g.Fouls
		a.FGM += g.FGM
		a.FGA += g.FGA
		a.FG3M += g.FG3M
		a.FG3A += g.FG3A
		a.FTM += g.FTM
		a.FTA += g.FTA
	}
	return a
}

// SplitHomeAway partitions games by venue, preserving order.
func SplitHomeAway(games []nba.GameRecord) (home, away []nba.GameRecord) {
	for _, g := range games {
		if g.Home() {
			home = append(home, g)
		} else {
			away = append(away, g)
		}
	}
	return home, away
}

// Column extracts one numeric series from a slice of games.
func Column(games []nba.GameRecord, f func(nba.GameRecord) float64) []float64 {
	out := make([]float64, len(games))
	for i, g := range games {
		out[i] = f(g)
	}
	return out
}

// Common column extractors for the per-game series the reports use.
var (
	Points   = func(g nba.GameRecord) float64 { return float64(g.Points) }
	Rebounds = func(g nba.GameRecord) float64 { return float64(g.Rebounds) }
	Assists  = func(g nba.GameRecord) float64 { return float64(g.Assists) }
	Minutes  = func(g nba.GameRecord) float64 { return g.Minutes }
	FGA      = func(g nba.GameRecord) float64 { return float64(g.FGA) }
	TOV      = func(g nba.GameRecord) float64 { return float64(g.Turnovers) }
)

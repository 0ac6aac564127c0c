package nba

import (
	"sort"
	"strings"
)

// Team is one franchise in the static league directory.
type Team struct {
	ID           int
	Abbreviation string
	FullName     string
	Conference   string
}

// Teams is the static directory of all 30 franchises. The provider's
// standings do not carry identifiers for every historical name, so the
// directory is fixed here the way the league groups its conferences.
var Teams = []Team{
	{1610612737, "ATL", "Atlanta Hawks", "East"},
	{1610612738, "BOS", "Boston Celtics", "East"},
	{1610612751, "BKN", "Brooklyn Nets", "East"},
	{1610612766, "CHA", "Charlotte Hornets", "East"},
	{1610612741, "CHI", "Chicago Bulls", "East"},
	{1610612739, "CLE", "Cleveland Cavaliers", "East"},
	{1610612765, "DET", "Detroit Pistons", "East"},
	{1610612754, "IND", "Indiana Pacers", "East"},
	{1610612748, "MIA", "Miami Heat", "East"},
	{1610612749, "MIL", "Milwaukee Bucks", "East"},
	{1610612752, "NYK", "New York Knicks", "East"},
	{1610612753, "ORL", "Orlando Magic", "East"},
	{1610612755, "PHI", "Philadelphia 76ers", "East"},
	{1610612761, "TOR", "Toronto Raptors", "East"},
	{1610612764, "WAS", "Washington Wizards", "East"},
	{1610612742, "DAL", "Dallas Mavericks", "West"},
	{1610612743, "DEN", "Denver Nuggets", "West"},
	{1610612744, "GSW", "Golden State Warriors", "West"},
	{1610612745, "HOU", "Houston Rockets", "West"},
	{1610612746, "LAC", "Los Angeles Clippers", "West"},
	{1610612747, "LAL", "Los Angeles Lakers", "West"},
	{1610612763, "MEM", "Memphis Grizzlies", "West"},
	{1610612750, "MIN", "Minnesota Timberwolves", "West"},
	{1610612740, "NOP", "New Orleans Pelicans", "West"},
	{1610612760, "OKC", "Oklahoma City Thunder", "West"},
	{1610612756, "PHX", "Phoenix Suns", "West"},
	{1610612757, "POR", "Portland Trail Blazers", "West"},
	{1610612758, "SAC", "Sacramento Kings", "West"},
	{1610612759, "SAS", "San Antonio Spurs", "West"},
	{1610612762, "UTA", "Utah Jazz", "West"},
}

// TeamsByConference returns the directory entries for one conference,
// sorted by full name.
func TeamsByConference(conference string) []Team {
	var out []Team
	for _, t := range Teams {
		if strings.EqualFold(t.Conference, conference) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

// TeamName resolves an abbreviation to a full franchise name. Unknown
// abbreviations come back unchanged so scraped rows stay readable.
func TeamName(abbr string) string {
	for _, t := range Teams {
		if strings.EqualFold(t.Abbreviation, abbr) {
			return t.FullName
		}
	}
	return abbr
}

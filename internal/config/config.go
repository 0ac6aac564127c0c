package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// seasonPattern matches the provider's season label format, e.g. "2024-25".
var seasonPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Player identifies one tracked player.
type Player struct {
	ID   int
	Name string
}

// Config holds all runtime settings for the batch and the dashboards.
// Everything is passed explicitly; nothing is read from the environment
// after Load returns.
type Config struct {
	TeamID       int      // provider team identifier
	TeamAbbr     string   // provider abbreviation, e.g. "BKN"
	TeamBBRef    string   // Basketball Reference abbreviation, e.g. "BRK"
	TeamName     string   // full franchise name
	Seasons      []string // season labels, newest last
	Players      []Player
	OpponentAbbr string // opponent used by the matchup reports

	ReportsDir     string // root of the generated artifact tree
	CacheDir       string // flat-file response cache; empty disables caching
	RequestDelay   time.Duration
	ChartEngine    string // "png" or "html" for distribution chart exports
	TeamDashPort   string
	PlayerDashPort string

	NBABaseURL   string
	BBRefBaseURL string
	SalaryURL    string
}

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	// Missing .env is fine; env vars and defaults still apply.
	_ = godotenv.Load()

	teamID, err := strconv.Atoi(getEnv("TEAM_ID", "1610612751"))
	if err != nil {
		return nil, fmt.Errorf("parsing TEAM_ID: %w", err)
	}

	seasons := strings.Split(getEnv("SEASONS", "2023-24,2024-25"), ",")
	for i, s := range seasons {
		seasons[i] = strings.TrimSpace(s)
		if !seasonPattern.MatchString(seasons[i]) {
			return nil, fmt.Errorf("season %q does not match YYYY-YY format", seasons[i])
		}
	}

	delay, err := time.ParseDuration(getEnv("REQUEST_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("parsing REQUEST_DELAY: %w", err)
	}

	players, err := parsePlayers(getEnv("PLAYERS", "1630560:Cam Thomas,1629661:Cameron Johnson,1626156:D'Angelo Russell"))
	if err != nil {
		return nil, err
	}

	return &Config{
		TeamID:       teamID,
		TeamAbbr:     getEnv("TEAM_ABBR", "BKN"),
		TeamBBRef:    getEnv("TEAM_BBREF_ABBR", "BRK"),
		TeamName:     getEnv("TEAM_NAME", "Brooklyn Nets"),
		Seasons:      seasons,
		Players:      players,
		OpponentAbbr: getEnv("OPPONENT_ABBR", "PHI"),

		ReportsDir:     getEnv("REPORTS_DIR", "reports"),
		CacheDir:       getEnv("CACHE_DIR", ""),
		RequestDelay:   delay,
		ChartEngine:    getEnv("CHART_ENGINE", "png"),
		TeamDashPort:   getEnv("TEAM_DASH_PORT", "8050"),
		PlayerDashPort: getEnv("PLAYER_DASH_PORT", "8051"),

		NBABaseURL:   getEnv("NBA_API_BASE", "https://stats.nba.com/stats"),
		BBRefBaseURL: getEnv("BBREF_BASE", "https://www.basketball-reference.com"),
		SalaryURL:    getEnv("SALARY_URL", "https://hoopshype.com/salaries/players/"),
	}, nil
}

// parsePlayers parses "id:name,id:name" pairs.
func parsePlayers(raw string) ([]Player, error) {
	var players []Player
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, name, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("player entry %q is not id:name", part)
		}
		pid, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("player id in %q: %w", part, err)
		}
		players = append(players, Player{ID: pid, Name: strings.TrimSpace(name)})
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("no players configured")
	}
	return players, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

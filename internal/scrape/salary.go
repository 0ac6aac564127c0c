package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SalaryTable holds the league-wide salary ranking scraped in one pass.
// The page lists every player, so callers fetch once and look up by name.
type SalaryTable struct {
	rows []salaryRow
}

type salaryRow struct {
	name   string
	salary string
}

// FetchSalaries scrapes the player salary ranking.
func (c *Client) FetchSalaries(ctx context.Context, url string) (*SalaryTable, error) {
	c.log.WithField("url", url).Info("fetching salary table")
	doc, err := c.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}
	table := parseSalaries(doc)
	if len(table.rows) == 0 {
		return nil, fmt.Errorf("no salary rows found at %s", url)
	}
	return table, nil
}

func parseSalaries(doc *goquery.Document) *SalaryTable {
	table := &SalaryTable{}
	doc.Find("table.hh-salaries-ranking-table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := strings.TrimSpace(cells.Eq(1).Text())
		salary := strings.TrimSpace(row.Find("td.hh-salaries-sorted").First().Text())
		if name == "" || salary == "" {
			return
		}
		table.rows = append(table.rows, salaryRow{name: name, salary: salary})
	})
	return table
}

// Find returns the salary text for a player, or "N/A" when no row matches.
// Matching tolerates the roster and salary sites spelling names differently.
func (t *SalaryTable) Find(playerName string) string {
	for _, row := range t.rows {
		if strings.EqualFold(row.name, playerName) {
			return row.salary
		}
	}
	for _, row := range t.rows {
		if MatchName(playerName, row.name) {
			return row.salary
		}
	}
	return "N/A"
}

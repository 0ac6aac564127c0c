// Package scrape provides the HTML fallback sources: Basketball Reference
// season schedules and HoopsHype salaries. Both are treated as unreliable;
// callers get wrapped errors and the batch runner decides what to skip.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const (
	// UserAgent for requests. Both sites reject obvious bot agents.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval between page fetches to prevent rate limiting.
	MinRequestInterval = 3 * time.Second
)

// Client fetches and parses HTML pages with rate limiting.
type Client struct {
	httpClient  *http.Client
	lastRequest time.Time
	interval    time.Duration
	log         *logrus.Entry
}

// NewClient creates a scraping client. A non-positive interval falls back
// to MinRequestInterval.
func NewClient(interval time.Duration, log *logrus.Logger) *Client {
	if interval <= 0 {
		interval = MinRequestInterval
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		interval:   interval,
		log:        log.WithField("component", "scraper"),
	}
}

// FetchDocument fetches a page with rate limiting and parses it.
func (c *Client) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	if !c.lastRequest.IsZero() {
		if elapsed := time.Since(c.lastRequest); elapsed < c.interval {
			wait := c.interval - elapsed
			c.log.WithField("wait", wait.String()).Debug("rate limiting before next request")
			time.Sleep(wait)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	c.lastRequest = time.Now()
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return doc, nil
}

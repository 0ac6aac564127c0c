package nba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// BaseURL for the stats provider's query endpoints.
	BaseURL = "https://stats.nba.com/stats"

	// UserAgent for requests; the provider rejects default Go client fingerprints.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client performs rate-gated requests against the stats provider.
// A fixed delay between calls is the only concession to provider-side
// rate limiting; there is no backoff and no circuit breaker.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	cache       *FileCache
	delay       time.Duration
	lastRequest time.Time
	log         *logrus.Entry
}

// NewClient creates a provider client with a custom base URL.
// delay is the minimum interval enforced between successive calls.
func NewClient(baseURL string, delay time.Duration, cache *FileCache, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache,
		delay:      delay,
		log:        log.WithField("component", "nba-client"),
	}
}

// fetch requests one endpoint and decodes the resultSets payload.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	cacheKey := endpoint + "?" + params.Encode()
	if c.cache != nil {
		if body, ok := c.cache.Get(cacheKey); ok {
			c.log.WithField("endpoint", endpoint).Debug("cache hit")
			return decodeResponse(body)
		}
	}

	c.waitForRateGate()

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("User-Agent", UserAgent)

	c.log.WithFields(logrus.Fields{"endpoint": endpoint, "params": params.Encode()}).Debug("fetching")

	resp, err := c.httpClient.Do(req)
	c.lastRequest = time.Now()
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(cacheKey, body); err != nil {
			c.log.WithError(err).Warn("caching response failed")
		}
	}

	return decodeResponse(body)
}

// waitForRateGate sleeps until the configured inter-request delay has elapsed.
func (c *Client) waitForRateGate() {
	if c.delay <= 0 || c.lastRequest.IsZero() {
		return
	}
	if elapsed := time.Since(c.lastRequest); elapsed < c.delay {
		time.Sleep(c.delay - elapsed)
	}
}

func decodeResponse(body []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decoding provider response: %w", err)
	}
	if len(r.ResultSets) == 0 {
		return nil, fmt.Errorf("provider response contains no result sets")
	}
	return &r, nil
}

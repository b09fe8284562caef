package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nwk5097-a11y/mlb-app/internal/metrics"
)

const (
	BaseURL = "https://statsapi.mlb.com/api/v1"
)

// Client handles MLB Stats API requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	metrics    *metrics.Metrics
}

// New creates a new MLB Stats API client
// An empty baseURL uses the public API; m may be nil
func New(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "Mozilla/5.0 (compatible; MLBAppBot/1.0)",
		metrics:   m,
	}
}

// FetchPerson fetches biographical data for a player
func (c *Client) FetchPerson(ctx context.Context, playerID int) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/people/%d", c.baseURL, playerID)

	result, err := c.fetch(ctx, u)
	c.metrics.ObserveUpstream("people", err)
	return result, err
}

// FetchSeasonStats fetches a player's single-season totals for a stats group
func (c *Client) FetchSeasonStats(ctx context.Context, playerID, season int, group string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("stats", "statsSingleSeason")
	params.Set("season", strconv.Itoa(season))
	params.Set("group", group)

	u := fmt.Sprintf("%s/people/%d/stats?%s", c.baseURL, playerID, params.Encode())

	result, err := c.fetch(ctx, u)
	c.metrics.ObserveUpstream("statsSingleSeason", err)
	return result, err
}

// FetchGameLog fetches a player's per-game lines for one season and game type
func (c *Client) FetchGameLog(ctx context.Context, playerID, season int, group, gameType string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("stats", "gameLog")
	params.Set("season", strconv.Itoa(season))
	params.Set("group", group)
	if gameType != "" {
		params.Set("gameType", gameType)
	}

	u := fmt.Sprintf("%s/people/%d/stats?%s", c.baseURL, playerID, params.Encode())

	result, err := c.fetch(ctx, u)
	c.metrics.ObserveUpstream("gameLog", err)
	return result, err
}

// fetch makes an HTTP GET request and returns parsed JSON
func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("MLB API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return result, nil
}

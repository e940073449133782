package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/masarusaitou/fudousan/models"
	"github.com/masarusaitou/fudousan/utils"
)

const userAgent = "fudousan/1.0 (rental listing browser)"

// Client resolves addresses to coordinates via the Nominatim search API.
// Requests are sequential and rate limited; the public endpoint allows
// one request per second.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *utils.Logger
	retry      *utils.RetryConfig
	interval   time.Duration
}

// NewClient creates a geocoding client against the given search endpoint.
func NewClient(baseURL string, rateLimitMs, maxRetries int, logger *utils.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		interval: time.Duration(rateLimitMs) * time.Millisecond,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up one address. A miss (no result) is returned as ok=false
// without an error: the row simply stays coordinate-less.
func (c *Client) Resolve(ctx context.Context, address string) (lat, lon string, ok bool, err error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	endpoint := c.baseURL + "?" + q.Encode()

	var results []searchResult
	err = c.retry.Do(ctx, "geocode", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		results = results[:0]
		return json.NewDecoder(resp.Body).Decode(&results)
	})
	if err != nil {
		return "", "", false, err
	}
	if len(results) == 0 {
		return "", "", false, nil
	}
	return results[0].Lat, results[0].Lon, true, nil
}

// FillMissing resolves coordinates for rows whose latitude or longitude
// cell is blank, in place. Lookup failures are logged and skipped — a row
// without coordinates is still table-visible downstream.
func (c *Client) FillMissing(ctx context.Context, rows []models.RawRow) {
	var filled, missed int
	for _, r := range rows {
		if r[models.ColLatitude] != "" && r[models.ColLongitude] != "" {
			continue
		}
		address := r[models.ColAddress]
		if address == "" {
			continue
		}

		lat, lon, ok, err := c.Resolve(ctx, address)
		if err != nil {
			c.logger.Warn("[geocode] %q: %v", address, err)
			missed++
		} else if !ok {
			c.logger.Debug("[geocode] %q: no match", address)
			missed++
		} else {
			r[models.ColLatitude] = lat
			r[models.ColLongitude] = lon
			filled++
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.interval):
		}
	}
	c.logger.Info("[geocode] Filled %d rows, %d unresolved", filled, missed)
}

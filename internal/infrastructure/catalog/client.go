// Package catalog implements the catalog gateway: it fetches the bowl list
// from the remote source and degrades to a bundled static catalog on any
// failure, so callers never see an error.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/bowlapp/storefront/internal/api/metrics"
	"github.com/bowlapp/storefront/internal/core/domain"
)

const defaultFetchTimeout = 10 * time.Second

// Client fetches the bowl catalog over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a catalog client for the given base URL. An empty base
// URL means every fetch serves the bundled catalog.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// GetBowls returns the current catalog. Any upstream trouble — network
// failure, non-2xx status (rate limits included), undecodable body — falls
// back to the bundled catalog. Bowls arriving without an image get a
// deterministic placeholder keyed by id.
func (c *Client) GetBowls(ctx context.Context) []domain.Bowl {
	if c.baseURL == "" {
		return FallbackBowls()
	}

	bowls, err := c.fetch(ctx)
	if err != nil {
		metrics.CatalogFallbackTotal.Inc()
		c.log.Warn().Err(err).Msg("catalog fetch failed, serving bundled catalog")
		return FallbackBowls()
	}

	for i := range bowls {
		if bowls[i].Image == "" {
			bowls[i].Image = PlaceholderImage(bowls[i].ID)
		}
	}
	return bowls
}

func (c *Client) fetch(ctx context.Context) ([]domain.Bowl, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bowls", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bowls: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch bowls: unexpected status %d", resp.StatusCode)
	}

	var bowls []domain.Bowl
	if err := json.NewDecoder(resp.Body).Decode(&bowls); err != nil {
		return nil, fmt.Errorf("decode bowls: %w", err)
	}
	return bowls, nil
}

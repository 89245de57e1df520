// internal/datecard/nominatim.go
// OpenStreetMap Nominatim search client

package datecard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	NominatimBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent   = "KiekkyDateCards/1.0"
	maxNominatimBody   = 1 << 20
	nominatimClientTTL = 10 * time.Second
)

// NominatimClient implements VenueSearchClient against the Nominatim /search API.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimClient creates a client. Nominatim rejects requests without a
// User-Agent, so an empty one is replaced by DefaultUserAgent.
func NewNominatimClient(baseURL, userAgent string) *NominatimClient {
	if baseURL == "" {
		baseURL = NominatimBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: nominatimClientTTL,
		},
	}
}

// Search runs a free-text query, or a city-restricted one when q.City is set.
func (c *NominatimClient) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("q", q.Query)
	if q.City != "" {
		params.Set("city", q.City)
	}
	params.Set("format", "json")
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build venue search request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("venue search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxNominatimBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read venue search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("venue search returned status %d", resp.StatusCode)
	}

	var results []SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode venue search response: %w", err)
	}
	if results == nil {
		results = []SearchResult{}
	}

	return results, nil
}

package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/ridemap/internal/core/domain"
)

// Client resolves place names against a Nominatim server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Nominatim client, e.g. against "https://nominatim.openstreetmap.org".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// ForwardGeocode looks up coordinate candidates for free-text input.
func (c *Client) ForwardGeocode(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))

	var results []searchResult
	if err := c.get(ctx, "/search?"+q.Encode(), &results); err != nil {
		return nil, err
	}

	suggestions := make([]domain.Suggestion, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Label:      r.DisplayName,
			Coordinate: domain.GeoPoint{Lat: lat, Lng: lng},
		})
	}
	return suggestions, nil
}

// ReverseGeocode returns a display name for a coordinate.
func (c *Client) ReverseGeocode(ctx context.Context, point domain.GeoPoint) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(point.Lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(point.Lng, 'f', 6, 64))
	q.Set("format", "json")

	var result searchResult
	if err := c.get(ctx, "/reverse?"+q.Encode(), &result); err != nil {
		return "", err
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("%w: no result", domain.ErrProviderUnavailable)
	}
	return result.DisplayName, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrProviderUnavailable, err)
	}
	req.Header.Set("User-Agent", "ridemap/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", domain.ErrProviderUnavailable, err)
	}
	return nil
}

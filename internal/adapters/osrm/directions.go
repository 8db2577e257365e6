package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/samirrijal/ridemap/internal/core/domain"
)

// Client fetches road routes from an OSRM HTTP server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates an OSRM client against baseURL, e.g. "https://router.project-osrm.org".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// GetDirections requests the driving route between two points. OSRM uses
// lng,lat ordering in both the request path and GeoJSON coordinates.
func (c *Client) GetDirections(ctx context.Context, origin, destination domain.GeoPoint) (*domain.RoutePath, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL, origin.Lng, origin.Lat, destination.Lng, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrProviderUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var body routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrProviderUnavailable, err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("%w: code=%s routes=%d", domain.ErrProviderUnavailable, body.Code, len(body.Routes))
	}

	route := body.Routes[0]
	points := make([]domain.GeoPoint, 0, len(route.Geometry.Coordinates))
	for _, coord := range route.Geometry.Coordinates {
		if len(coord) < 2 {
			continue
		}
		points = append(points, domain.GeoPoint{Lat: coord[1], Lng: coord[0]})
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: empty geometry", domain.ErrProviderUnavailable)
	}

	return &domain.RoutePath{
		Points:      points,
		DistanceKm:  route.Distance / 1000.0,
		DurationSec: route.Duration,
		Synthetic:   false,
	}, nil
}

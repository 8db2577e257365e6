package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"time"

	"github.com/samirrijal/ridemap/internal/core/domain"
	"github.com/samirrijal/ridemap/internal/core/ports"
	"github.com/samirrijal/ridemap/internal/pkg/metrics"
	"github.com/samirrijal/ridemap/internal/pkg/projection"
)

// RouteConfig tunes route synthesis.
type RouteConfig struct {
	PointCount      int     // points in a synthetic path
	MinRoadFactor   float64 // lower bound of road-over-crow-flight multiplier
	MaxRoadFactor   float64
	MinutesPerKm    float64 // fixed average-speed constant
	CacheTTLSeconds int
}

// DefaultRouteConfig returns the stock synthesis parameters.
func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		PointCount:      20,
		MinRoadFactor:   1.2,
		MaxRoadFactor:   1.4,
		MinutesPerKm:    2.0,
		CacheTTLSeconds: 300,
	}
}

// perpendicular offset magnitude relative to the straight-line vector,
// and the per-point jitter bound in degrees (~28 m, well under 0.05 km).
const (
	perpFactor = 0.3
	jitterDeg  = 0.0005
)

// RouteService produces travel paths between two points. A configured
// directions provider is preferred; when it is absent or fails, a
// deterministic curved interpolation takes over. Provider failures never
// propagate to the caller.
type RouteService struct {
	provider ports.DirectionsProvider
	cache    ports.CacheService
	events   ports.EventPublisher
	cfg      RouteConfig
}

// NewRouteService creates a new RouteService. provider, cache, and events
// may each be nil.
func NewRouteService(provider ports.DirectionsProvider, cache ports.CacheService, events ports.EventPublisher, cfg RouteConfig) *RouteService {
	if cfg.PointCount < 5 {
		cfg.PointCount = DefaultRouteConfig().PointCount
	}
	if cfg.MinRoadFactor <= 0 || cfg.MaxRoadFactor < cfg.MinRoadFactor {
		cfg.MinRoadFactor = DefaultRouteConfig().MinRoadFactor
		cfg.MaxRoadFactor = DefaultRouteConfig().MaxRoadFactor
	}
	if cfg.MinutesPerKm <= 0 {
		cfg.MinutesPerKm = DefaultRouteConfig().MinutesPerKm
	}
	return &RouteService{provider: provider, cache: cache, events: events, cfg: cfg}
}

// Synthesize returns a route from origin to destination. The only error it
// can return is an invalid coordinate; every provider-side failure degrades
// to the synthetic fallback.
func (s *RouteService) Synthesize(ctx context.Context, origin, destination domain.GeoPoint) (*domain.RoutePath, error) {
	if err := projection.Validate(origin); err != nil {
		return nil, err
	}
	if err := projection.Validate(destination); err != nil {
		return nil, err
	}

	if origin == destination {
		return &domain.RoutePath{
			Points:    []domain.GeoPoint{origin, destination},
			Synthetic: true,
		}, nil
	}

	cacheKey := routeCacheKey(origin, destination)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var rp domain.RoutePath
			if err := json.Unmarshal(data, &rp); err == nil {
				metrics.CacheHits.WithLabelValues("route").Inc()
				return &rp, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("route").Inc()
	}

	route := s.fromProvider(ctx, origin, destination)
	if route != nil {
		metrics.RoutesSynthesized.WithLabelValues("live").Inc()
	} else {
		route = s.synthetic(origin, destination)
		metrics.RoutesSynthesized.WithLabelValues("fallback").Inc()
	}

	if s.cache != nil {
		if data, err := json.Marshal(route); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.cfg.CacheTTLSeconds)
		}
	}

	if s.events != nil {
		event := &domain.RouteEvent{
			Time:        time.Now().UTC(),
			Origin:      origin,
			Destination: destination,
			DistanceKm:  route.DistanceKm,
			DurationSec: route.DurationSec,
			Synthetic:   route.Synthetic,
		}
		if err := s.events.PublishRouteComputed(ctx, event); err != nil {
			slog.Warn("route event publish failed", "error", err)
		}
	}

	return route, nil
}

// InvalidateCache drops all cached routes.
func (s *RouteService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteByPrefix(ctx, "route:")
}

// fromProvider asks the directions provider, returning nil on any failure
// or unusable response.
func (s *RouteService) fromProvider(ctx context.Context, origin, destination domain.GeoPoint) *domain.RoutePath {
	if s.provider == nil {
		return nil
	}
	route, err := s.provider.GetDirections(ctx, origin, destination)
	if err != nil {
		slog.Warn("directions provider failed, using synthetic route", "error", err)
		return nil
	}
	if route == nil || len(route.Points) < 2 {
		return nil
	}
	return route
}

// synthetic builds a curved path through control points offset
// perpendicular to the straight line at the 1/3, 1/2, and 2/3 marks,
// piecewise-linearly interpolated over four segments. Everything is seeded
// from the endpoints, so the same pair always yields the same path,
// distance, and duration.
func (s *RouteService) synthetic(origin, destination domain.GeoPoint) *domain.RoutePath {
	rng := rand.New(rand.NewSource(routeSeed(origin, destination)))

	dLat := destination.Lat - origin.Lat
	dLng := destination.Lng - origin.Lng
	perpLat := -dLng * perpFactor
	perpLng := dLat * perpFactor

	ctrl := [...]domain.GeoPoint{
		origin,
		{Lat: origin.Lat + dLat/3 + perpLat/2, Lng: origin.Lng + dLng/3 + perpLng/2},
		{Lat: origin.Lat + dLat/2 + perpLat, Lng: origin.Lng + dLng/2 + perpLng},
		{Lat: origin.Lat + 2*dLat/3 + perpLat/2, Lng: origin.Lng + 2*dLng/3 + perpLng/2},
		destination,
	}

	n := s.cfg.PointCount
	points := make([]domain.GeoPoint, 0, n)
	points = append(points, origin)

	for i := 1; i < n-1; i++ {
		t := float64(i) / float64(n-1)

		var a, b domain.GeoPoint
		var segT float64
		switch {
		case t < 0.3:
			a, b, segT = ctrl[0], ctrl[1], t/0.3
		case t < 0.5:
			a, b, segT = ctrl[1], ctrl[2], (t-0.3)/0.2
		case t < 0.7:
			a, b, segT = ctrl[2], ctrl[3], (t-0.5)/0.2
		default:
			a, b, segT = ctrl[3], ctrl[4], (t-0.7)/0.3
		}

		points = append(points, domain.GeoPoint{
			Lat: a.Lat + segT*(b.Lat-a.Lat) + (rng.Float64()-0.5)*jitterDeg,
			Lng: a.Lng + segT*(b.Lng-a.Lng) + (rng.Float64()-0.5)*jitterDeg,
		})
	}
	points = append(points, destination)

	crow, _ := projection.Haversine(origin, destination, projection.UnitKilometers)
	factor := s.cfg.MinRoadFactor + rng.Float64()*(s.cfg.MaxRoadFactor-s.cfg.MinRoadFactor)
	distance := crow * factor

	return &domain.RoutePath{
		Points:      points,
		DistanceKm:  distance,
		DurationSec: distance * s.cfg.MinutesPerKm * 60,
		Synthetic:   true,
	}
}

// routeCacheKey rounds endpoints to ~0.1 m so float noise does not split
// cache entries.
func routeCacheKey(origin, destination domain.GeoPoint) string {
	return fmt.Sprintf("route:%.6f,%.6f:%.6f,%.6f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}

// routeSeed hashes the rounded endpoints so jitter and road factor are
// reproducible for a given pair.
func routeSeed(origin, destination domain.GeoPoint) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.6f,%.6f:%.6f,%.6f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
	return int64(h.Sum64())
}

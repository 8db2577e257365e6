package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/samirrijal/ridemap/internal/core/domain"
	"github.com/samirrijal/ridemap/internal/core/ports"
)

// RouteUpgradeActivities holds the activity implementations for the route
// upgrade workflow.
type RouteUpgradeActivities struct {
	Directions ports.DirectionsProvider
	Cache      ports.CacheService
	Events     ports.EventPublisher

	// CacheTTLSeconds matches the route service TTL so upgraded entries
	// expire on the same schedule.
	CacheTTLSeconds int
}

// FetchLiveDirections asks the directions provider for a real route and
// overwrites the cached entry, returning the cache key it wrote.
func (a *RouteUpgradeActivities) FetchLiveDirections(ctx context.Context, input RouteUpgradeInput) (string, error) {
	if a.Directions == nil {
		return "", fmt.Errorf("no directions provider configured")
	}

	origin := domain.GeoPoint{Lat: input.OriginLat, Lng: input.OriginLng}
	dest := domain.GeoPoint{Lat: input.DestLat, Lng: input.DestLng}

	route, err := a.Directions.GetDirections(ctx, origin, dest)
	if err != nil {
		return "", fmt.Errorf("fetch directions: %w", err)
	}

	key := routeCacheKey(origin, dest)
	if a.Cache != nil {
		data, err := json.Marshal(route)
		if err != nil {
			return "", fmt.Errorf("marshal route: %w", err)
		}
		ttl := a.CacheTTLSeconds
		if ttl <= 0 {
			ttl = 300
		}
		if err := a.Cache.Set(ctx, key, data, ttl); err != nil {
			return "", fmt.Errorf("store route %s: %w", key, err)
		}
	}
	return key, nil
}

// PublishUpgrade announces that the route now has live directions.
func (a *RouteUpgradeActivities) PublishUpgrade(ctx context.Context, input RouteUpgradeInput) error {
	if a.Events == nil {
		log.Printf("EVENT (no publisher) → route upgraded %.4f,%.4f -> %.4f,%.4f",
			input.OriginLat, input.OriginLng, input.DestLat, input.DestLng)
		return nil
	}
	event := &domain.RouteEvent{
		Time:        time.Now().UTC(),
		Origin:      domain.GeoPoint{Lat: input.OriginLat, Lng: input.OriginLng},
		Destination: domain.GeoPoint{Lat: input.DestLat, Lng: input.DestLng},
		Synthetic:   false,
	}
	return a.Events.PublishRouteComputed(ctx, event)
}

// DeleteCachedRoute removes a cache entry (saga compensation / rollback).
func (a *RouteUpgradeActivities) DeleteCachedRoute(ctx context.Context, key string) error {
	if a.Cache == nil {
		return nil
	}
	if err := a.Cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete cached route %s: %w", key, err)
	}
	log.Printf("Cached route %s deleted (saga compensation)", key)
	return nil
}

// routeCacheKey mirrors the key format of the route service so upgrades
// land on the entry the API reads.
func routeCacheKey(origin, destination domain.GeoPoint) string {
	return fmt.Sprintf("route:%.6f,%.6f:%.6f,%.6f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}

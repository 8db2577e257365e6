package ports

import (
	"context"

	"github.com/samirrijal/ridemap/internal/core/domain"
)

// DirectionsProvider fetches a real road route between two points.
// Implementations may fail or return an empty path; callers must be
// prepared to fall back to synthetic routing.
type DirectionsProvider interface {
	GetDirections(ctx context.Context, origin, destination domain.GeoPoint) (*domain.RoutePath, error)
}

// Geocoder resolves free text to coordinates and back.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, query string, limit int) ([]domain.Suggestion, error)
	ReverseGeocode(ctx context.Context, point domain.GeoPoint) (string, error)
}

// PlaceRepository persists gazetteer entries.
type PlaceRepository interface {
	Upsert(ctx context.Context, place *domain.Place) error
	UpsertBatch(ctx context.Context, places []domain.Place) error
	Search(ctx context.Context, query string, limit int) ([]domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishRouteComputed(ctx context.Context, event *domain.RouteEvent) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

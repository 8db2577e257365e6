package http

import (
	"github.com/nats-io/nats.go"
	"github.com/samirrijal/ridemap/internal/adapters/postgres"
	"github.com/samirrijal/ridemap/internal/adapters/valkey"
	"github.com/samirrijal/ridemap/internal/core/ports"
	"github.com/samirrijal/ridemap/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Viewport *usecases.ViewportService
	Tiles    *usecases.TileService
	Routes   *usecases.RouteService
	Suggest  *usecases.SuggestService
	Places   ports.PlaceRepository
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}

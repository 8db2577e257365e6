package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/ridemap/internal/adapters/http"
	natsadapter "github.com/samirrijal/ridemap/internal/adapters/nats"
	"github.com/samirrijal/ridemap/internal/adapters/nominatim"
	"github.com/samirrijal/ridemap/internal/adapters/osrm"
	"github.com/samirrijal/ridemap/internal/adapters/postgres"
	"github.com/samirrijal/ridemap/internal/adapters/valkey"
	"github.com/samirrijal/ridemap/internal/core/ports"
	"github.com/samirrijal/ridemap/internal/core/usecases"
	"github.com/samirrijal/ridemap/internal/pkg/config"
	"github.com/samirrijal/ridemap/internal/pkg/logging"
	"github.com/samirrijal/ridemap/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("ridemap-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database is optional: the built-in gazetteer covers suggestions
	// without it.
	var db *postgres.DB
	var placeRepo ports.PlaceRepository
	if cfg.Database.Enabled {
		db, err = postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		placeRepo = postgres.NewPlaceRepo(db)
	}

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// NATS
	var events ports.EventPublisher
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer nc.Close()
		events = nc
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// External providers
	var directions ports.DirectionsProvider
	if cfg.Directions.Enabled {
		directions = osrm.New(cfg.Directions.BaseURL)
	}
	var geocoder ports.Geocoder
	if cfg.Geocoder.Enabled {
		geocoder = nominatim.New(cfg.Geocoder.BaseURL)
	}

	// Use cases
	viewportSvc := usecases.NewViewportService()
	tileSvc := usecases.NewTileService(usecases.TileConfig{
		Mirrors:  cfg.Tiles.Mirrors,
		LightURL: cfg.Tiles.LightURL,
		DarkURL:  cfg.Tiles.DarkURL,
	})
	routeSvc := usecases.NewRouteService(directions, cacheSvc, events, usecases.RouteConfig{
		PointCount:      cfg.Route.PointCount,
		MinRoadFactor:   cfg.Route.MinRoadFactor,
		MaxRoadFactor:   cfg.Route.MaxRoadFactor,
		MinutesPerKm:    cfg.Route.MinutesPerKm,
		CacheTTLSeconds: cfg.Route.CacheTTLSeconds,
	})
	suggestSvc := usecases.NewSuggestService(placeRepo, geocoder, cacheSvc, cfg.Suggest.Limit)

	deps := &http.Dependencies{
		Viewport: viewportSvc,
		Tiles:    tileSvc,
		Routes:   routeSvc,
		Suggest:  suggestSvc,
		Places:   placeRepo,
		NATS:     natsConn,
		DB:       db,
		Cache:    cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "RideMap API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

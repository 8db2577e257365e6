package main

import (
	"log"
	"log/slog"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/samirrijal/ridemap/internal/adapters/nats"
	"github.com/samirrijal/ridemap/internal/adapters/osrm"
	"github.com/samirrijal/ridemap/internal/adapters/valkey"
	"github.com/samirrijal/ridemap/internal/core/ports"
	"github.com/samirrijal/ridemap/internal/pkg/config"
	"github.com/samirrijal/ridemap/internal/pkg/logging"
	"github.com/samirrijal/ridemap/internal/workflows"
)

func main() {
	cfg, err := config.Load("ridemap-refresher")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort: "localhost:7233",
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	// Directions provider is required: upgrading routes is the whole job.
	if !cfg.Directions.Enabled {
		log.Fatal("directions.enabled must be true for the refresher")
	}
	directions := osrm.New(cfg.Directions.BaseURL)

	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	var events ports.EventPublisher
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer nc.Close()
		events = nc
	}

	w := worker.New(c, "route-upgrade-queue", worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.RouteUpgradeWorkflow)
	w.RegisterActivity(&workflows.RouteUpgradeActivities{
		Directions:      directions,
		Cache:           cacheSvc,
		Events:          events,
		CacheTTLSeconds: cfg.Route.CacheTTLSeconds,
	})

	log.Println("route refresher worker started")
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samirrijal/ridemap/internal/adapters/postgres"
	"github.com/samirrijal/ridemap/internal/pkg/config"
	"github.com/samirrijal/ridemap/internal/pkg/gazetteer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|seed>")
	}

	cfg, err := config.Load("ridemap-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	switch os.Args[1] {
	case "up":
		runMigrations(ctx, pool)
	case "seed":
		seedPlaces(ctx, pool)
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) {
	files := []string{
		"migrations/001_places.sql",
	}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("read %s: %v", f, err)
		}

		_, err = pool.Exec(ctx, string(data))
		if err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}

		fmt.Printf("OK  %s\n", f)
	}

	log.Println("all migrations applied")
}

// seedPlaces loads the built-in gazetteer into the places table.
func seedPlaces(ctx context.Context, pool *pgxpool.Pool) {
	repo := postgres.NewPlaceRepo(&postgres.DB{Pool: pool})
	if err := repo.UpsertBatch(ctx, gazetteer.Entries); err != nil {
		log.Fatalf("seed places: %v", err)
	}
	log.Printf("seeded %d places", len(gazetteer.Entries))
}

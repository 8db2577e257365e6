package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/samirrijal/ridemap/internal/core/domain"
)

// PlaceRepo implements ports.PlaceRepository on top of Postgres.
type PlaceRepo struct {
	db *DB
}

func NewPlaceRepo(db *DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

const upsertPlaceSQL = `
	INSERT INTO places (label, aliases, lat, lng, rank)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (label) DO UPDATE SET
		aliases = EXCLUDED.aliases,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		rank = EXCLUDED.rank`

// Upsert inserts a place or updates it by label.
func (r *PlaceRepo) Upsert(ctx context.Context, place *domain.Place) error {
	_, err := r.db.Pool.Exec(ctx, upsertPlaceSQL,
		place.Label, place.Aliases, place.Coordinate.Lat, place.Coordinate.Lng, place.Rank,
	)
	if err != nil {
		return fmt.Errorf("upsert place %q: %w", place.Label, err)
	}
	return nil
}

// UpsertBatch writes places in a single batch round trip.
func (r *PlaceRepo) UpsertBatch(ctx context.Context, places []domain.Place) error {
	batch := &pgx.Batch{}
	for _, p := range places {
		batch.Queue(upsertPlaceSQL,
			p.Label, p.Aliases, p.Coordinate.Lat, p.Coordinate.Lng, p.Rank,
		)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range places {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch upsert: %w", err)
		}
	}
	return nil
}

// Search returns places whose aliases match the query in either
// containment direction, ordered by rank.
func (r *PlaceRepo) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, label, aliases, lat, lng, rank, created_at
		FROM places
		WHERE EXISTS (
			SELECT 1 FROM unnest(aliases) AS alias
			WHERE alias ILIKE '%' || $1 || '%' OR $1 ILIKE '%' || alias || '%'
		)
		ORDER BY rank
		LIMIT $2`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}
	defer rows.Close()

	return scanPlaces(rows)
}

// List returns all places ordered by rank.
func (r *PlaceRepo) List(ctx context.Context) ([]domain.Place, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, label, aliases, lat, lng, rank, created_at
		FROM places
		ORDER BY rank`,
	)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer rows.Close()

	return scanPlaces(rows)
}

func scanPlaces(rows pgx.Rows) ([]domain.Place, error) {
	var places []domain.Place
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(
			&p.ID, &p.Label, &p.Aliases,
			&p.Coordinate.Lat, &p.Coordinate.Lng,
			&p.Rank, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate places: %w", err)
	}
	return places, nil
}

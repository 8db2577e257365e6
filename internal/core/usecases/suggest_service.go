package usecases

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/samirrijal/ridemap/internal/core/domain"
	"github.com/samirrijal/ridemap/internal/core/ports"
	"github.com/samirrijal/ridemap/internal/pkg/gazetteer"
	"github.com/samirrijal/ridemap/internal/pkg/metrics"
	"github.com/samirrijal/ridemap/internal/pkg/projection"
)

// minQueryLen is the shortest query that triggers matching. Anything
// shorter returns an empty result without touching the network, which
// keeps per-keystroke call volume down.
const minQueryLen = 2

// defaultSuggestionLimit caps the ranked candidates per query.
const defaultSuggestionLimit = 3

// SuggestService returns ranked place-name candidates for partial input.
// Matching runs against the places repository when configured, then the
// built-in gazetteer, then a remote geocoder; a small default set
// guarantees a non-empty answer for any query of two or more characters.
type SuggestService struct {
	places   ports.PlaceRepository
	geocoder ports.Geocoder
	cache    ports.CacheService
	entries  []domain.Place
	limit    int
}

// NewSuggestService creates a new SuggestService. places, geocoder, and
// cache may each be nil; limit <= 0 selects the default of 3.
func NewSuggestService(places ports.PlaceRepository, geocoder ports.Geocoder, cache ports.CacheService, limit int) *SuggestService {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	return &SuggestService{
		places:   places,
		geocoder: geocoder,
		cache:    cache,
		entries:  gazetteer.Entries,
		limit:    limit,
	}
}

// Suggest returns up to limit candidates for the query. Queries shorter
// than two characters yield an empty result and no error.
func (s *SuggestService) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < minQueryLen {
		return nil, nil
	}

	cacheKey := "suggest:" + q
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached []domain.Suggestion
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.CacheHits.WithLabelValues("suggest").Inc()
				return cached, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("suggest").Inc()
	}

	results := s.fromPlaces(ctx, q)
	source := "places"

	if len(results) == 0 {
		results = matchGazetteer(s.entries, q, s.limit)
		source = "gazetteer"
	}

	if len(results) == 0 && s.geocoder != nil {
		remote, err := s.geocoder.ForwardGeocode(ctx, q, s.limit)
		if err != nil {
			slog.Warn("forward geocode failed, using defaults", "query", q, "error", err)
		} else if len(remote) > 0 {
			results = remote
			source = "geocoder"
		}
	}

	if len(results) == 0 {
		results = append(results, gazetteer.Defaults...)
		if len(results) > s.limit {
			results = results[:s.limit]
		}
		source = "default"
	}

	metrics.SuggestionQueries.WithLabelValues(source).Inc()

	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return results, nil
}

// ReverseLabel names a coordinate: remote reverse geocoder when
// configured, otherwise the nearest built-in gazetteer entry.
func (s *SuggestService) ReverseLabel(ctx context.Context, point domain.GeoPoint) (string, error) {
	if err := projection.Validate(point); err != nil {
		return "", err
	}

	if s.geocoder != nil {
		label, err := s.geocoder.ReverseGeocode(ctx, point)
		if err == nil && label != "" {
			return label, nil
		}
		if err != nil {
			slog.Warn("reverse geocode failed, using nearest gazetteer entry", "error", err)
		}
	}

	best := ""
	bestKm := -1.0
	for _, entry := range s.entries {
		km, err := projection.Haversine(point, entry.Coordinate, projection.UnitKilometers)
		if err != nil {
			continue
		}
		if bestKm < 0 || km < bestKm {
			best, bestKm = entry.Label, km
		}
	}
	return best, nil
}

// fromPlaces queries the places repository, tolerating its absence or
// failure.
func (s *SuggestService) fromPlaces(ctx context.Context, q string) []domain.Suggestion {
	if s.places == nil {
		return nil
	}
	places, err := s.places.Search(ctx, q, s.limit)
	if err != nil {
		slog.Warn("places search failed, using built-in gazetteer", "error", err)
		return nil
	}
	suggestions := make([]domain.Suggestion, 0, len(places))
	for _, p := range places {
		suggestions = append(suggestions, domain.Suggestion{Label: p.Label, Coordinate: p.Coordinate})
	}
	return suggestions
}

// matchGazetteer scans entries in declaration order. An entry matches when
// the query is a substring of an alias or an alias is a substring of the
// query (covers both truncated typing and short typo aliases). First match
// wins; order is stable.
func matchGazetteer(entries []domain.Place, q string, limit int) []domain.Suggestion {
	var results []domain.Suggestion
	for _, entry := range entries {
		for _, alias := range entry.Aliases {
			if strings.Contains(alias, q) || strings.Contains(q, alias) {
				results = append(results, domain.Suggestion{Label: entry.Label, Coordinate: entry.Coordinate})
				break
			}
		}
		if len(results) >= limit {
			break
		}
	}
	return results
}

package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/ridemap/internal/core/domain"
	"github.com/samirrijal/ridemap/internal/core/usecases"
	"github.com/samirrijal/ridemap/internal/pkg/gazetteer"
)

type mockGeocoder struct {
	forwardFn func(ctx context.Context, query string, limit int) ([]domain.Suggestion, error)
	reverseFn func(ctx context.Context, point domain.GeoPoint) (string, error)
}

func (m *mockGeocoder) ForwardGeocode(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	return m.forwardFn(ctx, query, limit)
}

func (m *mockGeocoder) ReverseGeocode(ctx context.Context, point domain.GeoPoint) (string, error) {
	return m.reverseFn(ctx, point)
}

type mockPlaces struct {
	searchFn func(ctx context.Context, query string, limit int) ([]domain.Place, error)
}

func (m *mockPlaces) Upsert(ctx context.Context, place *domain.Place) error   { return nil }
func (m *mockPlaces) UpsertBatch(ctx context.Context, p []domain.Place) error { return nil }
func (m *mockPlaces) List(ctx context.Context) ([]domain.Place, error)        { return nil, nil }

func (m *mockPlaces) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	return m.searchFn(ctx, query, limit)
}

func TestSuggest_ShortQueryReturnsEmpty(t *testing.T) {
	geocoderCalled := false
	geocoder := &mockGeocoder{
		forwardFn: func(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
			geocoderCalled = true
			return nil, nil
		},
	}
	svc := usecases.NewSuggestService(nil, geocoder, nil, 0)

	for _, q := range []string{"", "a", " a ", "  "} {
		got, err := svc.Suggest(context.Background(), q)
		if err != nil {
			t.Errorf("Suggest(%q): %v", q, err)
		}
		if len(got) != 0 {
			t.Errorf("Suggest(%q) = %v, want empty", q, got)
		}
	}
	if geocoderCalled {
		t.Error("short queries must not reach the geocoder")
	}
}

func TestSuggest_MatchesGazetteer(t *testing.T) {
	svc := usecases.NewSuggestService(nil, nil, nil, 0)

	got, err := svc.Suggest(context.Background(), "Reem")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected matches for \"Reem\"")
	}
	if len(got) > 3 {
		t.Errorf("expected at most 3 suggestions, got %d", len(got))
	}
	if got[0].Label != "Reem Island, Abu Dhabi, UAE" {
		t.Errorf("first match = %q, want the highest-ranked Reem entry", got[0].Label)
	}
}

func TestSuggest_TypoAliases(t *testing.T) {
	svc := usecases.NewSuggestService(nil, nil, nil, 0)

	tests := []struct {
		query string
		want  string
	}{
		{"riim", "Reem Island, Abu Dhabi, UAE"},
		{"dbu", "Abu Dhabi, UAE"},
		{"dubei", "Dubai, UAE"},
	}
	for _, tt := range tests {
		got, err := svc.Suggest(context.Background(), tt.query)
		if err != nil {
			t.Fatalf("Suggest(%q): %v", tt.query, err)
		}
		if len(got) == 0 || got[0].Label != tt.want {
			t.Errorf("Suggest(%q) = %v, want first match %q", tt.query, got, tt.want)
		}
	}
}

func TestSuggest_DeclarationOrderStable(t *testing.T) {
	svc := usecases.NewSuggestService(nil, nil, nil, 0)

	first, err := svc.Suggest(context.Background(), "abu dhabi")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	second, err := svc.Suggest(context.Background(), "abu dhabi")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result length changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d changed: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSuggest_DefaultsWhenNothingMatches(t *testing.T) {
	svc := usecases.NewSuggestService(nil, nil, nil, 0)

	got, err := svc.Suggest(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != len(gazetteer.Defaults) {
		t.Fatalf("expected %d defaults, got %d", len(gazetteer.Defaults), len(got))
	}
	for i, want := range gazetteer.Defaults {
		if got[i] != want {
			t.Errorf("default %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSuggest_PlacesRepositoryFirst(t *testing.T) {
	places := &mockPlaces{
		searchFn: func(ctx context.Context, query string, limit int) ([]domain.Place, error) {
			return []domain.Place{
				{Label: "Custom Reem Entry", Coordinate: domain.GeoPoint{Lat: 24.5, Lng: 54.4}},
			}, nil
		},
	}
	svc := usecases.NewSuggestService(places, nil, nil, 0)

	got, err := svc.Suggest(context.Background(), "reem")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Custom Reem Entry" {
		t.Errorf("expected repository result to win, got %v", got)
	}
}

func TestSuggest_PlacesFailureFallsBackToGazetteer(t *testing.T) {
	places := &mockPlaces{
		searchFn: func(ctx context.Context, query string, limit int) ([]domain.Place, error) {
			return nil, errors.New("db down")
		},
	}
	svc := usecases.NewSuggestService(places, nil, nil, 0)

	got, err := svc.Suggest(context.Background(), "reem")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) == 0 || got[0].Label != "Reem Island, Abu Dhabi, UAE" {
		t.Errorf("expected gazetteer fallback, got %v", got)
	}
}

func TestSuggest_GeocoderAfterGazetteer(t *testing.T) {
	geocoder := &mockGeocoder{
		forwardFn: func(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
			return []domain.Suggestion{
				{Label: "Somewhere Remote", Coordinate: domain.GeoPoint{Lat: 10, Lng: 10}},
			}, nil
		},
	}
	svc := usecases.NewSuggestService(nil, geocoder, nil, 0)

	// Gazetteer hit: geocoder result must not replace it.
	got, err := svc.Suggest(context.Background(), "reem")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got[0].Label == "Somewhere Remote" {
		t.Error("geocoder must not override a gazetteer match")
	}

	// Gazetteer miss: geocoder takes over.
	got, err = svc.Suggest(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Somewhere Remote" {
		t.Errorf("expected geocoder result, got %v", got)
	}
}

func TestSuggest_GeocoderFailureFallsBackToDefaults(t *testing.T) {
	geocoder := &mockGeocoder{
		forwardFn: func(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
			return nil, domain.ErrProviderUnavailable
		},
	}
	svc := usecases.NewSuggestService(nil, geocoder, nil, 0)

	got, err := svc.Suggest(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("geocoder failure must not surface, got %v", err)
	}
	if len(got) != len(gazetteer.Defaults) {
		t.Errorf("expected defaults after geocoder failure, got %v", got)
	}
}

func TestSuggest_CachesResults(t *testing.T) {
	cache := newMockCache()
	calls := 0
	places := &mockPlaces{
		searchFn: func(ctx context.Context, query string, limit int) ([]domain.Place, error) {
			calls++
			return []domain.Place{{Label: "Cached Place"}}, nil
		},
	}
	svc := usecases.NewSuggestService(places, nil, cache, 0)

	for i := 0; i < 3; i++ {
		if _, err := svc.Suggest(context.Background(), "reem"); err != nil {
			t.Fatalf("Suggest: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 repository call with caching, got %d", calls)
	}
}

func TestReverseLabel_NearestGazetteerEntry(t *testing.T) {
	svc := usecases.NewSuggestService(nil, nil, nil, 0)

	// A point on Reem Island should resolve to the Reem Island entry.
	label, err := svc.ReverseLabel(context.Background(), domain.GeoPoint{Lat: 24.4990, Lng: 54.4015})
	if err != nil {
		t.Fatalf("ReverseLabel: %v", err)
	}
	if label != "Reem Island, Abu Dhabi, UAE" {
		t.Errorf("label = %q, want Reem Island entry", label)
	}
}

func TestReverseLabel_PrefersGeocoder(t *testing.T) {
	geocoder := &mockGeocoder{
		reverseFn: func(ctx context.Context, point domain.GeoPoint) (string, error) {
			return "Exact Street Address", nil
		},
	}
	svc := usecases.NewSuggestService(nil, geocoder, nil, 0)

	label, err := svc.ReverseLabel(context.Background(), abuDhabi)
	if err != nil {
		t.Fatalf("ReverseLabel: %v", err)
	}
	if label != "Exact Street Address" {
		t.Errorf("label = %q, want geocoder result", label)
	}
}

func TestReverseLabel_GeocoderFailureFallsBack(t *testing.T) {
	geocoder := &mockGeocoder{
		reverseFn: func(ctx context.Context, point domain.GeoPoint) (string, error) {
			return "", domain.ErrProviderUnavailable
		},
	}
	svc := usecases.NewSuggestService(nil, geocoder, nil, 0)

	label, err := svc.ReverseLabel(context.Background(), dubai)
	if err != nil {
		t.Fatalf("geocoder failure must not surface, got %v", err)
	}
	if label != "Dubai, UAE" {
		t.Errorf("label = %q, want nearest gazetteer entry", label)
	}
}

func TestReverseLabel_InvalidCoordinate(t *testing.T) {
	svc := usecases.NewSuggestService(nil, nil, nil, 0)

	if _, err := svc.ReverseLabel(context.Background(), domain.GeoPoint{Lat: -95, Lng: 0}); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Errorf("expected ErrInvalidCoordinate, got %v", err)
	}
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/samirrijal/ridemap/internal/adapters/http"
	"github.com/samirrijal/ridemap/internal/core/domain"
	"github.com/samirrijal/ridemap/internal/core/usecases"
)

// ---- Mocks ----

type mockDirections struct {
	getFn func(ctx context.Context, origin, destination domain.GeoPoint) (*domain.RoutePath, error)
}

func (m *mockDirections) GetDirections(ctx context.Context, origin, destination domain.GeoPoint) (*domain.RoutePath, error) {
	if m.getFn != nil {
		return m.getFn(ctx, origin, destination)
	}
	return nil, domain.ErrProviderUnavailable
}

type mockPlaceRepo struct {
	listFn   func(ctx context.Context) ([]domain.Place, error)
	searchFn func(ctx context.Context, query string, limit int) ([]domain.Place, error)
}

func (m *mockPlaceRepo) Upsert(ctx context.Context, p *domain.Place) error       { return nil }
func (m *mockPlaceRepo) UpsertBatch(ctx context.Context, p []domain.Place) error { return nil }
func (m *mockPlaceRepo) List(ctx context.Context) ([]domain.Place, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockPlaceRepo) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	d := &handler.Dependencies{
		Viewport: usecases.NewViewportService(),
		Tiles:    usecases.NewTileService(usecases.DefaultTileConfig()),
		Routes:   usecases.NewRouteService(nil, nil, nil, usecases.DefaultRouteConfig()),
		Suggest:  usecases.NewSuggestService(nil, nil, nil, 0),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---- Viewport handler tests ----

func TestViewport_Default(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/viewport?width=800&height=600", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var vp domain.Viewport
	if err := json.NewDecoder(resp.Body).Decode(&vp); err != nil {
		t.Fatal(err)
	}
	if vp.Zoom != 13 {
		t.Errorf("expected default zoom 13, got %d", vp.Zoom)
	}
	if vp.Center.Lat == 0 && vp.Center.Lng == 0 {
		t.Error("expected a non-null-island default center")
	}
}

func TestViewport_BothPoints(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/viewport?pickup_lat=24.4539&pickup_lng=54.3773&dropoff_lat=24.4991&dropoff_lng=54.4017", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var vp domain.Viewport
	if err := json.NewDecoder(resp.Body).Decode(&vp); err != nil {
		t.Fatal(err)
	}
	// ~5.6 km apart: zoom 12 per the distance table
	if vp.Zoom != 12 {
		t.Errorf("expected zoom 12, got %d", vp.Zoom)
	}
}

func TestViewport_HalfPairRejected(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/viewport?pickup_lat=24.45", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("expected 400 for lone pickup_lat, got %d", resp.StatusCode)
	}
}

func TestViewport_InvalidCoordinate(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/viewport?pickup_lat=95&pickup_lng=54", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("expected 400 for lat=95, got %d", resp.StatusCode)
	}
}

func TestLocate_UsesRequestViewport(t *testing.T) {
	app := setupApp(makeDeps())

	body, _ := json.Marshal(map[string]any{
		"click": map[string]float64{"x": 400, "y": 300},
		"viewport": domain.Viewport{
			Center:      domain.GeoPoint{Lat: 24.4539, Lng: 54.3773},
			Zoom:        13,
			PixelWidth:  800,
			PixelHeight: 600,
		},
	})
	req := httptest.NewRequest("POST", "/v1/viewport/locate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var point domain.GeoPoint
	if err := json.NewDecoder(resp.Body).Decode(&point); err != nil {
		t.Fatal(err)
	}
	if point.Lat != 24.4539 || point.Lng != 54.3773 {
		t.Errorf("center click should return the center, got %v", point)
	}
}

func TestLocate_NoViewport(t *testing.T) {
	app := setupApp(makeDeps())

	body, _ := json.Marshal(map[string]any{
		"click": map[string]float64{"x": 10, "y": 10},
	})
	req := httptest.NewRequest("POST", "/v1/viewport/locate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("expected 400 when no viewport has been derived, got %d", resp.StatusCode)
	}
}

// ---- Tile handler tests ----

func TestTiles_Success(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/tiles?center_lat=24.4539&center_lng=54.3773&zoom=13&width=1024&height=768", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Zoom  int                    `json:"zoom"`
		Tiles []domain.TilePlacement `json:"tiles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Zoom != 13 {
		t.Errorf("expected zoom 13, got %d", result.Zoom)
	}
	if len(result.Tiles) == 0 {
		t.Error("expected tile placements")
	}
	for _, p := range result.Tiles {
		if p.URL == "" {
			t.Errorf("tile %v has no URL", p.Tile)
		}
	}
}

func TestTiles_DarkTheme(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/tiles?center_lat=0&center_lng=0&zoom=2&width=256&height=256&theme=dark", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Tiles []domain.TilePlacement `json:"tiles"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	for _, p := range result.Tiles {
		if !bytes.Contains([]byte(p.URL), []byte("dark_all")) {
			t.Errorf("expected dark tile URL, got %s", p.URL)
		}
	}
}

func TestTiles_MissingCenter(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/tiles?zoom=13", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Route handler tests ----

func TestRoute_SyntheticFallback(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/routes?origin_lat=24.4539&origin_lng=54.3773&dest_lat=24.4991&dest_lng=54.4017", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var route domain.RoutePath
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		t.Fatal(err)
	}
	if !route.Synthetic {
		t.Error("expected synthetic route without a provider")
	}
	if len(route.Points) != 20 {
		t.Errorf("expected 20 points, got %d", len(route.Points))
	}
}

func TestRoute_LiveProvider(t *testing.T) {
	provider := &mockDirections{
		getFn: func(ctx context.Context, origin, destination domain.GeoPoint) (*domain.RoutePath, error) {
			return &domain.RoutePath{
				Points:      []domain.GeoPoint{origin, destination},
				DistanceKm:  7.5,
				DurationSec: 840,
			}, nil
		},
	}
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Routes = usecases.NewRouteService(provider, nil, nil, usecases.DefaultRouteConfig())
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET",
		"/v1/routes?origin_lat=24.4539&origin_lng=54.3773&dest_lat=25.2048&dest_lng=55.2708", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var route domain.RoutePath
	json.NewDecoder(resp.Body).Decode(&route)
	if route.Synthetic {
		t.Error("expected live route")
	}
	if route.DistanceKm != 7.5 {
		t.Errorf("expected provider distance 7.5, got %v", route.DistanceKm)
	}
}

func TestRoute_MissingParams(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/routes?origin_lat=24.45&origin_lng=54.37", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("expected 400 without destination, got %d", resp.StatusCode)
	}
}

func TestRoute_InvalidCoordinate(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET",
		"/v1/routes?origin_lat=24.45&origin_lng=200&dest_lat=24.49&dest_lng=54.40", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Errorf("expected 400 for lng=200, got %d", resp.StatusCode)
	}
}

// ---- Suggestion handler tests ----

func TestSuggest_Success(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/locations/suggest?q=reem", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Query       string              `json:"query"`
		Suggestions []domain.Suggestion `json:"suggestions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Suggestions) == 0 {
		t.Fatal("expected suggestions for \"reem\"")
	}
	if len(result.Suggestions) > 3 {
		t.Errorf("expected at most 3 suggestions, got %d", len(result.Suggestions))
	}
}

func TestSuggest_ShortQueryEmptyList(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/locations/suggest?q=a", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Suggestions []domain.Suggestion `json:"suggestions"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if len(result.Suggestions) != 0 {
		t.Errorf("expected empty list for 1-char query, got %v", result.Suggestions)
	}
}

func TestReverse_Success(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/locations/reverse?point_lat=24.4991&point_lng=54.4017", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Label string `json:"label"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Label == "" {
		t.Error("expected a label for a valid coordinate")
	}
}

// ---- Places handler tests ----

func TestListPlaces_NotConfigured(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/locations", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Errorf("expected 503 without a places repository, got %d", resp.StatusCode)
	}
}

func TestListPlaces_Pagination(t *testing.T) {
	places := make([]domain.Place, 5)
	for i := range places {
		places[i] = domain.Place{Label: "Place", Rank: i}
	}
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Places = &mockPlaceRepo{
			listFn: func(ctx context.Context) ([]domain.Place, error) { return places, nil },
		}
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/locations?offset=2&limit=2", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Place `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Pagination.Total != 5 {
		t.Errorf("expected total 5, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 places in page, got %d", len(result.Data))
	}
}

// ---- GraphQL tests ----

func TestGraphQL_Suggest(t *testing.T) {
	app := setupApp(makeDeps())

	body, _ := json.Marshal(map[string]string{
		"query": `{ suggest(query: "reem") { label coordinate { lat lng } } }`,
	})
	req := httptest.NewRequest("POST", "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Suggest []struct {
				Label string `json:"label"`
			} `json:"suggest"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("graphql errors: %v", result.Errors)
	}
	if len(result.Data.Suggest) == 0 {
		t.Error("expected suggestions from graphql query")
	}
}

func TestGraphQL_Route(t *testing.T) {
	app := setupApp(makeDeps())

	body, _ := json.Marshal(map[string]string{
		"query": `{ route(origin_lat: 24.4539, origin_lng: 54.3773, dest_lat: 24.4991, dest_lng: 54.4017) { distance_km synthetic } }`,
	})
	req := httptest.NewRequest("POST", "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Route struct {
				DistanceKm float64 `json:"distance_km"`
				Synthetic  bool    `json:"synthetic"`
			} `json:"route"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("graphql errors: %v", result.Errors)
	}
	if !result.Data.Route.Synthetic {
		t.Error("expected synthetic route")
	}
	if result.Data.Route.DistanceKm <= 0 {
		t.Error("expected a positive distance")
	}
}

// ---- Health tests ----

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestReady_NoBackends(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, _ := app.Test(req, -1)
	// DB, NATS, and cache are all optional, so an empty deployment is ready.
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

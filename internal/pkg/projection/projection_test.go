package projection_test

import (
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/ridemap/internal/core/domain"
	"github.com/samirrijal/ridemap/internal/pkg/projection"
)

func TestToPixel_Origin(t *testing.T) {
	px, err := projection.ToPixel(domain.GeoPoint{Lat: 0, Lng: 0}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if px.X != 128 || px.Y != 128 {
		t.Errorf("expected (128, 128) at zoom 0, got (%v, %v)", px.X, px.Y)
	}
}

func TestRoundTrip(t *testing.T) {
	points := []domain.GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 24.4539, Lng: 54.3773},  // Abu Dhabi
		{Lat: 43.263, Lng: -2.935},    // Bilbao
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 84.9, Lng: 179.9},
		{Lat: -84.9, Lng: -179.9},
	}

	for _, p := range points {
		for _, zoom := range []int{0, 5, 12, 18, 20} {
			px, err := projection.ToPixel(p, zoom)
			if err != nil {
				t.Fatalf("ToPixel(%v, %d): %v", p, zoom, err)
			}
			back, err := projection.ToGeo(px, zoom)
			if err != nil {
				t.Fatalf("ToGeo(%v, %d): %v", px, zoom, err)
			}
			if math.Abs(back.Lat-p.Lat) > 1e-6 || math.Abs(back.Lng-p.Lng) > 1e-6 {
				t.Errorf("round trip %v at zoom %d drifted to %v", p, zoom, back)
			}
		}
	}
}

func TestToPixel_ClampsPolarLatitude(t *testing.T) {
	near, err := projection.ToPixel(domain.GeoPoint{Lat: 89.9, Lng: 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clamp, err := projection.ToPixel(domain.GeoPoint{Lat: 85.05, Lng: 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if near.Y != clamp.Y {
		t.Errorf("latitude above clamp should project like 85.05: got %v vs %v", near.Y, clamp.Y)
	}
}

func TestToPixel_RejectsInvalid(t *testing.T) {
	bad := []domain.GeoPoint{
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.Inf(1)},
		{Lat: 91, Lng: 0},
		{Lat: 0, Lng: -181},
	}
	for _, p := range bad {
		if _, err := projection.ToPixel(p, 10); !errors.Is(err, domain.ErrInvalidCoordinate) {
			t.Errorf("expected ErrInvalidCoordinate for %v, got %v", p, err)
		}
	}
}

func TestTileOf(t *testing.T) {
	tests := []struct {
		point domain.GeoPoint
		zoom  int
		want  domain.TileKey
	}{
		{domain.GeoPoint{Lat: 0, Lng: 0}, 0, domain.TileKey{X: 0, Y: 0, Z: 0}},
		{domain.GeoPoint{Lat: 0, Lng: 0}, 1, domain.TileKey{X: 1, Y: 1, Z: 1}},
		{domain.GeoPoint{Lat: 0, Lng: -179.99}, 2, domain.TileKey{X: 0, Y: 2, Z: 2}},
		{domain.GeoPoint{Lat: 89, Lng: 179.99}, 4, domain.TileKey{X: 15, Y: 0, Z: 4}},
	}

	for _, tc := range tests {
		got, err := projection.TileOf(tc.point, tc.zoom)
		if err != nil {
			t.Fatalf("TileOf(%v, %d): %v", tc.point, tc.zoom, err)
		}
		if got != tc.want {
			t.Errorf("TileOf(%v, %d) = %v, want %v", tc.point, tc.zoom, got, tc.want)
		}
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	abuDhabi := domain.GeoPoint{Lat: 24.4539, Lng: 54.3773}
	reem := domain.GeoPoint{Lat: 24.4991, Lng: 54.4017}

	km, err := projection.Haversine(abuDhabi, reem, projection.UnitKilometers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if km < 5.0 || km > 6.2 {
		t.Errorf("Abu Dhabi to Reem Island should be ~5.6 km, got %v", km)
	}

	mi, err := projection.Haversine(abuDhabi, reem, projection.UnitMiles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ratio := km / mi
	if math.Abs(ratio-earthRadiusRatio) > 1e-9 {
		t.Errorf("km/mi ratio should equal radius ratio %v, got %v", earthRadiusRatio, ratio)
	}
}

const earthRadiusRatio = 6371.0 / 3958.8

func TestHaversine_Monotonic(t *testing.T) {
	origin := domain.GeoPoint{Lat: 24.4539, Lng: 54.3773}

	prev := -1.0
	for _, dLng := range []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 20} {
		d, err := projection.Haversine(origin, domain.GeoPoint{Lat: origin.Lat, Lng: origin.Lng + dLng}, projection.UnitKilometers)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d <= prev {
			t.Errorf("distance should grow with separation: %v after %v", d, prev)
		}
		prev = d
	}
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	p := domain.GeoPoint{Lat: 43.263, Lng: -2.935}
	d, err := projection.Haversine(p, p, projection.UnitKilometers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

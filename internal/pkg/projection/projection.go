// Package projection implements the standard Web-Mercator tiling math:
// geographic coordinates to world pixels at a zoom level, tile indices,
// and great-circle distances.
package projection

import (
	"fmt"
	"math"

	"github.com/samirrijal/ridemap/internal/core/domain"
)

// TileSize is the edge length of one slippy-map tile in pixels.
const TileSize = 256

// maxMercatorLat is the latitude beyond which Web Mercator degenerates.
// Latitudes outside ±maxMercatorLat are clamped before projecting.
const maxMercatorLat = 85.05

// Unit selects the Earth radius used for distance calculations.
type Unit int

const (
	UnitKilometers Unit = iota
	UnitMiles
)

const (
	earthRadiusKm = 6371.0
	earthRadiusMi = 3958.8
)

// WorldSize returns the pixel width/height of the world square at a zoom level.
func WorldSize(zoom int) float64 {
	return TileSize * math.Exp2(float64(clampZoom(zoom)))
}

// ToPixel projects a geographic point to world pixel coordinates at the
// given zoom. Latitude is clamped to ±85.05 before projecting; non-finite
// or out-of-range inputs are rejected rather than producing NaN pixels.
func ToPixel(p domain.GeoPoint, zoom int) (domain.PixelPoint, error) {
	if err := Validate(p); err != nil {
		return domain.PixelPoint{}, err
	}

	lat := clampLat(p.Lat)
	ws := WorldSize(zoom)
	latRad := lat * math.Pi / 180

	x := (p.Lng + 180) / 360 * ws
	y := (0.5 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/(2*math.Pi)) * ws

	return domain.PixelPoint{X: x, Y: y}, nil
}

// ToGeo is the exact inverse of ToPixel (inverse Gudermannian for latitude).
func ToGeo(px domain.PixelPoint, zoom int) (domain.GeoPoint, error) {
	if !isFinite(px.X) || !isFinite(px.Y) {
		return domain.GeoPoint{}, fmt.Errorf("%w: pixel (%v, %v)", domain.ErrInvalidCoordinate, px.X, px.Y)
	}

	ws := WorldSize(zoom)
	lng := px.X/ws*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*px.Y/ws))) * 180 / math.Pi

	return domain.GeoPoint{Lat: lat, Lng: lng}, nil
}

// TileOf returns the tile containing a geographic point at the given zoom,
// clamped to the valid range for that zoom.
func TileOf(p domain.GeoPoint, zoom int) (domain.TileKey, error) {
	px, err := ToPixel(p, zoom)
	if err != nil {
		return domain.TileKey{}, err
	}

	z := clampZoom(zoom)
	maxTile := 1<<z - 1
	x := clampInt(int(math.Floor(px.X/TileSize)), 0, maxTile)
	y := clampInt(int(math.Floor(px.Y/TileSize)), 0, maxTile)

	return domain.TileKey{X: x, Y: y, Z: z}, nil
}

// Haversine calculates the great-circle distance between two points in the
// requested unit.
func Haversine(a, b domain.GeoPoint, unit Unit) (float64, error) {
	if err := Validate(a); err != nil {
		return 0, err
	}
	if err := Validate(b); err != nil {
		return 0, err
	}

	radius := earthRadiusKm
	if unit == UnitMiles {
		radius = earthRadiusMi
	}

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return radius * c, nil
}

// Validate rejects non-finite or out-of-range coordinates.
func Validate(p domain.GeoPoint) error {
	if !isFinite(p.Lat) || !isFinite(p.Lng) || p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: lat=%v lng=%v", domain.ErrInvalidCoordinate, p.Lat, p.Lng)
	}
	return nil
}

func clampLat(lat float64) float64 {
	return math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
}

func clampZoom(zoom int) int {
	return clampInt(zoom, 0, 20)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

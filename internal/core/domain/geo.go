package domain

import "time"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PixelPoint is a screen-space position relative to the viewport's
// top-left corner at the current zoom. Derived, never persisted.
type PixelPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TileKey identifies one raster tile image in the slippy-map scheme.
// X and Y are always within [0, 2^Z - 1].
type TileKey struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// TilePlacement is one entry of a tile draw list: which tile to fetch,
// where its top-left corner lands on screen, and the URL to fetch it from.
type TilePlacement struct {
	Tile         TileKey    `json:"tile"`
	ScreenOrigin PixelPoint `json:"screen_origin"`
	URL          string     `json:"url"`
}

// Theme selects the basemap variant for tile URLs.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Viewport is the visible map state: center, zoom, and pixel dimensions.
// It is replaced wholesale on every recomputation, never mutated piecewise.
type Viewport struct {
	Center      GeoPoint `json:"center"`
	Zoom        int      `json:"zoom"`
	PixelWidth  int      `json:"pixel_width"`
	PixelHeight int      `json:"pixel_height"`
}

// RoutePath is an ordered travel path between two points with estimates.
// The first point equals the origin and the last equals the destination.
// Synthetic is true when the path came from the curved fallback rather
// than a live directions provider.
type RoutePath struct {
	Points      []GeoPoint `json:"points"`
	DistanceKm  float64    `json:"distance_km"`
	DurationSec float64    `json:"duration_sec"`
	Synthetic   bool       `json:"synthetic"`
}

// Origin returns the first point of the path.
func (rp *RoutePath) Origin() GeoPoint {
	return rp.Points[0]
}

// Destination returns the last point of the path.
func (rp *RoutePath) Destination() GeoPoint {
	return rp.Points[len(rp.Points)-1]
}

// Suggestion is one ranked place-name candidate for a partial query.
type Suggestion struct {
	Label      string   `json:"label"`
	Coordinate GeoPoint `json:"coordinate"`
}

// Place is a gazetteer entry: a named location with the aliases it
// matches under. Rank preserves declaration order for tie-breaking.
type Place struct {
	ID         string    `json:"id,omitempty"`
	Label      string    `json:"label"`
	Aliases    []string  `json:"aliases"`
	Coordinate GeoPoint  `json:"coordinate"`
	Rank       int       `json:"rank"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// RouteEvent is published after each route computation.
type RouteEvent struct {
	Time        time.Time `json:"time"`
	Origin      GeoPoint  `json:"origin"`
	Destination GeoPoint  `json:"destination"`
	DistanceKm  float64   `json:"distance_km"`
	DurationSec float64   `json:"duration_sec"`
	Synthetic   bool      `json:"synthetic"`
}

package usecases

import (
	"fmt"
	"sync/atomic"

	"github.com/samirrijal/ridemap/internal/core/domain"
	"github.com/samirrijal/ridemap/internal/pkg/projection"
)

// defaultCenter is used when no location has been supplied yet.
var defaultCenter = domain.GeoPoint{Lat: 24.4539, Lng: 54.3773} // Abu Dhabi

const (
	defaultZoom     = 13
	singlePointZoom = 14
)

// ViewportService derives the map viewport from the supplied locations and
// maps pointer clicks back to geographic coordinates. The current viewport
// is held as a snapshot that is replaced atomically on every derivation,
// so concurrent readers never observe a half-updated state.
type ViewportService struct {
	current atomic.Pointer[domain.Viewport]
}

// NewViewportService creates a new ViewportService.
func NewViewportService() *ViewportService {
	return &ViewportService{}
}

// Derive computes the viewport for the given locations and viewport size,
// stores it as the current snapshot, and returns it.
//
// With both pickup and dropoff set, the center is their midpoint and the
// zoom follows a distance step table. With a single point the priority is
// pickup > dropoff > current at zoom 14. With none, the default center.
func (s *ViewportService) Derive(pickup, dropoff, current *domain.GeoPoint, width, height int) (domain.Viewport, error) {
	if width <= 0 || height <= 0 {
		return domain.Viewport{}, fmt.Errorf("viewport size must be positive, got %dx%d", width, height)
	}
	for _, p := range []*domain.GeoPoint{pickup, dropoff, current} {
		if p != nil {
			if err := projection.Validate(*p); err != nil {
				return domain.Viewport{}, err
			}
		}
	}

	vp := domain.Viewport{
		Center:      defaultCenter,
		Zoom:        defaultZoom,
		PixelWidth:  width,
		PixelHeight: height,
	}

	switch {
	case pickup != nil && dropoff != nil:
		vp.Center = domain.GeoPoint{
			Lat: (pickup.Lat + dropoff.Lat) / 2,
			Lng: (pickup.Lng + dropoff.Lng) / 2,
		}
		km, err := projection.Haversine(*pickup, *dropoff, projection.UnitKilometers)
		if err != nil {
			return domain.Viewport{}, err
		}
		vp.Zoom = zoomForDistance(km)
	case pickup != nil:
		vp.Center, vp.Zoom = *pickup, singlePointZoom
	case dropoff != nil:
		vp.Center, vp.Zoom = *dropoff, singlePointZoom
	case current != nil:
		vp.Center, vp.Zoom = *current, singlePointZoom
	}

	s.current.Store(&vp)
	return vp, nil
}

// Current returns the last derived viewport, or nil if none yet.
func (s *ViewportService) Current() *domain.Viewport {
	return s.current.Load()
}

// zoomForDistance maps the pickup-dropoff separation to a zoom level.
func zoomForDistance(km float64) int {
	switch {
	case km > 50:
		return 9
	case km > 20:
		return 10
	case km > 10:
		return 11
	case km > 5:
		return 12
	case km > 2:
		return 13
	default:
		return 14
	}
}

// PixelToGeo maps a click position inside the viewport back to geographic
// coordinates.
//
// This intentionally reproduces the approximate inverse the map UI relies
// on: longitude uses the true degrees-per-pixel, but latitude is scaled
// over a flat 170° span corrected by the viewport aspect ratio rather
// than inverting the Mercator projection exactly. Callers that need the
// exact inverse should use projection.ToGeo instead.
func (s *ViewportService) PixelToGeo(click domain.PixelPoint, vp domain.Viewport) (domain.GeoPoint, error) {
	if err := projection.Validate(vp.Center); err != nil {
		return domain.GeoPoint{}, err
	}
	if vp.PixelWidth <= 0 || vp.PixelHeight <= 0 {
		return domain.GeoPoint{}, fmt.Errorf("viewport size must be positive, got %dx%d", vp.PixelWidth, vp.PixelHeight)
	}

	ws := projection.WorldSize(vp.Zoom)
	degPerPxX := 360 / ws
	degPerPxY := (170 / ws) * (float64(vp.PixelWidth) / float64(vp.PixelHeight))

	lng := vp.Center.Lng + (click.X-float64(vp.PixelWidth)/2)*degPerPxX
	lat := vp.Center.Lat - (click.Y-float64(vp.PixelHeight)/2)*degPerPxY

	return domain.GeoPoint{
		Lat: clampFloat(lat, -90, 90),
		Lng: clampFloat(lng, -180, 180),
	}, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

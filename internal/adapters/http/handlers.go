package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samirrijal/ridemap/internal/core/domain"
)

// queryPoint reads an optional "<prefix>_lat"/"<prefix>_lng" pair. Both
// parameters must be present together; a lone half is a client error.
func queryPoint(c *fiber.Ctx, prefix string) (*domain.GeoPoint, error) {
	latStr := c.Query(prefix + "_lat")
	lngStr := c.Query(prefix + "_lng")
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, errors.New(prefix + "_lat and " + prefix + "_lng must be given together")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.New(prefix + "_lat is not a number")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, errors.New(prefix + "_lng is not a number")
	}
	return &domain.GeoPoint{Lat: lat, Lng: lng}, nil
}

// ViewportHandler derives the map viewport from the supplied locations.
func ViewportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pickup, err := queryPoint(c, "pickup")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		dropoff, err := queryPoint(c, "dropoff")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		current, err := queryPoint(c, "current")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		width := c.QueryInt("width", 800)
		height := c.QueryInt("height", 600)

		vp, err := deps.Viewport.Derive(pickup, dropoff, current, width, height)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(vp)
	}
}

// locateRequest is the body for click-to-coordinate resolution. The
// viewport is optional; the last derived one is used when omitted.
type locateRequest struct {
	Click    domain.PixelPoint `json:"click"`
	Viewport *domain.Viewport  `json:"viewport"`
}

// LocateHandler maps a click position inside the viewport to coordinates.
func LocateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req locateRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		vp := req.Viewport
		if vp == nil {
			vp = deps.Viewport.Current()
		}
		if vp == nil {
			return errBadRequest(c, "no viewport given and none derived yet")
		}

		point, err := deps.Viewport.PixelToGeo(req.Click, *vp)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.JSON(point)
	}
}

// TilesHandler returns the tile draw list for a viewport.
func TilesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		center, err := queryPoint(c, "center")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		if center == nil {
			return errBadRequest(c, "center_lat and center_lng are required")
		}

		vp := domain.Viewport{
			Center:      *center,
			Zoom:        c.QueryInt("zoom", 13),
			PixelWidth:  c.QueryInt("width", 800),
			PixelHeight: c.QueryInt("height", 600),
		}
		if vp.PixelWidth <= 0 || vp.PixelHeight <= 0 {
			return errBadRequest(c, "width and height must be positive")
		}

		theme := domain.ThemeLight
		if c.Query("theme") == string(domain.ThemeDark) {
			theme = domain.ThemeDark
		}

		placements, err := deps.Tiles.Resolve(vp, theme)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCoordinate) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(fiber.Map{
			"zoom":  vp.Zoom,
			"theme": theme,
			"tiles": placements,
		})
	}
}

// RouteHandler computes a route between origin and destination.
func RouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin, err := queryPoint(c, "origin")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		dest, err := queryPoint(c, "dest")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		if origin == nil || dest == nil {
			return errBadRequest(c, "origin_lat, origin_lng, dest_lat, and dest_lng are required")
		}

		route, err := deps.Routes.Synthesize(c.UserContext(), *origin, *dest)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCoordinate) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(route)
	}
}

// InvalidateRoutesHandler drops all cached routes.
func InvalidateRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Routes.InvalidateCache(c.UserContext()); err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"status": "invalidated"})
	}
}

// SuggestHandler returns place-name candidates for a partial query.
func SuggestHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}

		suggestions, err := deps.Suggest.Suggest(c.UserContext(), query)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if suggestions == nil {
			suggestions = []domain.Suggestion{}
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(fiber.Map{
			"query":       query,
			"suggestions": suggestions,
		})
	}
}

// ReverseHandler names a coordinate.
func ReverseHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		point, err := queryPoint(c, "point")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		if point == nil {
			return errBadRequest(c, "point_lat and point_lng are required")
		}

		label, err := deps.Suggest.ReverseLabel(c.UserContext(), *point)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCoordinate) {
				return errBadRequest(c, err.Error())
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{
			"point": point,
			"label": label,
		})
	}
}

// ListPlacesHandler returns the gazetteer from the places database.
func ListPlacesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Places == nil {
			return errUnavailable(c, "places database not configured")
		}

		places, err := deps.Places.List(c.UserContext())
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(places)
		if offset >= total {
			places = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			places = places[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: places, Pagination: pg})
	}
}

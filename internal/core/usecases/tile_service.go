package usecases

import (
	"math"
	"strconv"
	"strings"

	"github.com/samirrijal/ridemap/internal/core/domain"
	"github.com/samirrijal/ridemap/internal/pkg/metrics"
	"github.com/samirrijal/ridemap/internal/pkg/projection"
)

// TileConfig configures mirror rotation and URL templates.
// Templates use {s}, {z}, {x}, {y} placeholders.
type TileConfig struct {
	Mirrors  []string
	LightURL string
	DarkURL  string
}

// DefaultTileConfig returns the OpenStreetMap/Carto basemap setup.
func DefaultTileConfig() TileConfig {
	return TileConfig{
		Mirrors:  []string{"a", "b", "c"},
		LightURL: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		DarkURL:  "https://cartodb-basemaps-{s}.global.ssl.fastly.net/dark_all/{z}/{x}/{y}.png",
	}
}

// TileService computes tile draw lists for a viewport. It is pure
// computation; fetching the tile images is the caller's responsibility.
type TileService struct {
	cfg TileConfig
}

// NewTileService creates a new TileService.
func NewTileService(cfg TileConfig) *TileService {
	if len(cfg.Mirrors) == 0 {
		cfg.Mirrors = DefaultTileConfig().Mirrors
	}
	if cfg.LightURL == "" {
		cfg.LightURL = DefaultTileConfig().LightURL
	}
	if cfg.DarkURL == "" {
		cfg.DarkURL = DefaultTileConfig().DarkURL
	}
	return &TileService{cfg: cfg}
}

// Resolve returns the minimal rectangular tile set covering the viewport,
// with each tile's on-screen top-left pixel and fetch URL. Output is fully
// deterministic: the same viewport and theme always yield the same list.
func (s *TileService) Resolve(vp domain.Viewport, theme domain.Theme) ([]domain.TilePlacement, error) {
	centerPx, err := projection.ToPixel(vp.Center, vp.Zoom)
	if err != nil {
		return nil, err
	}
	centerTile, err := projection.TileOf(vp.Center, vp.Zoom)
	if err != nil {
		return nil, err
	}

	halfX := int(math.Ceil(float64(vp.PixelWidth) / projection.TileSize / 2))
	halfY := int(math.Ceil(float64(vp.PixelHeight) / projection.TileSize / 2))

	maxTile := 1<<centerTile.Z - 1
	minX := max(0, centerTile.X-halfX)
	maxX := min(maxTile, centerTile.X+halfX)
	minY := max(0, centerTile.Y-halfY)
	maxY := min(maxTile, centerTile.Y+halfY)

	screenCX := float64(vp.PixelWidth) / 2
	screenCY := float64(vp.PixelHeight) / 2

	placements := make([]domain.TilePlacement, 0, (maxX-minX+1)*(maxY-minY+1))
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			tile := domain.TileKey{X: x, Y: y, Z: centerTile.Z}
			placements = append(placements, domain.TilePlacement{
				Tile: tile,
				ScreenOrigin: domain.PixelPoint{
					X: screenCX - (centerPx.X - float64(x)*projection.TileSize),
					Y: screenCY - (centerPx.Y - float64(y)*projection.TileSize),
				},
				URL: s.TileURL(tile, theme),
			})
		}
	}

	metrics.TilesResolved.Add(float64(len(placements)))
	return placements, nil
}

// TileURL builds the fetch URL for one tile. The mirror is chosen by
// (x+y) mod len(mirrors) so repeated calls pick the same server.
func (s *TileService) TileURL(tile domain.TileKey, theme domain.Theme) string {
	mirror := s.cfg.Mirrors[(tile.X+tile.Y)%len(s.cfg.Mirrors)]

	tpl := s.cfg.LightURL
	if theme == domain.ThemeDark {
		tpl = s.cfg.DarkURL
	}

	return strings.NewReplacer(
		"{s}", mirror,
		"{z}", strconv.Itoa(tile.Z),
		"{x}", strconv.Itoa(tile.X),
		"{y}", strconv.Itoa(tile.Y),
	).Replace(tpl)
}

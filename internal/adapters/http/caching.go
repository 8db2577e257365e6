package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		// Default cache times by endpoint pattern
		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0" // GraphQL varies wildly

		case strings.HasPrefix(path, "/v1/tiles"):
			ttl = "public, max-age=300" // Tile lists change with the basemap only

		case strings.HasPrefix(path, "/v1/routes"):
			ttl = "public, max-age=300" // Matches the route cache TTL

		case strings.HasPrefix(path, "/v1/locations/suggest"):
			ttl = "public, max-age=60" // Per-keystroke queries

		case strings.HasPrefix(path, "/v1/locations"):
			ttl = "public, max-age=3600" // 1 hour for stable gazetteer data

		case strings.HasPrefix(path, "/v1/viewport"):
			ttl = "no-cache" // Depends on live client state

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300" // 5 min default for API endpoints
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}

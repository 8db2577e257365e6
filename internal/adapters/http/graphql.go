package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/ridemap/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	pixelPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PixelPoint",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Float},
			"y": &graphql.Field{Type: graphql.Float},
		},
	})

	suggestionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Suggestion",
		Fields: graphql.Fields{
			"label":      &graphql.Field{Type: graphql.String},
			"coordinate": &graphql.Field{Type: geoPointType},
		},
	})

	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"points":       &graphql.Field{Type: graphql.NewList(geoPointType)},
			"distance_km":  &graphql.Field{Type: graphql.Float},
			"duration_sec": &graphql.Field{Type: graphql.Float},
			"synthetic":    &graphql.Field{Type: graphql.Boolean},
		},
	})

	viewportType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Viewport",
		Fields: graphql.Fields{
			"center":       &graphql.Field{Type: geoPointType},
			"zoom":         &graphql.Field{Type: graphql.Int},
			"pixel_width":  &graphql.Field{Type: graphql.Int},
			"pixel_height": &graphql.Field{Type: graphql.Int},
		},
	})

	tileKeyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TileKey",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Int},
			"y": &graphql.Field{Type: graphql.Int},
			"z": &graphql.Field{Type: graphql.Int},
		},
	})

	tilePlacementType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TilePlacement",
		Fields: graphql.Fields{
			"tile":          &graphql.Field{Type: tileKeyType},
			"screen_origin": &graphql.Field{Type: pixelPointType},
			"url":           &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"suggest": &graphql.Field{
				Type:        graphql.NewList(suggestionType),
				Description: "Place-name candidates for a partial query",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					return deps.Suggest.Suggest(p.Context, q)
				},
			},
			"reverse": &graphql.Field{
				Type:        graphql.String,
				Description: "Name a coordinate",
				Args: graphql.FieldConfigArgument{
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					point := domain.GeoPoint{
						Lat: p.Args["lat"].(float64),
						Lng: p.Args["lng"].(float64),
					}
					return deps.Suggest.ReverseLabel(p.Context, point)
				},
			},
			"route": &graphql.Field{
				Type:        routeType,
				Description: "Route between two points",
				Args: graphql.FieldConfigArgument{
					"origin_lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"origin_lng": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"dest_lat":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"dest_lng":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					origin := domain.GeoPoint{
						Lat: p.Args["origin_lat"].(float64),
						Lng: p.Args["origin_lng"].(float64),
					}
					dest := domain.GeoPoint{
						Lat: p.Args["dest_lat"].(float64),
						Lng: p.Args["dest_lng"].(float64),
					}
					return deps.Routes.Synthesize(p.Context, origin, dest)
				},
			},
			"viewport": &graphql.Field{
				Type:        viewportType,
				Description: "Derive the map viewport for a pickup/dropoff pair",
				Args: graphql.FieldConfigArgument{
					"pickup_lat":  &graphql.ArgumentConfig{Type: graphql.Float},
					"pickup_lng":  &graphql.ArgumentConfig{Type: graphql.Float},
					"dropoff_lat": &graphql.ArgumentConfig{Type: graphql.Float},
					"dropoff_lng": &graphql.ArgumentConfig{Type: graphql.Float},
					"width":       &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 800},
					"height":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 600},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pickup := argPoint(p, "pickup_lat", "pickup_lng")
					dropoff := argPoint(p, "dropoff_lat", "dropoff_lng")
					width := p.Args["width"].(int)
					height := p.Args["height"].(int)
					return deps.Viewport.Derive(pickup, dropoff, nil, width, height)
				},
			},
			"tiles": &graphql.Field{
				Type:        graphql.NewList(tilePlacementType),
				Description: "Tile draw list for a viewport",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"zoom":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 13},
					"width":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 800},
					"height": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 600},
					"theme":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "light"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					vp := domain.Viewport{
						Center: domain.GeoPoint{
							Lat: p.Args["lat"].(float64),
							Lng: p.Args["lng"].(float64),
						},
						Zoom:        p.Args["zoom"].(int),
						PixelWidth:  p.Args["width"].(int),
						PixelHeight: p.Args["height"].(int),
					}
					theme := domain.Theme(p.Args["theme"].(string))
					return deps.Tiles.Resolve(vp, theme)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// argPoint reads an optional lat/lng argument pair, nil when absent.
func argPoint(p graphql.ResolveParams, latKey, lngKey string) *domain.GeoPoint {
	lat, latOK := p.Args[latKey].(float64)
	lng, lngOK := p.Args[lngKey].(float64)
	if !latOK || !lngOK {
		return nil
	}
	return &domain.GeoPoint{Lat: lat, Lng: lng}
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}

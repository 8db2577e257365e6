package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Tiles      TilesConfig      `mapstructure:"tiles"`
	Route      RouteConfig      `mapstructure:"route"`
	Suggest    SuggestConfig    `mapstructure:"suggest"`
	Directions DirectionsConfig `mapstructure:"directions"`
	Geocoder   GeocoderConfig   `mapstructure:"geocoder"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Valkey     ValkeyConfig     `mapstructure:"valkey"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type TilesConfig struct {
	Mirrors  []string `mapstructure:"mirrors"`
	LightURL string   `mapstructure:"light_url"`
	DarkURL  string   `mapstructure:"dark_url"`
}

type RouteConfig struct {
	PointCount      int     `mapstructure:"point_count"`
	MinRoadFactor   float64 `mapstructure:"min_road_factor"`
	MaxRoadFactor   float64 `mapstructure:"max_road_factor"`
	MinutesPerKm    float64 `mapstructure:"minutes_per_km"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds"`
}

type SuggestConfig struct {
	Limit int `mapstructure:"limit"`
}

type DirectionsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

type GeocoderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("tiles.mirrors", []string{"a", "b", "c"})
	v.SetDefault("tiles.light_url", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("tiles.dark_url", "https://cartodb-basemaps-{s}.global.ssl.fastly.net/dark_all/{z}/{x}/{y}.png")
	v.SetDefault("route.point_count", 20)
	v.SetDefault("route.min_road_factor", 1.2)
	v.SetDefault("route.max_road_factor", 1.4)
	v.SetDefault("route.minutes_per_km", 2.0)
	v.SetDefault("route.cache_ttl_seconds", 300)
	v.SetDefault("suggest.limit", 3)
	v.SetDefault("directions.enabled", false)
	v.SetDefault("directions.base_url", "https://router.project-osrm.org")
	v.SetDefault("geocoder.enabled", false)
	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "ridemap")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "ridemap")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: RIDEMAP_ROUTE_POINT_COUNT → route.point_count
	v.SetEnvPrefix("RIDEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if len(c.Tiles.Mirrors) == 0 {
		errs = append(errs, "tiles.mirrors must not be empty")
	}
	if c.Tiles.LightURL == "" || c.Tiles.DarkURL == "" {
		errs = append(errs, "tiles.light_url and tiles.dark_url are required")
	}
	if c.Route.PointCount < 5 {
		errs = append(errs, fmt.Sprintf("route.point_count must be at least 5, got %d", c.Route.PointCount))
	}
	if c.Route.MinRoadFactor < 1 || c.Route.MaxRoadFactor < c.Route.MinRoadFactor {
		errs = append(errs, "route road factors must satisfy 1 <= min <= max")
	}
	if c.Route.MinutesPerKm <= 0 {
		errs = append(errs, "route.minutes_per_km must be positive")
	}
	if c.Directions.Enabled && c.Directions.BaseURL == "" {
		errs = append(errs, "directions.base_url is required when directions.enabled")
	}
	if c.Geocoder.Enabled && c.Geocoder.BaseURL == "" {
		errs = append(errs, "geocoder.base_url is required when geocoder.enabled")
	}
	if c.Database.Enabled {
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, "database.user is required")
		}
		if c.Database.DBName == "" {
			errs = append(errs, "database.dbname is required")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Package config loads application configuration from the environment.
package config

import (
	"context"
	"errors"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all runtime configuration for the API server.
// Secrets are required: there are no fallback values compiled into the binary.
type Config struct {
	Port     string `env:"APP_PORT, default=8080"`
	Env      string `env:"APP_ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string `env:"JWT_SECRET"`

	Mongo   MongoConfig
	Weather WeatherConfig

	DefaultLocation LocationConfig
}

// MongoConfig captures the document store connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB, default=weathertunes"`
}

// WeatherConfig captures upstream provider settings.
type WeatherConfig struct {
	// OpenWeatherAPIKey authenticates calls to OpenWeatherMap.
	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY"`

	// OpenWeatherBaseURL overrides the OpenWeatherMap base URL (tests, proxies).
	OpenWeatherBaseURL string `env:"OPENWEATHER_BASE_URL"`

	// GeoIPBaseURL overrides the ip-api.com base URL.
	GeoIPBaseURL string `env:"GEOIP_BASE_URL"`
}

// LocationConfig is the fixed location substituted when IP geolocation
// cannot produce a result.
type LocationConfig struct {
	City    string  `env:"DEFAULT_CITY, default=Shanghai"`
	Country string  `env:"DEFAULT_COUNTRY, default=CN"`
	Lat     float64 `env:"DEFAULT_LAT, default=31.2304"`
	Lon     float64 `env:"DEFAULT_LON, default=121.4737"`
}

// Predefined configuration errors.
var (
	ErrMissingJWTSecret  = errors.New("JWT_SECRET is required")
	ErrMissingWeatherKey = errors.New("OPENWEATHER_API_KEY is required")
)

// Load reads configuration from environment variables and validates that
// required secrets are present.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.Weather.OpenWeatherAPIKey == "" {
		return nil, ErrMissingWeatherKey
	}

	return &cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

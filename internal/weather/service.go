package weather

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/weathertunes/weathertunes/internal/api/metrics"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// CurrentWeather fetches normalized current conditions for a coordinate pair.
	CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error)

	// Forecast fetches the normalized 24-hour forecast for a coordinate pair.
	Forecast(ctx context.Context, lat, lon float64) (*WeatherForecast, error)

	// Name returns the provider name for logging.
	Name() string
}

// GeoProvider defines the interface for IP geolocation providers.
type GeoProvider interface {
	// Locate resolves a public IP address to a location.
	Locate(ctx context.Context, ip string) (*Location, error)

	// Name returns the provider name for logging.
	Name() string
}

// FallbackPolicy makes the service's failure asymmetry explicit: geolocation
// always degrades to DefaultLocation and never surfaces an error, while
// weather lookups propagate failures to the caller. A wrong default city
// degrades gracefully; a silently substituted temperature would mislead.
type FallbackPolicy struct {
	// DefaultLocation is returned for private addresses and for any
	// geolocation failure.
	DefaultLocation Location
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	Weather  Provider
	Geo      GeoProvider
	Fallback FallbackPolicy
	Logger   zerolog.Logger
}

// Service is the normalization layer between the GraphQL resolvers and the
// upstream providers. It is stateless aside from read-only configuration
// and safe for concurrent use.
type Service struct {
	weather  Provider
	geo      GeoProvider
	fallback FallbackPolicy
	logger   zerolog.Logger
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		weather:  cfg.Weather,
		geo:      cfg.Geo,
		fallback: cfg.Fallback,
		logger:   cfg.Logger,
	}
}

// LocateByAddress resolves a client IP address to a location. It always
// produces a value: private addresses short-circuit to the default location
// without an outbound call, and any provider failure substitutes the same
// default.
func (s *Service) LocateByAddress(ctx context.Context, ip string) Location {
	clean := normalizeAddress(ip)

	if isPrivateAddress(clean) {
		s.logger.Debug().Str("ip", clean).Msg("private address, using default location")
		return s.fallback.DefaultLocation
	}

	loc, err := s.geo.Locate(ctx, clean)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(s.geo.Name(), "error").Inc()
		s.logger.Warn().Err(err).Str("ip", clean).Msg("ip geolocation failed, using default location")
		return s.fallback.DefaultLocation
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(s.geo.Name(), "success").Inc()
	return *loc
}

// GetCurrentWeather fetches normalized current conditions. Failures
// propagate as *UpstreamError; there is no fallback value.
func (s *Service) GetCurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	current, err := s.weather.CurrentWeather(ctx, lat, lon)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(s.weather.Name(), "error").Inc()
		s.logger.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("current weather fetch failed")
		return nil, err
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(s.weather.Name(), "success").Inc()
	return current, nil
}

// GetWeatherForecast fetches the normalized 24-hour forecast. Failure
// semantics are identical to GetCurrentWeather.
func (s *Service) GetWeatherForecast(ctx context.Context, lat, lon float64) (*WeatherForecast, error) {
	forecast, err := s.weather.Forecast(ctx, lat, lon)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(s.weather.Name(), "error").Inc()
		s.logger.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("forecast fetch failed")
		return nil, err
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(s.weather.Name(), "success").Inc()
	return forecast, nil
}

// normalizeAddress rewrites the IPv6 loopback to its IPv4 form and strips
// an IPv6 prefix wrapping an IPv4 literal (e.g. "::ffff:203.0.113.9").
func normalizeAddress(ip string) string {
	if ip == "::1" {
		return "127.0.0.1"
	}
	if idx := strings.LastIndex(ip, ":"); idx >= 0 && strings.Contains(ip, ".") {
		return ip[idx+1:]
	}
	return ip
}

// isPrivateAddress reports whether the normalized address falls in a range a
// public IP-lookup service cannot geolocate.
func isPrivateAddress(ip string) bool {
	return ip == "127.0.0.1" ||
		strings.HasPrefix(ip, "192.168.") ||
		strings.HasPrefix(ip, "10.") ||
		strings.HasPrefix(ip, "172.")
}

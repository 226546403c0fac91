// Package graph exposes the GraphQL API: schema, root resolver, and the
// dispatch layer that turns service failures into operation-prefixed
// GraphQL errors.
package graph

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/weathertunes/weathertunes/internal/api/metrics"
	"github.com/weathertunes/weathertunes/internal/api/middleware"
	"github.com/weathertunes/weathertunes/internal/auth"
	"github.com/weathertunes/weathertunes/internal/weather"
)

// ErrNotAuthenticated is the fixed authorization failure surfaced by
// operations that require a non-anonymous identity. It never carries the
// underlying decode detail.
var ErrNotAuthenticated = errors.New("not authenticated")

// Resolver is the root GraphQL resolver. It holds the services the field
// resolvers dispatch into.
type Resolver struct {
	weather *weather.Service
	auth    *auth.Service
	logger  zerolog.Logger
}

// ResolverConfig holds dependencies for the root resolver.
type ResolverConfig struct {
	WeatherService *weather.Service
	AuthService    *auth.Service
	Logger         zerolog.Logger
}

// NewResolver creates the root resolver with its service dependencies.
func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{
		weather: cfg.WeatherService,
		auth:    cfg.AuthService,
		logger:  cfg.Logger,
	}
}

// getLocationByIp resolves the caller's location from the request's remote
// address. It always succeeds; geolocation failures substitute the default
// location inside the weather service.
func (r *Resolver) getLocationByIp(p graphql.ResolveParams) (interface{}, error) {
	ip := middleware.GetClientIP(p.Context)
	return r.weather.LocateByAddress(p.Context, ip), nil
}

// getCurrentWeather fetches normalized current conditions for the given
// coordinates.
func (r *Resolver) getCurrentWeather(p graphql.ResolveParams) (interface{}, error) {
	lat, lon, err := coordinateArgs(p)
	if err != nil {
		return nil, err
	}

	current, err := r.weather.GetCurrentWeather(p.Context, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("Failed to get current weather: %s", err)
	}
	return current, nil
}

// getWeatherForecast fetches the normalized 24-hour forecast for the given
// coordinates.
func (r *Resolver) getWeatherForecast(p graphql.ResolveParams) (interface{}, error) {
	lat, lon, err := coordinateArgs(p)
	if err != nil {
		return nil, err
	}

	forecast, err := r.weather.GetWeatherForecast(p.Context, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("Failed to get weather forecast: %s", err)
	}
	return forecast, nil
}

// me returns the authenticated user. This is the one operation gated on
// identity state: an anonymous context yields an authorization error, never
// an empty success.
func (r *Resolver) me(p graphql.ResolveParams) (interface{}, error) {
	identity := middleware.GetIdentity(p.Context)
	if identity.IsAnonymous() {
		return nil, ErrNotAuthenticated
	}
	return identity.User, nil
}

// register creates a new account and returns it with a signed token.
func (r *Resolver) register(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	resp, err := r.auth.Register(p.Context, username, email, password)
	if err != nil {
		return nil, fmt.Errorf("Failed to register: %s", err)
	}
	return resp, nil
}

// login authenticates an existing account and returns it with a signed token.
func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	resp, err := r.auth.Login(p.Context, email, password)
	if err != nil {
		return nil, fmt.Errorf("Failed to login: %s", err)
	}
	return resp, nil
}

// coordinateArgs extracts the lat/lon arguments. The schema declares them
// non-null floats, so coercion has already happened.
func coordinateArgs(p graphql.ResolveParams) (lat, lon float64, err error) {
	lat, latOK := p.Args["lat"].(float64)
	lon, lonOK := p.Args["lon"].(float64)
	if !latOK || !lonOK {
		return 0, 0, errors.New("lat and lon are required")
	}
	return lat, lon, nil
}

// instrument wraps a field resolver with an operation counter.
func instrument(operation string, fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)

		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.GraphQLOperationsTotal.WithLabelValues(operation, status).Inc()

		return out, err
	}
}

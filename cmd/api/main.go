// Package main provides the entrypoint for the Weathertunes API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/weathertunes/weathertunes/internal/api"
	"github.com/weathertunes/weathertunes/internal/auth"
	"github.com/weathertunes/weathertunes/internal/config"
	"github.com/weathertunes/weathertunes/internal/database"
	"github.com/weathertunes/weathertunes/internal/graph"
	"github.com/weathertunes/weathertunes/internal/provider/resilience"
	"github.com/weathertunes/weathertunes/internal/weather"
	"github.com/weathertunes/weathertunes/internal/weather/ipapi"
	"github.com/weathertunes/weathertunes/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "weathertunes-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Weathertunes API")

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, parseErr := zerolog.ParseLevel(cfg.LogLevel); parseErr == nil {
		log = log.Level(level)
	}

	// Connect to the document store
	mongoClient, db, err := database.Connect(ctx, database.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to document store")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if disconnectErr := mongoClient.Disconnect(disconnectCtx); disconnectErr != nil {
			log.Error().Err(disconnectErr).Msg("failed to disconnect from document store")
		}
	}()

	if err := database.EnsureUserIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("document store connected")

	// Auth wiring
	tokenService := auth.NewTokenService(auth.TokenConfig{
		SigningKey: cfg.JWTSecret,
	})
	userRepo := auth.NewMongoUserRepository(db)
	authService := auth.NewService(auth.ServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
	})
	identityResolver := auth.NewResolver(tokenService, userRepo, log)
	log.Info().Msg("auth service initialized")

	// Upstream provider clients, each behind its own circuit breaker
	weatherHTTP := resilience.NewClient(resilience.DefaultClientConfig(openweathermap.ProviderName))
	geoHTTP := resilience.NewClient(resilience.DefaultClientConfig(ipapi.ProviderName))

	weatherProvider := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     cfg.Weather.OpenWeatherAPIKey,
		BaseURL:    cfg.Weather.OpenWeatherBaseURL,
		HTTPClient: weatherHTTP,
		Logger:     log,
	})
	geoProvider := ipapi.NewClient(ipapi.ClientConfig{
		BaseURL:    cfg.Weather.GeoIPBaseURL,
		HTTPClient: geoHTTP,
		Logger:     log,
	})

	weatherService := weather.NewService(weather.ServiceConfig{
		Weather: weatherProvider,
		Geo:     geoProvider,
		Fallback: weather.FallbackPolicy{
			DefaultLocation: weather.Location{
				City:    cfg.DefaultLocation.City,
				Country: cfg.DefaultLocation.Country,
				Lat:     cfg.DefaultLocation.Lat,
				Lon:     cfg.DefaultLocation.Lon,
			},
		},
		Logger: log,
	})
	log.Info().Msg("weather service initialized")

	// GraphQL schema
	resolver := graph.NewResolver(graph.ResolverConfig{
		WeatherService: weatherService,
		AuthService:    authService,
		Logger:         log,
	})
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build GraphQL schema")
	}

	router := api.NewRouter(api.RouterConfig{
		Version:   Version,
		BuildTime: BuildTime,
		Logger:    log,
		Schema:    schema,
		Identity:  identityResolver,
		Store:     mongoClient,
		Providers: map[string]*resilience.Client{
			openweathermap.ProviderName: weatherHTTP,
			ipapi.ProviderName:          geoHTTP,
		},
		GraphiQL: !cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start server in a goroutine so shutdown signals can be handled
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			log.Fatal().Err(serveErr).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("server stopped")
}

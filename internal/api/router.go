// Package api provides the HTTP API for Weathertunes.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/weathertunes/weathertunes/internal/api/handler"
	"github.com/weathertunes/weathertunes/internal/api/middleware"
	"github.com/weathertunes/weathertunes/internal/api/response"
	"github.com/weathertunes/weathertunes/internal/auth"
	"github.com/weathertunes/weathertunes/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger

	// Schema is the executable GraphQL schema served at /graphql.
	Schema graphql.Schema

	// Identity resolves bearer tokens into request identities. Every
	// request carries an identity; unauthenticated requests are anonymous.
	Identity *auth.Resolver

	// Store is pinged by the readiness endpoint. May be nil in tests.
	Store handler.Pinger

	// Providers maps upstream provider names to their circuit-breaking
	// clients for readiness reporting.
	Providers map[string]*resilience.Client

	// GraphiQL enables the in-browser IDE at /graphql. Off in production.
	GraphiQL bool
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)             // Generate/propagate request ID first
	r.Use(middleware.Logger(cfg.Logger))    // Structured logging + duration metrics
	r.Use(middleware.Recovery(cfg.Logger))  // Panic recovery
	r.Use(chimiddleware.RealIP)             // Real IP extraction
	r.Use(middleware.Identity(cfg.Identity)) // Resolve identity, capture client IP

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Store, cfg.Providers)

	graphqlHandler := gqlhandler.New(&gqlhandler.Config{
		Schema:   &cfg.Schema,
		Pretty:   true,
		GraphiQL: cfg.GraphiQL,
	})

	// GraphQL endpoint - rate limited per client (user or IP)
	r.With(middleware.RateLimitByClient(middleware.StandardRateLimit)).
		Handle("/graphql", graphqlHandler)

	// Ops endpoints (public)
	r.Get("/healthz", opsHandler.HealthCheck)
	r.Get("/readyz", opsHandler.ReadinessCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		response.JSON(w, req, http.StatusOK, map[string]string{
			"name":    "weathertunes-api",
			"version": cfg.Version,
			"graphql": "/graphql",
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, req, "The requested resource does not exist")
	})

	return r
}

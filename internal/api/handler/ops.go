// Package handler provides HTTP handlers for non-GraphQL endpoints.
package handler

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/weathertunes/weathertunes/internal/api/response"
	"github.com/weathertunes/weathertunes/internal/provider/resilience"
)

// Pinger verifies connectivity to the document store.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// OpsHandler handles health and readiness endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	store     Pinger
	providers map[string]*resilience.Client
}

// NewOpsHandler creates a new OpsHandler. providers maps provider names to
// their circuit-breaking clients so readiness can report upstream health.
func NewOpsHandler(version, buildTime string, store Pinger, providers map[string]*resilience.Client) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		store:     store,
		providers: providers,
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
}

type readinessResponse struct {
	Status    string            `json:"status"`
	Store     string            `json:"store"`
	Providers map[string]string `json:"providers"`
}

// HealthCheck handles GET /healthz - liveness probe.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, healthResponse{
		Status:    "ok",
		Version:   h.version,
		BuildTime: h.buildTime,
	})
}

// ReadinessCheck handles GET /readyz - readiness probe. Reports document
// store connectivity and the circuit state of each upstream provider. An
// open provider circuit degrades the report but does not fail readiness;
// the store being unreachable does.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	resp := readinessResponse{
		Status:    "ok",
		Store:     "ok",
		Providers: make(map[string]string, len(h.providers)),
	}

	for name, client := range h.providers {
		resp.Providers[name] = client.State().String()
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx, readpref.Primary()); err != nil {
			resp.Status = "unavailable"
			resp.Store = "unreachable"
			response.ServiceUnavailable(w, r, resp)
			return
		}
	}

	response.JSON(w, r, http.StatusOK, resp)
}

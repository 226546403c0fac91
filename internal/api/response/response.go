// Package response provides utilities for HTTP response handling.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/weathertunes/weathertunes/internal/api/middleware"
	"github.com/weathertunes/weathertunes/internal/api/models"
)

// JSON writes a JSON response with the given status code. Includes the
// X-Request-Id header for correlation.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	requestID := middleware.GetRequestID(r.Context())
	if requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NotFound writes a 404 Not Found problem response.
func NotFound(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := middleware.GetRequestID(r.Context())
	problem := models.NewNotFound(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// ServiceUnavailable writes a 503 problem-style JSON response used by the
// readiness endpoint.
func ServiceUnavailable(w http.ResponseWriter, r *http.Request, data interface{}) {
	JSON(w, r, http.StatusServiceUnavailable, data)
}

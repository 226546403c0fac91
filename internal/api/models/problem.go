// Package models provides shared API response models.
package models

import (
	"encoding/json"
	"net/http"
)

// Problem represents an RFC7807 error response, used for transport-level
// failures (panics, rate limiting, unknown routes). GraphQL operation
// errors flow through the GraphQL error channel instead.
type Problem struct {
	// Type is a URI reference that identifies the problem type.
	Type string `json:"type"`

	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`

	// Status is the HTTP status code for this occurrence of the problem.
	Status int `json:"status"`

	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`

	// Instance is a URI reference that identifies the specific occurrence.
	Instance string `json:"instance,omitempty"`

	// TraceID is the request identifier for debugging.
	TraceID string `json:"traceId"`
}

// ProblemType constants for standard error types.
const (
	ProblemTypeNotFound        = "https://api.weathertunes.dev/problems/not-found"
	ProblemTypeTooManyRequests = "https://api.weathertunes.dev/problems/too-many-requests"
	ProblemTypeInternal        = "https://api.weathertunes.dev/problems/internal-error"
)

// NewNotFound creates a 404 Not Found problem.
func NewNotFound(traceID, detail string) *Problem {
	return &Problem{
		Type:    ProblemTypeNotFound,
		Title:   "Not found",
		Status:  http.StatusNotFound,
		Detail:  detail,
		TraceID: traceID,
	}
}

// NewTooManyRequests creates a 429 Too Many Requests problem.
func NewTooManyRequests(traceID, detail string) *Problem {
	return &Problem{
		Type:    ProblemTypeTooManyRequests,
		Title:   "Too many requests",
		Status:  http.StatusTooManyRequests,
		Detail:  detail,
		TraceID: traceID,
	}
}

// NewInternalError creates a 500 Internal Server Error problem.
func NewInternalError(traceID, detail string) *Problem {
	return &Problem{
		Type:    ProblemTypeInternal,
		Title:   "Internal server error",
		Status:  http.StatusInternalServerError,
		Detail:  detail,
		TraceID: traceID,
	}
}

// Write writes the Problem as JSON to the ResponseWriter.
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Request-Id", p.TraceID)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

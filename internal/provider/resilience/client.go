// Package resilience provides a circuit-breaking HTTP client wrapper for
// external provider calls. Failed calls are not retried; a misbehaving
// upstream trips the breaker and subsequent calls fail fast until it
// recovers.
package resilience

import (
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// ClientConfig holds configuration for the circuit-breaking HTTP client.
type ClientConfig struct {
	// Name identifies this client for circuit breaker naming.
	Name string

	// Timeout is the request timeout for individual HTTP calls.
	// Default: 10 seconds
	Timeout time.Duration

	// BreakerTimeout is the period of open state before switching to
	// half-open. Default: 60 seconds
	BreakerTimeout time.Duration

	// ReadyToTrip determines when to trip the circuit breaker.
	// If nil, trips at a 50% failure rate with 5+ requests.
	ReadyToTrip func(counts gobreaker.Counts) bool
}

// DefaultClientConfig returns sensible defaults for the client.
func DefaultClientConfig(name string) ClientConfig {
	return ClientConfig{
		Name:           name,
		Timeout:        10 * time.Second,
		BreakerTimeout: 60 * time.Second,
		ReadyToTrip:    defaultReadyToTrip,
	}
}

func defaultReadyToTrip(counts gobreaker.Counts) bool {
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && failureRatio >= 0.5
}

// Client is an HTTP client with circuit breaker protection.
type Client struct {
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker[*http.Response]
}

// NewClient creates a new circuit-breaking HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 60 * time.Second
	}
	if cfg.ReadyToTrip == nil {
		cfg.ReadyToTrip = defaultReadyToTrip
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: cfg.ReadyToTrip,
	})

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker: cb,
	}
}

// Do executes an HTTP request through the circuit breaker. 5xx responses
// count as failures for the breaker but are still returned to the caller,
// which owns the response body either way.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var serverResp *http.Response

	resp, err := c.circuitBreaker.Execute(func() (*http.Response, error) {
		r, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}

		if r.StatusCode >= 500 {
			serverResp = r
			return nil, &ServerError{StatusCode: r.StatusCode}
		}

		return r, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
		if serverResp != nil {
			return serverResp, nil
		}
		return nil, err
	}

	return resp, nil
}

// ServerError represents an HTTP 5xx server error.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}

// State returns the current circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.circuitBreaker.State()
}

// Counts returns the current circuit breaker counts.
func (c *Client) Counts() gobreaker.Counts {
	return c.circuitBreaker.Counts()
}

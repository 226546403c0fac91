// Package ipapi implements the ip-api.com geolocation provider client.
package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/weathertunes/weathertunes/internal/provider/resilience"
	"github.com/weathertunes/weathertunes/internal/weather"
)

const (
	// ProviderName identifies this geolocation provider.
	ProviderName = "ip-api"

	// DefaultBaseURL is the ip-api.com base URL. The free tier is HTTP only.
	DefaultBaseURL = "http://ip-api.com"
)

// ClientConfig holds configuration for the ip-api client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to ip-api.com).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an ip-api.com geolocation client.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new ip-api client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// lookupResponse is the ip-api.com JSON endpoint response shape.
type lookupResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	City        string  `json:"city"`
	CountryCode string  `json:"countryCode"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Locate resolves a public IP address to a location. Any non-success
// provider status is reported as an error; the caller decides the fallback.
func (c *Client) Locate(ctx context.Context, ip string) (*weather.Location, error) {
	url := fmt.Sprintf("%s/json/%s", c.baseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var lookup lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if lookup.Status != "success" {
		return nil, fmt.Errorf("lookup failed for %s: %s", ip, lookup.Message)
	}

	return &weather.Location{
		City:    lookup.City,
		Country: lookup.CountryCode,
		Lat:     lookup.Lat,
		Lon:     lookup.Lon,
	}, nil
}

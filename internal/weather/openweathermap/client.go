// Package openweathermap implements the OpenWeatherMap provider client.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/weathertunes/weathertunes/internal/provider/resilience"
	"github.com/weathertunes/weathertunes/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// forecastCount requests 8 three-hour entries, covering 24 hours.
	forecastCount = 8
)

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to OpenWeatherMap API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap API client producing normalized weather data.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
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
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// CurrentWeather fetches current conditions for a coordinate pair.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*weather.CurrentWeather, error) {
	url := fmt.Sprintf("%s/weather?lat=%.6f&lon=%.6f&appid=%s&units=metric&lang=en",
		c.baseURL, lat, lon, c.apiKey)

	var resp currentWeatherResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	if len(resp.Weather) == 0 {
		return nil, &weather.UpstreamError{Provider: ProviderName, Message: "response carries no weather entry"}
	}

	style := weather.MapCondition(resp.Weather[0].Main)

	return &weather.CurrentWeather{
		Temperature: int(math.Round(resp.Main.Temp)),
		Condition:   style.Label,
		Icon:        style.Icon,
		City:        resp.Name,
		Country:     resp.Sys.Country,
		WeatherID:   resp.Weather[0].ID,
		Description: resp.Weather[0].Description,
		WindSpeed:   resp.Wind.Speed,
		Humidity:    resp.Main.Humidity,
		Pressure:    resp.Main.Pressure,
	}, nil
}

// Forecast fetches the 24-hour forecast: eight entries at three-hour steps,
// kept in the upstream's chronological order.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*weather.WeatherForecast, error) {
	url := fmt.Sprintf("%s/forecast?lat=%.6f&lon=%.6f&appid=%s&units=metric&lang=en&cnt=%d",
		c.baseURL, lat, lon, c.apiKey, forecastCount)

	var resp forecastResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	forecast := &weather.WeatherForecast{
		City:     resp.City.Name,
		Country:  resp.City.Country,
		Forecast: make([]weather.ForecastItem, 0, len(resp.List)),
	}

	for _, entry := range resp.List {
		if len(entry.Weather) == 0 {
			return nil, &weather.UpstreamError{Provider: ProviderName, Message: "forecast entry carries no weather entry"}
		}

		style := weather.MapCondition(entry.Weather[0].Main)
		ts := time.Unix(entry.Dt, 0)

		forecast.Forecast = append(forecast.Forecast, weather.ForecastItem{
			Datetime:    entry.Dt * 1000,
			Hour:        ts.Hour(),
			Temperature: int(math.Round(entry.Main.Temp)),
			Condition:   style.Label,
			Icon:        style.Icon,
			Description: entry.Weather[0].Description,
			WindSpeed:   entry.Wind.Speed,
			Humidity:    entry.Main.Humidity,
		})
	}

	return forecast, nil
}

// getJSON performs a GET and decodes the body into out, converting every
// failure mode into a typed upstream error.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return &weather.UpstreamError{Provider: ProviderName, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &weather.UpstreamError{Provider: ProviderName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &weather.UpstreamError{
			Provider: ProviderName,
			Message:  errorMessage(resp),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &weather.UpstreamError{Provider: ProviderName, Message: "malformed response payload", Err: err}
	}

	return nil
}

// errorMessage extracts the upstream error message from a non-200 response,
// falling back to the status code.
func errorMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
}

// OpenWeatherMap API response structures.

type currentWeatherResponse struct {
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Pressure int     `json:"pressure"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type forecastResponse struct {
	List []struct {
		Dt      int64 `json:"dt"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

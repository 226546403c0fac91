// Package weather normalizes upstream weather and geolocation responses
// into the stable shapes exposed by the API.
package weather

import "fmt"

// Location is a resolved geographic location. Produced either from an IP
// lookup or from the configured default; never persisted.
type Location struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentWeather is the normalized current-conditions record for a
// coordinate pair. Temperature is rounded to the nearest integer; condition
// and icon come from the static condition table.
type CurrentWeather struct {
	Temperature int     `json:"temperature"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	WeatherID   int     `json:"weatherId"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"windSpeed"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
}

// WeatherForecast is the normalized 24-hour forecast: eight entries at
// three-hour steps, in the upstream's chronological order.
type WeatherForecast struct {
	City     string         `json:"city"`
	Country  string         `json:"country"`
	Forecast []ForecastItem `json:"forecast"`
}

// ForecastItem is a single forecast entry. Datetime is epoch milliseconds;
// Hour is the local hour of day (0-23) derived from it.
type ForecastItem struct {
	Datetime    int64   `json:"datetime"`
	Hour        int     `json:"hour"`
	Temperature int     `json:"temperature"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"windSpeed"`
	Humidity    int     `json:"humidity"`
}

// UpstreamError is a typed failure from a weather provider call: network
// error, non-success status, or malformed payload. The message embeds the
// upstream error text for diagnostic value.
type UpstreamError struct {
	Provider string
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s request failed", e.Provider)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

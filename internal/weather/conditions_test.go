package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weathertunes/weathertunes/internal/weather"
)

func TestMapCondition(t *testing.T) {
	tests := []struct {
		keyword   string
		wantLabel string
		wantIcon  string
	}{
		{"Clear", "Sunny", "☀️"},
		{"Clouds", "Cloudy", "⛅"},
		{"Rain", "Rainy", "🌧️"},
		{"Drizzle", "Light Rain", "🌦️"},
		{"Thunderstorm", "Thunderstorm", "⛈️"},
		{"Snow", "Snowy", "❄️"},
		{"Mist", "Misty", "🌫️"},
		{"Smoke", "Smoky", "🌫️"},
		{"Haze", "Hazy", "🌫️"},
		{"Dust", "Dusty", "🌫️"},
		{"Fog", "Foggy", "🌫️"},
		{"Sand", "Sandy", "🌫️"},
		{"Ash", "Ashy", "🌫️"},
		{"Squall", "Squally", "🌬️"},
		{"Tornado", "Tornado", "🌪️"},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			style := weather.MapCondition(tt.keyword)
			assert.Equal(t, tt.wantLabel, style.Label)
			assert.Equal(t, tt.wantIcon, style.Icon)
		})
	}
}

func TestMapCondition_Unknown(t *testing.T) {
	// Unrecognized keywords pass through with the default glyph.
	style := weather.MapCondition("Meteor")
	assert.Equal(t, "Meteor", style.Label)
	assert.Equal(t, weather.DefaultIcon, style.Icon)
}

func TestMapCondition_CaseSensitive(t *testing.T) {
	// Upstream keywords are capitalized; other casings are unrecognized.
	style := weather.MapCondition("rain")
	assert.Equal(t, "rain", style.Label)
	assert.Equal(t, weather.DefaultIcon, style.Icon)
}

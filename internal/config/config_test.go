package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathertunes/weathertunes/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OPENWEATHER_API_KEY", "test-key")
	t.Setenv("APP_PORT", "9090")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "test-key", cfg.Weather.OpenWeatherAPIKey)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "weathertunes", cfg.Mongo.Database)

	// The built-in fallback location.
	assert.Equal(t, "Shanghai", cfg.DefaultLocation.City)
	assert.Equal(t, "CN", cfg.DefaultLocation.Country)
	assert.Equal(t, 31.2304, cfg.DefaultLocation.Lat)
	assert.Equal(t, 121.4737, cfg.DefaultLocation.Lon)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Run("jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("OPENWEATHER_API_KEY", "test-key")

		_, err := config.Load(context.Background())
		assert.ErrorIs(t, err, config.ErrMissingJWTSecret)
	})

	t.Run("weather key", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("OPENWEATHER_API_KEY", "")

		_, err := config.Load(context.Background())
		assert.ErrorIs(t, err, config.ErrMissingWeatherKey)
	})
}

func TestIsProduction(t *testing.T) {
	cfg := &config.Config{Env: "production"}
	assert.True(t, cfg.IsProduction())

	cfg.Env = "development"
	assert.False(t, cfg.IsProduction())
}

package graph_test

import (
	"context"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathertunes/weathertunes/internal/auth"
	"github.com/weathertunes/weathertunes/internal/graph"
	"github.com/weathertunes/weathertunes/internal/weather"
)

type stubWeatherProvider struct {
	current  *weather.CurrentWeather
	forecast *weather.WeatherForecast
	err      error
}

func (s *stubWeatherProvider) CurrentWeather(_ context.Context, _, _ float64) (*weather.CurrentWeather, error) {
	return s.current, s.err
}

func (s *stubWeatherProvider) Forecast(_ context.Context, _, _ float64) (*weather.WeatherForecast, error) {
	return s.forecast, s.err
}

func (s *stubWeatherProvider) Name() string { return "stub-weather" }

type stubGeoProvider struct {
	location *weather.Location
	err      error
}

func (s *stubGeoProvider) Locate(_ context.Context, _ string) (*weather.Location, error) {
	return s.location, s.err
}

func (s *stubGeoProvider) Name() string { return "stub-geo" }

func newTestSchema(t *testing.T, provider weather.Provider, geo weather.GeoProvider) graphql.Schema {
	t.Helper()

	weatherService := weather.NewService(weather.ServiceConfig{
		Weather: provider,
		Geo:     geo,
		Fallback: weather.FallbackPolicy{
			DefaultLocation: weather.Location{City: "Shanghai", Country: "CN", Lat: 31.2304, Lon: 121.4737},
		},
		Logger: zerolog.Nop(),
	})

	authService := auth.NewService(auth.ServiceConfig{
		UserRepo:     auth.NewInMemoryUserRepository(),
		TokenService: auth.NewTokenService(auth.TokenConfig{SigningKey: "test-signing-key"}),
	})

	resolver := graph.NewResolver(graph.ResolverConfig{
		WeatherService: weatherService,
		AuthService:    authService,
		Logger:         zerolog.Nop(),
	})

	schema, err := graph.NewSchema(resolver)
	require.NoError(t, err)
	return schema
}

func execute(t *testing.T, schema graphql.Schema, query string) *graphql.Result {
	t.Helper()
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       context.Background(),
	})
}

func TestQuery_GetCurrentWeather(t *testing.T) {
	provider := &stubWeatherProvider{
		current: &weather.CurrentWeather{
			Temperature: 19,
			Condition:   "Rainy",
			Icon:        "🌧️",
			City:        "Shanghai",
			Country:     "CN",
			WeatherID:   500,
			Description: "light rain",
			WindSpeed:   4.2,
			Humidity:    81,
			Pressure:    1012,
		},
	}
	schema := newTestSchema(t, provider, &stubGeoProvider{})

	result := execute(t, schema, `{
		getCurrentWeather(lat: 31.2304, lon: 121.4737) {
			temperature condition icon city country weatherId description windSpeed humidity pressure
		}
	}`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	current := data["getCurrentWeather"].(map[string]interface{})
	assert.Equal(t, 19, current["temperature"])
	assert.Equal(t, "Rainy", current["condition"])
	assert.Equal(t, "🌧️", current["icon"])
	assert.Equal(t, 500, current["weatherId"])
	assert.Equal(t, "light rain", current["description"])
}

func TestQuery_GetCurrentWeather_ErrorPrefix(t *testing.T) {
	provider := &stubWeatherProvider{
		err: &weather.UpstreamError{Provider: "stub-weather", Message: "city not found"},
	}
	schema := newTestSchema(t, provider, &stubGeoProvider{})

	result := execute(t, schema, `{ getCurrentWeather(lat: 0, lon: 0) { temperature } }`)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Failed to get current weather: city not found", result.Errors[0].Message)
}

func TestQuery_GetWeatherForecast(t *testing.T) {
	items := make([]weather.ForecastItem, 0, 8)
	for i := 0; i < 8; i++ {
		items = append(items, weather.ForecastItem{
			Datetime:    int64(1700000000000 + i*10800000),
			Hour:        (14 + i*3) % 24,
			Temperature: 17,
			Condition:   "Cloudy",
			Icon:        "⛅",
			Description: "broken clouds",
			WindSpeed:   3.1,
			Humidity:    70,
		})
	}
	provider := &stubWeatherProvider{
		forecast: &weather.WeatherForecast{City: "Shanghai", Country: "CN", Forecast: items},
	}
	schema := newTestSchema(t, provider, &stubGeoProvider{})

	result := execute(t, schema, `{
		getWeatherForecast(lat: 31.2304, lon: 121.4737) {
			city country forecast { datetime hour temperature condition icon }
		}
	}`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	forecast := data["getWeatherForecast"].(map[string]interface{})
	assert.Equal(t, "Shanghai", forecast["city"])

	list := forecast["forecast"].([]interface{})
	require.Len(t, list, 8)

	first := list[0].(map[string]interface{})
	// Millisecond timestamps exceed Int range, so datetime is a Float.
	assert.Equal(t, float64(1700000000000), first["datetime"])
	assert.Equal(t, 14, first["hour"])
}

func TestQuery_GetWeatherForecast_ErrorPrefix(t *testing.T) {
	provider := &stubWeatherProvider{
		err: &weather.UpstreamError{Provider: "stub-weather", Message: "upstream unavailable"},
	}
	schema := newTestSchema(t, provider, &stubGeoProvider{})

	result := execute(t, schema, `{ getWeatherForecast(lat: 0, lon: 0) { city } }`)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Failed to get weather forecast: upstream unavailable", result.Errors[0].Message)
}

func TestQuery_GetLocationByIp_AlwaysSucceeds(t *testing.T) {
	// Even with a failing geolocation provider and no resolvable client IP,
	// the operation yields the default location rather than an error.
	geo := &stubGeoProvider{err: assert.AnError}
	schema := newTestSchema(t, &stubWeatherProvider{}, geo)

	result := execute(t, schema, `{ getLocationByIp { city country lat lon } }`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	loc := data["getLocationByIp"].(map[string]interface{})
	assert.Equal(t, "Shanghai", loc["city"])
	assert.Equal(t, "CN", loc["country"])
}

func TestQuery_Me_Anonymous(t *testing.T) {
	schema := newTestSchema(t, &stubWeatherProvider{}, &stubGeoProvider{})

	result := execute(t, schema, `{ me { id username } }`)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "not authenticated", result.Errors[0].Message)
}

func TestMutation_RegisterAndLogin(t *testing.T) {
	schema := newTestSchema(t, &stubWeatherProvider{}, &stubGeoProvider{})

	result := execute(t, schema, `mutation {
		register(username: "alice", email: "alice@example.com", password: "password123") {
			id username email token
		}
	}`)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	registered := data["register"].(map[string]interface{})
	assert.Equal(t, "alice", registered["username"])
	assert.NotEmpty(t, registered["token"])

	result = execute(t, schema, `mutation {
		login(email: "alice@example.com", password: "password123") { id username token }
	}`)
	require.Empty(t, result.Errors)

	data = result.Data.(map[string]interface{})
	loggedIn := data["login"].(map[string]interface{})
	assert.Equal(t, registered["id"], loggedIn["id"])
}

func TestMutation_Register_DuplicateError(t *testing.T) {
	schema := newTestSchema(t, &stubWeatherProvider{}, &stubGeoProvider{})

	result := execute(t, schema, `mutation {
		register(username: "alice", email: "alice@example.com", password: "password123") { id }
	}`)
	require.Empty(t, result.Errors)

	result = execute(t, schema, `mutation {
		register(username: "alice2", email: "alice@example.com", password: "password123") { id }
	}`)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Failed to register: user with this email or username already exists", result.Errors[0].Message)
}

func TestMutation_Login_InvalidCredentials(t *testing.T) {
	schema := newTestSchema(t, &stubWeatherProvider{}, &stubGeoProvider{})

	result := execute(t, schema, `mutation {
		login(email: "nobody@example.com", password: "whatever") { id }
	}`)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Failed to login: invalid email or password", result.Errors[0].Message)
}

package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/weathertunes/weathertunes/internal/auth"
)

// NewSchema builds the executable GraphQL schema over the given root
// resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"city":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"country": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lat":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"lon":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	currentWeatherType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CurrentWeather",
		Fields: graphql.Fields{
			"temperature": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"condition":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"icon":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"city":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"country":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"weatherId":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"windSpeed":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"humidity":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"pressure":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	forecastItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ForecastItem",
		Fields: graphql.Fields{
			"datetime":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"hour":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"temperature": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"condition":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"icon":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"windSpeed":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"humidity":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	weatherForecastType := graphql.NewObject(graphql.ObjectConfig{
		Name: "WeatherForecast",
		Fields: graphql.Fields{
			"city":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"country":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"forecast": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(forecastItemType)))},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, ok := p.Source.(*auth.User)
					if !ok {
						return nil, nil
					}
					return user.CreatedAt.Format(time.RFC3339), nil
				},
			},
		},
	})

	authResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthResponse",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"token":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	coordinateArgs := graphql.FieldConfigArgument{
		"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
		"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getLocationByIp": &graphql.Field{
				Type:    locationType,
				Resolve: instrument("getLocationByIp", r.getLocationByIp),
			},
			"getCurrentWeather": &graphql.Field{
				Type:    currentWeatherType,
				Args:    coordinateArgs,
				Resolve: instrument("getCurrentWeather", r.getCurrentWeather),
			},
			"getWeatherForecast": &graphql.Field{
				Type:    weatherForecastType,
				Args:    coordinateArgs,
				Resolve: instrument("getWeatherForecast", r.getWeatherForecast),
			},
			"me": &graphql.Field{
				Type:    userType,
				Resolve: instrument("me", r.me),
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: authResponseType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: instrument("register", r.register),
			},
			"login": &graphql.Field{
				Type: authResponseType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: instrument("login", r.login),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

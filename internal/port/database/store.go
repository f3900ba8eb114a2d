// Package database defines the port interface for the flight data store.
package database

import (
	"context"

	"github.com/skydeck/skydeck/internal/domain/flight"
)

// Store is the read interface over flights, airports, and weather.
// Lookups by code expect the code already normalized to upper case.
type Store interface {
	GetFlightByCode(ctx context.Context, code string) (*flight.Flight, error)
	ListFlights(ctx context.Context, fromAirport, toAirport string) ([]flight.Flight, error)
	ListAlternatives(ctx context.Context, fromAirport, toAirport string) ([]flight.Flight, error)
	GetAirport(ctx context.Context, code string) (*flight.Airport, error)
	ListAirports(ctx context.Context) ([]flight.Airport, error)
	GetWeatherByAirport(ctx context.Context, code string) (*flight.Weather, error)
	ListWeather(ctx context.Context) ([]flight.Weather, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skydeck/skydeck/internal/domain/flight"
)

// Store implements the database port over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// flightSelect joins each flight with both route airports so responses carry
// the airport names and cities alongside the codes.
const flightSelect = `
SELECT f.id, f.flight_code, f.airline, f.from_airport, f.to_airport,
       f.departure_time, f.arrival_time, f.status, f.gate, f.terminal,
       f.aircraft, f.price, f.delay_minutes, f.delay_reason,
       a1.name, a1.city, a2.name, a2.city
FROM flights f
JOIN airports a1 ON f.from_airport = a1.airport_code
JOIN airports a2 ON f.to_airport = a2.airport_code`

func scanFlight(row pgx.Row) (*flight.Flight, error) {
	var f flight.Flight
	var gate, terminal, aircraft, delayReason *string
	err := row.Scan(
		&f.ID, &f.FlightCode, &f.Airline, &f.FromAirport, &f.ToAirport,
		&f.DepartureTime, &f.ArrivalTime, &f.Status, &gate, &terminal,
		&aircraft, &f.Price, &f.DelayMinutes, &delayReason,
		&f.FromName, &f.FromCity, &f.ToName, &f.ToCity,
	)
	if err != nil {
		return nil, err
	}
	f.Gate = deref(gate)
	f.Terminal = deref(terminal)
	f.Aircraft = deref(aircraft)
	f.DelayReason = deref(delayReason)
	return &f, nil
}

// GetFlightByCode returns the flight with the given code, route joined.
func (s *Store) GetFlightByCode(ctx context.Context, code string) (*flight.Flight, error) {
	row := s.pool.QueryRow(ctx, flightSelect+" WHERE f.flight_code = $1", code)
	f, err := scanFlight(row)
	if err != nil {
		return nil, notFoundWrap(err, "get flight %s", code)
	}
	return f, nil
}

// ListFlights returns flights ordered by departure time, optionally filtered
// by departure and/or arrival airport.
func (s *Store) ListFlights(ctx context.Context, fromAirport, toAirport string) ([]flight.Flight, error) {
	query := flightSelect + " WHERE 1=1"
	var args []any
	if fromAirport != "" {
		args = append(args, fromAirport)
		query += fmt.Sprintf(" AND f.from_airport = $%d", len(args))
	}
	if toAirport != "" {
		args = append(args, toAirport)
		query += fmt.Sprintf(" AND f.to_airport = $%d", len(args))
	}
	query += " ORDER BY f.departure_time"

	return s.queryFlights(ctx, query, args...)
}

// ListAlternatives returns non-cancelled flights on the given route, ordered
// by departure time.
func (s *Store) ListAlternatives(ctx context.Context, fromAirport, toAirport string) ([]flight.Flight, error) {
	query := flightSelect + `
 WHERE f.from_airport = $1 AND f.to_airport = $2
   AND f.status NOT IN ('Cancelled')
 ORDER BY f.departure_time`

	return s.queryFlights(ctx, query, fromAirport, toAirport)
}

func (s *Store) queryFlights(ctx context.Context, query string, args ...any) ([]flight.Flight, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer rows.Close()

	var flights []flight.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flights: %w", err)
	}
	return orEmpty(flights), nil
}

// GetAirport returns the airport with the given code.
func (s *Store) GetAirport(ctx context.Context, code string) (*flight.Airport, error) {
	var a flight.Airport
	err := s.pool.QueryRow(ctx,
		"SELECT airport_code, name, city, lounges FROM airports WHERE airport_code = $1",
		code,
	).Scan(&a.AirportCode, &a.Name, &a.City, &a.Lounges)
	if err != nil {
		return nil, notFoundWrap(err, "get airport %s", code)
	}
	a.Lounges = orEmpty(a.Lounges)
	return &a, nil
}

// ListAirports returns all airports ordered by code.
func (s *Store) ListAirports(ctx context.Context) ([]flight.Airport, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT airport_code, name, city, lounges FROM airports ORDER BY airport_code")
	if err != nil {
		return nil, fmt.Errorf("query airports: %w", err)
	}
	defer rows.Close()

	var airports []flight.Airport
	for rows.Next() {
		var a flight.Airport
		if err := rows.Scan(&a.AirportCode, &a.Name, &a.City, &a.Lounges); err != nil {
			return nil, fmt.Errorf("scan airport: %w", err)
		}
		a.Lounges = orEmpty(a.Lounges)
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate airports: %w", err)
	}
	return orEmpty(airports), nil
}

const weatherSelect = `
SELECT w.airport_code, w.temperature, w.condition, w.humidity, w.wind_speed,
       w.visibility, a.name, a.city
FROM weather w
JOIN airports a ON w.airport_code = a.airport_code`

// GetWeatherByAirport returns the weather at the given airport, joined with
// the airport's name and city.
func (s *Store) GetWeatherByAirport(ctx context.Context, code string) (*flight.Weather, error) {
	var w flight.Weather
	err := s.pool.QueryRow(ctx, weatherSelect+" WHERE w.airport_code = $1", code).Scan(
		&w.AirportCode, &w.Temperature, &w.Condition, &w.Humidity, &w.WindSpeed,
		&w.Visibility, &w.AirportName, &w.City,
	)
	if err != nil {
		return nil, notFoundWrap(err, "get weather %s", code)
	}
	return &w, nil
}

// ListWeather returns the weather at all airports ordered by airport code.
func (s *Store) ListWeather(ctx context.Context) ([]flight.Weather, error) {
	rows, err := s.pool.Query(ctx, weatherSelect+" ORDER BY w.airport_code")
	if err != nil {
		return nil, fmt.Errorf("query weather: %w", err)
	}
	defer rows.Close()

	var reports []flight.Weather
	for rows.Next() {
		var w flight.Weather
		if err := rows.Scan(
			&w.AirportCode, &w.Temperature, &w.Condition, &w.Humidity, &w.WindSpeed,
			&w.Visibility, &w.AirportName, &w.City,
		); err != nil {
			return nil, fmt.Errorf("scan weather: %w", err)
		}
		reports = append(reports, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weather: %w", err)
	}
	return orEmpty(reports), nil
}

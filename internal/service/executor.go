package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skydeck/skydeck/internal/domain"
	"github.com/skydeck/skydeck/internal/domain/flight"
	"github.com/skydeck/skydeck/internal/port/cache"
	"github.com/skydeck/skydeck/internal/port/database"
)

// Executor runs tool calls against the flight store. It is shared by the
// chat orchestration loop, the direct tool endpoint, and the MCP server.
type Executor struct {
	store      database.Store
	cache      cache.Cache
	airportTTL time.Duration
	weatherTTL time.Duration
}

// NewExecutor creates an Executor over the given store.
func NewExecutor(store database.Store) *Executor {
	return &Executor{store: store}
}

// SetCache attaches a read-through cache for airport and weather lookups.
func (e *Executor) SetCache(c cache.Cache, airportTTL, weatherTTL time.Duration) {
	e.cache = c
	e.airportTTL = airportTTL
	e.weatherTTL = weatherTTL
}

// Execute runs the named tool with the given arguments. Argument problems
// and missing entities return ToolErrors; anything else signals an
// infrastructure failure.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "search_flight":
		return e.searchFlight(ctx, args)
	case "get_weather":
		return e.getWeather(ctx, args)
	case "get_airport_info":
		return e.getAirportInfo(ctx, args)
	case "list_flights":
		return e.listFlights(ctx, args)
	case "find_alternatives":
		return e.findAlternatives(ctx, args)
	case "calculate_compensation":
		return e.calculateCompensation(args)
	default:
		return nil, domain.UnknownTool(name)
	}
}

func (e *Executor) searchFlight(ctx context.Context, args map[string]any) (any, error) {
	code, ok := stringArg(args, "flight_code")
	if !ok {
		return nil, domain.MissingArgument("Missing flight_code")
	}
	f, err := e.store.GetFlightByCode(ctx, strings.ToUpper(code))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("Flight not found")
	}
	if err != nil {
		return nil, fmt.Errorf("search flight: %w", err)
	}
	return f, nil
}

func (e *Executor) getWeather(ctx context.Context, args map[string]any) (any, error) {
	code, ok := stringArg(args, "airport_code")
	if !ok {
		return nil, domain.MissingArgument("Missing airport_code")
	}
	code = strings.ToUpper(code)

	key := "weather:" + code
	if cached, ok := e.cacheGet(ctx, key); ok {
		return cached, nil
	}

	w, err := e.store.GetWeatherByAirport(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("Airport not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get weather: %w", err)
	}
	e.cacheSet(ctx, key, w, e.weatherTTL)
	return w, nil
}

// getAirportInfo mirrors the lenient contract of the original tool: an
// unknown or missing code yields an error payload the model can read, never
// a failure.
func (e *Executor) getAirportInfo(ctx context.Context, args map[string]any) (any, error) {
	notFound := map[string]string{"error": "Airport not found"}

	code, ok := stringArg(args, "airport_code")
	if !ok {
		return notFound, nil
	}
	code = strings.ToUpper(code)

	key := "airport:" + code
	if cached, ok := e.cacheGet(ctx, key); ok {
		return cached, nil
	}

	a, err := e.store.GetAirport(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get airport info: %w", err)
	}
	e.cacheSet(ctx, key, a, e.airportTTL)
	return a, nil
}

func (e *Executor) listFlights(ctx context.Context, args map[string]any) (any, error) {
	from, _ := stringArg(args, "from_airport")
	to, _ := stringArg(args, "to_airport")

	flights, err := e.store.ListFlights(ctx, strings.ToUpper(from), strings.ToUpper(to))
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return flights, nil
}

func (e *Executor) findAlternatives(ctx context.Context, args map[string]any) (any, error) {
	from, okFrom := stringArg(args, "from_airport")
	to, okTo := stringArg(args, "to_airport")
	if !okFrom || !okTo {
		return nil, domain.MissingArgument("Missing parameters")
	}

	flights, err := e.store.ListAlternatives(ctx, strings.ToUpper(from), strings.ToUpper(to))
	if err != nil {
		return nil, fmt.Errorf("find alternatives: %w", err)
	}
	return map[string]any{"alternatives": flights}, nil
}

func (e *Executor) calculateCompensation(args map[string]any) (any, error) {
	delay, okDelay := numberArg(args, "delay_minutes")
	price, okPrice := numberArg(args, "ticket_price")
	if !okDelay || !okPrice {
		return nil, domain.MissingArgument("Missing parameters")
	}
	return flight.CalculateCompensation(int(delay), price)
}

// stringArg extracts a non-empty string argument.
func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// numberArg extracts a numeric argument. JSON numbers decode as float64;
// integers are accepted for callers constructing args in Go.
func numberArg(args map[string]any, key string) (float64, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func (e *Executor) cacheGet(ctx context.Context, key string) (json.RawMessage, bool) {
	if e.cache == nil {
		return nil, false
	}
	data, ok, err := e.cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	return json.RawMessage(data), true
}

func (e *Executor) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if e.cache == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = e.cache.Set(ctx, key, data, ttl)
}

//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
)

func TestListFlightsSeeded(t *testing.T) {
	resp, err := http.Get(testServer.URL + "/api/flights")
	if err != nil {
		t.Fatalf("GET /api/flights: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var flights []struct {
		FlightCode string `json:"flight_code"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&flights); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(flights) < 4 {
		t.Fatalf("expected at least 4 seeded flights, got %d", len(flights))
	}
}

func TestGetFlightByCode(t *testing.T) {
	resp, err := http.Get(testServer.URL + "/api/flights/VN123")
	if err != nil {
		t.Fatalf("GET /api/flights/VN123: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var f struct {
		FlightCode  string `json:"flight_code"`
		FromAirport string `json:"from_airport"`
		ToAirport   string `json:"to_airport"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if f.FlightCode != "VN123" {
		t.Fatalf("expected VN123, got %q", f.FlightCode)
	}
	if f.FromAirport == "" || f.ToAirport == "" {
		t.Fatalf("route missing: %+v", f)
	}
}

func TestGetFlightNotFound(t *testing.T) {
	resp, err := http.Get(testServer.URL + "/api/flights/XX999")
	if err != nil {
		t.Fatalf("GET /api/flights/XX999: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDirectToolSearchFlight(t *testing.T) {
	body := bytes.NewBufferString(`{"flight_code":"VN123"}`)
	resp, err := http.Post(testServer.URL+"/api/mcp/search_flight", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/mcp/search_flight: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var envelope struct {
		Success bool   `json:"success"`
		Tool    string `json:"tool"`
		Result  struct {
			FlightCode string `json:"flight_code"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !envelope.Success || envelope.Tool != "search_flight" || envelope.Result.FlightCode != "VN123" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestDirectToolUnknown(t *testing.T) {
	body := bytes.NewBufferString(`{}`)
	resp, err := http.Post(testServer.URL+"/api/mcp/teleport", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/mcp/teleport: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListAirportsSeeded(t *testing.T) {
	resp, err := http.Get(testServer.URL + "/api/airports")
	if err != nil {
		t.Fatalf("GET /api/airports: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var airports []struct {
		AirportCode string   `json:"airport_code"`
		Lounges     []string `json:"lounges"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&airports); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(airports) < 4 {
		t.Fatalf("expected at least 4 seeded airports, got %d", len(airports))
	}
}

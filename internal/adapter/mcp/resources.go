package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

// registerResources registers read-only data resources on the server.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcplib.NewResource(
			"skydeck://flights",
			"Flight List",
			mcplib.WithResourceDescription("All flights with current status and schedule"),
			mcplib.WithMIMEType("application/json"),
		),
		s.handleFlightsResource,
	)

	s.mcpServer.AddResource(
		mcplib.NewResource(
			"skydeck://airports",
			"Airport List",
			mcplib.WithResourceDescription("All known airports with lounges"),
			mcplib.WithMIMEType("application/json"),
		),
		s.handleAirportsResource,
	)

	s.mcpServer.AddResource(
		mcplib.NewResource(
			"skydeck://weather",
			"Airport Weather",
			mcplib.WithResourceDescription("Current weather at all known airports"),
			mcplib.WithMIMEType("application/json"),
		),
		s.handleWeatherResource,
	)
}

func (s *Server) handleFlightsResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	if s.deps.Store == nil {
		return storeMissing(req.Params.URI), nil
	}
	flights, err := s.deps.Store.ListFlights(ctx, "", "")
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, flights)
}

func (s *Server) handleAirportsResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	if s.deps.Store == nil {
		return storeMissing(req.Params.URI), nil
	}
	airports, err := s.deps.Store.ListAirports(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, airports)
}

func (s *Server) handleWeatherResource(ctx context.Context, req mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	if s.deps.Store == nil {
		return storeMissing(req.Params.URI), nil
	}
	weather, err := s.deps.Store.ListWeather(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, weather)
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func storeMissing(uri string) []mcplib.ResourceContents {
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     `{"error":"store not configured"}`,
		},
	}
}

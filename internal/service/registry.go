package service

import "github.com/skydeck/skydeck/internal/domain/tool"

// Registry returns the tool specs advertised to the model and to MCP clients.
func Registry() []tool.Spec {
	return []tool.Spec{
		{
			Name:        "search_flight",
			Description: "Search for flight information by flight code. Returns flight details including status, times, gate, and price.",
			Params: []tool.Param{
				{Name: "flight_code", Type: "string", Description: "The flight code, e.g., VN123, VJ789, QH101", Required: true},
			},
		},
		{
			Name:        "get_weather",
			Description: "Get current weather conditions at an airport",
			Params: []tool.Param{
				{Name: "airport_code", Type: "string", Description: "Airport code: SGN, HAN, DAD, PQC, CXR, VDO", Required: true},
			},
		},
		{
			Name:        "get_airport_info",
			Description: "Get airport details including name, city, and available lounges",
			Params: []tool.Param{
				{Name: "airport_code", Type: "string", Description: "Airport code", Required: true},
			},
		},
		{
			Name:        "list_flights",
			Description: "List all flights, optionally filtered by departure and/or arrival airport",
			Params: []tool.Param{
				{Name: "from_airport", Type: "string", Description: "Departure airport code (optional)"},
				{Name: "to_airport", Type: "string", Description: "Arrival airport code (optional)"},
			},
		},
		{
			Name:        "find_alternatives",
			Description: "Find alternative flights for a specific route",
			Params: []tool.Param{
				{Name: "from_airport", Type: "string", Description: "Departure airport code", Required: true},
				{Name: "to_airport", Type: "string", Description: "Arrival airport code", Required: true},
			},
		},
		{
			Name:        "calculate_compensation",
			Description: "Calculate compensation amount for delayed or cancelled flights based on delay duration and ticket price",
			Params: []tool.Param{
				{Name: "delay_minutes", Type: "number", Description: "Delay duration in minutes (use 999 for cancelled)", Required: true},
				{Name: "ticket_price", Type: "number", Description: "Original ticket price in VND", Required: true},
			},
		},
	}
}

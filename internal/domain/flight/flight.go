// Package flight holds the core flight, airport, and weather entities.
package flight

// Flight statuses as stored in the database.
const (
	StatusOnTime    = "On Time"
	StatusDelayed   = "Delayed"
	StatusCancelled = "Cancelled"
	StatusBoarding  = "Boarding"
	StatusDeparted  = "Departed"
	StatusLanded    = "Landed"
)

// Flight is a scheduled flight. The From*/To* fields are populated from the
// airports table when the row is read with its route joined.
type Flight struct {
	ID            int64   `json:"id"`
	FlightCode    string  `json:"flight_code"`
	Airline       string  `json:"airline"`
	FromAirport   string  `json:"from_airport"`
	ToAirport     string  `json:"to_airport"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Status        string  `json:"status"`
	Gate          string  `json:"gate,omitempty"`
	Terminal      string  `json:"terminal,omitempty"`
	Aircraft      string  `json:"aircraft,omitempty"`
	Price         float64 `json:"price"`
	DelayMinutes  int     `json:"delay_minutes"`
	DelayReason   string  `json:"delay_reason,omitempty"`

	FromName string `json:"from_name,omitempty"`
	FromCity string `json:"from_city,omitempty"`
	ToName   string `json:"to_name,omitempty"`
	ToCity   string `json:"to_city,omitempty"`
}

// Airport is a served airport with its lounges.
type Airport struct {
	AirportCode string   `json:"airport_code"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Lounges     []string `json:"lounges"`
}

// Weather is the current conditions at an airport. AirportName and City are
// populated when the row is read joined with the airports table.
type Weather struct {
	AirportCode string `json:"airport_code"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
	Visibility  string `json:"visibility"`

	AirportName string `json:"airport_name,omitempty"`
	City        string `json:"city,omitempty"`
}

package flight

import (
	"fmt"
	"math"

	"github.com/skydeck/skydeck/internal/domain"
)

// CancelledDelaySentinel marks a cancelled flight in compensation requests.
const CancelledDelaySentinel = 999

// Compensation is the payout decision for a delayed or cancelled flight.
type Compensation struct {
	Eligible           bool    `json:"eligible"`
	CompensationAmount float64 `json:"compensation_amount"`
	Rate               string  `json:"rate"`
	Policy             string  `json:"policy"`
	DelayMinutes       int     `json:"delay_minutes"`
	TicketPrice        float64 `json:"ticket_price"`
}

// CalculateCompensation applies the refund policy to a delay and ticket price.
// Delays of three hours or more, and the cancellation sentinel, refund half
// the ticket price; shorter delays step down to 30%, 15%, and nothing.
func CalculateCompensation(delayMinutes int, ticketPrice float64) (Compensation, error) {
	if delayMinutes < 0 || ticketPrice <= 0 {
		return Compensation{}, domain.InvalidArgument("Invalid parameters")
	}

	var rate float64
	var policy string

	switch {
	case delayMinutes >= 180 || delayMinutes == CancelledDelaySentinel:
		rate = 0.5
		policy = "Delay >3 hours or Cancelled: 50% refund"
	case delayMinutes >= 120:
		rate = 0.3
		policy = "Delay 2-3 hours: 30% refund"
	case delayMinutes >= 60:
		rate = 0.15
		policy = "Delay 1-2 hours: 15% refund"
	default:
		policy = "Delay <1 hour: No compensation"
	}

	return Compensation{
		Eligible:           rate > 0,
		CompensationAmount: math.Round(ticketPrice * rate),
		Rate:               fmt.Sprintf("%g%%", rate*100),
		Policy:             policy,
		DelayMinutes:       delayMinutes,
		TicketPrice:        ticketPrice,
	}, nil
}

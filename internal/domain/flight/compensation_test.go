package flight

import (
	"errors"
	"testing"

	"github.com/skydeck/skydeck/internal/domain"
)

func TestCalculateCompensation(t *testing.T) {
	tests := []struct {
		name         string
		delayMinutes int
		ticketPrice  float64
		wantEligible bool
		wantAmount   float64
		wantRate     string
	}{
		{"no delay", 0, 2500000, false, 0, "0%"},
		{"under one hour", 59, 2500000, false, 0, "0%"},
		{"one hour boundary", 60, 2000000, true, 300000, "15%"},
		{"under two hours", 119, 2000000, true, 300000, "15%"},
		{"two hour boundary", 120, 2000000, true, 600000, "30%"},
		{"under three hours", 179, 2000000, true, 600000, "30%"},
		{"three hour boundary", 180, 2000000, true, 1000000, "50%"},
		{"long delay", 400, 1800000, true, 900000, "50%"},
		{"cancellation sentinel", 999, 2200000, true, 1100000, "50%"},
		{"amount rounds", 60, 333333, true, 50000, "15%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateCompensation(tt.delayMinutes, tt.ticketPrice)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Eligible != tt.wantEligible {
				t.Errorf("eligible: expected %v, got %v", tt.wantEligible, got.Eligible)
			}
			if got.CompensationAmount != tt.wantAmount {
				t.Errorf("amount: expected %v, got %v", tt.wantAmount, got.CompensationAmount)
			}
			if got.Rate != tt.wantRate {
				t.Errorf("rate: expected %s, got %s", tt.wantRate, got.Rate)
			}
			if got.DelayMinutes != tt.delayMinutes || got.TicketPrice != tt.ticketPrice {
				t.Errorf("inputs not echoed back: %+v", got)
			}
		})
	}
}

func TestCalculateCompensationProportional(t *testing.T) {
	small, err := CalculateCompensation(200, 1000000)
	if err != nil {
		t.Fatal(err)
	}
	large, err := CalculateCompensation(200, 2000000)
	if err != nil {
		t.Fatal(err)
	}
	if large.CompensationAmount != 2*small.CompensationAmount {
		t.Fatalf("expected proportional amounts, got %v and %v",
			small.CompensationAmount, large.CompensationAmount)
	}
}

func TestCalculateCompensationInvalid(t *testing.T) {
	tests := []struct {
		name         string
		delayMinutes int
		ticketPrice  float64
	}{
		{"negative delay", -1, 2000000},
		{"zero price", 120, 0},
		{"negative price", 120, -500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateCompensation(tt.delayMinutes, tt.ticketPrice)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

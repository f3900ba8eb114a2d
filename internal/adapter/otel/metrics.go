// Package otel provides OpenTelemetry instruments for the chat pipeline.
package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "skydeck"

// Metrics holds all SkyDeck metric instruments.
type Metrics struct {
	ExchangesStarted   metric.Int64Counter
	ExchangesCompleted metric.Int64Counter
	ExchangesFailed    metric.Int64Counter
	ToolCalls          metric.Int64Counter
	TokensUsed         metric.Int64Counter
	ExchangeDuration   metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.ExchangesStarted, err = meter.Int64Counter("skydeck.exchanges.started",
		metric.WithDescription("Number of chat exchanges started"))
	if err != nil {
		return nil, err
	}

	m.ExchangesCompleted, err = meter.Int64Counter("skydeck.exchanges.completed",
		metric.WithDescription("Number of chat exchanges completed"))
	if err != nil {
		return nil, err
	}

	m.ExchangesFailed, err = meter.Int64Counter("skydeck.exchanges.failed",
		metric.WithDescription("Number of chat exchanges failed"))
	if err != nil {
		return nil, err
	}

	m.ToolCalls, err = meter.Int64Counter("skydeck.toolcalls",
		metric.WithDescription("Number of tool calls executed"))
	if err != nil {
		return nil, err
	}

	m.TokensUsed, err = meter.Int64Counter("skydeck.tokens.used",
		metric.WithDescription("Total tokens consumed by model calls"))
	if err != nil {
		return nil, err
	}

	m.ExchangeDuration, err = meter.Float64Histogram("skydeck.exchange.duration_seconds",
		metric.WithDescription("Chat exchange duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

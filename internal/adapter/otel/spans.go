package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "skydeck"

// StartExchangeSpan starts a span covering one chat exchange.
func StartExchangeSpan(ctx context.Context, exchangeID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "exchange",
		trace.WithAttributes(
			attribute.String("exchange.id", exchangeID),
		),
	)
}

// StartToolCallSpan starts a span for a tool call within an exchange.
func StartToolCallSpan(ctx context.Context, callID, toolName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "toolcall",
		trace.WithAttributes(
			attribute.String("toolcall.id", callID),
			attribute.String("toolcall.tool", toolName),
		),
	)
}

package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "campaign-plan-service/plan-api"
)

// GetTracer returns the tracer for the plan-api service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// PlanAttributes returns common attributes for plan spans.
func PlanAttributes(planID string, campaignID int64, version int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("plan.id", planID),
		attribute.Int64("plan.campaign_id", campaignID),
		attribute.Int("plan.version", version),
	}
}

// StartGenerationSpan starts a new span for plan generation.
func StartGenerationSpan(ctx context.Context, planID string, campaignID int64, version int) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "plan.generate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(PlanAttributes(planID, campaignID, version)...),
	)
	return ctx, span
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddStatusTransition adds a status transition event to a span.
func AddStatusTransition(span trace.Span, fromStatus, toStatus string) {
	span.AddEvent("status.transition",
		trace.WithAttributes(
			attribute.String("status.from", fromStatus),
			attribute.String("status.to", toStatus),
		),
	)
}

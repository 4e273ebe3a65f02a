package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/cognito-gateway/logger"
)

// Call outcomes recorded on spans and metrics.
const (
	OutcomeSuccess        = "success"
	OutcomeProviderError  = "provider_error"
	OutcomeTimeout        = "timeout"
	OutcomeTransportError = "transport_error"
)

// Operation tracks one outbound call: a span plus call metrics.
type Operation struct {
	Name      string
	StartTime time.Time

	span    trace.Span
	metrics *Metrics
}

// StartOperation starts a span named "<system>.<name>". If metrics is nil,
// metric recording is skipped.
func StartOperation(ctx context.Context, metrics *Metrics, system, name string) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, system+"."+name, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(attribute.String(AttrOperation, name))
	if id := logger.RequestIDFromContext(ctx); id != "" {
		span.SetAttributes(attribute.String(AttrRequestID, id))
	}
	return ctx, &Operation{
		Name:      name,
		StartTime: time.Now(),
		span:      span,
		metrics:   metrics,
	}
}

// SetAttributes adds attributes to the operation span.
func (o *Operation) SetAttributes(kv ...attribute.KeyValue) {
	o.span.SetAttributes(kv...)
}

// End ends the span and records the call.
func (o *Operation) End(ctx context.Context, outcome string, err error) {
	duration := o.Duration()

	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, outcome)
	}
	o.span.SetAttributes(
		attribute.String(AttrOutcome, outcome),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	o.span.End()

	if o.metrics != nil {
		o.metrics.RecordCall(ctx, o.Name, outcome, duration)
	}
}

// Duration returns the elapsed time since the operation started.
func (o *Operation) Duration() time.Duration {
	return time.Since(o.StartTime)
}

package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/cognito-gateway/logger"
)

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, cfg Config, res Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	r, err := newResource(res)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(r),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", res.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the gateway's metric instruments.
type Metrics struct {
	callTotal       metric.Int64Counter
	callDuration    metric.Float64Histogram
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestActive   metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	callTotal, err := meter.Int64Counter("cognito.calls",
		metric.WithDescription("Identity provider calls by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cognito.calls counter: %w", err)
	}

	callDuration, err := meter.Float64Histogram("cognito.call.duration",
		metric.WithDescription("Duration of identity provider calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cognito.call.duration histogram: %w", err)
	}

	requestTotal, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.requests counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.duration histogram: %w", err)
	}

	requestActive, err := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.active_requests gauge: %w", err)
	}

	return &Metrics{
		callTotal:       callTotal,
		callDuration:    callDuration,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestActive:   requestActive,
	}, nil
}

// RecordCall records one identity provider call.
func (m *Metrics) RecordCall(ctx context.Context, operation, outcome string, duration time.Duration) {
	m.callTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordRequestStart increments the in-flight request count.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	m.requestActive.Add(ctx, 1)
}

// RecordRequestEnd decrements in-flight requests and records the completed
// request.
func (m *Metrics) RecordRequestEnd(ctx context.Context, method, route string, status int, duration time.Duration) {
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}

package observability

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/cognito-gateway/logger"
)

func installRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %v", cfg.SampleRate)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected interval 15s, got %v", cfg.Interval)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled ignores values", Config{SampleRate: 7}, false},
		{"valid", Config{Enabled: true, SampleRate: 0.5, Interval: time.Second}, false},
		{"sample rate too high", Config{Enabled: true, SampleRate: 1.5}, true},
		{"negative interval", Config{Enabled: true, SampleRate: 1, Interval: -time.Second}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, Resource{ServiceName: "svc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, sdktrace.AlwaysSample().Description()},
		{0, sdktrace.NeverSample().Description()},
		{0.25, sdktrace.TraceIDRatioBased(0.25).Description()},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); got != tc.want {
			t.Errorf("sampler(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}

func TestNewResource(t *testing.T) {
	r, err := newResource(Resource{ServiceName: "gateway", ServiceVersion: "1.2.3", Environment: "test"})
	if err != nil {
		t.Fatalf("newResource failed: %v", err)
	}
	v, ok := attrValue(r.Attributes(), "service.name")
	if !ok || v.AsString() != "gateway" {
		t.Errorf("expected service.name gateway, got %v", v)
	}
}

func TestStartOperationRecordsSpan(t *testing.T) {
	exporter := installRecorder(t)

	ctx := logger.ContextWithRequestID(context.Background(), "req-1")
	ctx, op := StartOperation(ctx, nil, "cognito", "SignUp")
	op.SetAttributes(attribute.String(AttrUsername, "ab"))
	op.End(ctx, OutcomeSuccess, nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != "cognito.SignUp" {
		t.Errorf("expected span name cognito.SignUp, got %q", span.Name)
	}
	if v, _ := attrValue(span.Attributes, AttrOperation); v.AsString() != "SignUp" {
		t.Errorf("expected operation attribute, got %v", v)
	}
	if v, _ := attrValue(span.Attributes, AttrRequestID); v.AsString() != "req-1" {
		t.Errorf("expected request id attribute, got %v", v)
	}
	if v, _ := attrValue(span.Attributes, AttrOutcome); v.AsString() != OutcomeSuccess {
		t.Errorf("expected success outcome, got %v", v)
	}
	if span.Status.Code == codes.Error {
		t.Error("successful operation should not have error status")
	}
}

func TestOperationEndWithError(t *testing.T) {
	exporter := installRecorder(t)

	ctx, op := StartOperation(context.Background(), nil, "cognito", "GetUser")
	op.End(ctx, OutcomeProviderError, fmt.Errorf("NotAuthorizedException"))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status.Code)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected the error to be recorded as an event")
	}
}

func TestMetricsRecordCall(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	ctx, op := StartOperation(context.Background(), metrics, "cognito", "InitiateAuth")
	op.End(ctx, OutcomeSuccess, nil)
	ctx, op = StartOperation(context.Background(), metrics, "cognito", "InitiateAuth")
	op.End(ctx, OutcomeProviderError, fmt.Errorf("boom"))

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	var total int64
	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "cognito.calls" {
				continue
			}
			found = true
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	if !found {
		t.Fatal("cognito.calls metric not collected")
	}
	if total != 2 {
		t.Errorf("expected 2 recorded calls, got %d", total)
	}
}

func TestMetricsRecordRequest(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	ctx := context.Background()
	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "POST", "/auth/signup", 200, 10*time.Millisecond)
}

func TestSpanHelpersWithoutRecordingSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttributes(ctx, attribute.String("k", "v"))
	SetSpanError(ctx, fmt.Errorf("no span"))
}

func TestSpanHelpersWithRecordingSpan(t *testing.T) {
	exporter := installRecorder(t)

	ctx, span := StartSpan(context.Background(), "test")
	SetSpanAttributes(ctx, attribute.String("k", "v"))
	SetSpanError(ctx, fmt.Errorf("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if v, ok := attrValue(spans[0].Attributes, "k"); !ok || v.AsString() != "v" {
		t.Errorf("expected attribute k=v, got %v", v)
	}
}

func TestComponentDisabledLifecycle(t *testing.T) {
	c := NewComponent(Config{}, Resource{ServiceName: "gateway"})
	if c.Name() != "observability" {
		t.Errorf("unexpected name %q", c.Name())
	}
	if h := c.Health(context.Background()); h.Status != "unhealthy" {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	h := c.Health(context.Background())
	if h.Status != "healthy" || h.Message != "exporters disabled" {
		t.Errorf("unexpected health %+v", h)
	}
	if d := c.Describe(); d.Details != "disabled" || d.Type != "telemetry" {
		t.Errorf("unexpected description %+v", d)
	}

	if err := c.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}
	if h := c.Health(context.Background()); h.Status != "unhealthy" {
		t.Errorf("expected unhealthy after stop, got %s", h.Status)
	}
}

func TestComponentHealthWhileStopping(t *testing.T) {
	c := NewComponent(Config{}, Resource{ServiceName: "gateway"})
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Health(context.Background())
			}
		}()
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	wg.Wait()
}

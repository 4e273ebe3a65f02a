// Package observability wires OpenTelemetry tracing and metrics for the
// gateway.
//
// Exporters are optional. When disabled the otel global no-op providers stay
// in place and every span and instrument call is free:
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability, observability.Resource{
//	    ServiceName: cfg.Name, ServiceVersion: cfg.Version, Environment: cfg.Environment,
//	})
//	defer shutdown(ctx)
//
// Outbound identity provider calls are tracked as operations:
//
//	ctx, op := observability.StartOperation(ctx, metrics, "cognito", "SignUp")
//	defer op.End(ctx, observability.OutcomeSuccess, nil)
package observability

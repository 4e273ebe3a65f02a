package main

import (
	"context"

	"github.com/kbukum/cognito-gateway/auth/credential"
	"github.com/kbukum/cognito-gateway/bootstrap"
	"github.com/kbukum/cognito-gateway/cognito"
	"github.com/kbukum/cognito-gateway/handler"
	"github.com/kbukum/cognito-gateway/observability"
	"github.com/kbukum/cognito-gateway/server"
	"github.com/kbukum/cognito-gateway/server/middleware"
)

// wire registers the telemetry and identity provider components and, once
// they are started, mounts the routes and registers the HTTP server.
func wire(app *bootstrap.App[*Config]) (*server.Server, error) {
	cfg := app.Cfg

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return nil, err
	}

	telemetry := observability.NewComponent(cfg.Observability, observability.Resource{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
	})
	if err := app.RegisterComponent(telemetry); err != nil {
		return nil, err
	}

	idp := cognito.NewComponent(cfg.Cognito, metrics, app.Logger)
	if err := app.RegisterComponent(idp); err != nil {
		return nil, err
	}

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyMiddleware(metrics)
	srv.RegisterDefaultEndpoints(handler.BasePath, cfg.Name, app.Components.HealthAll)

	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
		client := idp.Client()
		signer := credential.NewSigner(cfg.Cognito.ClientID, cfg.Cognito.ClientSecret)

		h := handler.New(client, signer, a.Logger)
		h.RegisterRoutes(srv.GinEngine(), middleware.Gate(client, a.Logger))

		return a.RegisterComponent(server.NewComponent(srv))
	})

	return srv, nil
}

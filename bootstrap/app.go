package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/cognito-gateway/component"
	"github.com/kbukum/cognito-gateway/logger"
)

// App runs a service through a uniform lifecycle. C is the config type;
// any struct embedding config.ServiceConfig satisfies Config.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    return a.RegisterComponent(server.NewComponent(srv))
//	})
//	app.Run(context.Background())
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates an application from a typed config. It applies defaults,
// validates the config and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		gracefulTimeout: 15 * time.Second,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
		logger.SetGlobalLogger(o.logger)
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Summary = NewSummary(base.Name, base.Version)
	return app, nil
}

// RegisterComponent adds a component to the registry. Components registered
// from an OnConfigure callback are started right after the configure phase.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnConfigure registers a callback for the configure phase, which runs once
// the infrastructure components are started.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run starts the application, blocks until SIGINT/SIGTERM or ctx is done,
// then shuts down gracefully.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		_ = a.stop()
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// Start runs every startup phase without blocking:
//
//  1. start registered components
//  2. OnStart hooks
//  3. OnConfigure callbacks
//  4. start components registered while configuring
//  5. ready check, OnReady hooks, summary
func (a *App[C]) Start(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.startComponents(ctx, "infrastructure"); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := a.configure(ctx); err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	if err := a.startComponents(ctx, "serving"); err != nil {
		return fmt.Errorf("serving failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary()
	return nil
}

func (a *App[C]) startComponents(ctx context.Context, phase string) error {
	a.Logger.Debug("Starting components", map[string]interface{}{"phase": phase})
	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	return nil
}

// DisplaySummary prints the startup summary collected from the registry.
func (a *App[C]) DisplaySummary() {
	a.Summary.Collect(a.Components)
	a.Summary.Display(os.Stdout, a.Components)
}

func (a *App[C]) configure(ctx context.Context) error {
	if len(a.onConfigure) == 0 {
		return nil
	}

	a.Logger.Info("Running configuration callbacks", map[string]interface{}{
		"count": len(a.onConfigure),
	})

	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// WaitForSignal blocks until SIGINT/SIGTERM or context cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use with Start when managing the
// lifecycle yourself.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs OnStop hooks and then stops all components in reverse order
// within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", map[string]interface{}{
			"error": err.Error(),
		})
		shutdownErr = err
	}

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", map[string]interface{}{
			"error": err.Error(),
		})
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}

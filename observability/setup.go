package observability

import (
	"context"
	"errors"
)

// ShutdownFunc flushes and stops the exporters installed by Setup.
type ShutdownFunc func(ctx context.Context) error

// Setup installs the trace and metric exporters when cfg.Enabled is set.
// With exporters disabled it is a no-op and returns a no-op shutdown.
func Setup(ctx context.Context, cfg Config, res Resource) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := InitTracer(ctx, cfg, res)
	if err != nil {
		return nil, err
	}

	mp, err := InitMeter(ctx, cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

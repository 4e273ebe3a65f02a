package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run after the infrastructure components are
// started and before the configure phase.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnReady registers hooks that run once the application passed its ready
// check and serves traffic.
func (a *App[C]) OnReady(hooks ...Hook) {
	a.onReady = append(a.onReady, hooks...)
}

// OnStop registers hooks that run during shutdown before components are
// stopped. Telemetry flushing belongs here.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}

// Package sleep provides a handler that blocks for a fixed duration, standing
// in for real work in example schedules.
package sleep

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/vk/gridsched/internal/ctxlog"
	"github.com/vk/gridsched/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the sleep handler.
type Input struct {
	Duration string `hcl:"duration"`
}

// OnRunSleep waits for the parsed duration or until ctx is done.
func OnRunSleep(ctx context.Context, input *Input) error {
	d, err := time.ParseDuration(input.Duration)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", input.Duration, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", input.Duration)
	}
	ctxlog.FromContext(ctx).Debug("Sleeping.", "duration", d)

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("sleep", &registry.RegisteredHandler{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        OnRunSleep,
	})
}

// Package env_vars provides a handler that checks the process environment,
// so a schedule can fail early when a variable a later stage needs is unset.
package env_vars

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/vk/gridsched/internal/ctxlog"
	"github.com/vk/gridsched/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the env_vars handler.
type Input struct {
	Require []string `hcl:"require,optional"`
}

// OnRunEnvVars fails when any required variable is unset or empty.
func OnRunEnvVars(ctx context.Context, input *Input) error {
	var missing []string
	for _, name := range input.Require {
		if v, ok := os.LookupEnv(name); !ok || v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	ctxlog.FromContext(ctx).Debug("Environment check passed.", "required", len(input.Require))
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("env_vars", &registry.RegisteredHandler{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        OnRunEnvVars,
	})
}

package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// RegisteredHandler holds the compiled Go parts of a task handler.
//
// Fn must have the signature func(context.Context, *T) error, where T is
// InputType and NewInput returns a fresh *T.
type RegisteredHandler struct {
	NewInput  func() any
	InputType reflect.Type
	Fn        any
}

// RegisterHandler registers a Go function under the given handler name.
func (r *Registry) RegisterHandler(name string, handler *RegisteredHandler) {
	if _, exists := r.HandlerRegistry[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering handler.", "name", name)
	r.HandlerRegistry[name] = handler
}

// Invoke calls the handler's function with input, which should come from
// NewInput and have been decoded already.
func (h *RegisteredHandler) Invoke(ctx context.Context, input any) error {
	fn := reflect.ValueOf(h.Fn)
	in := reflect.ValueOf(input)
	if !in.IsValid() {
		in = reflect.Zero(fn.Type().In(1))
	}

	out := fn.Call([]reflect.Value{reflect.ValueOf(ctx), in})
	if errVal := out[0]; !errVal.IsNil() {
		return errVal.Interface().(error)
	}
	return nil
}

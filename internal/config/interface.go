package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads declarations from the given paths, translates them into the
	// format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter is the interface for a format-specific data binding and type
// conversion implementation. It acts as the bridge between the raw
// declarations and the Go types used by handlers.
type Converter interface {
	// DecodeBody decodes a raw `arguments` body into a handler's input struct.
	DecodeBody(ctx context.Context, body hcl.Body, evalCtx *hcl.EvalContext, target any) error

	// EvalContext builds the variables visible to a task's arguments.
	EvalContext(stage, task string) (*hcl.EvalContext, error)

	// ToCtyValue converts a native Go value into its cty.Value equivalent.
	ToCtyValue(v any) (cty.Value, error)
}

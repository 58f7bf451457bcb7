package hcl_adapter

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/gridsched/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct {
	functions map[string]function.Function
}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{
		functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
		},
	}
}

// scope is the object exposed as `task` and `stage` inside arguments.
type scope struct {
	Name string `cty:"name"`
}

// EvalContext exposes task.name and stage.name, plus a few string functions,
// to argument expressions.
func (c *Converter) EvalContext(stage, task string) (*hcl.EvalContext, error) {
	stageVal, err := c.ToCtyValue(scope{Name: stage})
	if err != nil {
		return nil, err
	}
	taskVal, err := c.ToCtyValue(scope{Name: task})
	if err != nil {
		return nil, err
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"stage": stageVal,
			"task":  taskVal,
		},
		Functions: c.functions,
	}, nil
}

// DecodeBody decodes an arguments body into target, which must be a non-nil
// pointer to a struct with `hcl` tags. A nil body decodes as empty, so
// required attributes are still reported.
func (c *Converter) DecodeBody(ctx context.Context, body hcl.Body, evalCtx *hcl.EvalContext, target any) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting HCL body decoding.")

	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}
	if body == nil {
		body = hcl.EmptyBody()
	}

	if diags := gohcl.DecodeBody(body, evalCtx, target); diags.HasErrors() {
		return diags
	}
	logger.Debug("Finished HCL body decoding successfully.")
	return nil
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

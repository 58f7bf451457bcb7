package hcl_adapter

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type greetInput struct {
	Message string   `hcl:"message"`
	Tags    []string `hcl:"tags,optional"`
	Count   int      `hcl:"count,optional"`
}

func parseBody(t *testing.T, src string) hcl.Body {
	t.Helper()
	file, diags := hclsyntax.ParseConfig([]byte(src), "args.hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), diags.Error())
	return file.Body
}

func TestConverter_DecodeBody(t *testing.T) {
	c := NewConverter()
	evalCtx, err := c.EvalContext("render", "draw")
	require.NoError(t, err)

	t.Run("task and stage names are in scope", func(t *testing.T) {
		body := parseBody(t, `
message = "${task.name} in ${upper(stage.name)}"
tags    = [task.name, stage.name]
count   = 3
`)
		var in greetInput
		require.NoError(t, c.DecodeBody(context.Background(), body, evalCtx, &in))
		assert.Equal(t, "draw in RENDER", in.Message)
		assert.Equal(t, []string{"draw", "render"}, in.Tags)
		assert.Equal(t, 3, in.Count)
	})

	t.Run("missing required attribute", func(t *testing.T) {
		var in greetInput
		err := c.DecodeBody(context.Background(), nil, evalCtx, &in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "message")
	})

	t.Run("unknown variable", func(t *testing.T) {
		var in greetInput
		err := c.DecodeBody(context.Background(), parseBody(t, `message = other.name`), evalCtx, &in)
		assert.Error(t, err)
	})

	t.Run("non-pointer target", func(t *testing.T) {
		err := c.DecodeBody(context.Background(), nil, evalCtx, greetInput{})
		assert.ErrorContains(t, err, "non-nil pointer")
	})
}

func TestConverter_ToCtyValue(t *testing.T) {
	c := NewConverter()

	v, err := c.ToCtyValue(scope{Name: "upload"})
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("upload"), v.GetAttr("name"))

	v, err = c.ToCtyValue(nil)
	require.NoError(t, err)
	assert.Equal(t, cty.NilVal, v)

	_, err = c.ToCtyValue(make(chan time.Duration))
	assert.Error(t, err)
}

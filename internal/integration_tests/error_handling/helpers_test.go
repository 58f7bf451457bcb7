package integration_tests

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gridsched/internal/registry"
)

type emptyInput struct{}

// mockFailerModule registers a "failer" handler returning injectedError, a
// "panicker" handler that panics, and a "spy" handler that records whether it
// ran.
type mockFailerModule struct {
	wasSpyExecuted *atomic.Bool
	injectedError  error
}

func (m *mockFailerModule) Register(r *registry.Registry) {
	r.RegisterHandler("failer", &registry.RegisteredHandler{
		NewInput:  func() any { return new(emptyInput) },
		InputType: reflect.TypeOf(emptyInput{}),
		Fn:        func(context.Context, *emptyInput) error { return m.injectedError },
	})

	r.RegisterHandler("panicker", &registry.RegisteredHandler{
		NewInput:  func() any { return new(emptyInput) },
		InputType: reflect.TypeOf(emptyInput{}),
		Fn:        func(context.Context, *emptyInput) error { panic("kaboom") },
	})

	r.RegisterHandler("spy", &registry.RegisteredHandler{
		NewInput:  func() any { return new(emptyInput) },
		InputType: reflect.TypeOf(emptyInput{}),
		Fn: func(context.Context, *emptyInput) error {
			m.wasSpyExecuted.Store(true) // If this runs, the test has failed.
			return nil
		},
	})
}

func writeSchedule(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600), "failed to write hcl file")
	return path
}

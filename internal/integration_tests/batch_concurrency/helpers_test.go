package integration_tests

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/gridsched/internal/app"
	"github.com/vk/gridsched/internal/registry"
)

// mockSleeperModule is a self-contained module for concurrency tests. It
// records when each task ran.
type mockSleeperModule struct {
	executionTimes map[string]*app.ExecutionRecord
	mu             sync.Mutex
	sleepDuration  time.Duration
}

type sleeperInput struct {
	ID string `hcl:"id"`
}

func newSleeperModule(d time.Duration) *mockSleeperModule {
	return &mockSleeperModule{
		executionTimes: make(map[string]*app.ExecutionRecord),
		sleepDuration:  d,
	}
}

// Register registers the "sleeper" handler.
func (m *mockSleeperModule) Register(r *registry.Registry) {
	r.RegisterHandler("sleeper", &registry.RegisteredHandler{
		NewInput:  func() any { return new(sleeperInput) },
		InputType: reflect.TypeOf(sleeperInput{}),
		Fn: func(_ context.Context, input *sleeperInput) error {
			startTime := time.Now()
			time.Sleep(m.sleepDuration)
			endTime := time.Now()

			m.mu.Lock()
			m.executionTimes[input.ID] = &app.ExecutionRecord{Start: startTime, End: endTime}
			m.mu.Unlock()
			return nil
		},
	})
}

func (m *mockSleeperModule) record(t *testing.T, id string) *app.ExecutionRecord {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.executionTimes[id]
	require.True(t, ok, "task %s never ran", id)
	return rec
}

func writeSchedule(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600), "failed to write hcl file")
	return path
}

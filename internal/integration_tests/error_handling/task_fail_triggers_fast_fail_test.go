package integration_tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gridsched/internal/app"
	"github.com/vk/gridsched/internal/forkjoin"
)

// Test for: a failing task stops the run before the next stage.
func TestErrorHandling_FailingTask_TriggersFailFast(t *testing.T) {
	// --- Arrange ---
	expectedErr := errors.New("handler failed as expected")
	scheduleHCL := `
		stage "first" {
			task "A" {
				handler = "failer"
			}
		}

		stage "second" {
			after = ["first"]
			task "B" {
				handler = "spy"
			}
		}
	`
	var wasSpyExecuted atomic.Bool
	cfg := &app.Config{SchedulePath: writeSchedule(t, scheduleHCL)}
	mockModule := &mockFailerModule{wasSpyExecuted: &wasSpyExecuted, injectedError: expectedErr}
	testApp, logs := app.SetupAppTest(t, cfg, mockModule)

	// --- Act ---
	runErr := testApp.Run(context.Background())

	// --- Assert ---
	require.Error(t, runErr)
	assert.ErrorIs(t, runErr, expectedErr, "the error chain should contain the injected error")
	assert.False(t, wasSpyExecuted.Load(), "fail-fast did not work: a later stage was executed")
	assert.Contains(t, logs.String(), "Batch failed")
}

// Test for: a panicking handler surfaces as a task error.
func TestErrorHandling_PanickingTask_IsReported(t *testing.T) {
	// --- Arrange ---
	scheduleHCL := `
		stage "only" {
			task "boom" {
				handler = "panicker"
			}
		}
	`
	var wasSpyExecuted atomic.Bool
	cfg := &app.Config{SchedulePath: writeSchedule(t, scheduleHCL)}
	testApp, _ := app.SetupAppTest(t, cfg, &mockFailerModule{wasSpyExecuted: &wasSpyExecuted})

	// --- Act ---
	runErr := testApp.Run(context.Background())

	// --- Assert ---
	var panicErr *forkjoin.PanicError
	require.True(t, errors.As(runErr, &panicErr), "expected a PanicError, got %v", runErr)
	assert.Equal(t, "boom", panicErr.Task)
	assert.Equal(t, "kaboom", panicErr.Value)
}

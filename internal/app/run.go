package app

import (
	"context"
	"fmt"

	"github.com/vk/gridsched/internal/ctxlog"
	"github.com/vk/gridsched/internal/forkjoin"
	"github.com/vk/gridsched/internal/planner"
)

// Run builds the schedule and executes it, or only prints it when the
// configuration asks for a plan.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.cfg.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.cfg.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	a.logger.Debug("Building schedule from config model...")
	sched, err := planner.Build(ctx, a.model, a.registry, a.converter)
	if err != nil {
		return fmt.Errorf("failed to build schedule: %w", err)
	}
	a.logger.Info("Handlers registered:", "count", len(a.registry.HandlerRegistry), "keys", a.registry.Names())

	if a.cfg.PlanOnly {
		return writePlan(a.outW, sched)
	}

	if sched.Len() == 0 {
		a.logger.Warn("No tasks found in schedule, execution not required.")
		return nil
	}

	pool := forkjoin.NewPool(a.cfg.WorkerCount)
	a.logger.Info("🚀 Starting concurrent execution...", "tasks", sched.Len(), "workers", pool.Workers())
	if err := sched.Run(ctx, pool); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}

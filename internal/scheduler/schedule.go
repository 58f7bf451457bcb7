package scheduler

import (
	"context"
	"time"

	"github.com/vk/gridsched/internal/ctxlog"
	"github.com/vk/gridsched/internal/forkjoin"
	"github.com/vk/gridsched/internal/task"
)

// Schedule is a finalized, immutable execution plan.
type Schedule struct {
	order    []string
	groups   [][]string
	stages   []stagePlan
	position map[string]position
	tasks    map[string]*task.Task
}

type stagePlan struct {
	name    string
	batches [][]*task.Task
}

type position struct {
	stage int
	batch int
}

// Plan is a read-only description of a Schedule.
type Plan struct {
	// Order is the stage execution order.
	Order []string
	// Groups layers the stages by dependency depth, for diagnostics.
	Groups [][]string
	Stages []StagePlan
}

// StagePlan lists the task names of each batch of a stage, in run order.
type StagePlan struct {
	Name    string
	Batches [][]string
}

// Plan describes the schedule. The result is a copy and may be modified.
func (s *Schedule) Plan() Plan {
	p := Plan{
		Order:  append([]string(nil), s.order...),
		Groups: make([][]string, len(s.groups)),
		Stages: make([]StagePlan, len(s.stages)),
	}
	for i, g := range s.groups {
		p.Groups[i] = append([]string(nil), g...)
	}
	for i, st := range s.stages {
		sp := StagePlan{Name: st.name, Batches: make([][]string, len(st.batches))}
		for j, b := range st.batches {
			names := make([]string, len(b))
			for k, t := range b {
				names[k] = t.Name
			}
			sp.Batches[j] = names
		}
		p.Stages[i] = sp
	}
	return p
}

// Task returns the named task, or nil.
func (s *Schedule) Task(name string) *task.Task { return s.tasks[name] }

// Len returns the number of tasks in the schedule.
func (s *Schedule) Len() int { return len(s.tasks) }

// Run executes every stage in order and every batch of a stage in order,
// submitting each batch to exec and waiting for it before the next. The first
// failing task stops the run; its error is returned as is. Work already done
// is not rolled back.
func (s *Schedule) Run(ctx context.Context, exec forkjoin.Executor) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🚀 Starting schedule run.", "stages", len(s.stages), "tasks", len(s.tasks))
	start := time.Now()

	for _, st := range s.stages {
		stageLogger := logger.With("stage", st.name)
		stageLogger.Debug("Stage started.", "batches", len(st.batches))

		for bi, members := range st.batches {
			if err := ctx.Err(); err != nil {
				stageLogger.Warn("Run cancelled before batch.", "batch", bi, "error", err)
				return err
			}

			jobs := make([]forkjoin.Job, len(members))
			for i, t := range members {
				jobs[i] = forkjoin.Job{Name: t.Name, Run: t.Run}
			}

			stageLogger.Debug("Batch started.", "batch", bi, "tasks", len(jobs))
			if err := exec.SubmitAndJoin(ctx, jobs); err != nil {
				stageLogger.Error("Batch failed, aborting run.", "batch", bi, "error", err)
				return err
			}
			stageLogger.Debug("Batch finished.", "batch", bi)
		}

		stageLogger.Debug("Stage finished.")
	}

	logger.Info("🏁 Schedule run finished.", "duration", time.Since(start))
	return nil
}

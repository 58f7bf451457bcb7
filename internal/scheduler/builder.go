package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/gridsched/internal/batch"
	"github.com/vk/gridsched/internal/ctxlog"
	"github.com/vk/gridsched/internal/stagegraph"
	"github.com/vk/gridsched/internal/task"
)

// ErrDuplicateTask is returned when two tasks in one schedule share a name.
var ErrDuplicateTask = errors.New("scheduler: duplicate task")

// Builder accumulates stages and tasks for a Schedule.
type Builder struct {
	graph   *stagegraph.Graph
	byStage map[string][]*task.Task
	owner   map[string]string // task name -> stage name
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		graph:   stagegraph.New(),
		byStage: make(map[string][]*task.Task),
		owner:   make(map[string]string),
	}
}

// AddStage registers a stage. See stagegraph.Graph.AddStage for the meaning
// of after and before.
func (b *Builder) AddStage(name string, after, before []string) error {
	return b.graph.AddStage(name, after, before)
}

// AddTask appends t to the given stage, which must already be registered.
// Tasks keep the order in which they were added.
func (b *Builder) AddTask(stage string, t *task.Task) error {
	if t == nil || t.Name == "" {
		return errors.New("scheduler: task must have a name")
	}
	if !b.graph.Has(stage) {
		return fmt.Errorf("scheduler: task %q targets stage %q: %w", t.Name, stage, stagegraph.ErrUnknownStage)
	}
	if prev, ok := b.owner[t.Name]; ok {
		return fmt.Errorf("%w: %q already belongs to stage %q", ErrDuplicateTask, t.Name, prev)
	}
	b.owner[t.Name] = stage
	b.byStage[stage] = append(b.byStage[stage], t)
	return nil
}

// Build orders the stages and computes every stage's batches. Declarations
// are static, so the partition is computed once here and reused by every Run.
func (b *Builder) Build(ctx context.Context) (*Schedule, error) {
	logger := ctxlog.FromContext(ctx)

	order, err := b.graph.Finalize()
	if err != nil {
		return nil, fmt.Errorf("failed to order stages: %w", err)
	}
	logger.Debug("Stage order resolved.", "registered", b.graph.Stages(), "order", order)

	s := &Schedule{
		order:    order,
		groups:   b.graph.TopoGroups(),
		stages:   make([]stagePlan, 0, len(order)),
		position: make(map[string]position, len(b.owner)),
		tasks:    make(map[string]*task.Task, len(b.owner)),
	}
	for si, name := range order {
		batches := batch.Partition(b.byStage[name], (*task.Task).Declared)
		for bi, members := range batches {
			for _, t := range members {
				s.position[t.Name] = position{stage: si, batch: bi}
				s.tasks[t.Name] = t
			}
		}
		s.stages = append(s.stages, stagePlan{name: name, batches: batches})
		deps, err := b.graph.Dependencies(name)
		if err != nil {
			return nil, fmt.Errorf("failed to order stages: %w", err)
		}
		logger.Debug("Stage partitioned.", "stage", name, "after", deps, "tasks", len(b.byStage[name]), "batches", len(batches))
	}
	return s, nil
}

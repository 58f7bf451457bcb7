package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/gridsched/internal/config"
	"github.com/vk/gridsched/internal/ctxlog"
	"github.com/vk/gridsched/internal/gpu"
	"github.com/vk/gridsched/internal/registry"
	"github.com/vk/gridsched/internal/resource"
	"github.com/vk/gridsched/internal/scheduler"
	"github.com/vk/gridsched/internal/task"
)

// ErrUnknownHandler is returned when a task names a handler that is not
// registered.
var ErrUnknownHandler = errors.New("planner: unknown handler")

// ErrUnknownResource is returned when a task references a resource the model
// does not declare.
var ErrUnknownResource = errors.New("planner: unknown resource")

// resolved is the scheduler-side identity of a declared resource. Exactly one
// of id and meta is set.
type resolved struct {
	id   resource.ID
	meta *gpu.Meta
}

// Build constructs a schedule from a config model. Handlers are looked up
// here, so a missing handler fails before anything runs.
func Build(ctx context.Context, model *config.Model, r *registry.Registry, conv config.Converter) (*scheduler.Schedule, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting schedule construction.")

	resources, err := resolveResources(model)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Resources resolved.", "count", len(resources))

	b := scheduler.NewBuilder()
	for _, s := range model.Stages {
		if err := b.AddStage(s.Name, s.After, s.Before); err != nil {
			return nil, err
		}
	}

	for _, s := range model.Stages {
		for _, t := range s.Tasks {
			tk, err := newTask(s.Name, t, resources, r, conv)
			if err != nil {
				return nil, err
			}
			if err := b.AddTask(s.Name, tk); err != nil {
				return nil, err
			}
		}
	}
	logger.Debug("Build: Tasks bound to handlers.", "count", model.TaskCount())

	sched, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Schedule construction successful.")
	return sched, nil
}

func resolveResources(model *config.Model) (map[string]resolved, error) {
	out := make(map[string]resolved, len(model.Resources))
	for _, res := range model.Resources {
		key := res.Ref().Key()
		if !res.IsGPU() {
			out[key] = resolved{id: resource.Key(key)}
			continue
		}
		kind, err := gpu.ParseKind(res.Kind)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", key, err)
		}
		out[key] = resolved{meta: gpu.Declare(kind, res.Tag, res.Name)}
	}
	return out, nil
}

func newTask(stage string, t *config.Task, resources map[string]resolved, r *registry.Registry, conv config.Converter) (*task.Task, error) {
	h, ok := r.Lookup(t.Handler)
	if !ok {
		return nil, fmt.Errorf("%w: task %q in stage %q uses %q", ErrUnknownHandler, t.Name, stage, t.Handler)
	}

	cpuReads, gpuReads, err := split(t.Name, t.Reads, resources)
	if err != nil {
		return nil, err
	}
	cpuWrites, gpuWrites, err := split(t.Name, t.Writes, resources)
	if err != nil {
		return nil, err
	}

	name, args := t.Name, t.Arguments
	run := func(ctx context.Context) error {
		logger := ctxlog.FromContext(ctx).With("task", name, "stage", stage)
		ctx = ctxlog.WithLogger(ctx, logger)
		logger.Debug("Decoding task arguments.", "handler", t.Handler)

		evalCtx, err := conv.EvalContext(stage, name)
		if err != nil {
			return fmt.Errorf("task %q: failed to build evaluation context: %w", name, err)
		}
		input := h.NewInput()
		if err := conv.DecodeBody(ctx, args, evalCtx, input); err != nil {
			return fmt.Errorf("task %q: failed to decode arguments: %w", name, err)
		}

		logger.Debug("Calling task handler.", "handler", t.Handler)
		return h.Invoke(ctx, input)
	}

	tk := task.New(t.Name, cpuReads, cpuWrites, run)
	if len(gpuReads) > 0 || len(gpuWrites) > 0 {
		tk.WithGPU(gpuReads, gpuWrites)
	}
	return tk, nil
}

// split separates references into cpu IDs and GPU descriptors.
func split(taskName string, refs []config.ResourceRef, resources map[string]resolved) ([]resource.ID, []*gpu.Meta, error) {
	var ids []resource.ID
	var metas []*gpu.Meta
	for _, ref := range refs {
		res, ok := resources[ref.Key()]
		if !ok {
			return nil, nil, fmt.Errorf("%w: task %q references %s", ErrUnknownResource, taskName, ref.Key())
		}
		if res.meta != nil {
			metas = append(metas, res.meta)
		} else {
			ids = append(ids, res.id)
		}
	}
	return ids, metas, nil
}

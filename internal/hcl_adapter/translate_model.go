// This file contains the logic for translating HCL schema structs into the
// format-agnostic declaration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/gridsched/internal/config"
	"github.com/vk/gridsched/internal/ctxlog"
)

// translateResource converts the HCL-specific resource schema into the agnostic model.
func (l *Loader) translateResource(r *ResourceBlock, rng hcl.Range) (*config.Resource, hcl.Diagnostics) {
	switch r.Kind {
	case config.KindCPU:
		if r.Tag != "" {
			return nil, hcl.Diagnostics{errorDiag(
				"Unsupported argument",
				fmt.Sprintf("resource %q %q: tag only applies to buffer and image resources.", r.Kind, r.Name),
				rng,
			)}
		}
	case config.KindBuffer, config.KindImage:
	default:
		return nil, hcl.Diagnostics{errorDiag(
			"Unsupported resource kind",
			fmt.Sprintf("resource %q %q: kind must be one of cpu, buffer or image.", r.Kind, r.Name),
			rng,
		)}
	}

	return &config.Resource{
		Kind:  r.Kind,
		Name:  r.Name,
		Tag:   r.Tag,
		Range: rng,
	}, nil
}

// translateStage converts the HCL-specific stage schema, including its tasks,
// into the agnostic model.
func (l *Loader) translateStage(ctx context.Context, s *StageBlock) (*config.Stage, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx).With("stage", s.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL stage to internal config model.", "tasks", len(s.Tasks))

	stage := &config.Stage{
		Name:   s.Name,
		After:  s.After,
		Before: s.Before,
	}

	var diags hcl.Diagnostics
	for _, t := range s.Tasks {
		task, taskDiags := l.translateTask(ctx, t)
		diags = append(diags, taskDiags...)
		if task != nil {
			stage.Tasks = append(stage.Tasks, task)
		}
	}
	return stage, diags
}

// translateTask converts the HCL-specific task schema into the agnostic model.
func (l *Loader) translateTask(ctx context.Context, t *TaskBlock) (*config.Task, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	reads, readDiags := parseRefs(ctx, t.Reads, "reads")
	diags = append(diags, readDiags...)
	writes, writeDiags := parseRefs(ctx, t.Writes, "writes")
	diags = append(diags, writeDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	task := &config.Task{
		Name:    t.Name,
		Handler: t.Handler,
		Reads:   reads,
		Writes:  writes,
	}
	if t.Arguments != nil {
		task.Arguments = t.Arguments.Body
	}
	return task, diags
}

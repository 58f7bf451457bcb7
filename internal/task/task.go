// Package task defines the unit of work the scheduler places into batches.
package task

import (
	"context"

	"github.com/vk/gridsched/internal/gpu"
	"github.com/vk/gridsched/internal/resource"
)

// Task is a named body plus the resources it declares. A Task is not
// modified once it has been added to a schedule.
type Task struct {
	// Name is unique within a schedule.
	Name string

	// Access lists the CPU-side resource categories the body reads and writes.
	Access resource.Access

	// GPU lists the GPU resources the body reads and writes. They take part in
	// conflict detection and drive barrier hints.
	GPU gpu.Access

	Run func(ctx context.Context) error
}

// New returns a task with the given CPU access declarations.
func New(name string, reads, writes []resource.ID, run func(ctx context.Context) error) *Task {
	return &Task{
		Name:   name,
		Access: resource.NewAccess(reads, writes),
		Run:    run,
	}
}

// WithGPU sets the task's GPU declarations and returns the task.
func (t *Task) WithGPU(reads, writes []*gpu.Meta) *Task {
	t.GPU = gpu.Access{Reads: reads, Writes: writes}
	return t
}

// Declared is the full access declaration used for conflict detection: the
// CPU categories merged with the IDs of the GPU resources.
func (t *Task) Declared() resource.Access {
	switch {
	case t.GPU.IsEmpty():
		return t.Access
	case t.Access.IsEmpty():
		return t.GPU.Resources()
	}
	return t.Access.Merge(t.GPU.Resources())
}

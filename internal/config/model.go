package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// Resource kinds accepted in declarations.
const (
	KindCPU    = "cpu"
	KindBuffer = "buffer"
	KindImage  = "image"
)

// Model is the unified, format-agnostic representation of a schedule
// declaration.
type Model struct {
	Resources []*Resource
	Stages    []*Stage
}

// Resource is a declared resource category.
type Resource struct {
	Kind string
	Name string
	// Tag classifies GPU resources. Empty means the name is used.
	Tag   string
	Range hcl.Range
}

// Ref returns the reference other declarations use for r.
func (r *Resource) Ref() ResourceRef {
	return ResourceRef{Kind: r.Kind, Name: r.Name}
}

// IsGPU reports whether r is a buffer or an image.
func (r *Resource) IsGPU() bool {
	return r.Kind == KindBuffer || r.Kind == KindImage
}

// ResourceRef points at a declared resource.
type ResourceRef struct {
	Kind  string
	Name  string
	Range hcl.Range
}

// Key is the category name of the referenced resource, "<kind>.<name>".
func (r ResourceRef) Key() string {
	return fmt.Sprintf("%s.%s", r.Kind, r.Name)
}

// Stage is the format-agnostic representation of a `stage` block.
type Stage struct {
	Name   string
	After  []string
	Before []string
	Tasks  []*Task
}

// Task is the format-agnostic representation of a `task` block.
type Task struct {
	Name      string
	Handler   string
	Reads     []ResourceRef
	Writes    []ResourceRef
	Arguments hcl.Body // nil when the block has no arguments
}

// Resource looks up a declared resource by reference.
func (m *Model) Resource(ref ResourceRef) *Resource {
	for _, r := range m.Resources {
		if r.Kind == ref.Kind && r.Name == ref.Name {
			return r
		}
	}
	return nil
}

// TaskCount returns the number of tasks over all stages.
func (m *Model) TaskCount() int {
	n := 0
	for _, s := range m.Stages {
		n += len(s.Tasks)
	}
	return n
}

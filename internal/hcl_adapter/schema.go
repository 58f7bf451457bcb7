package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Resources []*ResourceBlock `hcl:"resource,block"`
	Stages    []*StageBlock    `hcl:"stage,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

// ResourceBlock represents a `resource "<kind>" "<name>"` block.
type ResourceBlock struct {
	Kind string `hcl:"kind,label"`
	Name string `hcl:"name,label"`
	Tag  string `hcl:"tag,optional"`
}

// StageBlock represents a `stage` block and the tasks nested in it.
type StageBlock struct {
	Name   string       `hcl:"name,label"`
	After  []string     `hcl:"after,optional"`
	Before []string     `hcl:"before,optional"`
	Tasks  []*TaskBlock `hcl:"task,block"`
}

// TaskBlock represents a `task` block. Reads and Writes are kept as raw
// expressions because they hold resource traversals, not values.
type TaskBlock struct {
	Name      string         `hcl:"name,label"`
	Handler   string         `hcl:"handler"`
	Reads     hcl.Expression `hcl:"reads,optional"`
	Writes    hcl.Expression `hcl:"writes,optional"`
	Arguments *TaskArgs      `hcl:"arguments,block"`
}

// TaskArgs represents the content of the 'arguments' block within a task.
type TaskArgs struct {
	Body hcl.Body `hcl:",remain"`
}

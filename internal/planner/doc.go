// Package planner turns a loaded declaration model into a runnable
// scheduler.Schedule.
//
// Each declared resource becomes a resource.ID (cpu) or a gpu.Meta (buffer,
// image), each stage is registered with its ordering edges, and each task is
// bound to its registered handler. A task's arguments are decoded only when
// the task runs, with `task.name` and `stage.name` in scope.
package planner

// Package scheduler runs named stages of tasks in dependency order, running
// the tasks of each stage in conflict-free parallel batches.
//
// # How It Works
//
// A Builder collects stages (with "after" and "before" edges) and the tasks
// belonging to each stage. Build then:
//  1. Orders the stages with the stage graph, rejecting unknown references
//     and cycles.
//  2. Partitions each stage's tasks into batches so that no two tasks in one
//     batch conflict on a declared resource. A resource written by one task
//     may not be read or written by another in the same batch; shared reads
//     are fine.
//
// The resulting Schedule is immutable. Run walks the stages in order and hands
// each batch to a forkjoin.Executor, starting the next batch only once every
// task of the previous one has returned. The first task failure aborts the run
// and is returned unchanged.
//
// # GPU Resources
//
// Tasks may also declare GPU buffers and images. These take part in conflict
// detection like any other resource, and BarrierRequirements reports which
// pipeline barriers and layout transitions a task's later consumers need.
// Hints are advisory: nothing here records or issues them.
//
// # Thread-Safety
//
// A Builder is not safe for concurrent use. A Schedule may be run any number
// of times, including concurrently, provided the task bodies allow it.
package scheduler

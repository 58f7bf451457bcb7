// Package forkjoin runs a batch of independent jobs and waits for all of them.
package forkjoin

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job is one unit of work submitted to an Executor.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Executor runs jobs and returns only once every submitted job has returned.
// The returned error is the first job failure, unchanged.
type Executor interface {
	SubmitAndJoin(ctx context.Context, jobs []Job) error
}

// PanicError is returned in place of a job that panicked.
type PanicError struct {
	Task  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("forkjoin: panic in task %s: %v", e.Task, e.Value)
}

// Pool runs jobs concurrently on at most Workers goroutines.
type Pool struct {
	workers int
}

// NewPool returns a pool bounded to workers goroutines; workers <= 0 means
// runtime.GOMAXPROCS(0).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

func (p *Pool) Workers() int { return p.workers }

// SubmitAndJoin runs jobs on at most Workers goroutines and waits for every
// started job to return. After the first failure the context passed to
// running jobs is cancelled and jobs that have not started yet are skipped.
func (p *Pool) SubmitAndJoin(ctx context.Context, jobs []Job) error {
	switch len(jobs) {
	case 0:
		return nil
	case 1:
		return call(ctx, jobs[0])
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return call(gctx, job)
		})
	}
	return g.Wait()
}

// Direct runs jobs one after another on the calling goroutine and stops at
// the first failure. It is the executor for single-threaded runs and tests.
type Direct struct{}

func (Direct) SubmitAndJoin(ctx context.Context, jobs []Job) error {
	for _, job := range jobs {
		if err := call(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

func call(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Task: job.Name, Value: r}
		}
	}()
	if job.Run == nil {
		return nil
	}
	return job.Run(ctx)
}

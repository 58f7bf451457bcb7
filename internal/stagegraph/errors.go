package stagegraph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateStage matches errors for a stage name registered twice.
	ErrDuplicateStage = errors.New("stagegraph: duplicate stage")
	// ErrUnknownStage matches errors for an edge naming an unregistered stage.
	ErrUnknownStage = errors.New("stagegraph: unknown stage")
	// ErrCyclicDependency matches errors for a dependency cycle.
	ErrCyclicDependency = errors.New("stagegraph: cyclic dependency")
)

// DuplicateStageError reports a stage name that was registered more than once.
type DuplicateStageError struct {
	Stage string
}

func (e *DuplicateStageError) Error() string {
	return fmt.Sprintf("stagegraph: duplicate stage %q", e.Stage)
}

func (e *DuplicateStageError) Is(target error) bool { return target == ErrDuplicateStage }

// UnknownStageError reports an after/before edge whose target was never
// registered.
type UnknownStageError struct {
	Stage     string // stage declaring the edge
	Ref       string // unresolved reference
	Direction string // "after" or "before"
}

func (e *UnknownStageError) Error() string {
	return fmt.Sprintf("stagegraph: stage %q declares %s %q, which is not a registered stage", e.Stage, e.Direction, e.Ref)
}

func (e *UnknownStageError) Is(target error) bool { return target == ErrUnknownStage }

// CyclicDependencyError reports the participants of one dependency cycle,
// in edge order. A self-referential edge yields a single participant.
type CyclicDependencyError struct {
	Stages []string
}

func (e *CyclicDependencyError) Error() string {
	path := append(append([]string(nil), e.Stages...), e.Stages[0])
	return fmt.Sprintf("stagegraph: cycle detected: %s", strings.Join(path, " -> "))
}

func (e *CyclicDependencyError) Is(target error) bool { return target == ErrCyclicDependency }

package stagegraph

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Graph is a set of named stages with dependency edges. It is safe for
// concurrent use; edges are resolved lazily by Finalize so a stage may name
// another that is registered later.
type Graph struct {
	mutex  sync.RWMutex
	stages map[string]*stage
	order  []string // registration order
}

type stage struct {
	name   string
	after  []string
	before []string
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		stages: make(map[string]*stage),
	}
}

// AddStage registers a stage. after lists stages that must complete first;
// before lists stages that must wait for this one, and is stored as the
// reverse edge. Duplicate names fail with a *DuplicateStageError.
func (g *Graph) AddStage(name string, after, before []string) error {
	if name == "" {
		return errors.New("stagegraph: stage name must not be empty")
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.stages[name]; ok {
		return &DuplicateStageError{Stage: name}
	}

	g.stages[name] = &stage{
		name:   name,
		after:  append([]string(nil), after...),
		before: append([]string(nil), before...),
	}
	g.order = append(g.order, name)
	return nil
}

// Stages returns the stage names in registration order.
func (g *Graph) Stages() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return append([]string(nil), g.order...)
}

// Has reports whether a stage with the given name is registered.
func (g *Graph) Has(name string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.stages[name]
	return ok
}

// Dependencies returns the sorted names of the stages that must complete
// before the given stage, combining its own after edges with the before
// edges other stages declare on it. Unknown references are skipped.
func (g *Graph) Dependencies(name string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if _, ok := g.stages[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}

	preds, _, _ := g.edges(false)
	deps := make([]string, 0, len(preds[name]))
	for dep := range preds[name] {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps, nil
}

// edges resolves every after/before declaration into predecessor and
// successor sets keyed by stage name. With strict set, the first unknown
// reference (in name order) is returned as an error; otherwise unknown
// references are dropped. The caller must hold the lock.
func (g *Graph) edges(strict bool) (preds, succs map[string]map[string]struct{}, err error) {
	preds = make(map[string]map[string]struct{}, len(g.stages))
	succs = make(map[string]map[string]struct{}, len(g.stages))
	for name := range g.stages {
		preds[name] = make(map[string]struct{})
		succs[name] = make(map[string]struct{})
	}

	link := func(from, to string) {
		preds[to][from] = struct{}{}
		succs[from][to] = struct{}{}
	}

	for _, name := range sortedKeys(g.stages) {
		s := g.stages[name]
		for _, ref := range sortedCopy(s.after) {
			if _, ok := g.stages[ref]; !ok {
				if strict {
					return nil, nil, &UnknownStageError{Stage: name, Ref: ref, Direction: "after"}
				}
				continue
			}
			link(ref, name)
		}
		for _, ref := range sortedCopy(s.before) {
			if _, ok := g.stages[ref]; !ok {
				if strict {
					return nil, nil, &UnknownStageError{Stage: name, Ref: ref, Direction: "before"}
				}
				continue
			}
			link(name, ref)
		}
	}
	return preds, succs, nil
}

func sortedKeys(m map[string]*stage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

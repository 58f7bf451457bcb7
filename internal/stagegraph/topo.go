package stagegraph

import "sort"

// Finalize validates the graph and returns the stage execution order.
//
// Ready stages are released in name order, so the result depends only on the
// graph's shape, never on registration order, and repeated calls on an
// unchanged graph return the same slice contents. Unknown edge references
// fail with *UnknownStageError; any cycle fails with *CyclicDependencyError
// and no partial order is returned.
func (g *Graph) Finalize() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	preds, succs, err := g.edges(true)
	if err != nil {
		return nil, err
	}

	indegree := make(map[string]int, len(preds))
	var ready []string
	for name, p := range preds {
		indegree[name] = len(p)
		if len(p) == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(preds))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)

		for next := range succs[name] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = insertSorted(ready, next)
			}
		}
	}

	if len(order) != len(preds) {
		return nil, &CyclicDependencyError{Stages: findCycle(preds, indegree)}
	}
	return order, nil
}

// TopoGroups returns the stages grouped into dependency layers: layer i holds
// the stages whose predecessors all sit in layers 0..i-1, sorted by name. It
// is a diagnostic view only and never fails; unknown references are ignored
// and stages caught in a cycle are omitted.
func (g *Graph) TopoGroups() [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	preds, succs, _ := g.edges(false)

	indegree := make(map[string]int, len(preds))
	var current []string
	for name, p := range preds {
		indegree[name] = len(p)
		if len(p) == 0 {
			current = append(current, name)
		}
	}

	var groups [][]string
	for len(current) > 0 {
		sort.Strings(current)
		groups = append(groups, current)

		var next []string
		for _, name := range current {
			for succ := range succs[name] {
				indegree[succ]--
				if indegree[succ] == 0 {
					next = append(next, succ)
				}
			}
		}
		current = next
	}
	return groups
}

// findCycle extracts one concrete cycle from the stages Kahn's algorithm
// could not release. Every such stage still has an unreleased predecessor,
// so walking predecessors from any of them must revisit a stage.
func findCycle(preds map[string]map[string]struct{}, indegree map[string]int) []string {
	var stuck []string
	for name, deg := range indegree {
		if deg > 0 {
			stuck = append(stuck, name)
		}
	}
	sort.Strings(stuck)

	seen := make(map[string]int)
	var path []string
	current := stuck[0]
	for {
		if at, ok := seen[current]; ok {
			cycle := path[at:]
			// Walking predecessors yields the cycle backwards.
			for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
				cycle[i], cycle[j] = cycle[j], cycle[i]
			}
			return cycle
		}
		seen[current] = len(path)
		path = append(path, current)

		var candidates []string
		for p := range preds[current] {
			if indegree[p] > 0 {
				candidates = append(candidates, p)
			}
		}
		sort.Strings(candidates)
		current = candidates[0]
	}
}

func insertSorted(list []string, name string) []string {
	i := sort.SearchStrings(list, name)
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = name
	return list
}

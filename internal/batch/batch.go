// Package batch partitions a stage's tasks into ordered groups that are safe
// to run concurrently.
package batch

import "github.com/vk/gridsched/internal/resource"

// Partition splits items into batches such that no two items sharing a batch
// have conflicting access declarations.
//
// Items are visited in input order and each is placed in the first existing
// batch whose members it does not conflict with, otherwise a new batch is
// opened. This is greedy first-fit colouring of the conflict graph: it is
// deterministic for a stable input order but not guaranteed to be minimal.
// A fully conflicting input yields one batch per item.
func Partition[T any](items []T, access func(T) resource.Access) [][]T {
	if len(items) == 0 {
		return nil
	}

	decls := make([]resource.Access, len(items))
	for i, it := range items {
		decls[i] = access(it)
	}

	var batches [][]int
	for i := range items {
		placed := false
		for b, members := range batches {
			if fits(decls, members, i) {
				batches[b] = append(members, i)
				placed = true
				break
			}
		}
		if !placed {
			batches = append(batches, []int{i})
		}
	}

	out := make([][]T, len(batches))
	for b, members := range batches {
		out[b] = make([]T, len(members))
		for k, idx := range members {
			out[b][k] = items[idx]
		}
	}
	return out
}

func fits(decls []resource.Access, members []int, candidate int) bool {
	for _, m := range members {
		if resource.Conflicts(decls[m], decls[candidate]) {
			return false
		}
	}
	return true
}

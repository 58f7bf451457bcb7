package scheduler

import (
	"github.com/vk/gridsched/internal/gpu"
	"github.com/vk/gridsched/internal/resource"
	"github.com/vk/gridsched/internal/task"
)

// BarrierRequirements lists the synchronization a GPU resource written by the
// named task needs before later tasks read it. For each resource the task
// writes, every reader in a later batch or stage gets a hint, up to and
// including the batch holding the next writer of that resource.
//
// An unknown task, or one that writes no GPU resource, yields no hints.
func (s *Schedule) BarrierRequirements(taskName string) []gpu.Hint {
	pos, ok := s.position[taskName]
	if !ok {
		return nil
	}
	writer := s.tasks[taskName]

	var hints []gpu.Hint
	seen := make(map[resource.ID]struct{})
	for _, w := range writer.GPU.Writes {
		if w == nil {
			continue
		}
		if _, dup := seen[w.ID]; dup {
			continue
		}
		seen[w.ID] = struct{}{}
		hints = append(hints, s.consumers(writer, w, pos)...)
	}
	return hints
}

func (s *Schedule) consumers(writer *task.Task, w *gpu.Meta, from position) []gpu.Hint {
	var hints []gpu.Hint
	for si := from.stage; si < len(s.stages); si++ {
		batches := s.stages[si].batches
		bi := 0
		if si == from.stage {
			bi = from.batch + 1
		}
		for ; bi < len(batches); bi++ {
			overwritten := false
			for _, t := range batches[bi] {
				if r := t.GPU.Reading(w.ID); r != nil {
					hints = append(hints, gpu.Barriers(writer.Name, t.Name, []*gpu.Meta{w}, []*gpu.Meta{r})...)
				}
				if t.GPU.Writing(w.ID) != nil {
					overwritten = true
				}
			}
			if overwritten {
				return hints
			}
		}
	}
	return hints
}

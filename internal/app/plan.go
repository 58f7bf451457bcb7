package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/gridsched/internal/scheduler"
)

// writePlan prints the stages, their batches and the barrier hints of every
// writer, in run order.
func writePlan(w io.Writer, sched *scheduler.Schedule) error {
	var b strings.Builder
	plan := sched.Plan()

	for _, st := range plan.Stages {
		fmt.Fprintf(&b, "stage %s\n", st.Name)
		for i, batch := range st.Batches {
			fmt.Fprintf(&b, "  batch %d: %s\n", i, strings.Join(batch, ", "))
		}
	}

	var hints []string
	for _, st := range plan.Stages {
		for _, batch := range st.Batches {
			for _, name := range batch {
				for _, h := range sched.BarrierRequirements(name) {
					hints = append(hints, h.String())
				}
			}
		}
	}
	if len(hints) > 0 {
		b.WriteString("barriers\n")
		for _, h := range hints {
			fmt.Fprintf(&b, "  %s\n", h)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

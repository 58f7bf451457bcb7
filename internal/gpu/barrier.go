package gpu

import (
	"fmt"
	"strings"

	"github.com/vk/gridsched/internal/resource"
)

// Hint is an advisory synchronization requirement between a task that
// writes a GPU resource and a later task that reads it.
type Hint struct {
	Resource resource.ID
	Tag      string
	Kind     Kind

	Writer string
	Reader string

	SrcStage  PipelineStage
	SrcAccess AccessFlags
	DstStage  PipelineStage
	DstAccess AccessFlags

	// For images OldLayout is where the writer leaves the image and
	// NewLayout is where the reader needs it. Transition is set when they
	// differ. Buffers leave all three zero.
	OldLayout  ImageLayout
	NewLayout  ImageLayout
	Transition bool
}

func (h Hint) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %s -> %s, %s/%s -> %s/%s",
		h.Resource.Name(), h.Tag, h.Writer, h.Reader,
		h.SrcStage, h.SrcAccess, h.DstStage, h.DstAccess)
	if h.Transition {
		fmt.Fprintf(&b, ", layout %s -> %s", h.OldLayout, h.NewLayout)
	}
	return b.String()
}

// Barriers derives the hints needed for reader to observe writer's output:
// one per resource in writes that also appears in reads, in the order writer
// declared them.
func Barriers(writer, reader string, writes, reads []*Meta) []Hint {
	var hints []Hint
	seen := make(map[resource.ID]struct{}, len(writes))
	for _, w := range writes {
		if w == nil {
			continue
		}
		if _, dup := seen[w.ID]; dup {
			continue
		}
		r := find(reads, w.ID)
		if r == nil {
			continue
		}
		seen[w.ID] = struct{}{}
		hints = append(hints, hint(writer, reader, w, r))
	}
	return hints
}

func hint(writer, reader string, w, r *Meta) Hint {
	h := Hint{
		Resource:  w.ID,
		Tag:       w.Tag,
		Kind:      w.Kind,
		Writer:    writer,
		Reader:    reader,
		SrcStage:  w.WriteStage,
		SrcAccess: w.WriteAccess,
		DstStage:  r.ReadStage,
		DstAccess: r.ReadAccess,
	}
	if w.Kind == Image {
		h.OldLayout = w.TargetLayout
		h.NewLayout = r.ReadLayout
		h.Transition = h.OldLayout != h.NewLayout
	}
	return h
}

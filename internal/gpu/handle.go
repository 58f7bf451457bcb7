package gpu

import "sync/atomic"

// BufferHandle wraps a native buffer handle with its description.
type BufferHandle struct {
	Handle uint64
	Size   uint64
	Meta   *Meta
}

// NewBuffer wraps handle. meta must describe a buffer.
func NewBuffer(handle, size uint64, meta *Meta) *BufferHandle {
	return &BufferHandle{Handle: handle, Size: size, Meta: meta}
}

// ImageHandle wraps a native image handle. Its current layout is shared
// between tasks and is read and written atomically; the last writer wins.
// An ImageHandle must not be copied after first use.
type ImageHandle struct {
	Handle uint64
	Meta   *Meta

	layout atomic.Uint32
}

// NewImage wraps handle with the layout set to LayoutUndefined.
func NewImage(handle uint64, meta *Meta) *ImageHandle {
	return &ImageHandle{Handle: handle, Meta: meta}
}

func (i *ImageHandle) CurrentLayout() ImageLayout {
	return ImageLayout(i.layout.Load())
}

func (i *ImageHandle) SetLayout(l ImageLayout) {
	i.layout.Store(uint32(l))
}

// CompareAndSwapLayout moves the image to next only if it is still in old.
func (i *ImageHandle) CompareAndSwapLayout(old, next ImageLayout) bool {
	return i.layout.CompareAndSwap(uint32(old), uint32(next))
}

// Transition stores to and returns the layout it replaced.
func (i *ImageHandle) Transition(to ImageLayout) ImageLayout {
	return ImageLayout(i.layout.Swap(uint32(to)))
}

// Apply moves the image along h's layout transition. Concurrent recorders may
// apply the same hint; the loser sees the image already in h.NewLayout and
// still succeeds. Apply reports false when the image is in neither layout.
func (i *ImageHandle) Apply(h Hint) bool {
	if !h.Transition {
		return true
	}
	if i.CompareAndSwapLayout(h.OldLayout, h.NewLayout) {
		return true
	}
	return i.CurrentLayout() == h.NewLayout
}

// TargetLayout is the layout the image's producers leave it in.
func (i *ImageHandle) TargetLayout() ImageLayout {
	if i.Meta == nil {
		return LayoutUndefined
	}
	return i.Meta.TargetLayout
}

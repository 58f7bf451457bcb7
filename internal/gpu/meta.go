package gpu

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/vk/gridsched/internal/resource"
	"golang.org/x/text/cases"
)

// Kind separates buffers from images.
type Kind uint8

const (
	Buffer Kind = iota + 1
	Image
)

func (k Kind) String() string {
	switch k {
	case Buffer:
		return "buffer"
	case Image:
		return "image"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps "buffer" and "image" (any case) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch fold(s) {
	case "buffer":
		return Buffer, nil
	case "image":
		return Image, nil
	}
	return 0, fmt.Errorf("gpu: unknown resource kind %q", s)
}

// Meta is the static description of a GPU resource category.
// A Meta is shared and must not be modified.
type Meta struct {
	ID   resource.ID
	Tag  string
	Kind Kind

	ReadStage   PipelineStage
	WriteStage  PipelineStage
	ReadAccess  AccessFlags
	WriteAccess AccessFlags

	// TargetLayout is the layout an image's producers leave it in.
	// ReadLayout is the layout a consumer reads it in. Both are
	// LayoutUndefined for buffers.
	TargetLayout ImageLayout
	ReadLayout   ImageLayout

	BufferUsage  gputypes.BufferUsage
	TextureUsage gputypes.TextureUsage
	Visibility   gputypes.ShaderStage
}

type metaKey struct {
	kind Kind
	tag  string
	name string
}

var metas sync.Map // metaKey -> *Meta

// Infer returns the cached description for a resource of the given kind whose
// tag is tag. The resulting ID is "<kind>.<tag>".
func Infer(kind Kind, tag string) *Meta {
	return Declare(kind, tag, tag)
}

// Declare returns the description for the named resource, classified by tag.
// The ID is the category key "<kind>.<name>"; an empty tag defaults to name.
// Results are cached, so repeated calls return the same pointer.
func Declare(kind Kind, tag, name string) *Meta {
	if tag == "" {
		tag = name
	}
	key := metaKey{kind: kind, tag: tag, name: name}
	if m, ok := metas.Load(key); ok {
		return m.(*Meta)
	}
	m := classify(kind, tag)
	m.ID = resource.Key(kind.String() + "." + name)
	actual, _ := metas.LoadOrStore(key, m)
	return actual.(*Meta)
}

func classify(kind Kind, tag string) *Meta {
	folded := fold(tag)
	m := &Meta{Tag: tag, Kind: kind}
	switch kind {
	case Buffer:
		classifyBuffer(m, folded)
	case Image:
		classifyImage(m, folded)
	}
	return m
}

func classifyBuffer(m *Meta, tag string) {
	m.WriteStage = StageTransfer
	m.WriteAccess = AccessTransferWrite
	m.BufferUsage = gputypes.BufferUsageCopyDst

	switch {
	case contains(tag, "vertex"):
		m.ReadStage = StageVertexInput
		m.ReadAccess = AccessVertexAttributeRead
		m.BufferUsage |= gputypes.BufferUsageVertex
	case contains(tag, "index"):
		m.ReadStage = StageVertexInput
		m.ReadAccess = AccessIndexRead
		m.BufferUsage |= gputypes.BufferUsageIndex
	case contains(tag, "uniform", "ubo"):
		m.ReadStage = StageVertexShader | StageFragmentShader
		m.ReadAccess = AccessUniformRead
		m.BufferUsage |= gputypes.BufferUsageUniform
		m.Visibility = gputypes.ShaderStageVertex | gputypes.ShaderStageFragment
	case contains(tag, "storage"):
		m.ReadStage = StageComputeShader
		m.ReadAccess = AccessShaderRead | AccessShaderWrite
		m.BufferUsage |= gputypes.BufferUsageStorage
		m.Visibility = gputypes.ShaderStageCompute
	default:
		m.ReadStage = StageAllCommands
		m.ReadAccess = AccessShaderRead
		m.BufferUsage |= gputypes.BufferUsageCopySrc
	}
}

func classifyImage(m *Meta, tag string) {
	m.ReadStage = StageFragmentShader
	m.ReadAccess = AccessShaderRead
	m.ReadLayout = LayoutShaderReadOnlyOptimal

	switch {
	case contains(tag, "rendertarget", "colorattachment"):
		m.WriteStage = StageColorAttachmentOutput
		m.WriteAccess = AccessColorAttachmentWrite
		m.TargetLayout = LayoutColorAttachmentOptimal
		m.TextureUsage = gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding
	case contains(tag, "depth"):
		m.WriteStage = StageEarlyFragmentTests | StageLateFragmentTests
		m.WriteAccess = AccessDepthStencilAttachmentWrite
		m.TargetLayout = LayoutDepthStencilAttachmentOptimal
		m.ReadLayout = LayoutDepthStencilReadOnlyOptimal
		m.TextureUsage = gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding
	case contains(tag, "texture", "sampled"):
		sampledImage(m)
	case contains(tag, "storage"):
		m.ReadStage = StageComputeShader
		m.ReadAccess = AccessShaderRead | AccessShaderWrite
		m.WriteStage = StageComputeShader
		m.WriteAccess = AccessShaderWrite
		m.TargetLayout = LayoutGeneral
		m.ReadLayout = LayoutGeneral
		m.TextureUsage = gputypes.TextureUsageStorageBinding
		m.Visibility = gputypes.ShaderStageCompute
	default:
		sampledImage(m)
	}
}

func sampledImage(m *Meta) {
	m.WriteStage = StageTransfer
	m.WriteAccess = AccessTransferWrite
	m.TargetLayout = LayoutShaderReadOnlyOptimal
	m.TextureUsage = gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	m.Visibility = gputypes.ShaderStageFragment
}

// fold builds a fresh Caser per call; a Caser is stateful and must not be
// shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}

func contains(tag string, patterns ...string) bool {
	for _, p := range patterns {
		if strings.Contains(tag, p) {
			return true
		}
	}
	return false
}

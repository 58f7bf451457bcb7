package gpu

import (
	"strconv"
	"strings"
)

// PipelineStage is a bit set of pipeline stages a resource is touched in.
// The bit values follow the Vulkan pipeline stage flags so a recorder can
// pass them through unchanged.
type PipelineStage uint32

const (
	StageTopOfPipe             PipelineStage = 1 << 0
	StageDrawIndirect          PipelineStage = 1 << 1
	StageVertexInput           PipelineStage = 1 << 2
	StageVertexShader          PipelineStage = 1 << 3
	StageFragmentShader        PipelineStage = 1 << 7
	StageEarlyFragmentTests    PipelineStage = 1 << 8
	StageLateFragmentTests     PipelineStage = 1 << 9
	StageColorAttachmentOutput PipelineStage = 1 << 10
	StageComputeShader         PipelineStage = 1 << 11
	StageTransfer              PipelineStage = 1 << 12
	StageBottomOfPipe          PipelineStage = 1 << 13
	StageAllCommands           PipelineStage = 1 << 16
)

var stageNames = []flagName[PipelineStage]{
	{StageTopOfPipe, "TopOfPipe"},
	{StageDrawIndirect, "DrawIndirect"},
	{StageVertexInput, "VertexInput"},
	{StageVertexShader, "VertexShader"},
	{StageFragmentShader, "FragmentShader"},
	{StageEarlyFragmentTests, "EarlyFragmentTests"},
	{StageLateFragmentTests, "LateFragmentTests"},
	{StageColorAttachmentOutput, "ColorAttachmentOutput"},
	{StageComputeShader, "ComputeShader"},
	{StageTransfer, "Transfer"},
	{StageBottomOfPipe, "BottomOfPipe"},
	{StageAllCommands, "AllCommands"},
}

// Has reports whether every bit of other is set in s.
func (s PipelineStage) Has(other PipelineStage) bool { return s&other == other }

func (s PipelineStage) String() string { return formatFlags(s, stageNames) }

// AccessFlags is a bit set of memory access kinds.
type AccessFlags uint32

const (
	AccessIndirectCommandRead         AccessFlags = 1 << 0
	AccessIndexRead                   AccessFlags = 1 << 1
	AccessVertexAttributeRead         AccessFlags = 1 << 2
	AccessUniformRead                 AccessFlags = 1 << 3
	AccessShaderRead                  AccessFlags = 1 << 5
	AccessShaderWrite                 AccessFlags = 1 << 6
	AccessColorAttachmentRead         AccessFlags = 1 << 7
	AccessColorAttachmentWrite        AccessFlags = 1 << 8
	AccessDepthStencilAttachmentRead  AccessFlags = 1 << 9
	AccessDepthStencilAttachmentWrite AccessFlags = 1 << 10
	AccessTransferRead                AccessFlags = 1 << 11
	AccessTransferWrite               AccessFlags = 1 << 12
)

var accessNames = []flagName[AccessFlags]{
	{AccessIndirectCommandRead, "IndirectCommandRead"},
	{AccessIndexRead, "IndexRead"},
	{AccessVertexAttributeRead, "VertexAttributeRead"},
	{AccessUniformRead, "UniformRead"},
	{AccessShaderRead, "ShaderRead"},
	{AccessShaderWrite, "ShaderWrite"},
	{AccessColorAttachmentRead, "ColorAttachmentRead"},
	{AccessColorAttachmentWrite, "ColorAttachmentWrite"},
	{AccessDepthStencilAttachmentRead, "DepthStencilAttachmentRead"},
	{AccessDepthStencilAttachmentWrite, "DepthStencilAttachmentWrite"},
	{AccessTransferRead, "TransferRead"},
	{AccessTransferWrite, "TransferWrite"},
}

// Has reports whether every bit of other is set in a.
func (a AccessFlags) Has(other AccessFlags) bool { return a&other == other }

func (a AccessFlags) String() string { return formatFlags(a, accessNames) }

// ImageLayout is the memory arrangement of an image.
type ImageLayout uint32

const (
	LayoutUndefined ImageLayout = iota
	LayoutGeneral
	LayoutColorAttachmentOptimal
	LayoutDepthStencilAttachmentOptimal
	LayoutDepthStencilReadOnlyOptimal
	LayoutShaderReadOnlyOptimal
	LayoutTransferSrcOptimal
	LayoutTransferDstOptimal
	LayoutPreinitialized
)

var layoutNames = [...]string{
	LayoutUndefined:                     "Undefined",
	LayoutGeneral:                       "General",
	LayoutColorAttachmentOptimal:        "ColorAttachmentOptimal",
	LayoutDepthStencilAttachmentOptimal: "DepthStencilAttachmentOptimal",
	LayoutDepthStencilReadOnlyOptimal:   "DepthStencilReadOnlyOptimal",
	LayoutShaderReadOnlyOptimal:         "ShaderReadOnlyOptimal",
	LayoutTransferSrcOptimal:            "TransferSrcOptimal",
	LayoutTransferDstOptimal:            "TransferDstOptimal",
	LayoutPreinitialized:                "Preinitialized",
}

func (l ImageLayout) String() string {
	if int(l) < len(layoutNames) {
		return layoutNames[l]
	}
	return "ImageLayout(" + strconv.FormatUint(uint64(l), 10) + ")"
}

type flagName[T ~uint32] struct {
	bit  T
	name string
}

func formatFlags[T ~uint32](v T, names []flagName[T]) string {
	if v == 0 {
		return "None"
	}
	var parts []string
	rest := v
	for _, n := range names {
		if v&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

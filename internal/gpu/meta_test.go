package gpu

import (
	"sync"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer_Buffers(t *testing.T) {
	testCases := []struct {
		tag        string
		readStage  PipelineStage
		readAccess AccessFlags
		usage      gputypes.BufferUsage
		visibility gputypes.ShaderStage
	}{
		{"VertexBuffer", StageVertexInput, AccessVertexAttributeRead, gputypes.BufferUsageVertex, 0},
		{"IndexBuffer", StageVertexInput, AccessIndexRead, gputypes.BufferUsageIndex, 0},
		{"CameraUniforms", StageVertexShader | StageFragmentShader, AccessUniformRead, gputypes.BufferUsageUniform, gputypes.ShaderStageVertex | gputypes.ShaderStageFragment},
		{"lightUBO", StageVertexShader | StageFragmentShader, AccessUniformRead, gputypes.BufferUsageUniform, gputypes.ShaderStageVertex | gputypes.ShaderStageFragment},
		{"ParticleStorage", StageComputeShader, AccessShaderRead | AccessShaderWrite, gputypes.BufferUsageStorage, gputypes.ShaderStageCompute},
		{"Staging", StageAllCommands, AccessShaderRead, gputypes.BufferUsageCopySrc, 0},
		// First match wins.
		{"VertexStorage", StageVertexInput, AccessVertexAttributeRead, gputypes.BufferUsageVertex, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			m := Infer(Buffer, tc.tag)
			require.NotNil(t, m)
			assert.Equal(t, Buffer, m.Kind)
			assert.Equal(t, tc.readStage, m.ReadStage)
			assert.Equal(t, tc.readAccess, m.ReadAccess)
			assert.Equal(t, StageTransfer, m.WriteStage)
			assert.Equal(t, AccessTransferWrite, m.WriteAccess)
			assert.Equal(t, LayoutUndefined, m.TargetLayout)
			assert.Equal(t, LayoutUndefined, m.ReadLayout)
			assert.Equal(t, tc.usage|gputypes.BufferUsageCopyDst, m.BufferUsage)
			assert.Equal(t, tc.visibility, m.Visibility)
		})
	}
}

func TestInfer_Images(t *testing.T) {
	testCases := []struct {
		tag         string
		readStage   PipelineStage
		writeStage  PipelineStage
		writeAccess AccessFlags
		layout      ImageLayout
		readLayout  ImageLayout
		usage       gputypes.TextureUsage
	}{
		{"RenderTarget", StageFragmentShader, StageColorAttachmentOutput, AccessColorAttachmentWrite, LayoutColorAttachmentOptimal, LayoutShaderReadOnlyOptimal, gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding},
		{"HDRColorAttachment", StageFragmentShader, StageColorAttachmentOutput, AccessColorAttachmentWrite, LayoutColorAttachmentOptimal, LayoutShaderReadOnlyOptimal, gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding},
		{"DepthStencil", StageFragmentShader, StageEarlyFragmentTests | StageLateFragmentTests, AccessDepthStencilAttachmentWrite, LayoutDepthStencilAttachmentOptimal, LayoutDepthStencilReadOnlyOptimal, gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding},
		{"AlbedoTexture", StageFragmentShader, StageTransfer, AccessTransferWrite, LayoutShaderReadOnlyOptimal, LayoutShaderReadOnlyOptimal, gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst},
		{"StorageImage", StageComputeShader, StageComputeShader, AccessShaderWrite, LayoutGeneral, LayoutGeneral, gputypes.TextureUsageStorageBinding},
		// Fragment read, shader-read-only target.
		{"ShadowMap", StageFragmentShader, StageTransfer, AccessTransferWrite, LayoutShaderReadOnlyOptimal, LayoutShaderReadOnlyOptimal, gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			m := Infer(Image, tc.tag)
			assert.Equal(t, Image, m.Kind)
			assert.Equal(t, tc.readStage, m.ReadStage)
			assert.Equal(t, tc.writeStage, m.WriteStage)
			assert.Equal(t, tc.writeAccess, m.WriteAccess)
			assert.Equal(t, tc.layout, m.TargetLayout)
			assert.Equal(t, tc.readLayout, m.ReadLayout)
			assert.Equal(t, tc.usage, m.TextureUsage)
		})
	}

	t.Run("storage images are read and written by shaders", func(t *testing.T) {
		m := Infer(Image, "StorageImage")
		assert.Equal(t, AccessShaderRead|AccessShaderWrite, m.ReadAccess)
	})

	t.Run("sampled images are shader read", func(t *testing.T) {
		assert.Equal(t, AccessShaderRead, Infer(Image, "ShadowMap").ReadAccess)
	})
}

func TestInfer_CaseInsensitive(t *testing.T) {
	lower := Infer(Buffer, "vertexbuffer")
	upper := Infer(Buffer, "VERTEXBUFFER")
	assert.Equal(t, lower.ReadStage, upper.ReadStage)
	assert.Equal(t, StageVertexInput, upper.ReadStage)
	assert.Equal(t, LayoutDepthStencilAttachmentOptimal, Infer(Image, "sceneDEPTH").TargetLayout)
}

func TestInfer_Cached(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	results := make([]*Meta, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Infer(Image, "CachedRenderTarget")
		}(i)
	}
	wg.Wait()

	for _, m := range results {
		require.Same(t, results[0], m)
	}
	assert.Equal(t, "image.CachedRenderTarget", results[0].ID.Name())
}

func TestDeclare(t *testing.T) {
	t.Run("tag drives classification and name drives identity", func(t *testing.T) {
		m := Declare(Buffer, "VertexBuffer", "terrain")
		assert.Equal(t, "buffer.terrain", m.ID.Name())
		assert.Equal(t, "VertexBuffer", m.Tag)
		assert.Equal(t, StageVertexInput, m.ReadStage)
	})

	t.Run("empty tag defaults to name", func(t *testing.T) {
		m := Declare(Image, "", "shadow_depth")
		assert.Equal(t, "shadow_depth", m.Tag)
		assert.Equal(t, LayoutDepthStencilAttachmentOptimal, m.TargetLayout)
	})

	t.Run("same name shares an ID across tags", func(t *testing.T) {
		a := Declare(Buffer, "VertexBuffer", "shared")
		b := Declare(Buffer, "StorageBuffer", "shared")
		assert.Equal(t, a.ID, b.ID)
		assert.NotEqual(t, a.ReadStage, b.ReadStage)
	})

	t.Run("kinds do not share IDs", func(t *testing.T) {
		assert.NotEqual(t, Declare(Buffer, "", "x").ID, Declare(Image, "", "x").ID)
	})
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Buffer")
	require.NoError(t, err)
	assert.Equal(t, Buffer, k)

	k, err = ParseKind("image")
	require.NoError(t, err)
	assert.Equal(t, Image, k)

	_, err = ParseKind("cpu")
	assert.Error(t, err)
}

func TestFlagStrings(t *testing.T) {
	assert.Equal(t, "None", PipelineStage(0).String())
	assert.Equal(t, "VertexShader|FragmentShader", (StageVertexShader | StageFragmentShader).String())
	assert.Equal(t, "ShaderRead|ShaderWrite", (AccessShaderRead | AccessShaderWrite).String())
	assert.Equal(t, "TransferWrite|0x80000", (AccessTransferWrite | 1<<19).String())
	assert.Equal(t, "ShaderReadOnlyOptimal", LayoutShaderReadOnlyOptimal.String())
	assert.Equal(t, "ImageLayout(99)", ImageLayout(99).String())
	assert.True(t, (StageEarlyFragmentTests | StageLateFragmentTests).Has(StageLateFragmentTests))
	assert.False(t, StageTransfer.Has(StageTransfer|StageComputeShader))
}

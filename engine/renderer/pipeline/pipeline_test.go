package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modelShaders(t *testing.T) (shader.Shader, shader.Shader) {
	t.Helper()
	vs, err := shader.Embedded("model_vs", shader.ShaderTypeVertex, shader.SourceModel)
	require.NoError(t, err)
	fs, err := shader.Embedded("model_fs", shader.ShaderTypeFragment, shader.SourceModel)
	require.NoError(t, err)
	return vs, fs
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("p")
	assert.Equal(t, "p", p.PipelineKey())
	assert.Equal(t, wgpu.TextureFormatUndefined, p.DepthFormat())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Empty(t, p.VertexLayouts())
	assert.Nil(t, p.RenderPipeline())
}

func TestValidateModelPipeline(t *testing.T) {
	vs, fs := modelShaders(t)
	p := NewPipeline("model",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithVertexLayouts(model.ModelVertexLayout(), model.InstanceRawLayout()),
		WithDepthFormat(wgpu.TextureFormatDepth32Float),
		WithCullMode(wgpu.CullModeBack),
	)
	require.NoError(t, p.Validate())
	assert.Len(t, p.VertexLayouts(), 2)
	assert.Equal(t, wgpu.TextureFormatDepth32Float, p.DepthFormat())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))
}

func TestValidateMissingInstanceLayout(t *testing.T) {
	vs, fs := modelShaders(t)
	p := NewPipeline("model",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithVertexLayouts(model.ModelVertexLayout()),
	)
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location 5")
}

func TestValidateFormatMismatch(t *testing.T) {
	vs, fs := modelShaders(t)
	layout := model.ModelVertexLayout()
	layout.Attributes[1].Format = wgpu.VertexFormatFloat32x3
	p := NewPipeline("model",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithVertexLayouts(layout, model.InstanceRawLayout()),
	)
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tex_coords")
}

func TestValidateDuplicateLocation(t *testing.T) {
	vs, fs := modelShaders(t)
	p := NewPipeline("model",
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithVertexLayouts(model.ModelVertexLayout(), model.ModelVertexLayout()),
	)
	assert.Error(t, p.Validate())
}

func TestValidateLoadingPipelineWithoutBuffers(t *testing.T) {
	vs, err := shader.Embedded("loading_vs", shader.ShaderTypeVertex, shader.SourceLoading)
	require.NoError(t, err)
	fs, err := shader.Embedded("loading_fs", shader.ShaderTypeFragment, shader.SourceLoading)
	require.NoError(t, err)

	assert.NoError(t, NewPipeline("loading", WithVertexShader(vs), WithFragmentShader(fs)).Validate())
	assert.Error(t, NewPipeline("loading", WithVertexShader(vs)).Validate())
}

func TestReleaseWithoutGPUPipeline(t *testing.T) {
	p := NewPipeline("p")
	assert.NotPanics(t, p.Release)
}

package pipeline

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the shaders and fixed-function state a render pipeline is created from, and the created pipeline.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	// vertexLayouts are the vertex buffer slots in order; slot i is layouts[i]
	vertexLayouts []wgpu.VertexBufferLayout
	// bindGroupLayouts are the bind group layouts in group order
	bindGroupLayouts []*wgpu.BindGroupLayout

	// renderPipeline is set by the renderer once the GPU pipeline exists
	renderPipeline *wgpu.RenderPipeline

	// depthFormat is the depth attachment format, wgpu.TextureFormatUndefined for no depth attachment
	depthFormat       wgpu.TextureFormat
	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline describes a render pipeline: its shader stages, vertex buffer layouts, bind group layouts
// and fixed-function state. The renderer creates the GPU object and stores it back with SetRenderPipeline.
type Pipeline interface {
	// PipelineKey returns the unique key of this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key of this pipeline
	PipelineKey() string

	// Shader retrieves the shader stage of the given type.
	//
	// Parameters:
	//   - shaderType: ShaderTypeVertex or ShaderTypeFragment
	//
	// Returns:
	//   - shader.Shader: the shader of that stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// VertexLayouts returns the vertex buffer layouts, one per vertex buffer slot.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts in slot order, empty for a pipeline without vertex buffers
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayouts returns the bind group layouts of the pipeline layout.
	//
	// Returns:
	//   - []*wgpu.BindGroupLayout: the layouts in group order
	BindGroupLayouts() []*wgpu.BindGroupLayout

	// DepthFormat returns the depth attachment format the pipeline renders with.
	//
	// Returns:
	//   - wgpu.TextureFormat: the depth format, or wgpu.TextureFormatUndefined without a depth attachment
	DepthFormat() wgpu.TextureFormat

	// DepthTestEnabled reports whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled reports whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// BlendEnabled reports whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the face culling mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeBack)
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline (e.g., wgpu.PrimitiveTopologyTriangleList)
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline (e.g., wgpu.FrontFaceCCW, wgpu.FrontFaceCW)
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline (e.g., wgpu.ColorWriteMaskAll)
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline, used only when blending is enabled
	BlendState() *wgpu.BlendState

	// Validate checks that both shader stages are set and that every vertex input the vertex shader
	// declares is fed by an attribute of matching format at the same location.
	//
	// Returns:
	//   - error: the first problem found, or nil
	Validate() error

	// RenderPipeline returns the created GPU pipeline.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline, or nil before registration
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline sets the render pipeline
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release releases the GPU pipeline. Bind group layouts are owned by whoever created them.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthFormat:       wgpu.TextureFormatUndefined,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) BindGroupLayouts() []*wgpu.BindGroupLayout {
	return p.bindGroupLayouts
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Validate() error {
	if p.vertexShader == nil || p.fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	provided := make(map[uint32]wgpu.VertexFormat)
	for _, layout := range p.vertexLayouts {
		for _, attr := range layout.Attributes {
			if _, dup := provided[attr.ShaderLocation]; dup {
				return fmt.Errorf("pipeline %s: location %d is provided twice", p.pipelineKey, attr.ShaderLocation)
			}
			provided[attr.ShaderLocation] = attr.Format
		}
	}
	for _, in := range p.vertexShader.VertexInputs() {
		format, ok := provided[in.Location]
		if !ok {
			return fmt.Errorf("pipeline %s: vertex input %s at location %d has no attribute", p.pipelineKey, in.Name, in.Location)
		}
		if in.Format != wgpu.VertexFormatUndefined && in.Format != format {
			return fmt.Errorf("pipeline %s: vertex input %s at location %d expects format %d, layout provides %d",
				p.pipelineKey, in.Name, in.Location, in.Format, format)
		}
	}
	return nil
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}

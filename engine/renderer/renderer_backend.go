package renderer

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// DepthFormat is the format of the depth attachment of the main render pass.
const DepthFormat = wgpu.TextureFormatDepth32Float

// rendererBackend is the GPU API behind the Renderer. The renderer owns caching, surface
// reconciliation and error classification; the backend owns GPU objects and frame state.
type rendererBackend interface {
	CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)
	RegisterRenderPipeline(p pipeline.Pipeline, colorFormat wgpu.TextureFormat) error

	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitVertexBuffer(provider bind_group_provider.BindGroupProvider, data []byte) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// ConfigureDepth recreates the depth texture at the given size.
	ConfigureDepth(width, height uint32) error

	BeginFrame(clear wgpu.Color) error
	Pass() RenderPass
	EndFrame() error
	Present()

	Release()
}

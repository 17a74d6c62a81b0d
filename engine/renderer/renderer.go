package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	ctx         surface.Context
	backendType RendererBackendType
	backend     rendererBackend
	log         *zap.Logger
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer draws into a surface.Context, keeps the depth attachment sized to it, and manages a cache
// of registered pipelines. The Renderer also implements a backend which allows for multiple backend API
// implementations to exist.
type Renderer interface {
	// Context returns the surface context the renderer draws into.
	//
	// Returns:
	//   - surface.Context: the surface context
	Context() surface.Context

	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU render pipeline of each Pipeline for the surface color format
	// and caches it by PipelineKey. Pipelines whose keys are already registered are skipped to avoid
	// duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if validation or pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// CreateBindGroupLayout creates a bind group layout to share between pipelines and bind groups.
	// The caller owns and releases the layout.
	//
	// Parameters:
	//   - descriptor: the layout descriptor
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout
	//   - error: an error if layout creation fails
	CreateBindGroupLayout(descriptor wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)

	// Resize reconciles the surface to a new physical window size and recreates the depth attachment.
	// A zero dimension is ignored.
	//
	// Parameters:
	//   - width: the new physical width of the window in pixels
	//   - height: the new physical height of the window in pixels
	//
	// Returns:
	//   - bool: true if the surface was reconfigured
	//   - error: an error if the depth attachment could not be recreated
	Resize(width, height int) (bool, error)

	// Size returns the configured surface size.
	//
	// Returns:
	//   - uint32: width in pixels
	//   - uint32: height in pixels
	Size() (uint32, uint32)

	// SetPresentMode changes how frames are delivered to the display and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode surface.PresentMode)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitVertexBuffer creates a vertex buffer, such as a packed instance list, and stores it on the
	// given BindGroupProvider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffer on
	//   - data: the raw bytes to upload
	//
	// Returns:
	//   - error: an error if the data is empty or buffer creation fails
	InitVertexBuffer(provider bind_group_provider.BindGroupProvider, data []byte) error

	// InitBindGroup creates a bind group from a layout descriptor and stores it on the given BindGroupProvider.
	// Textures and samplers must be initialized via InitTextureView and InitSampler first. Buffer bindings
	// without a buffer get one of the entry's MinBindingSize. The provider's layout is used when set,
	// otherwise one is created from the descriptor.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//
	// Returns:
	//   - error: an error if a resource is missing or bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView creates a GPU texture from staging data and stores it with its view
	// on the given BindGroupProvider at the specified binding index. Color data is uploaded in an
	// sRGB format and linear data in a UNORM format.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created texture view on
	//   - bindingKey: the binding index for this texture
	//   - stagingData: the pixel data and dimensions for the texture
	//
	// Returns:
	//   - error: an error if the data is inconsistent, exceeds the device limit, or texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler from staging data and stores it on the given BindGroupProvider
	// at the specified binding index. Must be called before InitBindGroup for any sampler bindings.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created sampler on
	//   - bindingKey: the binding index for this sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and begins the main render pass, clearing color and depth.
	// Must be paired with EndFrame and Present.
	//
	// Parameters:
	//   - clear: the clear color
	//
	// Returns:
	//   - error: a *SurfaceError if the surface texture could not be acquired
	BeginFrame(clear wgpu.Color) error

	// Pass returns the render pass of the frame in progress.
	//
	// Returns:
	//   - RenderPass: the pass, or nil outside BeginFrame/EndFrame
	Pass() RenderPass

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface, call Present() after EndFrame to display the frame.
	//
	// Returns:
	//   - error: an error if no frame is in progress or the commands could not be encoded
	EndFrame() error

	// Present presents the surface to the display and releases the surface texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Release releases every cached pipeline and the depth attachment. The surface context is not released.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer drawing into the given surface context and sizes the depth attachment to it.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - ctx: the surface context to draw into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error if the depth attachment could not be created
func NewRenderer(backendType RendererBackendType, ctx surface.Context, options ...RendererBuilderOption) (Renderer, error) {
	var backend rendererBackend
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend = newWGPURendererBackend(ctx)
	}
	return newRenderer(backendType, ctx, backend, options...)
}

func newRenderer(backendType RendererBackendType, ctx surface.Context, backend rendererBackend, options ...RendererBuilderOption) (*renderer, error) {
	r := &renderer{
		pipelineCache: make(map[string]pipeline.Pipeline),
		ctx:           ctx,
		backendType:   backendType,
		backend:       backend,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Named("renderer")
	}

	w, h := ctx.Size()
	if err := backend.ConfigureDepth(w, h); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *renderer) Context() surface.Context {
	return r.ctx
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	format := r.ctx.Format()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p, format); err != nil {
			return fmt.Errorf("register pipeline %s: %w", key, err)
		}
		r.pipelineCache[key] = p
		r.log.Debug("pipeline registered", zap.String("pipeline", key))
	}
	return nil
}

func (r *renderer) CreateBindGroupLayout(descriptor wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return r.backend.CreateBindGroupLayout(&descriptor)
}

func (r *renderer) Resize(width, height int) (bool, error) {
	if !r.ctx.Resize(width, height) {
		return false, nil
	}
	return true, r.configureDepth()
}

func (r *renderer) configureDepth() error {
	w, h := r.ctx.Size()
	if err := r.backend.ConfigureDepth(w, h); err != nil {
		return err
	}
	r.log.Debug("depth attachment recreated", zap.Uint32("width", w), zap.Uint32("height", h))
	return nil
}

func (r *renderer) Size() (uint32, uint32) {
	return r.ctx.Size()
}

func (r *renderer) SetPresentMode(mode surface.PresentMode) {
	r.ctx.SetPresentMode(mode)
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitVertexBuffer(provider bind_group_provider.BindGroupProvider, data []byte) error {
	return r.backend.InitVertexBuffer(provider, data)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame(clear wgpu.Color) error {
	if err := r.backend.BeginFrame(clear); err != nil {
		return classifySurfaceError(err)
	}
	return nil
}

func (r *renderer) Pass() RenderPass {
	return r.backend.Pass()
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for k, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, k)
	}
	r.mu.Unlock()
	r.backend.Release()
}

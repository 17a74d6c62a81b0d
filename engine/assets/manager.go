package assets

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"go.uber.org/zap"
)

// LoadingPipelineKey is the cache key of the fallback pipeline drawn while a bundle loads.
const LoadingPipelineKey = "loading"

// PipelineRegistrar creates GPU pipelines for pipeline definitions. The Renderer implements it.
type PipelineRegistrar interface {
	// RegisterPipelines creates the GPU pipeline of each definition.
	//
	// Parameters:
	//   - pipelines: the definitions to register
	//
	// Returns:
	//   - error: error if validation or creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error
}

// Manager owns one AssetBundle and draws a placeholder animation until the bundle is fully loaded.
// Readiness is a latch: once the bundle reports loaded, the Manager stays ready.
type Manager[B AssetBundle] struct {
	bundle   B
	ready    atomic.Bool
	pipeline pipeline.Pipeline
	log      *zap.Logger
}

// NewManager resets the bundle, starts loading it, and registers the fallback pipeline.
// The fallback pipeline has no vertex buffers or bind groups, uses the embedded loading shader, and
// targets the surface color format and the renderer's depth format.
//
// Parameters:
//   - bundle: the bundle to manage
//   - registrar: creates the fallback pipeline, normally the Renderer
//   - options: variadic list of ManagerBuilderOption functions
//
// Returns:
//   - *Manager[B]: the manager
//   - error: error if the fallback pipeline cannot be built
func NewManager[B AssetBundle](bundle B, registrar PipelineRegistrar, options ...ManagerBuilderOption) (*Manager[B], error) {
	cfg := managerConfig{depthTest: true}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Named("assets")
	}

	bundle.Construct()
	bundle.StartLoading()

	vs, err := shader.Embedded(LoadingPipelineKey, shader.ShaderTypeVertex, shader.SourceLoading)
	if err != nil {
		return nil, fmt.Errorf("loading vertex shader: %w", err)
	}
	fs, err := shader.Embedded(LoadingPipelineKey, shader.ShaderTypeFragment, shader.SourceLoading)
	if err != nil {
		return nil, fmt.Errorf("loading fragment shader: %w", err)
	}

	opts := []pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	}
	if cfg.depthTest {
		opts = append(opts, pipeline.WithDepthFormat(renderer.DepthFormat))
	}
	p := pipeline.NewPipeline(LoadingPipelineKey, opts...)
	if err := registrar.RegisterPipelines(p); err != nil {
		return nil, err
	}

	cfg.log.Info("asset loading started")
	return &Manager[B]{
		bundle:   bundle,
		pipeline: p,
		log:      cfg.log,
	}, nil
}

// Bundle returns the managed bundle.
//
// Returns:
//   - B: the bundle
func (m *Manager[B]) Bundle() B {
	return m.bundle
}

// IsReady reports whether the bundle has finished loading. The bundle is polled only until it first
// reports loaded.
//
// Returns:
//   - bool: true once the bundle is fully loaded
func (m *Manager[B]) IsReady() bool {
	if m.ready.Load() {
		return true
	}
	if m.bundle.FullyLoaded() {
		if m.ready.CompareAndSwap(false, true) {
			m.log.Info("assets ready")
		}
		return true
	}
	return false
}

// RenderLoading draws the loading animation into the pass. It draws nothing once the bundle is ready.
//
// Parameters:
//   - pass: the frame's render pass
func (m *Manager[B]) RenderLoading(pass renderer.RenderPass) {
	if m.IsReady() {
		return
	}
	pass.SetPipeline(m.pipeline)
	pass.Draw(3, 1)
}

// Pipeline returns the fallback pipeline.
//
// Returns:
//   - pipeline.Pipeline: the loading pipeline
func (m *Manager[B]) Pipeline() pipeline.Pipeline {
	return m.pipeline
}

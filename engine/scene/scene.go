package scene

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/assets"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// ModelPipelineKey is the cache key of the lit model pipeline.
const ModelPipelineKey = "model"

// DefaultClearColor is the sky blue the scene clears to.
var DefaultClearColor = wgpu.Color{R: 0.012, G: 0.627, B: 1.0, A: 1.0}

// Scene shows a single model lit by an orbiting light, with a loading animation until the model is ready.
// Every method except Ready must be called from the render thread.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Light returns the scene's light.
	Light() light.Light

	// Ready reports whether the model has finished loading.
	//
	// Returns:
	//   - bool: true once the model is drawn instead of the loading animation
	Ready() bool

	// Update advances the light by dt and uploads it.
	//
	// Parameters:
	//   - dt: the time since the previous update
	Update(dt time.Duration)

	// Render draws one frame: the model once it is loaded, the loading animation before that.
	//
	// Returns:
	//   - error: a *renderer.SurfaceError if no frame could be acquired, or a draw or submission error
	Render() error

	// Resize reconciles the surface, depth attachment and projection to a new physical window size.
	// A zero dimension is ignored.
	//
	// Parameters:
	//   - width: the physical width in pixels
	//   - height: the physical height in pixels
	Resize(width, height int)

	// Size returns the last accepted physical window size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Release stops loading and releases the scene's GPU resources.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu sync.Mutex

	name  string
	clear wgpu.Color
	log   *zap.Logger

	r          renderer.Renderer
	cam        camera.Camera
	projection camera.Projection
	light      light.Light

	materialLayout     *wgpu.BindGroupLayout
	ownsMaterialLayout bool
	pipeline           pipeline.Pipeline

	modelName    string
	instances    []model.Instance
	pool         worker.DynamicWorkerPool
	loadTimeout  time.Duration
	bundle       *assets.ModelBundle
	manager      *assets.Manager[*assets.ModelBundle]
	writeScratch []bind_group_provider.BufferWrite
}

var _ Scene = &scene{}

// NewScene builds the camera and light bind groups, registers the model pipeline, and starts loading
// the model through loader in the background.
//
// Parameters:
//   - name: the name of the scene
//   - r: the renderer to draw with
//   - loader: loads the model; its material bind groups must follow the scene's material layout
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the scene
//   - error: error if a bind group or pipeline cannot be created
func NewScene(name string, r renderer.Renderer, loader assets.ModelLoader, options ...SceneBuilderOption) (Scene, error) {
	if r == nil {
		return nil, errors.New("scene: renderer is required")
	}
	if loader == nil {
		return nil, errors.New("scene: loader is required")
	}

	s := &scene{
		name:      name,
		clear:     DefaultClearColor,
		r:         r,
		modelName: "WIP.obj",
		instances: []model.Instance{model.NewInstance()},
	}
	for _, option := range options {
		option(s)
	}
	if s.log == nil {
		s.log = logger.Named("scene").With(zap.String("scene", name))
	}
	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	if s.light == nil {
		s.light = light.NewLight()
	}
	w, h := r.Size()
	s.projection = camera.NewProjection(w, h)

	if err := s.initUniforms(); err != nil {
		return nil, err
	}
	if err := s.initPipeline(); err != nil {
		return nil, err
	}

	bundleOpts := []assets.ModelBundleOption{
		assets.WithInstanceUploader(r),
		assets.WithInstances(s.instances),
		assets.WithTimeout(s.loadTimeout),
		assets.WithBundleLogger(s.log),
	}
	if s.pool != nil {
		bundleOpts = append(bundleOpts, assets.WithWorkerPool(s.pool))
	}
	s.bundle = assets.NewModelBundle(loader, s.modelName, bundleOpts...)

	manager, err := assets.NewManager(s.bundle, r, assets.WithLogger(s.log))
	if err != nil {
		s.bundle.Release()
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	s.manager = manager
	return s, nil
}

// initUniforms creates the camera and light uniform buffers and bind groups and uploads their first values.
func (s *scene) initUniforms() error {
	if err := s.r.InitBindGroup(s.cam.BindGroupProvider(), camera.BindGroupLayoutDescriptor()); err != nil {
		return fmt.Errorf("scene %q: camera bind group: %w", s.name, err)
	}
	if err := s.r.InitBindGroup(s.light.BindGroupProvider(), light.BindGroupLayoutDescriptor()); err != nil {
		return fmt.Errorf("scene %q: light bind group: %w", s.name, err)
	}
	s.writeCamera()
	s.writeLight()
	return nil
}

// initPipeline creates the material layout when none was shared and registers the model pipeline.
func (s *scene) initPipeline() error {
	if s.materialLayout == nil {
		bgl, err := s.r.CreateBindGroupLayout(material.BindGroupLayoutDescriptor())
		if err != nil {
			return fmt.Errorf("scene %q: material layout: %w", s.name, err)
		}
		s.materialLayout = bgl
		s.ownsMaterialLayout = true
	}

	vs, err := shader.Embedded(ModelPipelineKey, shader.ShaderTypeVertex, shader.SourceModel)
	if err != nil {
		return err
	}
	fs, err := shader.Embedded(ModelPipelineKey, shader.ShaderTypeFragment, shader.SourceModel)
	if err != nil {
		return err
	}

	s.pipeline = pipeline.NewPipeline(ModelPipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithVertexLayouts(model.ModelVertexLayout(), model.InstanceRawLayout()),
		pipeline.WithBindGroupLayouts(
			s.materialLayout,
			s.cam.BindGroupProvider().BindGroupLayout(),
			s.light.BindGroupProvider().BindGroupLayout(),
		),
		pipeline.WithDepthFormat(renderer.DepthFormat),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
	if err := s.r.RegisterPipelines(s.pipeline); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}
	return nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Light() light.Light {
	return s.light
}

func (s *scene) Ready() bool {
	return s.manager.IsReady()
}

func (s *scene) Update(dt time.Duration) {
	s.light.Update(dt)
	s.writeLight()
}

func (s *scene) Render() error {
	if err := s.r.BeginFrame(s.clear); err != nil {
		return err
	}
	pass := s.r.Pass()

	drawErr := s.draw(pass)
	if err := s.r.EndFrame(); err != nil {
		return errors.Join(drawErr, err)
	}
	s.r.Present()
	return drawErr
}

// draw records the model, or the loading animation while the model loads.
func (s *scene) draw(pass renderer.RenderPass) error {
	if !s.manager.IsReady() {
		s.manager.RenderLoading(pass)
		return nil
	}

	b := s.manager.Bundle()
	instances := b.Instances()
	if instances == nil {
		return fmt.Errorf("scene %q: model %q has no instance buffer", s.name, s.modelName)
	}
	pass.SetVertexBuffer(1, instances.VertexBuffer())
	pass.SetPipeline(s.pipeline)
	return renderer.DrawModel(pass, b.Model(), b.InstanceCount(), s.cam.BindGroupProvider(), s.light.BindGroupProvider())
}

func (s *scene) Resize(width, height int) {
	ok, err := s.r.Resize(width, height)
	if err != nil {
		s.log.Error("resize failed", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	s.projection.Resize(s.r.Size())
	s.writeCamera()
}

func (s *scene) Size() (int, int) {
	return s.r.Context().PhysicalSize()
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bundle != nil {
		s.bundle.Release()
		s.bundle = nil
	}
	if p := s.cam.BindGroupProvider(); p != nil {
		p.Release()
	}
	if p := s.light.BindGroupProvider(); p != nil {
		p.Release()
	}
	if s.ownsMaterialLayout && s.materialLayout != nil {
		s.materialLayout.Release()
		s.materialLayout = nil
	}
}

func (s *scene) writeCamera() {
	u := camera.NewGPUCameraUniform(s.cam, s.projection)
	s.write(s.cam.BindGroupProvider(), u.Marshal())
}

func (s *scene) writeLight() {
	u := s.light.Uniform()
	s.write(s.light.BindGroupProvider(), u.Marshal())
}

func (s *scene) write(p bind_group_provider.BindGroupProvider, data []byte) {
	s.writeScratch = append(s.writeScratch[:0], bind_group_provider.BufferWrite{Provider: p, Binding: 0, Data: data})
	s.r.WriteBuffers(s.writeScratch)
}

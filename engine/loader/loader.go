package loader

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/fetch"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ/MTL loader backend.
	BackendTypeOBJ LoaderBackendType = iota
)

const (
	// DefaultDiffuseTexture is used for a material without a diffuse map.
	DefaultDiffuseTexture = "default_diffuse.qoi"
	// DefaultNormalTexture is used for a material without a normal map.
	DefaultNormalTexture = "default_normal.qoi"
)

// GPUUploader is the subset of the Renderer the Loader needs to create GPU resources.
type GPUUploader interface {
	// InitMeshBuffers creates and fills the vertex and index buffers of a provider.
	//
	// Parameters:
	//   - provider: the provider receiving the buffers
	//   - vertexData: the packed vertex bytes
	//   - indexData: the packed uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitTextureView creates a texture from staged pixels and stores it with its view at a binding.
	//
	// Parameters:
	//   - provider: the provider receiving the texture
	//   - binding: the binding slot of the view
	//   - data: the RGBA pixels, their size and color space
	//
	// Returns:
	//   - error: error if texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, data common.TextureStagingData) error

	// InitSampler creates a sampler and stores it at a binding.
	//
	// Parameters:
	//   - provider: the provider receiving the sampler
	//   - binding: the binding slot of the sampler
	//   - data: the sampler parameters
	//
	// Returns:
	//   - error: error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, data common.SamplerStagingData) error

	// InitBindGroup creates the provider's bind group, and its layout if the provider has none.
	//
	// Parameters:
	//   - provider: the provider holding the bound resources
	//   - descriptor: the layout descriptor the bind group follows
	//
	// Returns:
	//   - error: error if a bound resource is missing or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	uploader       GPUUploader
	fetcher        fetch.Fetcher
	materialLayout *wgpu.BindGroupLayout

	modelCache map[string]model.Model

	opts importOptions

	decodeWorkers int
	pool          worker.DynamicWorkerPool
	taskID        int

	backend loaderBackend
}

// Loader loads models through a Fetcher, uploads them through a GPUUploader, and caches the result by name.
type Loader interface {
	// LoadModel fetches, parses and uploads a model and its materials, blocking until done.
	// A cached model is returned as is.
	//
	// Parameters:
	//   - ctx: context bounding every retrieval
	//   - name: the asset-relative model name
	//
	// Returns:
	//   - model.Model: the GPU-ready model
	//   - error: *fetch.FetchError, *ParseError, *DegenerateGeometryError or *InvalidMaterialIndexError,
	//     or an upload error
	LoadModel(ctx context.Context, name string) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model

	// Release releases every cached model and stops the decode workers.
	Release()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the model format backend (BackendTypeOBJ)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the configured Loader
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]model.Model),
		opts: importOptions{
			defaultDiffuse: DefaultDiffuseTexture,
			defaultNormal:  DefaultNormalTexture,
			log:            logger.Named("loader"),
		},
		decodeWorkers: 4,
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeOBJ:
		l.backend = newOBJLoaderBackend(l.fetcher, &l.opts)
	}

	if l.decodeWorkers > 0 {
		l.pool = worker.NewDynamicWorkerPool(l.decodeWorkers, 64, time.Second)
	}
	return l
}

func (l *loader) LoadModel(ctx context.Context, name string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	imported, err := backend.Import(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	textures, err := l.loadTextures(ctx, imported.Materials)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	m, err := l.importedToModel(imported, textures)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	l.mu.Lock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.Unlock()
		m.Release()
		return cached, nil
	}
	l.modelCache[name] = m
	l.mu.Unlock()

	l.opts.log.Info("model loaded",
		zap.String("model", name),
		zap.Int("meshes", len(m.Meshes())),
		zap.Int("materials", len(m.Materials())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) Release() {
	l.mu.Lock()
	for k, m := range l.modelCache {
		m.Release()
		delete(l.modelCache, k)
	}
	l.mu.Unlock()

	if l.pool != nil {
		l.pool.Stop()
		l.pool = nil
	}
}

// resolveBackend selects the loader backend for a model name by its extension.
func (l *loader) resolveBackend(name string) (loaderBackend, error) {
	if l.backend == nil {
		return nil, fmt.Errorf("loader: no backend configured")
	}
	if l.fetcher == nil {
		return nil, fmt.Errorf("loader: no fetcher configured")
	}
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".obj":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %q", ext)
	}
}

// textureKey identifies one texture upload: the same image is decoded once per color space.
type textureKey struct {
	path   string
	linear bool
}

// decodedTexture is a fetched and decoded texture ready for upload.
type decodedTexture struct {
	source  *common.ImportedTexture
	staging common.TextureStagingData
}

// loadTextures fetches and decodes every texture the materials reference. Each distinct texture is one
// task on the decode worker pool; the call blocks until all of them finish or ctx is done.
//
// Parameters:
//   - ctx: context bounding the retrievals
//   - materials: the imported materials, whose texture fields are filled in
//
// Returns:
//   - map[textureKey]*decodedTexture: the decoded textures
//   - error: the first *fetch.FetchError encountered
func (l *loader) loadTextures(ctx context.Context, materials []common.ImportedMaterial) (map[textureKey]*decodedTexture, error) {
	var keys []textureKey
	seen := make(map[textureKey]bool)
	for _, m := range materials {
		for _, k := range []textureKey{{m.DiffuseTexturePath, false}, {m.NormalTexturePath, true}} {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	results := make([]*decodedTexture, len(keys))
	errs := make([]error, len(keys))
	var wg sync.WaitGroup
	for i, k := range keys {
		do := func() (any, error) {
			defer wg.Done()
			results[i], errs[i] = l.loadTexture(ctx, k)
			return nil, errs[i]
		}
		wg.Add(1)
		if l.pool == nil {
			do()
			continue
		}
		l.mu.Lock()
		id := l.taskID
		l.taskID++
		l.mu.Unlock()
		l.pool.SubmitTask(worker.Task{ID: id, Payload: k.path, Do: do})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return nil, &fetch.FetchError{Reason: "texture loading cancelled", Err: ctx.Err()}
	}

	out := make(map[textureKey]*decodedTexture, len(keys))
	for i, k := range keys {
		if errs[i] != nil {
			return nil, errs[i]
		}
		out[k] = results[i]
	}
	for i := range materials {
		materials[i].DiffuseTexture = out[textureKey{materials[i].DiffuseTexturePath, false}].source
		materials[i].NormalTexture = out[textureKey{materials[i].NormalTexturePath, true}].source
	}
	return out, nil
}

// loadTexture fetches and decodes one texture.
func (l *loader) loadTexture(ctx context.Context, k textureKey) (*decodedTexture, error) {
	data, err := l.fetcher.FetchBinary(ctx, k.path)
	if err != nil {
		return nil, err
	}
	tex := &common.ImportedTexture{
		Name: path.Base(k.path),
		Path: k.path,
		Data: data,
	}
	pixels, w, h, err := tex.Decode()
	if err != nil {
		return nil, &fetch.FetchError{Name: k.path, Reason: "decode texture", Err: err}
	}
	l.opts.log.Debug("texture decoded",
		zap.String("texture", k.path),
		zap.Uint32("width", w),
		zap.Uint32("height", h),
		zap.Bool("linear", k.linear),
	)
	return &decodedTexture{
		source: tex,
		staging: common.TextureStagingData{
			Pixels: pixels,
			Width:  w,
			Height: h,
			Linear: k.linear,
		},
	}, nil
}

// defaultSampler is the sampler every material texture uses: clamp to edge, linear magnification,
// nearest minification and mip selection.
func defaultSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// importedToModel uploads an imported model: one bind group per material, one vertex/index buffer pair
// per mesh. Resources created before a failure are released.
//
// Parameters:
//   - imported: the CPU-side meshes and materials
//   - textures: the decoded textures the materials reference
//
// Returns:
//   - model.Model: the engine-ready Model
//   - error: error if GPU resource creation fails
func (l *loader) importedToModel(imported *importedModel, textures map[textureKey]*decodedTexture) (model.Model, error) {
	materials := make([]material.Material, 0, len(imported.Materials))
	meshes := make([]model.Mesh, 0, len(imported.Meshes))
	release := func() {
		for _, ms := range meshes {
			ms.Provider().Release()
		}
		for _, mat := range materials {
			mat.Release()
		}
	}

	for i, imp := range imported.Materials {
		mat := material.NewMaterial(
			material.WithName(imp.Name),
			material.WithDiffuseTexture(imp.DiffuseTexture),
			material.WithNormalTexture(imp.NormalTexture),
		)
		if l.uploader != nil {
			diffuse := textures[textureKey{imp.DiffuseTexturePath, false}]
			normal := textures[textureKey{imp.NormalTexturePath, true}]
			provider, err := l.initMaterialGPU(fmt.Sprintf("%s_material_%d", imported.Name, i), diffuse.staging, normal.staging)
			if err != nil {
				release()
				return nil, fmt.Errorf("failed to init material %q: %w", imp.Name, err)
			}
			mat.SetBindGroupProvider(provider)
		}
		materials = append(materials, mat)
	}

	for i, im := range imported.Meshes {
		provider := bind_group_provider.NewBindGroupProvider(
			meshLabel(imported.Name, im.Name, i),
			bind_group_provider.WithIndexCount(len(im.Indices)),
		)
		if l.uploader != nil {
			err := l.uploader.InitMeshBuffers(provider, model.MarshalVertices(im.Vertices), model.MarshalIndices(im.Indices), len(im.Indices))
			if err != nil {
				provider.Release()
				release()
				return nil, fmt.Errorf("failed to init mesh %q: %w", im.Name, err)
			}
		}
		meshes = append(meshes, model.NewMesh(im.Name, provider, im.MaterialIndex))
	}

	return model.NewModel(
		model.WithName(imported.Name),
		model.WithMeshes(meshes),
		model.WithMaterials(materials),
	), nil
}

// initMaterialGPU creates the textures, samplers and bind group of one material.
func (l *loader) initMaterialGPU(label string, diffuse, normal common.TextureStagingData) (bind_group_provider.BindGroupProvider, error) {
	var options []bind_group_provider.BindGroupProviderOption
	if l.materialLayout != nil {
		options = append(options, bind_group_provider.WithSharedLayout(l.materialLayout))
	}
	provider := bind_group_provider.NewBindGroupProvider(label, options...)

	steps := []struct {
		what string
		run  func() error
	}{
		{"diffuse texture", func() error {
			return l.uploader.InitTextureView(provider, material.BindingDiffuseView, diffuse)
		}},
		{"diffuse sampler", func() error {
			return l.uploader.InitSampler(provider, material.BindingDiffuseSampler, defaultSampler())
		}},
		{"normal texture", func() error {
			return l.uploader.InitTextureView(provider, material.BindingNormalView, normal)
		}},
		{"normal sampler", func() error {
			return l.uploader.InitSampler(provider, material.BindingNormalSampler, defaultSampler())
		}},
		{"bind group", func() error {
			return l.uploader.InitBindGroup(provider, material.BindGroupLayoutDescriptor())
		}},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			provider.Release()
			return nil, fmt.Errorf("%s: %w", s.what, err)
		}
	}
	return provider, nil
}

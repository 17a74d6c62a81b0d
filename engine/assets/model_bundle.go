package assets

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"go.uber.org/zap"
)

// ModelLoader loads a model by name. The loader.Loader implements it.
type ModelLoader interface {
	// LoadModel loads a model, blocking until done.
	//
	// Parameters:
	//   - ctx: context bounding the load
	//   - name: the asset-relative model name
	//
	// Returns:
	//   - model.Model: the GPU-ready model
	//   - error: error if the load fails
	LoadModel(ctx context.Context, name string) (model.Model, error)
}

// InstanceUploader uploads a packed instance list as a vertex buffer. The Renderer implements it.
type InstanceUploader interface {
	// InitVertexBuffer creates a vertex buffer from raw bytes and stores it on the provider.
	//
	// Parameters:
	//   - provider: the provider receiving the buffer
	//   - data: the raw bytes
	//
	// Returns:
	//   - error: error if buffer creation fails
	InitVertexBuffer(provider bind_group_provider.BindGroupProvider, data []byte) error
}

// ModelBundle loads one model and its instance buffer on a worker pool.
type ModelBundle struct {
	mu sync.Mutex

	loader    ModelLoader
	uploader  InstanceUploader
	name      string
	instances []model.Instance
	timeout   time.Duration

	pool   worker.DynamicWorkerPool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	loaded    atomic.Bool
	model     model.Model
	instanceP bind_group_provider.BindGroupProvider
	err       error
	started   time.Time

	log *zap.Logger
}

var _ AssetBundle = &ModelBundle{}

// NewModelBundle creates a bundle that loads the named model through loader.
// Loading does not begin until StartLoading.
//
// Parameters:
//   - loader: the model loader
//   - name: the asset-relative model name
//   - options: variadic list of ModelBundleOption functions
//
// Returns:
//   - *ModelBundle: the bundle
func NewModelBundle(loader ModelLoader, name string, options ...ModelBundleOption) *ModelBundle {
	b := &ModelBundle{
		loader:    loader,
		name:      name,
		instances: []model.Instance{model.NewInstance()},
	}
	for _, opt := range options {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Named("assets")
	}
	if b.pool == nil {
		b.pool = worker.NewDynamicWorkerPool(1, 1, time.Second)
	}
	return b
}

// Construct cancels any load in progress and clears the loaded state.
func (b *ModelBundle) Construct() {
	b.mu.Lock()
	cancel := b.cancel
	b.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loaded.Store(false)
	b.model = nil
	b.instanceP = nil
	b.err = nil
	b.ctx, b.cancel = nil, nil
}

// StartLoading submits the load to the worker pool. Calling it again before Construct does nothing.
func (b *ModelBundle) StartLoading() {
	b.mu.Lock()
	if b.ctx != nil {
		b.mu.Unlock()
		return
	}
	parent := context.Background()
	if b.timeout > 0 {
		b.ctx, b.cancel = context.WithTimeout(parent, b.timeout)
	} else {
		b.ctx, b.cancel = context.WithCancel(parent)
	}
	ctx := b.ctx
	b.started = time.Now()
	b.mu.Unlock()

	b.wg.Add(1)
	b.pool.SubmitTask(worker.Task{
		ID:      0,
		Payload: b.name,
		Do: func() (any, error) {
			defer b.wg.Done()
			err := b.load(ctx)
			b.finish(err)
			return nil, err
		},
	})
}

func (b *ModelBundle) load(ctx context.Context) error {
	m, err := b.loader.LoadModel(ctx, b.name)
	if err != nil {
		return err
	}

	var provider bind_group_provider.BindGroupProvider
	if b.uploader != nil {
		provider = bind_group_provider.NewBindGroupProvider(b.name + "/instances")
		if err := b.uploader.InitVertexBuffer(provider, model.PackInstances(b.instances)); err != nil {
			return fmt.Errorf("upload instances of %s: %w", b.name, err)
		}
	}

	b.mu.Lock()
	b.model = m
	b.instanceP = provider
	b.mu.Unlock()
	return nil
}

func (b *ModelBundle) finish(err error) {
	b.mu.Lock()
	b.err = err
	elapsed := time.Since(b.started)
	b.mu.Unlock()

	if err != nil {
		b.log.Error("model load failed", zap.String("model", b.name), zap.Error(err))
		return
	}
	b.loaded.Store(true)
	b.log.Info("model loaded", zap.String("model", b.name), zap.Duration("elapsed", elapsed))
}

// FullyLoaded reports whether the model and its instance buffer are ready.
//
// Returns:
//   - bool: true once loading succeeded
func (b *ModelBundle) FullyLoaded() bool {
	return b.loaded.Load()
}

// Wait blocks until the load in progress, if any, has finished.
func (b *ModelBundle) Wait() {
	b.wg.Wait()
}

// Err returns the error of a failed load.
//
// Returns:
//   - error: the load error, or nil while loading or after success
func (b *ModelBundle) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Model returns the loaded model.
//
// Returns:
//   - model.Model: the model, or nil before loading completes
func (b *ModelBundle) Model() model.Model {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.model
}

// Instances returns the provider holding the instance vertex buffer.
//
// Returns:
//   - bind_group_provider.BindGroupProvider: the provider, or nil before loading completes or without an uploader
func (b *ModelBundle) Instances() bind_group_provider.BindGroupProvider {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.instanceP
}

// InstanceCount returns the number of instances the bundle uploads.
//
// Returns:
//   - uint32: the instance count
func (b *ModelBundle) InstanceCount() uint32 {
	return uint32(len(b.instances))
}

// Release cancels any load in progress, stops the worker pool, and releases the instance buffer.
// The model belongs to the loader's cache and is released with it.
func (b *ModelBundle) Release() {
	b.mu.Lock()
	cancel := b.cancel
	b.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	b.wg.Wait()
	b.pool.Stop()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.instanceP != nil {
		b.instanceP.Release()
		b.instanceP = nil
	}
}

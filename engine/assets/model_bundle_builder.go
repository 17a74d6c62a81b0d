package assets

import (
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"go.uber.org/zap"
)

// ModelBundleOption is a functional option for configuring a ModelBundle via NewModelBundle.
type ModelBundleOption func(*ModelBundle)

// WithInstanceUploader sets the uploader that creates the instance vertex buffer after the model loads.
//
// Parameters:
//   - u: the uploader, normally the Renderer
//
// Returns:
//   - ModelBundleOption: a function that applies the uploader
func WithInstanceUploader(u InstanceUploader) ModelBundleOption {
	return func(b *ModelBundle) {
		b.uploader = u
	}
}

// WithInstances sets the instances drawn with the model. The default is one identity instance.
//
// Parameters:
//   - instances: the instances
//
// Returns:
//   - ModelBundleOption: a function that applies the instances
func WithInstances(instances []model.Instance) ModelBundleOption {
	return func(b *ModelBundle) {
		b.instances = instances
	}
}

// WithWorkerPool sets the pool the load runs on. The bundle stops it on Release.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - ModelBundleOption: a function that applies the pool
func WithWorkerPool(pool worker.DynamicWorkerPool) ModelBundleOption {
	return func(b *ModelBundle) {
		b.pool = pool
	}
}

// WithTimeout bounds how long a load may take. Zero means no limit.
//
// Parameters:
//   - d: the timeout
//
// Returns:
//   - ModelBundleOption: a function that applies the timeout
func WithTimeout(d time.Duration) ModelBundleOption {
	return func(b *ModelBundle) {
		b.timeout = d
	}
}

// WithBundleLogger sets the logger of the ModelBundle.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - ModelBundleOption: a function that applies the logger
func WithBundleLogger(log *zap.Logger) ModelBundleOption {
	return func(b *ModelBundle) {
		b.log = log
	}
}

package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/fetch"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithUploader is an option builder that sets the GPU uploader used by the Loader.
// Without one the Loader imports models without creating GPU resources.
//
// Parameters:
//   - u: the uploader, normally the Renderer
//
// Returns:
//   - LoaderBuilderOption: a function that applies the uploader option to a loader
func WithUploader(u GPUUploader) LoaderBuilderOption {
	return func(l *loader) {
		l.uploader = u
	}
}

// WithFetcher is an option builder that sets the Fetcher models, material libraries and textures are read through.
//
// Parameters:
//   - f: the fetcher
//
// Returns:
//   - LoaderBuilderOption: a function that applies the fetcher option to a loader
func WithFetcher(f fetch.Fetcher) LoaderBuilderOption {
	return func(l *loader) {
		l.fetcher = f
	}
}

// WithMaterialLayout is an option builder that shares one bind group layout between every material
// bind group and the render pipeline.
//
// Parameters:
//   - bgl: the material bind group layout
//
// Returns:
//   - LoaderBuilderOption: a function that applies the layout option to a loader
func WithMaterialLayout(bgl *wgpu.BindGroupLayout) LoaderBuilderOption {
	return func(l *loader) {
		l.materialLayout = bgl
	}
}

// WithDefaultTextures is an option builder that overrides the texture names used for missing maps.
// Empty names keep the defaults.
//
// Parameters:
//   - diffuse: the fallback diffuse texture name
//   - normal: the fallback normal texture name
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture names to a loader
func WithDefaultTextures(diffuse, normal string) LoaderBuilderOption {
	return func(l *loader) {
		if diffuse != "" {
			l.opts.defaultDiffuse = diffuse
		}
		if normal != "" {
			l.opts.defaultNormal = normal
		}
	}
}

// WithSkipDegenerateUVs is an option builder that makes triangles with a zero-area UV mapping drop out
// of tangent averaging instead of failing the load.
//
// Parameters:
//   - skip: whether degenerate triangles are skipped
//
// Returns:
//   - LoaderBuilderOption: a function that applies the policy to a loader
func WithSkipDegenerateUVs(skip bool) LoaderBuilderOption {
	return func(l *loader) {
		l.opts.skipDegenerateUVs = skip
	}
}

// WithDecodeWorkers is an option builder that sets how many textures are fetched and decoded in parallel.
// Zero decodes on the calling goroutine.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithDecodeWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n < 0 {
			n = 0
		}
		l.decodeWorkers = n
	}
}

// WithLogger is an option builder that sets the logger of the Loader.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger to a loader
func WithLogger(log *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if log != nil {
			l.opts.log = log
		}
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

package scene

import (
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene via NewScene.
type SceneBuilderOption func(*scene)

// WithModel sets the asset-relative name of the model to show. The default is "WIP.obj".
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithModel(name string) SceneBuilderOption {
	return func(s *scene) {
		if name != "" {
			s.modelName = name
		}
	}
}

// WithInstances sets the instances the model is drawn with. The default is one identity instance.
//
// Parameters:
//   - instances: the instances
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInstances(instances ...model.Instance) SceneBuilderOption {
	return func(s *scene) {
		if len(instances) > 0 {
			s.instances = instances
		}
	}
}

// WithMaterialLayout shares the material bind group layout the loader creates material bind groups with.
// Without it the scene creates its own, compatible layout.
//
// Parameters:
//   - bgl: the material layout
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMaterialLayout(bgl *wgpu.BindGroupLayout) SceneBuilderOption {
	return func(s *scene) {
		s.materialLayout = bgl
	}
}

// WithCamera replaces the default camera.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithLight replaces the default light.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.light = l
	}
}

// WithClearColor sets the color the frame is cleared to.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClearColor(c wgpu.Color) SceneBuilderOption {
	return func(s *scene) {
		s.clear = c
	}
}

// WithWorkerPool sets the pool the model loads on. The scene stops it on Release.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorkerPool(pool worker.DynamicWorkerPool) SceneBuilderOption {
	return func(s *scene) {
		s.pool = pool
	}
}

// WithLoadTimeout bounds how long the model may take to load. Zero means no limit.
//
// Parameters:
//   - d: the timeout
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLoadTimeout(d time.Duration) SceneBuilderOption {
	return func(s *scene) {
		s.loadTimeout = d
	}
}

// WithLogger sets the logger of the scene.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(log *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		s.log = log
	}
}

package surface

import "go.uber.org/zap"

// Option is a functional option used to configure a Context during construction.
type Option func(*surfaceContext)

// WithPresentMode sets the initial present mode. The default is PresentModeVSync.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - Option: a function that applies the present mode to a surface context
func WithPresentMode(mode PresentMode) Option {
	return func(s *surfaceContext) {
		s.presentMode = mode
	}
}

// WithForceFallbackAdapter forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter
//
// Returns:
//   - Option: a function that applies the adapter option to a surface context
func WithForceFallbackAdapter(force bool) Option {
	return func(s *surfaceContext) {
		s.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger of the surface context.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - Option: a function that applies the logger to a surface context
func WithLogger(log *zap.Logger) Option {
	return func(s *surfaceContext) {
		s.log = log
	}
}

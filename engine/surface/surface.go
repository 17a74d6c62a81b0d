package surface

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// Window is what the surface context needs from the platform window.
type Window interface {
	// SurfaceDescriptor returns the platform-specific descriptor for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// PhysicalSize returns the framebuffer size in physical pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	PhysicalSize() (int, int)

	// DevicePixelRatio returns the ratio of physical pixels to logical pixels.
	//
	// Returns:
	//   - float64: the device pixel ratio, 1 on a standard display
	DevicePixelRatio() float64
}

// surfaceContext is the implementation of the Context interface.
type surfaceContext struct {
	mu sync.Mutex

	backend surfaceBackend
	window  Window
	log     *zap.Logger

	config wgpu.SurfaceConfiguration
	maxDim uint32
	lastW  int
	lastH  int

	forceFallbackAdapter bool
	presentMode          PresentMode
}

// Context owns the GPU device and queue and the presentable surface configuration.
// The configured width and height always lie in [1, MaxTextureDimension2D].
type Context interface {
	// Device returns the logical GPU device.
	//
	// Returns:
	//   - *wgpu.Device: the device
	Device() *wgpu.Device

	// Queue returns the device's command queue.
	//
	// Returns:
	//   - *wgpu.Queue: the queue
	Queue() *wgpu.Queue

	// Surface returns the presentable surface.
	//
	// Returns:
	//   - *wgpu.Surface: the surface
	Surface() *wgpu.Surface

	// Format returns the configured surface color format.
	//
	// Returns:
	//   - wgpu.TextureFormat: the color format
	Format() wgpu.TextureFormat

	// Config returns a copy of the current surface configuration.
	//
	// Returns:
	//   - wgpu.SurfaceConfiguration: the configuration
	Config() wgpu.SurfaceConfiguration

	// Size returns the configured surface size.
	//
	// Returns:
	//   - uint32: width in pixels
	//   - uint32: height in pixels
	Size() (uint32, uint32)

	// MaxTextureDimension returns the device's maximum 2D texture dimension.
	//
	// Returns:
	//   - uint32: the limit
	MaxTextureDimension() uint32

	// Resize reconciles the surface configuration to a new physical window size.
	// A zero dimension leaves everything untouched. Otherwise each dimension is divided by the window's
	// device pixel ratio, clamped to [1, MaxTextureDimension], stored, and the surface reconfigured.
	// Callers recreate size-dependent resources after a successful resize.
	//
	// Parameters:
	//   - width: the physical width in pixels
	//   - height: the physical height in pixels
	//
	// Returns:
	//   - bool: true if the surface was reconfigured
	Resize(width, height int) bool

	// PhysicalSize returns the last accepted physical window size, used to recover a lost or outdated
	// surface by resizing to it again.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	PhysicalSize() (int, int)

	// SetPresentMode changes the present mode and reconfigures the surface at its current size.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release releases the device, surface and adapter.
	Release()
}

var _ Context = &surfaceContext{}

// New negotiates an adapter, device and queue compatible with the window's surface, picks a surface
// format (an sRGB format if the surface supports one, else the first supported), and configures the
// surface at the window's physical size with each dimension floored to 1.
//
// Parameters:
//   - window: the platform window
//   - options: variadic list of Option functions
//
// Returns:
//   - Context: the surface context
//   - error: error if no adapter or device could be obtained
func New(window Window, options ...Option) (Context, error) {
	s := &surfaceContext{}
	for _, opt := range options {
		opt(s)
	}
	backend, err := newWGPUSurfaceBackend(window.SurfaceDescriptor(), s.forceFallbackAdapter)
	if err != nil {
		return nil, err
	}
	return newContext(backend, window, options...), nil
}

// newContext builds a Context on an already negotiated backend.
func newContext(backend surfaceBackend, window Window, options ...Option) *surfaceContext {
	s := &surfaceContext{
		backend: backend,
		window:  window,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("surface")
	}

	caps := backend.Capabilities()
	s.maxDim = backend.MaxTextureDimension2D()
	if s.maxDim == 0 {
		s.maxDim = 1
	}

	alpha := wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}

	w, h := window.PhysicalSize()
	s.lastW, s.lastH = w, h
	s.config = wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      pickFormat(caps.Formats),
		Width:       common.Clamp(uint32(max(w, 1)), 1, s.maxDim),
		Height:      common.Clamp(uint32(max(h, 1)), 1, s.maxDim),
		PresentMode: presentModeToWGPU(s.presentMode),
		AlphaMode:   alpha,
	}
	backend.Configure(&s.config)

	s.log.Info("surface configured",
		zap.Any("format", s.config.Format),
		zap.Uint32("width", s.config.Width),
		zap.Uint32("height", s.config.Height),
		zap.Uint32("max_dimension", s.maxDim),
	)
	return s
}

// pickFormat prefers an sRGB color format, falling back to the first supported one.
func pickFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if isSRGB(f) {
			return f
		}
	}
	if len(formats) > 0 {
		return formats[0]
	}
	return wgpu.TextureFormatBGRA8UnormSrgb
}

func isSRGB(f wgpu.TextureFormat) bool {
	switch f {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

func presentModeToWGPU(mode PresentMode) wgpu.PresentMode {
	switch mode {
	case PresentModeUncapped:
		return wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		return wgpu.PresentModeFifo
	}
}

func (s *surfaceContext) Device() *wgpu.Device {
	return s.backend.Device()
}

func (s *surfaceContext) Queue() *wgpu.Queue {
	return s.backend.Queue()
}

func (s *surfaceContext) Surface() *wgpu.Surface {
	return s.backend.Surface()
}

func (s *surfaceContext) Format() wgpu.TextureFormat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Format
}

func (s *surfaceContext) Config() wgpu.SurfaceConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

func (s *surfaceContext) Size() (uint32, uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Width, s.config.Height
}

func (s *surfaceContext) MaxTextureDimension() uint32 {
	return s.maxDim
}

func (s *surfaceContext) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	dpr := s.window.DevicePixelRatio()
	if dpr <= 0 {
		dpr = 1
	}
	logicalW := logicalDimension(width, dpr)
	logicalH := logicalDimension(height, dpr)

	s.mu.Lock()
	s.lastW, s.lastH = width, height
	s.config.Width = common.Clamp(logicalW, 1, s.maxDim)
	s.config.Height = common.Clamp(logicalH, 1, s.maxDim)
	cfg := s.config
	s.mu.Unlock()

	s.backend.Configure(&cfg)
	s.log.Debug("surface resized",
		zap.Int("physical_width", width),
		zap.Int("physical_height", height),
		zap.Float64("device_pixel_ratio", dpr),
		zap.Uint32("width", cfg.Width),
		zap.Uint32("height", cfg.Height),
	)
	return true
}

func (s *surfaceContext) PhysicalSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastW, s.lastH
}

// logicalDimension divides a physical dimension by the pixel ratio and rounds to the nearest pixel,
// saturating at the uint32 range.
func logicalDimension(physical int, dpr float64) uint32 {
	v := math.Round(float64(physical) / dpr)
	if v >= float64(^uint32(0)) {
		return ^uint32(0)
	}
	if v < 0 {
		return 0
	}
	return uint32(v)
}

func (s *surfaceContext) SetPresentMode(mode PresentMode) {
	s.mu.Lock()
	s.config.PresentMode = presentModeToWGPU(mode)
	cfg := s.config
	s.mu.Unlock()
	s.backend.Configure(&cfg)
}

func (s *surfaceContext) Release() {
	s.backend.Release()
}

package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/logger"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"go.uber.org/zap"
)

// Runnable is a page the engine drives: it is updated and rendered once per frame and resized with the window.
type Runnable interface {
	// Update advances the page by the time elapsed since the previous frame.
	//
	// Parameters:
	//   - dt: the elapsed time
	Update(dt time.Duration)

	// Render draws one frame.
	//
	// Returns:
	//   - error: a *renderer.SurfaceError when no frame could be acquired, or any other render error
	Render() error

	// Resize reconciles the page to a new physical window size.
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
}

// ErrOutOfMemory is returned by Run when the GPU ran out of memory.
var ErrOutOfMemory = errors.New("engine: gpu out of memory")

// engine implements the Engine interface.
// Drives a Runnable from the window's message loop on the window's OS thread.
type engine struct {
	mu sync.Mutex

	window   window.Window
	runnable Runnable
	log      *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
	now              func() time.Time

	err      error
	quitOnce sync.Once
}

// Engine is the main entry point for the viewer.
// It orchestrates the frame loop and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run drives the Runnable until the window closes. Each message loop iteration updates the Runnable
	// with the elapsed time and renders it. A lost or outdated surface is resized to the last known size
	// and the frame skipped; running out of GPU memory stops the loop; any other render error is logged
	// and the frame skipped. A panic inside a frame is logged and stops the loop.
	//
	// Returns:
	//   - error: ErrOutOfMemory or the recovered panic, nil after a normal close
	Run() error

	// Quit asks the loop to stop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine driving runnable inside w.
//
// Parameters:
//   - w: the window whose message loop runs the frames
//   - runnable: the page to drive
//   - options: functional options for engine configuration (profiling, frame limit, logger)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w window.Window, runnable Runnable, options ...EngineBuilderOption) Engine {
	e := &engine{
		window:   w,
		runnable: runnable,
		now:      time.Now,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Named("engine")
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(time.Second, e.log.Named("profiler"))
	}

	w.SetResizeCallback(func(width, height int) {
		e.runnable.Resize(width, height)
	})
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() error {
	e.lastFrame = e.now()
	e.window.SetUpdateCallback(e.frame)
	e.log.Info("engine started")
	e.window.ProcessMessages()
	e.log.Info("engine stopped")

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.window.RequestClose()
	})
}

// frame runs one update and render. Panics are recovered so the window can be closed cleanly.
func (e *engine) frame() {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("frame panicked", zap.Any("panic", r), zap.Stack("stack"))
			e.fail(fmt.Errorf("engine: frame panicked: %v", r))
		}
	}()

	start := e.now()
	dt := start.Sub(e.lastFrame)
	e.lastFrame = start

	e.runnable.Update(dt)
	e.handleRenderError(e.runnable.Render())

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// handleRenderError applies the render error policy.
func (e *engine) handleRenderError(err error) {
	if err == nil {
		return
	}
	var se *renderer.SurfaceError
	if !errors.As(err, &se) {
		e.log.Error("render failed", zap.Error(err))
		return
	}
	switch {
	case se.Recoverable():
		w, h := e.runnable.Size()
		e.log.Debug("reconfiguring surface", zap.Stringer("kind", se.Kind), zap.Int("width", w), zap.Int("height", h))
		e.runnable.Resize(w, h)
	case se.Kind == renderer.SurfaceErrorOutOfMemory:
		e.log.Error("gpu out of memory, stopping", zap.Error(err))
		e.fail(fmt.Errorf("%w: %w", ErrOutOfMemory, err))
	default:
		e.log.Warn("frame skipped", zap.Error(err))
	}
}

func (e *engine) fail(err error) {
	e.mu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.mu.Unlock()
	e.Quit()
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/surface"
	"github.com/stretchr/testify/assert"
)

var _ surface.Window = &engineWindow{}

func TestFramebufferResizedUpdatesSizeAndNotifies(t *testing.T) {
	w := &engineWindow{width: 10, height: 10}
	var got [2]int
	w.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })

	w.framebufferResized(1920, 1080)

	width, height := w.PhysicalSize()
	assert.Equal(t, 1920, width)
	assert.Equal(t, 1080, height)
	assert.Equal(t, [2]int{1920, 1080}, got)
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{}
	assert.Equal(t, 1.0, w.DevicePixelRatio())
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	w.RequestClose()

	calls := 0
	w.SetUpdateCallback(func() { calls++ })
	w.ProcessMessages()
	assert.Zero(t, calls)
}

func TestBuilderIgnoresNonPositiveSizes(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720}
	for _, opt := range []WindowBuilderOption{WithTitle("viewer"), WithWidth(0), WithHeight(-4)} {
		opt(w)
	}
	assert.Equal(t, "viewer", w.title)
	assert.Equal(t, 1280, w.width)
	assert.Equal(t, 720, w.height)

	WithWidth(800)(w)
	assert.Equal(t, 800, w.width)
}

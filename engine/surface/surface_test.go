package surface

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWindow struct {
	width, height int
	dpr           float64
}

func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) PhysicalSize() (int, int)                   { return w.width, w.height }
func (w *fakeWindow) DevicePixelRatio() float64                  { return w.dpr }

type fakeBackend struct {
	caps       wgpu.SurfaceCapabilities
	maxDim     uint32
	configured []wgpu.SurfaceConfiguration
	released   bool
}

func (b *fakeBackend) Device() *wgpu.Device                     { return nil }
func (b *fakeBackend) Queue() *wgpu.Queue                       { return nil }
func (b *fakeBackend) Surface() *wgpu.Surface                   { return nil }
func (b *fakeBackend) Capabilities() wgpu.SurfaceCapabilities   { return b.caps }
func (b *fakeBackend) MaxTextureDimension2D() uint32            { return b.maxDim }
func (b *fakeBackend) Configure(cfg *wgpu.SurfaceConfiguration) { b.configured = append(b.configured, *cfg) }
func (b *fakeBackend) Release()                                 { b.released = true }

func newFake(w, h int, dpr float64) (*fakeBackend, *fakeWindow) {
	b := &fakeBackend{
		caps: wgpu.SurfaceCapabilities{
			Formats:    []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb},
			AlphaModes: []wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque},
		},
		maxDim: 2048,
	}
	return b, &fakeWindow{width: w, height: h, dpr: dpr}
}

func TestNewPrefersSRGBAndFloorsSize(t *testing.T) {
	b, w := newFake(0, 600, 1)
	s := newContext(b, w, WithLogger(zap.NewNop()))

	require.Len(t, b.configured, 1)
	cfg := b.configured[0]
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, cfg.Format)
	assert.Equal(t, wgpu.CompositeAlphaModeOpaque, cfg.AlphaMode)
	assert.Equal(t, wgpu.PresentModeFifo, cfg.PresentMode)
	assert.Equal(t, uint32(1), cfg.Width)
	assert.Equal(t, uint32(600), cfg.Height)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, s.Format())
}

func TestPickFormatFallsBackToFirst(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, pickFormat([]wgpu.TextureFormat{wgpu.TextureFormatRGBA16Float, wgpu.TextureFormatBGRA8Unorm}))
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, pickFormat([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatRGBA8UnormSrgb}))
}

func TestResizeWithZeroDimensionIsNoOp(t *testing.T) {
	b, w := newFake(800, 600, 1)
	s := newContext(b, w, WithLogger(zap.NewNop()))
	before := s.Config()

	assert.False(t, s.Resize(0, 300))
	assert.False(t, s.Resize(300, 0))
	assert.False(t, s.Resize(0, 0))

	assert.Len(t, b.configured, 1)
	assert.Equal(t, before, s.Config())
}

func TestResizeClampsToMaxDimension(t *testing.T) {
	b, w := newFake(800, 600, 1)
	s := newContext(b, w, WithLogger(zap.NewNop()))

	require.True(t, s.Resize(10000, 1500))
	width, height := s.Size()
	assert.Equal(t, uint32(2048), width)
	assert.Equal(t, uint32(1500), height)
	assert.Equal(t, uint32(2048), b.configured[len(b.configured)-1].Width)
}

func TestResizeDividesByDevicePixelRatio(t *testing.T) {
	b, w := newFake(800, 600, 2)
	s := newContext(b, w, WithLogger(zap.NewNop()))

	require.True(t, s.Resize(1600, 1201))
	width, height := s.Size()
	assert.Equal(t, uint32(800), width)
	assert.Equal(t, uint32(601), height)

	require.True(t, s.Resize(1001, 1001))
	width, height = s.Size()
	assert.Equal(t, uint32(501), width)
	assert.Equal(t, uint32(501), height)

	w.dpr = 1.5
	require.True(t, s.Resize(1000, 1000))
	width, height = s.Size()
	assert.Equal(t, uint32(667), width)
	assert.Equal(t, uint32(667), height)

	// A ratio large enough to drive a side below one pixel still leaves a 1x1 surface.
	w.dpr = 4096
	require.True(t, s.Resize(100, 100))
	width, height = s.Size()
	assert.Equal(t, uint32(1), width)
	assert.Equal(t, uint32(1), height)
}

func TestPhysicalSizeKeepsLastAcceptedSize(t *testing.T) {
	b, w := newFake(800, 600, 1)
	s := newContext(b, w, WithLogger(zap.NewNop()))

	width, height := s.PhysicalSize()
	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)

	require.True(t, s.Resize(1024, 768))
	s.Resize(0, 10)
	require.True(t, s.Resize(s.PhysicalSize()))

	width, height = s.PhysicalSize()
	assert.Equal(t, 1024, width)
	assert.Equal(t, 768, height)
	assert.Len(t, b.configured, 3)
}

func TestSetPresentModeReconfigures(t *testing.T) {
	b, w := newFake(800, 600, 1)
	s := newContext(b, w, WithLogger(zap.NewNop()), WithPresentMode(PresentModeUncapped))
	assert.Equal(t, wgpu.PresentModeImmediate, b.configured[0].PresentMode)

	s.SetPresentMode(PresentModeVSync)
	require.Len(t, b.configured, 2)
	assert.Equal(t, wgpu.PresentModeFifo, b.configured[1].PresentMode)
	assert.Equal(t, uint32(800), b.configured[1].Width)

	s.Release()
	assert.True(t, b.released)
}

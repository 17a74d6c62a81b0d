package surface

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuSurfaceBackend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface
}

var _ surfaceBackend = &wgpuSurfaceBackend{}

// newWGPUSurfaceBackend creates the instance and surface, then requests an adapter compatible with the
// surface and a device with the default limits. The calling goroutine stays locked to its OS thread,
// which must be the window's thread.
func newWGPUSurfaceBackend(descriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuSurfaceBackend, error) {
	if descriptor == nil {
		return nil, fmt.Errorf("window has no surface descriptor")
	}
	runtime.LockOSThread()

	b := &wgpuSurfaceBackend{
		instance: wgpu.CreateInstance(nil),
	}
	b.surface = b.instance.CreateSurface(descriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()
	return b, nil
}

func (b *wgpuSurfaceBackend) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuSurfaceBackend) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuSurfaceBackend) Surface() *wgpu.Surface {
	return b.surface
}

func (b *wgpuSurfaceBackend) Capabilities() wgpu.SurfaceCapabilities {
	return b.surface.GetCapabilities(b.adapter)
}

func (b *wgpuSurfaceBackend) MaxTextureDimension2D() uint32 {
	return b.device.GetLimits().Limits.MaxTextureDimension2D
}

func (b *wgpuSurfaceBackend) Configure(config *wgpu.SurfaceConfiguration) {
	b.surface.Configure(b.adapter, b.device, config)
}

func (b *wgpuSurfaceBackend) Release() {
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

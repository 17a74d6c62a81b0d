package surface

import "github.com/cogentcore/webgpu/wgpu"

// surfaceBackend is the GPU side of a surface context: the negotiated adapter, device and queue, and the
// surface they present to.
type surfaceBackend interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Surface() *wgpu.Surface

	// Capabilities reports the formats and alpha modes the surface supports on the adapter.
	//
	// Returns:
	//   - wgpu.SurfaceCapabilities: the surface capabilities
	Capabilities() wgpu.SurfaceCapabilities

	// MaxTextureDimension2D reports the device's 2D texture size limit.
	//
	// Returns:
	//   - uint32: the limit
	MaxTextureDimension2D() uint32

	// Configure applies a surface configuration.
	//
	// Parameters:
	//   - config: the configuration to apply
	Configure(config *wgpu.SurfaceConfiguration)

	// Release releases every GPU object the backend owns.
	Release()
}

package camera

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	yaw      float32
	pitch    float32

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera is a first-person camera placed at a position and oriented by yaw and pitch.
// Yaw is measured in the XZ plane from +X toward +Z, pitch from the XZ plane toward +Y. Angles are in radians.
type Camera interface {
	// Position returns the world-space position of the camera.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Yaw returns the horizontal rotation in radians.
	//
	// Returns:
	//   - float32: the yaw
	Yaw() float32

	// Pitch returns the vertical rotation in radians.
	//
	// Returns:
	//   - float32: the pitch
	Pitch() float32

	// Forward returns the unit view direction derived from yaw and pitch.
	//
	// Returns:
	//   - mgl32.Vec3: the view direction
	Forward() mgl32.Vec3

	// ViewMatrix returns the right-handed view matrix looking along Forward with +Y up.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - position: the world-space position
	SetPosition(position mgl32.Vec3)

	// SetYawPitch orients the camera.
	//
	// Parameters:
	//   - yaw: the horizontal rotation in radians
	//   - pitch: the vertical rotation in radians
	SetYawPitch(yaw, pitch float32)

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at (0, 1, 2.5) looking down -Z and 20 degrees below the horizon.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 1, 2.5},
		yaw:      mgl32.DegToRad(-90),
		pitch:    mgl32.DegToRad(-20),
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return forward(c.yaw, c.pitch)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.LookAtV(c.position, c.position.Add(forward(c.yaw, c.pitch)), mgl32.Vec3{0, 1, 0})
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *cameraImpl) SetYawPitch(yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw, c.pitch = yaw, pitch
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func forward(yaw, pitch float32) mgl32.Vec3 {
	sinPitch, cosPitch := math.Sincos(float64(pitch))
	sinYaw, cosYaw := math.Sincos(float64(yaw))
	return mgl32.Vec3{
		float32(cosPitch * cosYaw),
		float32(sinPitch),
		float32(cosPitch * sinYaw),
	}.Normalize()
}

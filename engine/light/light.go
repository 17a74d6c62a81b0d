package light

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// lightCount is an atomic counter used to generate unique bind group provider names for each light.
var lightCount atomic.Uint64

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu sync.Mutex

	position mgl32.Vec3
	color    mgl32.Vec3

	// orbit is the rotation applied per second of Update.
	orbitAxis mgl32.Vec3
	orbitRate float32

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Light is a point light that orbits the origin.
//
// Each Update rotates the light's position about its orbit axis by the orbit rate scaled by the
// elapsed time. The light is uploaded as a GPULightUniform.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// SetPosition moves the light.
	//
	// Parameters:
	//   - position: the world-space position
	SetPosition(position mgl32.Vec3)

	// Update advances the orbit by dt.
	//
	// Parameters:
	//   - dt: the elapsed time since the last update
	Update(dt time.Duration)

	// Uniform returns the GPU representation of the light.
	//
	// Returns:
	//   - GPULightUniform: the uniform
	Uniform() GPULightUniform

	// BindGroupProvider returns the light's bind group provider for GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider
}

var _ Light = &lightImpl{}

// NewLight creates a white light at (-5, 0, -5) orbiting the X axis at 60 degrees per second.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		position:  mgl32.Vec3{-5, 0, -5},
		color:     mgl32.Vec3{1, 1, 1},
		orbitAxis: mgl32.Vec3{1, 0, 0},
		orbitRate: mgl32.DegToRad(60),
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"light_" + strconv.FormatUint(lightCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(l)
	}
	lightCount.Add(1)
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Color() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = position
}

func (l *lightImpl) Update(dt time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	angle := l.orbitRate * float32(dt.Seconds())
	if angle == 0 {
		return
	}
	l.position = mgl32.QuatRotate(angle, l.orbitAxis).Rotate(l.position)
}

func (l *lightImpl) Uniform() GPULightUniform {
	l.mu.Lock()
	defer l.mu.Unlock()
	return GPULightUniform{Position: l.position, Color: l.color}
}

func (l *lightImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return l.bindGroupProvider
}

package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

type projectionImpl struct {
	mu sync.Mutex

	aspect float32
	fovy   float32
	near   float32
	far    float32
}

// Projection is a perspective projection whose aspect ratio follows the surface size.
type Projection interface {
	// Resize sets the aspect ratio from a surface size. A zero height is ignored.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	Resize(width, height uint32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Fovy returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: the field of view
	Fovy() float32

	// Matrix returns the projection matrix mapping depth to the WebGPU [0, 1] range.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	Matrix() mgl32.Mat4
}

var _ Projection = &projectionImpl{}

// NewProjection creates a perspective projection for a surface size with a 45 degree vertical field of
// view and clip planes at 0.1 and 100.
//
// Parameters:
//   - width: the surface width in pixels
//   - height: the surface height in pixels
//   - options: functional options to configure the projection
//
// Returns:
//   - Projection: the projection
func NewProjection(width, height uint32, options ...ProjectionBuilderOption) Projection {
	p := &projectionImpl{
		aspect: 1,
		fovy:   mgl32.DegToRad(45),
		near:   0.1,
		far:    100,
	}
	for _, option := range options {
		option(p)
	}
	p.Resize(width, height)
	return p
}

func (p *projectionImpl) Resize(width, height uint32) {
	if height == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aspect = float32(width) / float32(height)
}

func (p *projectionImpl) Aspect() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.aspect
}

func (p *projectionImpl) Fovy() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fovy
}

func (p *projectionImpl) Matrix() mgl32.Mat4 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return common.OpenGLToWGPU.Mul4(mgl32.Perspective(p.fovy, p.aspect, p.near, p.far))
}

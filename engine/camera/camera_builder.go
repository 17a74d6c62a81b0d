package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option for configuring a Camera via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's world-space position.
//
// Parameters:
//   - position: the position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithYawPitch sets the camera's orientation.
//
// Parameters:
//   - yaw: the horizontal rotation in radians
//   - pitch: the vertical rotation in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's orientation
func WithYawPitch(yaw, pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw, c.pitch = yaw, pitch
	}
}

// ProjectionBuilderOption is a functional option for configuring a Projection via NewProjection.
type ProjectionBuilderOption func(*projectionImpl)

// WithFovy sets the vertical field of view in radians.
//
// Parameters:
//   - fovy: the field of view
//
// Returns:
//   - ProjectionBuilderOption: a function that sets the field of view
func WithFovy(fovy float32) ProjectionBuilderOption {
	return func(p *projectionImpl) {
		p.fovy = fovy
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - ProjectionBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) ProjectionBuilderOption {
	return func(p *projectionImpl) {
		p.near, p.far = near, far
	}
}

package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a functional option for configuring a Light via NewLight.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the light's initial world-space position.
//
// Parameters:
//   - position: the position
//
// Returns:
//   - LightBuilderOption: a function that sets the position
func WithPosition(position mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithColor sets the RGB color of the light.
//
// Parameters:
//   - color: the color
//
// Returns:
//   - LightBuilderOption: a function that sets the color
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithOrbit sets the axis the light rotates about and its angular speed in radians per second.
// A zero rate keeps the light still.
//
// Parameters:
//   - axis: the rotation axis, normalized on use
//   - rate: radians per second
//
// Returns:
//   - LightBuilderOption: a function that sets the orbit
func WithOrbit(axis mgl32.Vec3, rate float32) LightBuilderOption {
	return func(l *lightImpl) {
		if axis.Len() == 0 {
			axis = mgl32.Vec3{1, 0, 0}
		}
		l.orbitAxis = axis.Normalize()
		l.orbitRate = rate
	}
}

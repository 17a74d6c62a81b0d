package model

import "github.com/go-gl/mathgl/mgl32"

// Instance is one placement of a model: a position and an orientation.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewInstance returns an Instance at the origin with the identity rotation.
func NewInstance() Instance {
	return Instance{Rotation: mgl32.QuatIdent()}
}

// ToRaw packs the instance into its GPU form.
// The model matrix is translation(position) * rotation(rotation); the normal matrix is the rotation alone.
// Quaternions are not normalized or validated.
//
// Returns:
//   - InstanceRaw: the packed model and normal matrices
func (i Instance) ToRaw() InstanceRaw {
	rot := i.Rotation.Mat4()
	m := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z()).Mul4(rot)
	return InstanceRaw{
		Model:  m,
		Normal: rot.Mat3(),
	}
}

// PackInstances converts a list of instances into a contiguous instance buffer.
//
// Parameters:
//   - instances: the instances to pack, in draw order
//
// Returns:
//   - []byte: len(instances)*InstanceRawSize bytes
func PackInstances(instances []Instance) []byte {
	buf := make([]byte, len(instances)*InstanceRawSize)
	for n, inst := range instances {
		raw := inst.ToRaw()
		raw.put(buf[n*InstanceRawSize:])
	}
	return buf
}

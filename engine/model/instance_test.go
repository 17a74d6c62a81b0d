package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityInstanceToRaw(t *testing.T) {
	raw := NewInstance().ToRaw()

	assert.Equal(t, [16]float32(mgl32.Ident4()), raw.Model)
	assert.Equal(t, [9]float32(mgl32.Ident3()), raw.Normal)
}

func TestInstanceTranslationOnlyAffectsModelMatrix(t *testing.T) {
	inst := Instance{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent()}
	raw := inst.ToRaw()

	// Column-major: translation lives in elements 12..14.
	assert.Equal(t, float32(1), raw.Model[12])
	assert.Equal(t, float32(2), raw.Model[13])
	assert.Equal(t, float32(3), raw.Model[14])
	assert.Equal(t, [9]float32(mgl32.Ident3()), raw.Normal)
}

func TestInstanceRotation(t *testing.T) {
	rot := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	inst := Instance{Position: mgl32.Vec3{5, 0, 0}, Rotation: rot}
	raw := inst.ToRaw()

	m := mgl32.Mat4(raw.Model)
	// +X rotated 90 degrees about Y points to -Z, then translated by (5, 0, 0).
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDeltaSlice(t, []float32{5, 0, -1, 1}, p[:], 1e-5, "got %v", p)

	n := mgl32.Mat3(raw.Normal)
	want := rot.Mat4().Mat3()
	assert.InDeltaSlice(t, want[:], n[:], 1e-6)
	nx := n.Mul3x1(mgl32.Vec3{1, 0, 0})
	assert.InDeltaSlice(t, []float32{0, 0, -1}, nx[:], 1e-5, "got %v", nx)
}

func TestPackInstances(t *testing.T) {
	instances := []Instance{
		NewInstance(),
		{Position: mgl32.Vec3{0, 7, 0}, Rotation: mgl32.QuatIdent()},
	}
	buf := PackInstances(instances)
	require.Len(t, buf, 2*InstanceRawSize)

	// Second instance's model matrix translation Y at element 13.
	off := InstanceRawSize + 13*4
	assert.Equal(t, float32(7), math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])))

	// First instance's normal matrix starts with 1 at offset 64.
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])))
}

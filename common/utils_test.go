package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
	assert.Equal(t, float32(32), Coalesce(float32(0), 32.0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, uint32(1), Clamp(uint32(0), 1, 8192))
	assert.Equal(t, uint32(8192), Clamp(uint32(100000), 1, 8192))
	assert.Equal(t, uint32(640), Clamp(uint32(640), 1, 8192))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]float32{1, 2, 3}), 12)
	assert.Len(t, SliceToBytes([]uint32{7}), 4)
}

func TestOpenGLToWGPUMapsDepthToZeroOne(t *testing.T) {
	near := OpenGLToWGPU.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := OpenGLToWGPU.Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), 1e-6)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-6)
}

package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFloat(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestModelVertexMarshalOffsets(t *testing.T) {
	v := ModelVertex{
		Position:  [3]float32{1, 2, 3},
		TexCoords: [2]float32{4, 5},
		Normal:    [3]float32{6, 7, 8},
		Tangent:   [3]float32{9, 10, 11},
		Bitangent: [3]float32{12, 13, 14},
	}
	buf := v.Marshal()
	require.Len(t, buf, ModelVertexSize)
	for i := 0; i < 14; i++ {
		assert.Equal(t, float32(i+1), readFloat(buf, i*4))
	}
}

func TestModelVertexLayoutMatchesMarshal(t *testing.T) {
	layout := ModelVertexLayout()
	assert.Equal(t, uint64(ModelVertexSize), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)

	offsets := []uint64{0, 12, 20, 32, 44}
	require.Len(t, layout.Attributes, len(offsets))
	for i, attr := range layout.Attributes {
		assert.Equal(t, offsets[i], attr.Offset)
		assert.Equal(t, uint32(i), attr.ShaderLocation)
	}
}

func TestInstanceRawLayout(t *testing.T) {
	layout := InstanceRawLayout()
	assert.Equal(t, uint64(InstanceRawSize), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, layout.StepMode)

	offsets := []uint64{0, 16, 32, 48, 64, 76, 88}
	require.Len(t, layout.Attributes, len(offsets))
	for i, attr := range layout.Attributes {
		assert.Equal(t, offsets[i], attr.Offset)
		assert.Equal(t, uint32(5+i), attr.ShaderLocation)
	}
}

func TestMarshalVerticesAndIndices(t *testing.T) {
	vertices := []ModelVertex{{Position: [3]float32{1, 0, 0}}, {Position: [3]float32{0, 2, 0}}}
	vb := MarshalVertices(vertices)
	require.Len(t, vb, 2*ModelVertexSize)
	assert.Equal(t, float32(2), readFloat(vb, ModelVertexSize+4))

	ib := MarshalIndices([]uint32{0, 1, 2, 70000})
	require.Len(t, ib, 16)
	assert.Equal(t, uint32(70000), binary.LittleEndian.Uint32(ib[12:]))
}

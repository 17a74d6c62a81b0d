package model

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// ModelVertexSize is the packed byte size of a ModelVertex.
const ModelVertexSize = 56

// InstanceRawSize is the packed byte size of an InstanceRaw.
const InstanceRawSize = 100

// ModelVertex is the GPU-aligned representation of a single mesh vertex.
// Layout (56 bytes, tightly packed, shader locations 0-4):
type ModelVertex struct {
	Position  [3]float32 // offset  0, location 0
	TexCoords [2]float32 // offset 12, location 1
	Normal    [3]float32 // offset 20, location 2
	Tangent   [3]float32 // offset 32, location 3
	Bitangent [3]float32 // offset 44, location 4
}

// Size returns the packed size of the ModelVertex in bytes.
//
// Returns:
//   - int: the size in bytes (56)
func (v *ModelVertex) Size() int {
	return ModelVertexSize
}

// Marshal serializes the ModelVertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 56-byte buffer ready for GPU upload
func (v *ModelVertex) Marshal() []byte {
	buf := make([]byte, ModelVertexSize)
	v.put(buf)
	return buf
}

func (v *ModelVertex) put(buf []byte) {
	putFloats(buf[0:], v.Position[:])
	putFloats(buf[12:], v.TexCoords[:])
	putFloats(buf[20:], v.Normal[:])
	putFloats(buf[32:], v.Tangent[:])
	putFloats(buf[44:], v.Bitangent[:])
}

// MarshalVertices packs a vertex slice into one contiguous buffer.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices)*56 bytes
func MarshalVertices(vertices []ModelVertex) []byte {
	buf := make([]byte, len(vertices)*ModelVertexSize)
	for i := range vertices {
		vertices[i].put(buf[i*ModelVertexSize:])
	}
	return buf
}

// MarshalIndices packs a uint32 index slice into little-endian bytes.
//
// Parameters:
//   - indices: the indices to pack
//
// Returns:
//   - []byte: len(indices)*4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// ModelVertexLayout returns the per-vertex buffer layout for ModelVertex (slot 0).
//
// Returns:
//   - wgpu.VertexBufferLayout: the vertex buffer layout
func ModelVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: ModelVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 44, ShaderLocation: 4},
		},
	}
}

// InstanceRaw is the packed per-instance transform consumed by the vertex shader.
// Layout (100 bytes, shader locations 5-11):
type InstanceRaw struct {
	Model  [16]float32 // offset  0: 4x4 model matrix, column-major, locations 5-8
	Normal [9]float32  // offset 64: 3x3 normal matrix, column-major, locations 9-11
}

// Size returns the packed size of the InstanceRaw in bytes.
//
// Returns:
//   - int: the size in bytes (100)
func (r *InstanceRaw) Size() int {
	return InstanceRawSize
}

// Marshal serializes the InstanceRaw into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 100-byte buffer ready for GPU upload
func (r *InstanceRaw) Marshal() []byte {
	buf := make([]byte, InstanceRawSize)
	r.put(buf)
	return buf
}

func (r *InstanceRaw) put(buf []byte) {
	putFloats(buf[0:], r.Model[:])
	putFloats(buf[64:], r.Normal[:])
}

// InstanceRawLayout returns the per-instance buffer layout for InstanceRaw (slot 1).
//
// Returns:
//   - wgpu.VertexBufferLayout: the instance buffer layout
func InstanceRawLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: InstanceRawSize,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 64, ShaderLocation: 9},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 76, ShaderLocation: 10},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 88, ShaderLocation: 11},
		},
	}
}

func putFloats(buf []byte, values []float32) {
	for i, f := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}

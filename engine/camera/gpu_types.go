package camera

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL Camera struct of the model shader.
// Size: 80 bytes.
type GPUCameraUniform struct {
	ViewPosition [4]float32  // offset  0: homogeneous world-space camera position (vec4<f32>)
	ViewProj     [16]float32 // offset 16: combined view-projection matrix (mat4x4<f32>)
}

// NewGPUCameraUniform builds the uniform for a camera seen through a projection.
//
// Parameters:
//   - c: the camera
//   - p: the projection
//
// Returns:
//   - GPUCameraUniform: the uniform
func NewGPUCameraUniform(c Camera, p Projection) GPUCameraUniform {
	pos := c.Position()
	return GPUCameraUniform{
		ViewPosition: [4]float32{pos[0], pos[1], pos[2], 1},
		ViewProj:     p.Matrix().Mul4(c.ViewMatrix()),
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewPosition[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.ViewProj[i]))
	}
	return buf
}

// BindGroupLayoutDescriptor describes the camera bind group: one uniform buffer visible to the vertex and
// fragment stages.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
func BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "camera bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 80,
				},
			},
		},
	}
}

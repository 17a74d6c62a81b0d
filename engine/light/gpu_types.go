package light

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPULightUniformSize is the byte size of a marshaled GPULightUniform.
const GPULightUniformSize = 32

// GPULightUniform is the GPU-aligned representation of the light uniform buffer.
// Matches the WGSL Light struct of the model shader: each vec3 is padded to 16 bytes.
type GPULightUniform struct {
	Position [3]float32 // offset  0: world-space position (vec3<f32>), padded to 16
	Color    [3]float32 // offset 16: RGB color (vec3<f32>), padded to 32
}

// Size returns the size of the GPULightUniform in bytes.
//
// Returns:
//   - int: the size in bytes (32)
func (g *GPULightUniform) Size() int {
	return GPULightUniformSize
}

// Marshal serializes the GPULightUniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, GPULightUniformSize)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	return buf
}

// BindGroupLayoutDescriptor describes the light bind group: one uniform buffer visible to the vertex and
// fragment stages.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
func BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "light bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: GPULightUniformSize,
				},
			},
		},
	}
}

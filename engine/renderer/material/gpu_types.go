package material

import "github.com/cogentcore/webgpu/wgpu"

// Binding slots of the material bind group.
const (
	BindingDiffuseView    = 0
	BindingDiffuseSampler = 1
	BindingNormalView     = 2
	BindingNormalSampler  = 3
)

// BindGroupLayoutDescriptor describes the material bind group: two filterable 2D float textures, each
// followed by its filtering sampler, visible to the fragment stage.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
func BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	texture := wgpu.TextureBindingLayout{
		SampleType:    wgpu.TextureSampleTypeFloat,
		ViewDimension: wgpu.TextureViewDimension2D,
		Multisampled:  false,
	}
	sampler := wgpu.SamplerBindingLayout{
		Type: wgpu.SamplerBindingTypeFiltering,
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: BindingDiffuseView, Visibility: wgpu.ShaderStageFragment, Texture: texture},
			{Binding: BindingDiffuseSampler, Visibility: wgpu.ShaderStageFragment, Sampler: sampler},
			{Binding: BindingNormalView, Visibility: wgpu.ShaderStageFragment, Texture: texture},
			{Binding: BindingNormalSampler, Visibility: wgpu.ShaderStageFragment, Sampler: sampler},
		},
	}
}

package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithSharedLayout sets a bind group layout owned elsewhere. Release will not release it.
//
// Parameters:
//   - bgl: the shared bind group layout
//
// Returns:
//   - BindGroupProviderOption: a function that sets the layout for this provider
func WithSharedLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
		p.ownsLayout = false
	}
}

// WithIndexCount sets the number of indices to draw.
//
// Parameters:
//   - count: the index count
//
// Returns:
//   - BindGroupProviderOption: a function that sets the index count for this provider
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}

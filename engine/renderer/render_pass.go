package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderPass records draw commands into the frame's render pass.
// Index buffers are always uint32 and buffers are always bound whole.
type RenderPass interface {
	// SetPipeline binds a registered render pipeline.
	//
	// Parameters:
	//   - p: the pipeline to bind
	SetPipeline(p pipeline.Pipeline)

	// SetBindGroup binds a bind group at a group index.
	//
	// Parameters:
	//   - group: the group index
	//   - bg: the bind group
	SetBindGroup(group uint32, bg *wgpu.BindGroup)

	// SetVertexBuffer binds a vertex buffer to a slot.
	//
	// Parameters:
	//   - slot: the vertex buffer slot
	//   - buf: the buffer
	SetVertexBuffer(slot uint32, buf *wgpu.Buffer)

	// SetIndexBuffer binds a uint32 index buffer.
	//
	// Parameters:
	//   - buf: the buffer
	SetIndexBuffer(buf *wgpu.Buffer)

	// Draw draws non-indexed vertices.
	//
	// Parameters:
	//   - vertexCount: the number of vertices
	//   - instanceCount: the number of instances
	Draw(vertexCount, instanceCount uint32)

	// DrawIndexed draws indexed vertices.
	//
	// Parameters:
	//   - indexCount: the number of indices
	//   - instanceCount: the number of instances
	DrawIndexed(indexCount, instanceCount uint32)
}

// wgpuRenderPass records into a wgpu render pass encoder.
type wgpuRenderPass struct {
	enc *wgpu.RenderPassEncoder
}

var _ RenderPass = &wgpuRenderPass{}

func (p *wgpuRenderPass) SetPipeline(pl pipeline.Pipeline) {
	p.enc.SetPipeline(pl.RenderPipeline())
}

func (p *wgpuRenderPass) SetBindGroup(group uint32, bg *wgpu.BindGroup) {
	p.enc.SetBindGroup(group, bg, nil)
}

func (p *wgpuRenderPass) SetVertexBuffer(slot uint32, buf *wgpu.Buffer) {
	p.enc.SetVertexBuffer(slot, buf, 0, wgpu.WholeSize)
}

func (p *wgpuRenderPass) SetIndexBuffer(buf *wgpu.Buffer) {
	p.enc.SetIndexBuffer(buf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
}

func (p *wgpuRenderPass) Draw(vertexCount, instanceCount uint32) {
	p.enc.Draw(vertexCount, instanceCount, 0, 0)
}

func (p *wgpuRenderPass) DrawIndexed(indexCount, instanceCount uint32) {
	p.enc.DrawIndexed(indexCount, instanceCount, 0, 0, 0)
}

// DrawModel draws every mesh of a model with its material bound at group 0 and the extra bind groups
// at groups 1, 2, and so on. The pipeline and any instance buffer must already be bound.
//
// Parameters:
//   - pass: the render pass to record into
//   - m: the model to draw
//   - instanceCount: the number of instances to draw each mesh with
//   - groups: the bind groups following the material group, in group order
//
// Returns:
//   - error: error if a mesh has no material bind group
func DrawModel(pass RenderPass, m model.Model, instanceCount uint32, groups ...bind_group_provider.BindGroupProvider) error {
	for _, mesh := range m.Meshes() {
		mat := m.MaterialFor(mesh)
		if mat == nil || mat.BindGroupProvider() == nil {
			return fmt.Errorf("mesh %q has no material bind group", mesh.Name())
		}
		provider := mesh.Provider()
		pass.SetVertexBuffer(0, provider.VertexBuffer())
		pass.SetIndexBuffer(provider.IndexBuffer())
		pass.SetBindGroup(0, mat.BindGroupProvider().BindGroup())
		for i, g := range groups {
			pass.SetBindGroup(uint32(i+1), g.BindGroup())
		}
		pass.DrawIndexed(mesh.ElementCount(), instanceCount)
	}
	return nil
}

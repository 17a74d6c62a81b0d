package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var _ loader.GPUUploader = Renderer(nil)

type fakeContext struct {
	w, h        uint32
	lastW       int
	lastH       int
	presentMode surface.PresentMode
}

func (c *fakeContext) Device() *wgpu.Device                    { return nil }
func (c *fakeContext) Queue() *wgpu.Queue                      { return nil }
func (c *fakeContext) Surface() *wgpu.Surface                  { return nil }
func (c *fakeContext) Format() wgpu.TextureFormat              { return wgpu.TextureFormatBGRA8UnormSrgb }
func (c *fakeContext) Config() wgpu.SurfaceConfiguration       { return wgpu.SurfaceConfiguration{} }
func (c *fakeContext) Size() (uint32, uint32)                  { return c.w, c.h }
func (c *fakeContext) MaxTextureDimension() uint32             { return 8192 }
func (c *fakeContext) SetPresentMode(mode surface.PresentMode) { c.presentMode = mode }
func (c *fakeContext) Release()                                {}

func (c *fakeContext) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.lastW, c.lastH = width, height
	c.w, c.h = uint32(width), uint32(height)
	return true
}

func (c *fakeContext) PhysicalSize() (int, int) {
	return c.lastW, c.lastH
}

type fakeBackend struct {
	registered   []string
	formats      []wgpu.TextureFormat
	registerErr  error
	depthSizes   [][2]uint32
	beginErr     error
	released     bool
	pass         RenderPass
	writesSeen   int
	vertexUpload []byte
}

func (b *fakeBackend) CreateBindGroupLayout(*wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return nil, nil
}

func (b *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline, colorFormat wgpu.TextureFormat) error {
	if b.registerErr != nil {
		return b.registerErr
	}
	b.registered = append(b.registered, p.PipelineKey())
	b.formats = append(b.formats, colorFormat)
	return nil
}

func (b *fakeBackend) InitMeshBuffers(bind_group_provider.BindGroupProvider, []byte, []byte, int) error {
	return nil
}

func (b *fakeBackend) InitVertexBuffer(_ bind_group_provider.BindGroupProvider, data []byte) error {
	b.vertexUpload = data
	return nil
}

func (b *fakeBackend) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor) error {
	return nil
}

func (b *fakeBackend) InitTextureView(bind_group_provider.BindGroupProvider, int, common.TextureStagingData) error {
	return nil
}

func (b *fakeBackend) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (b *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.writesSeen += len(writes)
}

func (b *fakeBackend) ConfigureDepth(width, height uint32) error {
	b.depthSizes = append(b.depthSizes, [2]uint32{width, height})
	return nil
}

func (b *fakeBackend) BeginFrame(wgpu.Color) error { return b.beginErr }
func (b *fakeBackend) Pass() RenderPass            { return b.pass }
func (b *fakeBackend) EndFrame() error             { return nil }
func (b *fakeBackend) Present()                    {}
func (b *fakeBackend) Release()                    { b.released = true }

func newTestRenderer(t *testing.T, ctx *fakeContext, backend *fakeBackend) *renderer {
	t.Helper()
	r, err := newRenderer(BackendTypeWGPU, ctx, backend, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return r
}

func TestNewRendererConfiguresDepthAtSurfaceSize(t *testing.T) {
	backend := &fakeBackend{}
	newTestRenderer(t, &fakeContext{w: 800, h: 600}, backend)
	assert.Equal(t, [][2]uint32{{800, 600}}, backend.depthSizes)
}

func TestRegisterPipelinesSkipsCachedKeys(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, &fakeContext{w: 1, h: 1}, backend)

	a := pipeline.NewPipeline("a")
	b := pipeline.NewPipeline("b")
	require.NoError(t, r.RegisterPipelines(a, b))
	require.NoError(t, r.RegisterPipelines(pipeline.NewPipeline("a")))

	assert.Equal(t, []string{"a", "b"}, backend.registered)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, backend.formats[0])
	assert.Same(t, a, r.Pipeline("a"))
	assert.Nil(t, r.Pipeline("missing"))
}

func TestRegisterPipelinesDoesNotCacheFailures(t *testing.T) {
	backend := &fakeBackend{registerErr: errors.New("bad shader")}
	r := newTestRenderer(t, &fakeContext{w: 1, h: 1}, backend)

	err := r.RegisterPipelines(pipeline.NewPipeline("broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Nil(t, r.Pipeline("broken"))
}

func TestResizeRecreatesDepth(t *testing.T) {
	backend := &fakeBackend{}
	ctx := &fakeContext{w: 100, h: 100}
	r := newTestRenderer(t, ctx, backend)

	ok, err := r.Resize(0, 300)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, backend.depthSizes, 1)

	ok, err = r.Resize(640, 480)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, [2]uint32{640, 480}, backend.depthSizes[1])

	ok, err = r.Resize(ctx.PhysicalSize())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, [2]uint32{640, 480}, backend.depthSizes[2])
}

func TestSetPresentModeReachesContext(t *testing.T) {
	ctx := &fakeContext{w: 1, h: 1}
	r := newTestRenderer(t, ctx, &fakeBackend{})
	r.SetPresentMode(surface.PresentModeUncapped)
	assert.Equal(t, surface.PresentModeUncapped, ctx.presentMode)
}

func TestBeginFrameClassifiesErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		kind        SurfaceErrorKind
		recoverable bool
	}{
		{"lost", errors.New("Surface texture status: Lost"), SurfaceErrorLost, true},
		{"outdated", errors.New("Surface texture status: Outdated"), SurfaceErrorOutdated, true},
		{"out of memory", errors.New("Surface texture status: OutOfMemory"), SurfaceErrorOutOfMemory, false},
		{"timeout", errors.New("Surface texture status: Timeout"), SurfaceErrorTimeout, false},
		{"other", errors.New("device removed"), SurfaceErrorOther, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRenderer(t, &fakeContext{w: 1, h: 1}, &fakeBackend{beginErr: tt.err})

			err := r.BeginFrame(wgpu.Color{})
			var se *SurfaceError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.kind, se.Kind)
			assert.Equal(t, tt.recoverable, se.Recoverable())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBeginFrameSuccess(t *testing.T) {
	r := newTestRenderer(t, &fakeContext{w: 1, h: 1}, &fakeBackend{})
	assert.NoError(t, r.BeginFrame(wgpu.Color{R: 1}))
}

func TestClassifySurfaceErrorPassesThroughSurfaceError(t *testing.T) {
	orig := &SurfaceError{Kind: SurfaceErrorTimeout, Err: errors.New("lost")}
	assert.Same(t, orig, classifySurfaceError(orig))
	assert.Nil(t, classifySurfaceError(nil))
}

func TestReleaseReleasesBackend(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, &fakeContext{w: 1, h: 1}, backend)
	require.NoError(t, r.RegisterPipelines(pipeline.NewPipeline("a")))

	r.Release()
	assert.True(t, backend.released)
	assert.Nil(t, r.Pipeline("a"))
}

func TestUploadsDelegateToBackend(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(t, &fakeContext{w: 1, h: 1}, backend)
	p := bind_group_provider.NewBindGroupProvider("instances")

	require.NoError(t, r.InitVertexBuffer(p, []byte{1, 2, 3, 4}))
	r.WriteBuffers([]bind_group_provider.BufferWrite{{Provider: p, Binding: 0, Data: []byte{0}}})

	assert.Equal(t, []byte{1, 2, 3, 4}, backend.vertexUpload)
	assert.Equal(t, 1, backend.writesSeen)
}

type drawCall struct {
	op    string
	slot  uint32
	count uint32
	inst  uint32
}

type fakePass struct {
	calls []drawCall
}

func (p *fakePass) SetPipeline(pipeline.Pipeline) { p.calls = append(p.calls, drawCall{op: "pipeline"}) }

func (p *fakePass) SetBindGroup(group uint32, _ *wgpu.BindGroup) {
	p.calls = append(p.calls, drawCall{op: "bind", slot: group})
}

func (p *fakePass) SetVertexBuffer(slot uint32, _ *wgpu.Buffer) {
	p.calls = append(p.calls, drawCall{op: "vertex", slot: slot})
}

func (p *fakePass) SetIndexBuffer(*wgpu.Buffer) { p.calls = append(p.calls, drawCall{op: "index"}) }

func (p *fakePass) Draw(vertexCount, instanceCount uint32) {
	p.calls = append(p.calls, drawCall{op: "draw", count: vertexCount, inst: instanceCount})
}

func (p *fakePass) DrawIndexed(indexCount, instanceCount uint32) {
	p.calls = append(p.calls, drawCall{op: "drawIndexed", count: indexCount, inst: instanceCount})
}

func TestDrawModelBindsMaterialThenExtraGroups(t *testing.T) {
	mat := material.NewMaterial(
		material.WithName("brick"),
		material.WithBindGroupProvider(bind_group_provider.NewBindGroupProvider("brick")),
	)
	m := model.NewModel(
		model.WithMeshes([]model.Mesh{
			model.NewMesh("a", bind_group_provider.NewBindGroupProvider("a", bind_group_provider.WithIndexCount(6)), 0),
			model.NewMesh("b", bind_group_provider.NewBindGroupProvider("b", bind_group_provider.WithIndexCount(3)), 0),
		}),
		model.WithMaterials([]material.Material{mat}),
	)
	camera := bind_group_provider.NewBindGroupProvider("camera")
	light := bind_group_provider.NewBindGroupProvider("light")

	pass := &fakePass{}
	require.NoError(t, DrawModel(pass, m, 1, camera, light))

	perMesh := func(count uint32) []drawCall {
		return []drawCall{
			{op: "vertex", slot: 0},
			{op: "index"},
			{op: "bind", slot: 0},
			{op: "bind", slot: 1},
			{op: "bind", slot: 2},
			{op: "drawIndexed", count: count, inst: 1},
		}
	}
	assert.Equal(t, append(perMesh(6), perMesh(3)...), pass.calls)
}

func TestDrawModelRequiresMaterialBindGroup(t *testing.T) {
	m := model.NewModel(
		model.WithMeshes([]model.Mesh{model.NewMesh("orphan", bind_group_provider.NewBindGroupProvider("orphan"), 3)}),
		model.WithMaterials([]material.Material{material.NewMaterial()}),
	)
	err := DrawModel(&fakePass{}, m, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orphan")
}

package assets

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRegistrar struct {
	pipelines []pipeline.Pipeline
	err       error
}

func (r *fakeRegistrar) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	if r.err != nil {
		return r.err
	}
	r.pipelines = append(r.pipelines, pipelines...)
	return nil
}

type fakeBundle struct {
	constructed int
	started     int
	loaded      atomic.Bool
	polls       int
}

func (b *fakeBundle) Construct()    { b.constructed++ }
func (b *fakeBundle) StartLoading() { b.started++ }

func (b *fakeBundle) FullyLoaded() bool {
	b.polls++
	return b.loaded.Load()
}

type recordingPass struct {
	pipelines []pipeline.Pipeline
	draws     [][2]uint32
}

func (p *recordingPass) SetPipeline(pl pipeline.Pipeline)     { p.pipelines = append(p.pipelines, pl) }
func (p *recordingPass) SetBindGroup(uint32, *wgpu.BindGroup) {}
func (p *recordingPass) SetVertexBuffer(uint32, *wgpu.Buffer) {}
func (p *recordingPass) SetIndexBuffer(*wgpu.Buffer)          {}
func (p *recordingPass) DrawIndexed(uint32, uint32)           {}
func (p *recordingPass) Draw(vertexCount, instanceCount uint32) {
	p.draws = append(p.draws, [2]uint32{vertexCount, instanceCount})
}

var _ renderer.RenderPass = &recordingPass{}

func TestNewManagerStartsBundleAndRegistersFallback(t *testing.T) {
	bundle := &fakeBundle{}
	reg := &fakeRegistrar{}

	m, err := NewManager(bundle, reg, WithLogger(zap.NewNop()))
	require.NoError(t, err)

	assert.Equal(t, 1, bundle.constructed)
	assert.Equal(t, 1, bundle.started)
	require.Len(t, reg.pipelines, 1)

	p := reg.pipelines[0]
	assert.Same(t, p, m.Pipeline())
	assert.Equal(t, LoadingPipelineKey, p.PipelineKey())
	assert.Empty(t, p.VertexLayouts())
	assert.Empty(t, p.BindGroupLayouts())
	assert.Equal(t, renderer.DepthFormat, p.DepthFormat())
	require.NoError(t, p.Validate())
	assert.Same(t, bundle, m.Bundle())
}

func TestNewManagerWithoutDepth(t *testing.T) {
	reg := &fakeRegistrar{}
	_, err := NewManager(&fakeBundle{}, reg, WithoutDepth(), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatUndefined, reg.pipelines[0].DepthFormat())
}

func TestNewManagerPropagatesRegistrationError(t *testing.T) {
	_, err := NewManager(&fakeBundle{}, &fakeRegistrar{err: errors.New("no device")}, WithLogger(zap.NewNop()))
	assert.EqualError(t, err, "no device")
}

func TestIsReadyLatches(t *testing.T) {
	bundle := &fakeBundle{}
	m, err := NewManager(bundle, &fakeRegistrar{}, WithLogger(zap.NewNop()))
	require.NoError(t, err)

	assert.False(t, m.IsReady())
	assert.False(t, m.IsReady())
	assert.Equal(t, 2, bundle.polls)

	bundle.loaded.Store(true)
	assert.True(t, m.IsReady())
	polls := bundle.polls

	bundle.loaded.Store(false)
	for range 5 {
		assert.True(t, m.IsReady())
	}
	assert.Equal(t, polls, bundle.polls, "the bundle is not polled once ready")
}

func TestRenderLoadingDrawsUntilReady(t *testing.T) {
	bundle := &fakeBundle{}
	m, err := NewManager(bundle, &fakeRegistrar{}, WithLogger(zap.NewNop()))
	require.NoError(t, err)

	pass := &recordingPass{}
	m.RenderLoading(pass)
	require.Len(t, pass.draws, 1)
	assert.Equal(t, [2]uint32{3, 1}, pass.draws[0])
	assert.Same(t, m.Pipeline(), pass.pipelines[0])

	bundle.loaded.Store(true)
	m.RenderLoading(pass)
	m.RenderLoading(pass)
	assert.Len(t, pass.draws, 1)
	assert.Len(t, pass.pipelines, 1)
}

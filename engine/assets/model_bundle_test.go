package assets

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLoader struct {
	mu    sync.Mutex
	calls []string
	gate  chan struct{}
	err   error
}

func (l *fakeLoader) LoadModel(ctx context.Context, name string) (model.Model, error) {
	l.mu.Lock()
	l.calls = append(l.calls, name)
	l.mu.Unlock()
	if l.gate != nil {
		select {
		case <-l.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if l.err != nil {
		return nil, l.err
	}
	return model.NewModel(model.WithName(name)), nil
}

type fakeUploader struct {
	data []byte
	err  error
}

func (u *fakeUploader) InitVertexBuffer(_ bind_group_provider.BindGroupProvider, data []byte) error {
	u.data = data
	return u.err
}

func TestModelBundleLoadsModelAndInstances(t *testing.T) {
	ld := &fakeLoader{gate: make(chan struct{})}
	up := &fakeUploader{}
	b := NewModelBundle(ld, "WIP.obj", WithInstanceUploader(up), WithBundleLogger(zap.NewNop()))
	defer b.Release()

	b.Construct()
	b.StartLoading()
	assert.False(t, b.FullyLoaded())
	assert.Nil(t, b.Model())

	close(ld.gate)
	b.Wait()

	require.NoError(t, b.Err())
	assert.True(t, b.FullyLoaded())
	assert.Equal(t, "WIP.obj", b.Model().Name())
	assert.NotNil(t, b.Instances())
	assert.Equal(t, uint32(1), b.InstanceCount())
	assert.Len(t, up.data, model.InstanceRawSize)
}

func TestModelBundleStartLoadingOnce(t *testing.T) {
	ld := &fakeLoader{}
	b := NewModelBundle(ld, "a.obj", WithBundleLogger(zap.NewNop()))
	defer b.Release()

	b.StartLoading()
	b.StartLoading()
	b.Wait()

	assert.Equal(t, []string{"a.obj"}, ld.calls)
	assert.Nil(t, b.Instances())
}

func TestModelBundleFailureNeverLoads(t *testing.T) {
	ld := &fakeLoader{err: errors.New("404")}
	b := NewModelBundle(ld, "missing.obj", WithBundleLogger(zap.NewNop()))
	defer b.Release()

	b.StartLoading()
	b.Wait()

	assert.False(t, b.FullyLoaded())
	assert.EqualError(t, b.Err(), "404")
}

func TestModelBundleInstanceUploadFailure(t *testing.T) {
	b := NewModelBundle(&fakeLoader{}, "a.obj",
		WithInstanceUploader(&fakeUploader{err: errors.New("oom")}),
		WithBundleLogger(zap.NewNop()),
	)
	defer b.Release()

	b.StartLoading()
	b.Wait()

	assert.False(t, b.FullyLoaded())
	assert.ErrorContains(t, b.Err(), "oom")
}

func TestModelBundleConstructCancelsAndResets(t *testing.T) {
	ld := &fakeLoader{gate: make(chan struct{})}
	b := NewModelBundle(ld, "a.obj", WithBundleLogger(zap.NewNop()))
	defer b.Release()

	b.StartLoading()
	b.Construct()
	assert.NoError(t, b.Err())
	assert.False(t, b.FullyLoaded())

	close(ld.gate)
	b.StartLoading()
	b.Wait()
	assert.True(t, b.FullyLoaded())
	assert.Len(t, ld.calls, 2)
}

func TestManagerOverModelBundle(t *testing.T) {
	b := NewModelBundle(&fakeLoader{}, "a.obj", WithBundleLogger(zap.NewNop()))
	defer b.Release()

	m, err := NewManager(b, &fakeRegistrar{}, WithLogger(zap.NewNop()))
	require.NoError(t, err)

	b.Wait()
	assert.True(t, m.IsReady())
	assert.Equal(t, "a.obj", m.Bundle().Model().Name())
}

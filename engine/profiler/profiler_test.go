package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProfiler(time.Hour, zap.New(core))

	for range 10 {
		assert.False(t, p.Tick())
	}
	assert.Zero(t, logs.Len())

	p.lastTime = time.Now().Add(-2 * time.Hour)
	require.True(t, p.Tick())
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	assert.Equal(t, "frame stats", entry.Message)
	fields := entry.ContextMap()
	assert.Contains(t, fields, "fps")
	assert.Contains(t, fields, "heap_mb")
	assert.Zero(t, p.frameCount)
}

func TestNewProfilerDefaults(t *testing.T) {
	p := NewProfiler(0, nil)
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.log)
}

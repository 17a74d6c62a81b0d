package loader

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadVertices(uv3 [2]float32) []model.ModelVertex {
	return []model.ModelVertex{
		{Position: [3]float32{0, 0, 0}, TexCoords: [2]float32{0, 0}},
		{Position: [3]float32{1, 0, 0}, TexCoords: [2]float32{1, 0}},
		{Position: [3]float32{1, 1, 0}, TexCoords: [2]float32{1, 1}},
		{Position: [3]float32{0, 1, 0}, TexCoords: uv3},
	}
}

func assertVec3(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "component %d of %v", i, got)
	}
}

func TestComputeTangentsSharedEdge(t *testing.T) {
	vertices := quadVertices([2]float32{0, 1})
	indices := []uint32{0, 1, 2, 0, 2, 3}

	counts, skipped, err := computeTangents("quad", vertices, indices, false)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []uint32{2, 1, 2, 1}, counts)

	for i, v := range vertices {
		assert.NotEqual(t, [3]float32{}, v.Tangent, "vertex %d", i)
		assertVec3(t, [3]float32{1, 0, 0}, v.Tangent)
		assertVec3(t, [3]float32{0, -1, 0}, v.Bitangent)
	}
}

func TestComputeTangentsAveragesAdjacentTriangles(t *testing.T) {
	// Stretching the last vertex's V gives the second triangle tangent (1, 0.5, 0) and bitangent (0, -0.5, 0)
	// while the first keeps (1, 0, 0) and (0, -1, 0).
	vertices := quadVertices([2]float32{0, 2})
	indices := []uint32{0, 1, 2, 0, 2, 3}

	_, _, err := computeTangents("quad", vertices, indices, false)
	require.NoError(t, err)

	assertVec3(t, [3]float32{1, 0.25, 0}, vertices[0].Tangent)
	assertVec3(t, [3]float32{1, 0.25, 0}, vertices[2].Tangent)
	assertVec3(t, [3]float32{0, -0.75, 0}, vertices[0].Bitangent)
	assertVec3(t, [3]float32{0, -0.75, 0}, vertices[2].Bitangent)

	assertVec3(t, [3]float32{1, 0, 0}, vertices[1].Tangent)
	assertVec3(t, [3]float32{1, 0.5, 0}, vertices[3].Tangent)
	assertVec3(t, [3]float32{0, -0.5, 0}, vertices[3].Bitangent)
}

func TestComputeTangentsCountsSumToThreePerTriangle(t *testing.T) {
	vertices := []model.ModelVertex{
		{Position: [3]float32{0, 0, 0}, TexCoords: [2]float32{0, 0}},
		{Position: [3]float32{1, 0, 0}, TexCoords: [2]float32{1, 0}},
		{Position: [3]float32{1, 1, 0}, TexCoords: [2]float32{1, 1}},
		{Position: [3]float32{0, 1, 0}, TexCoords: [2]float32{0, 1}},
		{Position: [3]float32{0, 0, 1}, TexCoords: [2]float32{0.5, 0.5}},
		{Position: [3]float32{9, 9, 9}},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3, 0, 1, 4, 1, 2, 4, 2, 3, 4}

	counts, _, err := computeTangents("fan", vertices, indices, false)
	require.NoError(t, err)

	var sum uint32
	for _, c := range counts {
		sum += c
	}
	assert.Equal(t, uint32(len(indices)), sum)

	assert.Zero(t, counts[5])
	assert.Equal(t, [3]float32{}, vertices[5].Tangent)
	assert.Equal(t, [3]float32{}, vertices[5].Bitangent)
}

func TestComputeTangentsDegenerateUVs(t *testing.T) {
	build := func() []model.ModelVertex {
		v := quadVertices([2]float32{0, 1})
		v = append(v, model.ModelVertex{Position: [3]float32{2, 2, 0}, TexCoords: [2]float32{1, 1}})
		return v
	}
	// The last triangle maps three distinct positions onto a UV line.
	indices := []uint32{0, 1, 2, 0, 2, 3, 2, 4, 0}

	_, _, err := computeTangents("quad", build(), indices, false)
	var dge *DegenerateGeometryError
	require.True(t, errors.As(err, &dge), "got %v", err)
	assert.Equal(t, "quad", dge.Mesh)
	assert.Equal(t, 2, dge.Triangle)
	assert.Equal(t, [3]uint32{2, 4, 0}, dge.Indices)

	vertices := build()
	counts, skipped, err := computeTangents("quad", vertices, indices, true)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []uint32{2, 1, 2, 1, 0}, counts)
	assertVec3(t, [3]float32{1, 0, 0}, vertices[0].Tangent)
	assert.Equal(t, [3]float32{}, vertices[4].Tangent)
}

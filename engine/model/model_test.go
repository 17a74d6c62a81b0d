package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/stretchr/testify/assert"
)

func TestModelMaterialFor(t *testing.T) {
	brick := material.NewMaterial(material.WithName("brick"))
	stone := material.NewMaterial(material.WithName("stone"))

	inRange := NewMesh("a", bind_group_provider.NewBindGroupProvider("a", bind_group_provider.WithIndexCount(6)), 1)
	outOfRange := NewMesh("b", nil, 5)

	m := NewModel(
		WithName("WIP.obj"),
		WithMeshes([]Mesh{inRange, outOfRange}),
		WithMaterials([]material.Material{brick, stone}),
	)

	assert.Equal(t, "WIP.obj", m.Name())
	assert.Len(t, m.Meshes(), 2)
	assert.Equal(t, stone, m.MaterialFor(inRange))
	assert.Nil(t, m.MaterialFor(outOfRange))
	assert.Equal(t, uint32(6), inRange.ElementCount())
	assert.Equal(t, uint32(0), outOfRange.ElementCount())
}

func TestModelReleaseWithoutGPUResources(t *testing.T) {
	m := NewModel(
		WithMeshes([]Mesh{NewMesh("a", bind_group_provider.NewBindGroupProvider("a"), 0)}),
		WithMaterials([]material.Material{material.NewMaterial()}),
	)
	assert.NotPanics(t, m.Release)
	assert.Empty(t, m.Meshes())
	assert.Empty(t, m.Materials())
}

package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name          string
	provider      bind_group_provider.BindGroupProvider
	materialIndex int
}

// Mesh is one drawable piece of a Model: a vertex buffer, an index buffer, the element count, and the
// index of the material it is drawn with. A Mesh owns its buffers and is immutable after construction.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Provider retrieves the provider holding the mesh's vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	Provider() bind_group_provider.BindGroupProvider

	// ElementCount returns the number of indices to draw.
	//
	// Returns:
	//   - uint32: the index count
	ElementCount() uint32

	// MaterialIndex returns the index into the owning Model's materials.
	//
	// Returns:
	//   - int: the material index
	MaterialIndex() int
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh around an already-uploaded vertex/index provider.
//
// Parameters:
//   - name: the mesh identifier
//   - provider: the provider holding the vertex and index buffers
//   - materialIndex: the index into the owning Model's materials
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(name string, provider bind_group_provider.BindGroupProvider, materialIndex int) Mesh {
	return &mesh{
		name:          name,
		provider:      provider,
		materialIndex: materialIndex,
	}
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Provider() bind_group_provider.BindGroupProvider {
	return m.provider
}

func (m *mesh) ElementCount() uint32 {
	if m.provider == nil {
		return 0
	}
	return uint32(m.provider.IndexCount())
}

func (m *mesh) MaterialIndex() int {
	return m.materialIndex
}

// model is the implementation of the Model interface.
type model struct {
	name      string
	meshes    []Mesh
	materials []material.Material
}

// Model is a loaded, GPU-ready 3D model: an ordered list of meshes and the ordered list of materials they
// reference by index. Every mesh's material index is valid for Materials().
// It is produced by the Loader.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Meshes retrieves the model's meshes in draw order.
	//
	// Returns:
	//   - []Mesh: the meshes
	Meshes() []Mesh

	// Materials retrieves the model's materials.
	//
	// Returns:
	//   - []material.Material: the materials
	Materials() []material.Material

	// MaterialFor returns the material a mesh is drawn with.
	//
	// Parameters:
	//   - m: a mesh of this model
	//
	// Returns:
	//   - material.Material: the material, or nil if the index is out of range
	MaterialFor(m Mesh) material.Material

	// Release releases every mesh buffer, then every material.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model configured with the provided options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: a new Model instance
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Meshes() []Mesh {
	return m.meshes
}

func (m *model) Materials() []material.Material {
	return m.materials
}

func (m *model) MaterialFor(ms Mesh) material.Material {
	idx := ms.MaterialIndex()
	if idx < 0 || idx >= len(m.materials) {
		return nil
	}
	return m.materials[idx]
}

func (m *model) Release() {
	for _, ms := range m.meshes {
		if p := ms.Provider(); p != nil {
			p.Release()
		}
	}
	for _, mat := range m.materials {
		mat.Release()
	}
	m.meshes = nil
	m.materials = nil
}

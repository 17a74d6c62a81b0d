package model

import "github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMeshes is an option builder that sets the meshes of the Model.
//
// Parameters:
//   - meshes: the meshes in draw order
//
// Returns:
//   - ModelBuilderOption: a function that applies the meshes option to a model
func WithMeshes(meshes []Mesh) ModelBuilderOption {
	return func(m *model) {
		m.meshes = meshes
	}
}

// WithMaterials is an option builder that sets the materials of the Model.
//
// Parameters:
//   - materials: the materials, indexed by Mesh.MaterialIndex
//
// Returns:
//   - ModelBuilderOption: a function that applies the materials option to a model
func WithMaterials(materials []material.Material) ModelBuilderOption {
	return func(m *model) {
		m.materials = materials
	}
}

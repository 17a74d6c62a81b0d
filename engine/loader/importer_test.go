package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImportOptions() importOptions {
	return importOptions{
		defaultDiffuse: DefaultDiffuseTexture,
		defaultNormal:  DefaultNormalTexture,
	}
}

func TestBuildMaterialsFallsBackToDefaultNamesVerbatim(t *testing.T) {
	mats := buildMaterials([]mtlMaterial{
		{Name: "bare"},
		{Name: "half", DiffuseMap: "models/half.png"},
	}, testImportOptions())

	require.Len(t, mats, 2)
	assert.Equal(t, "default_diffuse.qoi", mats[0].DiffuseTexturePath)
	assert.Equal(t, "default_normal.qoi", mats[0].NormalTexturePath)
	assert.Equal(t, "models/half.png", mats[1].DiffuseTexturePath)
	assert.Equal(t, "default_normal.qoi", mats[1].NormalTexturePath)
}

func TestBuildMaterialsSynthesizesDefault(t *testing.T) {
	mats := buildMaterials(nil, testImportOptions())
	require.Len(t, mats, 1)
	assert.Equal(t, DefaultMaterialName, mats[0].Name)
	assert.Equal(t, "default_diffuse.qoi", mats[0].DiffuseTexturePath)
}

func TestBuildModelFlipsVAndResolvesMaterials(t *testing.T) {
	doc := decodeText(t, "quad.obj", quadOBJ, quadMTL)

	im, err := buildModel("quad.obj", doc, []mtlMaterial{{Name: "stone"}, {Name: "brick"}}, testImportOptions())
	require.NoError(t, err)

	require.Len(t, im.Meshes, 1)
	mesh := im.Meshes[0]
	assert.Equal(t, "Quad", mesh.Name)
	assert.Equal(t, 1, mesh.MaterialIndex)
	assert.Equal(t, [2]float32{0, 1}, mesh.Vertices[0].TexCoords)
	assert.Equal(t, [2]float32{1, 0}, mesh.Vertices[2].TexCoords)
	assert.NotEqual(t, [3]float32{}, mesh.Vertices[0].Tangent)
}

func TestBuildModelUnnamedMeshUsesFileName(t *testing.T) {
	doc := &objDocument{Meshes: []*objMesh{{
		Vertices: []objVertex{
			{Position: [3]float32{0, 0, 0}, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{1, 0, 0}, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}}}

	im, err := buildModel("tri.obj", doc, nil, testImportOptions())
	require.NoError(t, err)
	assert.Equal(t, "tri.obj", im.Meshes[0].Name)
	assert.Equal(t, 0, im.Meshes[0].MaterialIndex)
	require.Len(t, im.Materials, 1)
}

func TestBuildModelUnknownMaterial(t *testing.T) {
	doc := decodeText(t, "quad.obj", quadOBJ, quadMTL)

	_, err := buildModel("quad.obj", doc, []mtlMaterial{{Name: "stone"}}, testImportOptions())
	var ime *InvalidMaterialIndexError
	require.True(t, errors.As(err, &ime), "got %v", err)
	assert.Equal(t, "brick", ime.Material)
	assert.Equal(t, -1, ime.Index)
	assert.Equal(t, 1, ime.Count)
}

func TestBuildModelDegenerateUVPolicy(t *testing.T) {
	src := "o Flat\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	doc := decodeText(t, "flat.obj", src, "")

	_, err := buildModel("flat.obj", doc, nil, testImportOptions())
	var dge *DegenerateGeometryError
	require.True(t, errors.As(err, &dge), "got %v", err)

	opts := testImportOptions()
	opts.skipDegenerateUVs = true
	im, err := buildModel("flat.obj", doc, nil, opts)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{}, im.Meshes[0].Vertices[0].Tangent)
}

func TestResolveRef(t *testing.T) {
	assert.Equal(t, "scene.mtl", resolveRef("scene.obj", "scene.mtl"))
	assert.Equal(t, "models/tex/a.png", resolveRef("models/scene.mtl", "tex/a.png"))
	assert.Equal(t, "a.png", resolveRef("models/scene.mtl", "../a.png"))
}

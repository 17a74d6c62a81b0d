package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# a unit quad
mtllib quad.mtl
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl brick
f 1/1/1 2/2/1 3/3/1 4/4/1
`

const quadMTL = `newmtl brick
map_Kd brick.png
map_Bump brick_normal.png
`

// decodeText runs the directive scan and the decoder over OBJ and MTL text.
func decodeText(t *testing.T, file, objText, mtlText string) *objDocument {
	t.Helper()
	doc, err := scanOBJDirectives(file, objText)
	require.NoError(t, err)
	_, err = decodeOBJ(doc, file, objText, mtlText)
	require.NoError(t, err)
	return doc
}

func TestDecodeOBJQuadIsFanTriangulated(t *testing.T) {
	doc := decodeText(t, "quad.obj", quadOBJ, quadMTL)

	assert.Equal(t, []string{"quad.mtl"}, doc.MaterialLibs)
	require.Len(t, doc.Meshes, 1)

	m := doc.Meshes[0]
	assert.Equal(t, "Quad", m.Name)
	assert.Equal(t, "brick", m.Material)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, [2]float32{1, 1}, m.Vertices[2].TexCoord)
	assert.Equal(t, [3]float32{0, 0, 1}, m.Vertices[3].Normal)
}

func TestDecodeOBJReturnsDiffuseMaps(t *testing.T) {
	doc, err := scanOBJDirectives("quad.obj", quadOBJ)
	require.NoError(t, err)
	decoded, err := decodeOBJ(doc, "quad.obj", quadOBJ, quadMTL)
	require.NoError(t, err)

	require.Contains(t, decoded, "brick")
	assert.Equal(t, "brick.png", decoded["brick"].MapKd)
}

func TestDecodeOBJDeduplicatesIdenticalTuples(t *testing.T) {
	src := `o Plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 1
f 1/1 2/1 3/2
f 1/1 3/2 4/1
f 1/2 3/2 4/1
`
	doc := decodeText(t, "dedup.obj", src, "")
	require.Len(t, doc.Meshes, 1)

	m := doc.Meshes[0]
	// 1/1, 2/1, 3/2, 4/1 and 1/2 are the distinct tuples.
	assert.Len(t, m.Vertices, 5)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 4, 2, 3}, m.Indices)
}

func TestDecodeOBJSplitsMeshesOnObjectAndMaterial(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
o First
usemtl a
f 1 2 3
usemtl b
f 1 2 3
o Second
usemtl b
f 3 2 1
`
	mtl := "newmtl a\nKd 1 0 0\nnewmtl b\nKd 0 1 0\n"
	doc := decodeText(t, "split.obj", src, mtl)
	require.Len(t, doc.Meshes, 3)

	assert.Equal(t, "First", doc.Meshes[0].Name)
	assert.Equal(t, "a", doc.Meshes[0].Material)
	assert.Equal(t, "First", doc.Meshes[1].Name)
	assert.Equal(t, "b", doc.Meshes[1].Material)
	assert.Equal(t, "Second", doc.Meshes[2].Name)
	assert.Equal(t, "b", doc.Meshes[2].Material)
	for _, m := range doc.Meshes {
		assert.Len(t, m.Indices, 3)
	}
}

func TestDecodeOBJWithoutUsemtlHasNoMaterial(t *testing.T) {
	doc := decodeText(t, "plain.obj", "o Tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", "")
	require.Len(t, doc.Meshes, 1)
	assert.Empty(t, doc.Meshes[0].Material)
	assert.Equal(t, [2]float32{}, doc.Meshes[0].Vertices[1].TexCoord)
}

func TestDecodeOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"out of range", "o Bad\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"no faces", "o Bad\nv 0 0 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := scanOBJDirectives("bad.obj", tt.src)
			require.NoError(t, err)
			_, err = decodeOBJ(doc, "bad.obj", tt.src, "")
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.Equal(t, "bad.obj", pe.File)
		})
	}
}

func TestScanOBJDirectives(t *testing.T) {
	src := "mtllib a.mtl b.mtl\n# usemtl commented\nusemtl stone wall\nmtllib \\\n c.mtl\n"
	doc, err := scanOBJDirectives("scene.obj", src)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mtl", "b.mtl", "c.mtl"}, doc.MaterialLibs)
	assert.Equal(t, map[string]bool{"stone wall": true}, doc.usedMaterials)

	_, err = scanOBJDirectives("scene.obj", "v 0 0 0\nusemtl\n")
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "got %v", err)
	assert.Equal(t, 2, pe.Line)
}

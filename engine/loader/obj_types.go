// obj_types.go contains the intermediate representation produced by the OBJ decoder and MTL scan.
// Reference: https://paulbourke.net/dataformats/obj/ and https://paulbourke.net/dataformats/mtl/
package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// objVertex is one unique (position, texcoord, normal) combination after single-index deduplication.
type objVertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// objMesh is a run of faces sharing one object/group and one material, in single-index form.
type objMesh struct {
	// Name is the name of the decoded object the faces belong to.
	Name string

	// Material is the usemtl name in effect for the faces, or empty if none was given.
	Material string

	// Vertices holds the deduplicated vertices referenced by Indices.
	Vertices []objVertex

	// Indices holds three entries per triangle.
	Indices []uint32

	// dedup maps a (position, texcoord, normal) index triple to its slot in Vertices.
	dedup map[[3]int]uint32
}

// objDocument is a decoded OBJ file.
type objDocument struct {
	// MaterialLibs lists the mtllib names in order of appearance, relative to the OBJ file.
	MaterialLibs []string

	// Meshes lists the non-empty meshes in order of appearance.
	Meshes []*objMesh

	// usedMaterials holds the names given to usemtl statements.
	usedMaterials map[string]bool
}

// importedMesh is a mesh ready for GPU upload: tangent-space vertices, indices and a resolved material index.
type importedMesh struct {
	Name          string
	Vertices      []model.ModelVertex
	Indices       []uint32
	MaterialIndex int
}

// importedModel is the CPU-side result of importing a model file, before GPU upload.
type importedModel struct {
	Name      string
	Meshes    []importedMesh
	Materials []common.ImportedMaterial
}

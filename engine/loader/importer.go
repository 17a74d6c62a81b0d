package loader

import (
	"fmt"
	"path"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"go.uber.org/zap"
)

// DefaultMaterialName names the material synthesized for a model that declares none.
const DefaultMaterialName = "default"

// importOptions carries the import policies of a loader.
type importOptions struct {
	defaultDiffuse    string
	defaultNormal     string
	skipDegenerateUVs bool
	log               *zap.Logger
}

// resolveRef resolves a file reference relative to the directory of the file that made it.
func resolveRef(from, ref string) string {
	return path.Join(path.Dir(from), ref)
}

// buildMaterials converts scanned MTL materials into imported materials, substituting the default texture
// names verbatim for missing maps. When the model declares no materials a single default material is
// synthesized so that every mesh has something to bind.
func buildMaterials(mtls []mtlMaterial, opts importOptions) []common.ImportedMaterial {
	if len(mtls) == 0 {
		mtls = []mtlMaterial{{Name: DefaultMaterialName}}
	}
	out := make([]common.ImportedMaterial, len(mtls))
	for i, m := range mtls {
		diffuse := m.DiffuseMap
		if diffuse == "" {
			diffuse = opts.defaultDiffuse
		}
		normal := m.NormalMap
		if normal == "" {
			normal = opts.defaultNormal
		}
		out[i] = common.ImportedMaterial{
			Name:               m.Name,
			DiffuseTexturePath: diffuse,
			NormalTexturePath:  normal,
		}
	}
	return out
}

// buildModel turns a decoded OBJ document and its materials into upload-ready meshes.
// Texture coordinates are flipped vertically, material references are resolved to indices, and tangent
// frames are synthesized per mesh.
//
// Parameters:
//   - name: the model file name, used as the model name and as the fallback mesh name
//   - doc: the decoded OBJ document
//   - mtls: the materials of every referenced material library, in order
//   - opts: the import policies
//
// Returns:
//   - *importedModel: the imported model
//   - error: *InvalidMaterialIndexError or *DegenerateGeometryError
func buildModel(name string, doc *objDocument, mtls []mtlMaterial, opts importOptions) (*importedModel, error) {
	materials := buildMaterials(mtls, opts)

	byName := make(map[string]int, len(mtls))
	for i, m := range mtls {
		if _, dup := byName[m.Name]; !dup {
			byName[m.Name] = i
		}
	}

	log := opts.log
	if log == nil {
		log = zap.NewNop()
	}

	im := &importedModel{Name: name, Materials: materials}
	for _, om := range doc.Meshes {
		meshName := om.Name
		if meshName == "" {
			meshName = name
		}

		materialIndex := 0
		if om.Material != "" {
			idx, ok := byName[om.Material]
			if !ok {
				return nil, &InvalidMaterialIndexError{Mesh: meshName, Material: om.Material, Index: -1, Count: len(materials)}
			}
			materialIndex = idx
		}
		if materialIndex >= len(materials) {
			return nil, &InvalidMaterialIndexError{Mesh: meshName, Material: om.Material, Index: materialIndex, Count: len(materials)}
		}

		vertices := make([]model.ModelVertex, len(om.Vertices))
		for i, v := range om.Vertices {
			vertices[i] = model.ModelVertex{
				Position:  v.Position,
				TexCoords: [2]float32{v.TexCoord[0], 1 - v.TexCoord[1]},
				Normal:    v.Normal,
			}
		}

		_, skipped, err := computeTangents(meshName, vertices, om.Indices, opts.skipDegenerateUVs)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			log.Warn("skipped triangles with degenerate UV mapping",
				zap.String("model", name),
				zap.String("mesh", meshName),
				zap.Int("triangles", skipped),
			)
		}

		im.Meshes = append(im.Meshes, importedMesh{
			Name:          meshName,
			Vertices:      vertices,
			Indices:       om.Indices,
			MaterialIndex: materialIndex,
		})
	}

	if len(im.Meshes) == 0 {
		return nil, &ParseError{File: name, Msg: "model has no faces"}
	}
	log.Debug("imported model",
		zap.String("model", name),
		zap.Int("meshes", len(im.Meshes)),
		zap.Int("materials", len(im.Materials)),
	)
	return im, nil
}

// meshLabel is the GPU label of a mesh's buffers.
func meshLabel(model, mesh string, i int) string {
	return fmt.Sprintf("%s/%s#%d", model, mesh, i)
}

package loader

import (
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// computeTangents fills the Tangent and Bitangent of every vertex referenced by a triangle with the mean
// of the per-triangle tangent frames of its adjacent triangles. Vertices no triangle references keep
// zero vectors.
//
// A triangle whose UV mapping has zero area (or produces non-finite values) has no tangent frame. With
// skipDegenerate false it fails the whole mesh; with skipDegenerate true it contributes nothing and is
// not counted toward any vertex's mean.
//
// Parameters:
//   - meshName: the mesh name used in errors
//   - vertices: the mesh vertices, updated in place
//   - indices: three indices per triangle
//   - skipDegenerate: whether degenerate triangles are skipped rather than rejected
//
// Returns:
//   - []uint32: per-vertex count of triangles that contributed
//   - int: the number of skipped triangles
//   - error: *DegenerateGeometryError when a degenerate triangle is found and skipDegenerate is false
func computeTangents(meshName string, vertices []model.ModelVertex, indices []uint32, skipDegenerate bool) ([]uint32, int, error) {
	counts := make([]uint32, len(vertices))
	tangents := make([]mgl32.Vec3, len(vertices))
	bitangents := make([]mgl32.Vec3, len(vertices))
	skipped := 0

	for t := 0; t+2 < len(indices); t += 3 {
		c := [3]uint32{indices[t], indices[t+1], indices[t+2]}
		v0, v1, v2 := &vertices[c[0]], &vertices[c[1]], &vertices[c[2]]

		pos0 := mgl32.Vec3(v0.Position)
		deltaPos1 := mgl32.Vec3(v1.Position).Sub(pos0)
		deltaPos2 := mgl32.Vec3(v2.Position).Sub(pos0)

		uv0 := mgl32.Vec2(v0.TexCoords)
		deltaUV1 := mgl32.Vec2(v1.TexCoords).Sub(uv0)
		deltaUV2 := mgl32.Vec2(v2.TexCoords).Sub(uv0)

		det := deltaUV1.X()*deltaUV2.Y() - deltaUV1.Y()*deltaUV2.X()
		r := 1 / det
		if det == 0 || !finite(r) {
			if !skipDegenerate {
				return nil, 0, &DegenerateGeometryError{Mesh: meshName, Triangle: t / 3, Indices: c}
			}
			skipped++
			continue
		}

		tangent := deltaPos1.Mul(deltaUV2.Y()).Sub(deltaPos2.Mul(deltaUV1.Y())).Mul(r)
		bitangent := deltaPos2.Mul(deltaUV1.X()).Sub(deltaPos1.Mul(deltaUV2.X())).Mul(-r)
		if !finiteVec(tangent) || !finiteVec(bitangent) {
			if !skipDegenerate {
				return nil, 0, &DegenerateGeometryError{Mesh: meshName, Triangle: t / 3, Indices: c}
			}
			skipped++
			continue
		}

		for _, i := range c {
			tangents[i] = tangents[i].Add(tangent)
			bitangents[i] = bitangents[i].Add(bitangent)
			counts[i]++
		}
	}

	for i := range vertices {
		if counts[i] == 0 {
			vertices[i].Tangent = [3]float32{}
			vertices[i].Bitangent = [3]float32{}
			continue
		}
		inv := 1 / float32(counts[i])
		vertices[i].Tangent = tangents[i].Mul(inv)
		vertices[i].Bitangent = bitangents[i].Mul(inv)
	}
	return counts, skipped, nil
}

func finite(f float32) bool {
	return !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f))
}

func finiteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

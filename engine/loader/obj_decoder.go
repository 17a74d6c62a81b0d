package loader

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/g3n/engine/loader/obj"
)

// scanOBJDirectives collects the mtllib and usemtl statements of an OBJ file. The material libraries have
// to be known before decoding because the decoder reads the OBJ and MTL text in one pass.
//
// Parameters:
//   - file: the asset name, used in error messages
//   - text: the OBJ source
//
// Returns:
//   - *objDocument: a document with MaterialLibs set and no meshes yet
//   - error: *ParseError if an mtllib or usemtl statement has no argument
func scanOBJDirectives(file, text string) (*objDocument, error) {
	doc := &objDocument{usedMaterials: make(map[string]bool)}
	err := scanStatements(text, func(line int, keyword string, args []string) error {
		switch keyword {
		case "mtllib":
			if len(args) == 0 {
				return &ParseError{File: file, Line: line, Msg: "mtllib without a file name"}
			}
			doc.MaterialLibs = append(doc.MaterialLibs, args...)
		case "usemtl":
			if len(args) == 0 {
				return &ParseError{File: file, Line: line, Msg: "usemtl without a material name"}
			}
			doc.usedMaterials[strings.Join(args, " ")] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// decodeOBJ decodes OBJ geometry with the g3n decoder and fills doc.Meshes with single-index meshes.
// Each decoded object becomes one mesh per run of faces sharing a material. Polygons are fan-triangulated.
//
// Parameters:
//   - doc: the document returned by scanOBJDirectives for the same text
//   - file: the asset name, used in error messages
//   - objText: the OBJ source
//   - mtlText: the concatenated source of every material library, possibly empty
//
// Returns:
//   - map[string]*obj.Material: the materials the decoder read, keyed by name
//   - error: *ParseError if decoding fails, a face index is out of range, or no faces remain
func decodeOBJ(doc *objDocument, file, objText, mtlText string) (map[string]*obj.Material, error) {
	dec, err := obj.DecodeReader(strings.NewReader(objText), strings.NewReader(mtlText))
	if err != nil {
		return nil, &ParseError{File: file, Msg: "decode", Err: err}
	}

	positions := len(dec.Vertices) / 3
	uvs := len(dec.Uvs) / 2
	normals := len(dec.Normals) / 3

	doc.Meshes = doc.Meshes[:0]
	for oi := range dec.Objects {
		object := &dec.Objects[oi]
		var current *objMesh
		for fi := range object.Faces {
			face := &object.Faces[fi]
			if len(face.Vertices) < 3 {
				return nil, &ParseError{File: file, Msg: fmt.Sprintf("object %q face %d needs at least 3 vertices, got %d", object.Name, fi, len(face.Vertices))}
			}

			material := face.Material
			if !doc.usedMaterials[material] {
				// The decoder names a placeholder material for faces that precede any usemtl.
				material = ""
			}
			if current == nil || current.Material != material {
				doc.flush(current)
				current = &objMesh{
					Name:     object.Name,
					Material: material,
					dedup:    make(map[[3]int]uint32),
				}
			}

			corners := make([]uint32, len(face.Vertices))
			for i, vi := range face.Vertices {
				if vi < 0 || vi >= positions {
					return nil, &ParseError{File: file, Msg: fmt.Sprintf("object %q face %d: position index %d out of range (have %d)", object.Name, fi, vi, positions)}
				}
				key := [3]int{vi, -1, -1}
				if i < len(face.Uvs) && face.Uvs[i] >= 0 && face.Uvs[i] < uvs {
					key[1] = face.Uvs[i]
				}
				if i < len(face.Normals) && face.Normals[i] >= 0 && face.Normals[i] < normals {
					key[2] = face.Normals[i]
				}
				corners[i] = current.vertex(key, dec)
			}
			for i := 2; i < len(corners); i++ {
				current.Indices = append(current.Indices, corners[0], corners[i-1], corners[i])
			}
		}
		doc.flush(current)
	}

	if len(doc.Meshes) == 0 {
		return nil, &ParseError{File: file, Msg: "model has no faces"}
	}
	return dec.Materials, nil
}

// scanStatements splits text into keyword/argument statements, dropping comments and blank lines and
// joining lines ending in a backslash.
func scanStatements(text string, fn func(line int, keyword string, args []string) error) error {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	startLine := 0
	var pending strings.Builder
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		if pending.Len() == 0 {
			startLine = lineNo
		}
		if strings.HasSuffix(raw, "\\") {
			pending.WriteString(strings.TrimSuffix(raw, "\\"))
			pending.WriteByte(' ')
			continue
		}
		pending.WriteString(raw)
		stmt := pending.String()
		pending.Reset()

		if i := strings.IndexByte(stmt, '#'); i >= 0 {
			stmt = stmt[:i]
		}
		fields := strings.Fields(stmt)
		if len(fields) == 0 {
			continue
		}
		if err := fn(startLine, fields[0], fields[1:]); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return &ParseError{Msg: "read text", Err: err}
	}
	if pending.Len() > 0 {
		fields := strings.Fields(pending.String())
		if len(fields) > 0 {
			return fn(startLine, fields[0], fields[1:])
		}
	}
	return nil
}

// flush moves a mesh into the document if it has faces.
func (d *objDocument) flush(m *objMesh) {
	if m != nil && len(m.Indices) > 0 {
		m.dedup = nil
		d.Meshes = append(d.Meshes, m)
	}
}

// vertex returns the slot for an index triple, appending a new vertex on first use.
// Absent texture coordinate and normal indices are -1 and leave the attribute zeroed.
func (m *objMesh) vertex(key [3]int, dec *obj.Decoder) uint32 {
	if slot, ok := m.dedup[key]; ok {
		return slot
	}
	p := key[0] * 3
	v := objVertex{Position: [3]float32{dec.Vertices[p], dec.Vertices[p+1], dec.Vertices[p+2]}}
	if key[1] >= 0 {
		t := key[1] * 2
		v.TexCoord = [2]float32{dec.Uvs[t], dec.Uvs[t+1]}
	}
	if key[2] >= 0 {
		n := key[2] * 3
		v.Normal = [3]float32{dec.Normals[n], dec.Normals[n+1], dec.Normals[n+2]}
	}
	slot := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v)
	m.dedup[key] = slot
	return slot
}

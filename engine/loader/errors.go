package loader

import "fmt"

// ParseError reports malformed model or material text.
type ParseError struct {
	// File is the asset name being parsed.
	File string
	// Line is the 1-based line number, or 0 if the error is not tied to a line.
	Line int
	// Msg describes the problem.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ParseError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", loc, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DegenerateGeometryError reports a triangle whose UV mapping has zero area, which leaves its tangent
// frame undefined.
type DegenerateGeometryError struct {
	// Mesh is the name of the mesh containing the triangle.
	Mesh string
	// Triangle is the triangle's position in the index list (index / 3).
	Triangle int
	// Indices are the triangle's three vertex indices.
	Indices [3]uint32
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("mesh %q: triangle %d (vertices %d, %d, %d) has a degenerate UV mapping",
		e.Mesh, e.Triangle, e.Indices[0], e.Indices[1], e.Indices[2])
}

// InvalidMaterialIndexError reports a mesh that references a material the model does not have.
type InvalidMaterialIndexError struct {
	// Mesh is the name of the offending mesh.
	Mesh string
	// Material is the referenced material name, if the reference was by name.
	Material string
	// Index is the referenced index, or -1 if the name did not resolve.
	Index int
	// Count is the number of materials the model has.
	Count int
}

func (e *InvalidMaterialIndexError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("mesh %q: material %q is not defined by any material library", e.Mesh, e.Material)
	}
	return fmt.Sprintf("mesh %q: material index %d out of range [0, %d)", e.Mesh, e.Index, e.Count)
}

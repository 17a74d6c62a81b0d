package shader

import "github.com/cogentcore/webgpu/wgpu"

// parsedField represents a single field extracted from a WGSL struct during parsing
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct represents a WGSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}

// VertexInput is one @location attribute a vertex entry point consumes.
type VertexInput struct {
	// Location is the shader location of the attribute.
	Location uint32

	// Name is the struct field name, used in error messages.
	Name string

	// Format is the vertex format matching the field's WGSL type.
	Format wgpu.VertexFormat
}

package shader

import (
	"embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader is used for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// Names of the embedded WGSL sources.
const (
	// SourceLoading is the full-screen placeholder drawn while assets load.
	SourceLoading = "loading.wgsl"

	// SourceModel is the normal-mapped model shader.
	SourceModel = "model.wgsl"
)

//go:embed wgsl/*.wgsl
var sources embed.FS

// shader is the implementation of the Shader interface.
type shader struct {
	key          string
	source       string
	shaderType   ShaderType
	entryPoint   string
	vertexInputs []VertexInput
	module       *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a loaded WGSL shader stage. It exposes the shader's
// unique key, source code, entry point, and the vertex inputs a vertex stage consumes.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the module label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// EntryPoint returns the entry point name for this shader's stage.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// VertexInputs returns the @location inputs of the source's vertex input structs, sorted by location.
	// Fragment shaders return nil.
	//
	// Returns:
	//   - []VertexInput: the vertex inputs
	VertexInputs() []VertexInput

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader creates a Shader stage from WGSL source. The entry point is the first function
// carrying the stage's attribute.
//
// Parameters:
//   - key: a unique identifier for the shader, used as its module label
//   - shaderType: the stage the shader is used for
//   - source: the WGSL source code
//
// Returns:
//   - Shader: the shader
//   - error: error if the source has no entry point for the stage
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	entry := parseEntryPoint(source, shaderType)
	if entry == "" {
		return nil, fmt.Errorf("shader %s: no entry point for stage %d", key, shaderType)
	}
	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		entryPoint: entry,
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
	}
	if shaderType == ShaderTypeVertex {
		s.vertexInputs = parseVertexInputs(source)
	}
	return s, nil
}

// Embedded creates a Shader stage from one of the embedded WGSL sources.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage the shader is used for
//   - name: the embedded source name (SourceLoading, SourceModel)
//
// Returns:
//   - Shader: the shader
//   - error: error if the source does not exist or has no entry point for the stage
func Embedded(key string, shaderType ShaderType, name string) (Shader, error) {
	data, err := sources.ReadFile("wgsl/" + name)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShader(key, shaderType, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) VertexInputs() []VertexInput {
	return s.vertexInputs
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

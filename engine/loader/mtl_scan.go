package loader

import (
	"fmt"
	"strings"

	"github.com/g3n/engine/loader/obj"
)

// mtlMaterial is one newmtl block with the texture references the viewer uses.
type mtlMaterial struct {
	Name       string
	DiffuseMap string
	NormalMap  string

	// Library is the material library the block was declared in. Map names are relative to it.
	Library string
}

// textureOptionArgs lists the MTL texture map options and how many values each one consumes.
var textureOptionArgs = map[string]int{
	"-blendu":  1,
	"-blendv":  1,
	"-bm":      1,
	"-boost":   1,
	"-cc":      1,
	"-clamp":   1,
	"-imfchan": 1,
	"-mm":      2,
	"-o":       3,
	"-s":       3,
	"-t":       3,
	"-texres":  1,
	"-type":    1,
}

// scanMTL reads what the g3n decoder leaves out of an MTL library: the declaration order of the materials,
// their normal maps, and diffuse maps written with options or spaces in the file name.
//
// Parameters:
//   - file: the library's asset name, recorded on each material and used in error messages
//   - text: the MTL source
//
// Returns:
//   - []mtlMaterial: the declared materials
//   - error: *ParseError if a statement precedes newmtl or a map statement names no file
func scanMTL(file, text string) ([]mtlMaterial, error) {
	var materials []mtlMaterial
	var current *mtlMaterial

	err := scanStatements(text, func(line int, keyword string, args []string) error {
		key := strings.ToLower(keyword)
		if key == "newmtl" {
			if len(args) == 0 {
				return &ParseError{File: file, Line: line, Msg: "newmtl without a material name"}
			}
			materials = append(materials, mtlMaterial{Name: strings.Join(args, " "), Library: file})
			current = &materials[len(materials)-1]
			return nil
		}
		if current == nil {
			return &ParseError{File: file, Line: line, Msg: fmt.Sprintf("%s before newmtl", keyword)}
		}

		var target *string
		switch key {
		case "map_kd":
			target = &current.DiffuseMap
		case "map_bump", "bump", "norm":
			target = &current.NormalMap
		default:
			// Colours, illumination models and the other maps are not used by the viewer.
			return nil
		}

		name, err := textureFileName(args)
		if err != nil {
			return &ParseError{File: file, Line: line, Msg: fmt.Sprintf("%s: %v", keyword, err)}
		}
		if key == "map_kd" && len(args) == 1 {
			// A bare file name is taken from the decoder.
			return nil
		}
		*target = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return materials, nil
}

// mergeDecodedMaterials fills diffuse maps the scan left empty from the decoder's materials.
func mergeDecodedMaterials(mtls []mtlMaterial, decoded map[string]*obj.Material) {
	for i := range mtls {
		if mtls[i].DiffuseMap != "" {
			continue
		}
		if dm, ok := decoded[mtls[i].Name]; ok && dm != nil {
			mtls[i].DiffuseMap = dm.MapKd
		}
	}
}

// textureFileName skips the option arguments of a texture map statement and returns the file name.
func textureFileName(args []string) (string, error) {
	i := 0
	for i < len(args) {
		n, ok := textureOptionArgs[strings.ToLower(args[i])]
		if !ok {
			break
		}
		// Option values are numbers or single words; stop early if the list runs out.
		i += 1 + n
	}
	if i >= len(args) {
		return "", fmt.Errorf("missing texture file name")
	}
	return strings.Join(args[i:], " "), nil
}

// package common contains common types that are used throughout this viewer. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cogentcore/webgpu/wgpu"
	_ "github.com/xfmoulet/qoi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Linear marks the pixel data as linear (non color) data, such as a normal map.
	// Linear textures are uploaded in a UNORM format, color textures in an sRGB format.
	Linear bool
}

// Format returns the GPU texture format matching the staging data's color space.
//
// Returns:
//   - wgpu.TextureFormat: RGBA8Unorm for linear data, RGBA8UnormSrgb otherwise
func (s TextureStagingData) Format() wgpu.TextureFormat {
	if s.Linear {
		return wgpu.TextureFormatRGBA8Unorm
	}
	return wgpu.TextureFormatRGBA8UnormSrgb
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero-valued fields fall back to linear filtering and repeat addressing.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
	// Compare specifies the comparison function for comparison samplers.
	Compare wgpu.CompareFunction
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// ImportedMaterial represents a material parsed from an MTL file, before any GPU resources exist.
type ImportedMaterial struct {
	// Name is the material identifier from the newmtl statement.
	Name string

	// DiffuseTexturePath is the asset-relative name of the diffuse texture (map_Kd).
	DiffuseTexturePath string

	// NormalTexturePath is the asset-relative name of the normal map (map_Bump, bump or norm).
	NormalTexturePath string

	// DiffuseTexture holds the fetched diffuse image bytes, once loaded.
	DiffuseTexture *ImportedTexture

	// NormalTexture holds the fetched normal map bytes, once loaded.
	NormalTexture *ImportedTexture
}

// ImportedTexture represents encoded texture bytes fetched for a material.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "diffuse", "normal").
	Name string

	// Path is the asset-relative name the bytes were fetched from.
	Path string

	// Data contains the encoded image bytes (PNG, JPEG, QOI, ...).
	Data []byte

	// Width is the texture width in pixels (populated after Decode).
	Width int

	// Height is the texture height in pixels (populated after Decode).
	Height int
}

// Decode decodes the texture to raw RGBA pixel data with straight (non-premultiplied) alpha.
// Any format registered with the image package is accepted: PNG, JPEG, GIF, QOI, BMP, TIFF and WebP.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - []byte: raw non-premultiplied RGBA pixel data (4 bytes per pixel, row-major order)
//   - uint32: texture width in pixels
//   - uint32: texture height in pixels
//   - error: error if decoding fails
func (t *ImportedTexture) Decode() ([]byte, uint32, uint32, error) {
	if t == nil {
		return nil, 0, 0, fmt.Errorf("texture is nil")
	}
	if len(t.Data) == 0 {
		return nil, 0, 0, fmt.Errorf("texture %q has no data", t.Path)
	}

	img, _, err := image.Decode(bytes.NewReader(t.Data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode texture %q: %w", t.Path, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Rebase to the origin so Pix is tightly packed row by row. image.RGBA would premultiply the
	// colour channels, so the pixels are kept in NRGBA.
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			row := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(nrgba.Pix[y*nrgba.Stride:(y+1)*nrgba.Stride], src.Pix[row:row+width*4])
		}
	} else {
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	t.Width = width
	t.Height = height

	return nrgba.Pix, uint32(width), uint32(height), nil
}

package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeKeepsStraightAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 128, G: 128, B: 255, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	tex := &ImportedTexture{Path: "half.png", Data: encodeTestPNG(t, img)}
	pixels, width, height, err := tex.Decode()
	require.NoError(t, err)

	assert.Equal(t, uint32(2), width)
	assert.Equal(t, uint32(1), height)
	assert.Equal(t, []byte{128, 128, 255, 128, 10, 20, 30, 255}, pixels)
	assert.Equal(t, 2, tex.Width)
}

func TestDecodeOpaqueRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	tex := &ImportedTexture{Path: "solid.png", Data: encodeTestPNG(t, img)}
	pixels, width, height, err := tex.Decode()
	require.NoError(t, err)

	assert.Equal(t, uint32(1), width)
	assert.Equal(t, uint32(2), height)
	assert.Equal(t, []byte{200, 100, 50, 255, 1, 2, 3, 255}, pixels)
}

func TestDecodeErrors(t *testing.T) {
	var nilTex *ImportedTexture
	_, _, _, err := nilTex.Decode()
	assert.Error(t, err)

	_, _, _, err = (&ImportedTexture{Path: "empty.png"}).Decode()
	assert.ErrorContains(t, err, "has no data")

	_, _, _, err = (&ImportedTexture{Path: "junk.png", Data: []byte("not an image")}).Decode()
	assert.ErrorContains(t, err, "junk.png")
}

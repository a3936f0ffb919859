package texarray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

func TestDecodeConvertsToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 2))
	src.SetGray(1, 1, color.Gray{Y: 128})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	rgba, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), rgba.Rect)
	assert.Len(t, rgba.Pix, 4*2*4)
	assert.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, rgba.RGBAAt(1, 1))
}

func TestDecodeBMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	draw.Draw(src, src.Bounds(), image.White, image.Point{}, draw.Src)
	src.Set(2, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	rgba, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, rgba.Rect.Dx())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(2, 0))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not pixels")))
	assert.Error(t, err)
}

package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureArray is the OpenGL GL_TEXTURE_2D_ARRAY behind texarray.Manager
type TextureArray struct {
	id     uint32
	layers int32
	levels int32
}

func NewTextureArray() *TextureArray {
	return &TextureArray{}
}

// Allocate reserves every mip level up front. GL 4.1 has no TexStorage3D,
// so each level is specified with TexImage3D.
func (t *TextureArray) Allocate(width, height, layers, levels int) error {
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)

	w, h := int32(width), int32(height)
	for level := int32(0); level < int32(levels); level++ {
		gl.TexImage3D(
			gl.TEXTURE_2D_ARRAY,
			level,
			gl.RGBA8,
			w,
			h,
			int32(layers),
			0,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			nil,
		)
		w = max(1, w/2)
		h = max(1, h/2)
	}

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAX_LEVEL, int32(levels-1))
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)

	t.layers = int32(layers)
	t.levels = int32(levels)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
		return fmt.Errorf("allocate texture array %dx%dx%d: gl error 0x%x", width, height, layers, code)
	}
	return nil
}

// Upload writes tightly packed RGBA8 rows into layer at level 0
func (t *TextureArray) Upload(layer, width, height int, pix []byte) {
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage3D(
		gl.TEXTURE_2D_ARRAY,
		0,
		0, 0, int32(layer),
		int32(width),
		int32(height),
		1,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pix),
	)
}

func (t *TextureArray) GenerateMipmaps() {
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)
	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)

	// Anisotropic filtering if available
	var maxAnisotropy float32
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &maxAnisotropy)
	if maxAnisotropy > 0 {
		gl.TexParameterf(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAX_ANISOTROPY, maxAnisotropy)
	}
}

func (t *TextureArray) Handle() uint32 {
	return t.id
}

// Bind makes the array current on the given texture unit
func (t *TextureArray) Bind(unit uint32) {
	BindTextureArray(t.id, unit)
}

func (t *TextureArray) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// BindTextureArray binds handle on the given texture unit
func BindTextureArray(handle, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, handle)
}

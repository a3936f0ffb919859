package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"fpsandbox/pkg/model"
)

const vertexStride = 8 * 4 // position, normal, uv

// Mesh is a model.Mesh uploaded to the GPU
type Mesh struct {
	Name       string
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	layers     [3][2]int32 // start, count per model.TextureType
}

// NewMesh uploads vertices and indices and records the material layer ranges
func NewMesh(src *model.Mesh) *Mesh {
	m := &Mesh{Name: src.Name, indexCount: int32(len(src.Indices))}
	for _, t := range model.TextureTypes {
		start, count := src.LayerRange(t)
		m.layers[t] = [2]int32{int32(start), int32(count)}
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(src.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(src.Vertices)*vertexStride, gl.Ptr(&src.Vertices[0]), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(src.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(src.Indices)*4, gl.Ptr(&src.Indices[0]), gl.STATIC_DRAW)
	}

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*4)

	gl.BindVertexArray(0)
	return m
}

var materialUniforms = [3][2]string{
	model.Diffuse:  {"material.diffuseStartLayer", "material.diffuseLayerCount"},
	model.Specular: {"material.specularStartLayer", "material.specularLayerCount"},
	model.Emission: {"material.emissionStartLayer", "material.emissionLayerCount"},
}

// Draw sets the material layer uniforms, binds the texture array to unit 0 and draws
func (m *Mesh) Draw(s *Shader, textures uint32) {
	for t, names := range materialUniforms {
		s.SetInt(names[0], m.layers[t][0])
		s.SetInt(names[1], m.layers[t][1])
	}
	BindTextureArray(textures, 0)
	m.DrawGeometry()
}

// DrawGeometry issues the draw call without touching uniforms or textures
func (m *Mesh) DrawGeometry() {
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (m *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

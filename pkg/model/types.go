package model

import "github.com/go-gl/mathgl/mgl32"

// Model is a box model as stored on disk.
type Model struct {
	Parent   string            `json:"parent"`
	Textures map[string]string `json:"textures"`
	Material Material          `json:"material"`
	Elements []Element         `json:"elements"`
}

// Material lists texture references per texture type. Entries are paths or #keys into Model.Textures.
type Material struct {
	Diffuse  []string `json:"diffuse"`
	Specular []string `json:"specular"`
	Emission []string `json:"emission"`
}

// Element is an axis-aligned box. A nil Material means the model's material is used.
type Element struct {
	Name     string          `json:"name"`
	From     [3]float32      `json:"from"`
	To       [3]float32      `json:"to"`
	Material *Material       `json:"material"`
	Faces    map[string]Face `json:"faces"`
}

// Face selects which sides of an element are emitted. A zero UV means the whole texture.
type Face struct {
	UV [4]float32 `json:"uv"`
}

// TextureType is the material slot a texture fills.
type TextureType int

const (
	Diffuse TextureType = iota
	Specular
	Emission
)

// TextureTypes lists every type in upload order.
var TextureTypes = []TextureType{Diffuse, Specular, Emission}

func (t TextureType) String() string {
	switch t {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Emission:
		return "emission"
	default:
		return "unknown"
	}
}

func (m Material) paths(t TextureType) []string {
	switch t {
	case Diffuse:
		return m.Diffuse
	case Specular:
		return m.Specular
	case Emission:
		return m.Emission
	}
	return nil
}

// Vertex layout: position, normal, uv (8 floats).
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Texture records the array layer a material texture landed in.
type Texture struct {
	Layer int
	Type  TextureType
	Path  string
}

// Mesh is the CPU side of one element, ready for upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Textures []Texture
}

// LayerRange returns the first layer and the number of textures of type t.
// Both are zero when the mesh has no texture of that type.
func (m *Mesh) LayerRange(t TextureType) (start, count int) {
	for _, tex := range m.Textures {
		if tex.Type != t {
			continue
		}
		if count == 0 {
			start = tex.Layer
		}
		count++
	}
	return start, count
}

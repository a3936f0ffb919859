package model

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"fpsandbox/internal/logger"
)

// TextureLoader stores an image and returns its layer. texarray.Manager satisfies it.
type TextureLoader interface {
	LoadTexture(path string) (int, error)
}

// Builder turns models into meshes. A texture path is loaded at most once
// per Builder; later references reuse the recorded layer.
type Builder struct {
	textures TextureLoader
	root     string
	layers   map[string]int
	log      *zap.Logger
}

// NewBuilder resolves relative texture paths against root.
func NewBuilder(textures TextureLoader, root string, log *zap.Logger) *Builder {
	return &Builder{
		textures: textures,
		root:     root,
		layers:   make(map[string]int),
		log:      logger.OrNop(log).Named("model"),
	}
}

// Loaded returns the number of distinct textures stored so far.
func (b *Builder) Loaded() int {
	return len(b.layers)
}

// Build returns one mesh per element.
func (b *Builder) Build(m *Model) []Mesh {
	meshes := make([]Mesh, 0, len(m.Elements))
	for i, e := range m.Elements {
		mat := m.Material
		if e.Material != nil {
			mat = *e.Material
		}
		mesh := buildGeometry(e)
		if mesh.Name == "" {
			mesh.Name = "element" + strconv.Itoa(i)
		}
		mesh.Textures = b.loadMaterial(mat)
		meshes = append(meshes, mesh)
	}
	return meshes
}

func (b *Builder) loadMaterial(mat Material) []Texture {
	var out []Texture
	for _, t := range TextureTypes {
		for _, p := range mat.paths(t) {
			layer, ok := b.layer(p)
			if !ok {
				continue
			}
			out = append(out, Texture{Layer: layer, Type: t, Path: p})
		}
	}
	return out
}

func (b *Builder) layer(path string) (int, bool) {
	if strings.HasPrefix(path, "#") {
		b.log.Warn("unresolved texture reference", zap.String("ref", path))
		return 0, false
	}
	if layer, ok := b.layers[path]; ok {
		return layer, true
	}
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(b.root, path)
	}
	layer, err := b.textures.LoadTexture(full)
	if err != nil {
		b.log.Warn("texture skipped", zap.String("path", full), zap.Error(err))
		return 0, false
	}
	b.layers[path] = layer
	return layer, true
}

type faceDef struct {
	normal  mgl32.Vec3
	corners [4][3]int // per corner: index into {from,to} for x, y, z
}

// Corners are counter-clockwise seen from outside the box.
var faceDefs = map[string]faceDef{
	"up":    {mgl32.Vec3{0, 1, 0}, [4][3]int{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	"down":  {mgl32.Vec3{0, -1, 0}, [4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	"south": {mgl32.Vec3{0, 0, 1}, [4][3]int{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	"north": {mgl32.Vec3{0, 0, -1}, [4][3]int{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}},
	"east":  {mgl32.Vec3{1, 0, 0}, [4][3]int{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},
	"west":  {mgl32.Vec3{-1, 0, 0}, [4][3]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
}

var allFaces = []string{"down", "up", "north", "south", "west", "east"}

func buildGeometry(e Element) Mesh {
	mesh := Mesh{Name: e.Name}

	faces := e.Faces
	if len(faces) == 0 {
		faces = make(map[string]Face, len(allFaces))
		for _, name := range allFaces {
			faces[name] = Face{}
		}
	}

	names := make([]string, 0, len(faces))
	for name := range faces {
		if _, ok := faceDefs[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	bounds := [2][3]float32{e.From, e.To}
	for _, name := range names {
		def := faceDefs[name]
		uv := faces[name].UV
		if uv == ([4]float32{}) {
			uv = [4]float32{0, 0, 1, 1}
		}
		uvs := [4]mgl32.Vec2{{uv[0], uv[1]}, {uv[2], uv[1]}, {uv[2], uv[3]}, {uv[0], uv[3]}}

		base := uint32(len(mesh.Vertices))
		for i, c := range def.corners {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: mgl32.Vec3{bounds[c[0]][0], bounds[c[1]][1], bounds[c[2]][2]},
				Normal:   def.normal,
				UV:       uvs[i],
			})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return mesh
}

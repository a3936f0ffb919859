package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"fpsandbox/internal/config"
	"fpsandbox/internal/graphics"
	renderer "fpsandbox/internal/graphics/renderer"
	"fpsandbox/internal/graphics/shaders"
	"fpsandbox/internal/profiling"
	"fpsandbox/internal/texarray"
	"fpsandbox/pkg/model"
)

const shininess = 32.0

// Scene draws the loaded model meshes with the shared texture array and fixed lighting
type Scene struct {
	shader   *graphics.Shader
	textures *texarray.Manager
	lighting config.LightingConfig
	sources  []model.Mesh
	meshes   []*graphics.Mesh
}

// NewScene creates a scene renderable. textures must be sealed before Init.
func NewScene(textures *texarray.Manager, meshes []model.Mesh, lighting config.LightingConfig) *Scene {
	return &Scene{
		textures: textures,
		lighting: lighting,
		sources:  meshes,
	}
}

// Init compiles the shader, uploads meshes and sends the per-slot resolutions once
func (s *Scene) Init() error {
	var err error
	s.shader, err = graphics.NewShader(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return err
	}

	for i := range s.sources {
		s.meshes = append(s.meshes, graphics.NewMesh(&s.sources[i]))
	}
	s.sources = nil

	width, height := s.textures.Size()
	s.shader.Use()
	s.shader.SetInt("textures", 0)
	s.shader.SetIVec2("arraySize", int32(width), int32(height))
	s.textures.SendSlotResolutions(s.shader)
	s.shader.SetFloat("material.shininess", shininess)

	l := s.lighting
	s.shader.SetVec3("light.direction", l.Direction)
	s.shader.SetVec3("light.ambient", l.Ambient)
	s.shader.SetVec3("light.diffuse", l.Diffuse)
	s.shader.SetVec3("light.specular", l.Specular)
	s.shader.SetVec3("light.pointPosition", l.PointPosition)
	s.shader.SetVec3("light.pointColor", l.PointColor)

	return nil
}

// Render draws every mesh
func (s *Scene) Render(ctx renderer.RenderContext) {
	defer profiling.Track("scene.Render")()

	s.shader.Use()
	s.shader.SetMat4("projection", ctx.Proj)
	s.shader.SetMat4("view", ctx.View)
	s.shader.SetMat4("model", mgl32.Ident4())
	s.shader.SetVec3("viewPos", ctx.ViewPos)

	handle := s.textures.Handle()
	for _, m := range s.meshes {
		m.Draw(s.shader, handle)
	}
}

// Dispose cleans up OpenGL resources
func (s *Scene) Dispose() {
	for _, m := range s.meshes {
		m.Delete()
	}
	s.meshes = nil
	if s.shader != nil {
		s.shader.Delete()
	}
}

func (s *Scene) SetViewport(width, height int) {}

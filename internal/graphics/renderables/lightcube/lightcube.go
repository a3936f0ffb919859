package lightcube

import (
	"github.com/go-gl/mathgl/mgl32"

	"fpsandbox/internal/graphics"
	renderer "fpsandbox/internal/graphics/renderer"
	"fpsandbox/internal/graphics/shaders"
	"fpsandbox/internal/profiling"
	"fpsandbox/pkg/model"
)

const size = 0.2

// LightCube marks the point light position with a small unlit cube
type LightCube struct {
	shader   *graphics.Shader
	mesh     *graphics.Mesh
	position mgl32.Vec3
	color    mgl32.Vec3
}

func NewLightCube(position, color mgl32.Vec3) *LightCube {
	return &LightCube{position: position, color: color}
}

func (c *LightCube) Init() error {
	var err error
	c.shader, err = graphics.NewShader(shaders.LightVertexShader, shaders.LightFragmentShader)
	if err != nil {
		return err
	}

	// Untextured, so the builder never needs a texture loader
	half := float32(size / 2)
	cube := model.NewBuilder(nil, "", nil).Build(&model.Model{Elements: []model.Element{{
		Name: "light",
		From: [3]float32{-half, -half, -half},
		To:   [3]float32{half, half, half},
	}}})
	c.mesh = graphics.NewMesh(&cube[0])
	return nil
}

func (c *LightCube) Render(ctx renderer.RenderContext) {
	defer profiling.Track("lightcube.Render")()

	c.shader.Use()
	c.shader.SetMat4("projection", ctx.Proj)
	c.shader.SetMat4("view", ctx.View)
	c.shader.SetMat4("model", mgl32.Translate3D(c.position.X(), c.position.Y(), c.position.Z()))
	c.shader.SetVec3("lightColor", c.color)
	c.mesh.DrawGeometry()
}

func (c *LightCube) Dispose() {
	if c.mesh != nil {
		c.mesh.Delete()
	}
	if c.shader != nil {
		c.shader.Delete()
	}
}

func (c *LightCube) SetViewport(width, height int) {}

package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"fpsandbox/internal/graphics"
	"fpsandbox/internal/player"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	projection  *graphics.Projection
	wireframe   bool
}

// NewRenderer configures GL state and initializes the renderables in order
func NewRenderer(projection *graphics.Projection, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	renderer := &Renderer{
		renderables: rs,
		projection:  projection,
	}

	for i, r := range rs {
		if err := r.Init(); err != nil {
			// Dispose the ones already initialized
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
	}

	return renderer, nil
}

// Render draws one frame from the camera's point of view
func (r *Renderer) Render(cam *player.Camera, dt float64) {
	gl.ClearColor(0.2, 0.3, 0.6, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.projection.FOV = cam.FOV

	ctx := RenderContext{
		View:    cam.ViewMatrix(),
		Proj:    r.projection.Matrix(),
		ViewPos: cam.Position,
		DT:      dt,
	}

	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// ToggleWireframe switches between line and fill polygon mode
func (r *Renderer) ToggleWireframe() bool {
	r.wireframe = !r.wireframe
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	return r.wireframe
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// UpdateViewport resizes the GL viewport and the projection
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.projection.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}

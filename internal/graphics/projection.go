package graphics

import "github.com/go-gl/mathgl/mgl32"

// Projection holds the perspective parameters
type Projection struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

func NewProjection(fov, near, far float32, width, height int) *Projection {
	p := &Projection{FOV: fov, NearPlane: near, FarPlane: far, AspectRatio: 1}
	p.SetViewport(width, height)
	return p
}

// SetViewport updates the aspect ratio; a minimised window (zero height) keeps the old one
func (p *Projection) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.AspectRatio = float32(width) / float32(height)
}

func (p *Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), p.AspectRatio, p.NearPlane, p.FarPlane)
}

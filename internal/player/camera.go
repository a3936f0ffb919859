package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSensitivity = 0.1
	DefaultFOV         = 85.0

	maxPitch = 89.0
)

// Camera is a first-person yaw/pitch camera.
// The basis vectors are cached and recomputed on every orientation change.
type Camera struct {
	Position mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32 // degrees
	Pitch float32 // degrees, clamped to [-89, 89]

	Sensitivity float32
	FOV         float32

	front         mgl32.Vec3
	right         mgl32.Vec3
	up            mgl32.Vec3
	straightFront mgl32.Vec3 // follows yaw but not pitch, for horizontal movement
}

// NewCamera creates a camera and derives its basis immediately
func NewCamera(position, worldUp mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:    position,
		WorldUp:     worldUp,
		Yaw:         yaw,
		Pitch:       mgl32.Clamp(pitch, -maxPitch, maxPitch),
		Sensitivity: DefaultSensitivity,
		FOV:         DefaultFOV,
	}
	c.updateVectors()
	return c
}

// ProcessMouseMovement applies a cursor delta. The caller inverts the
// vertical screen delta; the camera adds what it is given.
func (c *Camera) ProcessMouseMovement(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity

	// Constrain pitch
	c.Pitch = mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)

	c.updateVectors()
}

// SetOrientation sets yaw and pitch directly
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = mgl32.Clamp(pitch, -maxPitch, maxPitch)
	c.updateVectors()
}

// ViewMatrix returns a right-handed look-at transform along Front
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

func (c *Camera) Front() mgl32.Vec3         { return c.front }
func (c *Camera) Right() mgl32.Vec3         { return c.right }
func (c *Camera) Up() mgl32.Vec3            { return c.up }
func (c *Camera) StraightFront() mgl32.Vec3 { return c.straightFront }

func (c *Camera) updateVectors() {
	y := float64(mgl32.DegToRad(c.Yaw))
	p := float64(mgl32.DegToRad(c.Pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(p) * math.Cos(y)),
		float32(math.Sin(p)),
		float32(math.Cos(p) * math.Sin(y)),
	}.Normalize()

	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
	c.straightFront = c.right.Cross(c.WorldUp).Normalize()
}

// MouseTracker turns absolute cursor positions into camera deltas.
// The first sample after a reset only records the position so the view
// does not jump when the cursor is captured.
type MouseTracker struct {
	lastX, lastY float64
	first        bool
}

// NewMouseTracker creates a tracker waiting for its first sample
func NewMouseTracker() *MouseTracker {
	return &MouseTracker{first: true}
}

// Reset makes the next sample a fresh starting point
func (m *MouseTracker) Reset() {
	m.first = true
}

// Delta returns the movement since the last sample with y inverted
// (moving the cursor up yields a positive dy).
func (m *MouseTracker) Delta(xpos, ypos float64) (dx, dy float32, ok bool) {
	if m.first {
		m.lastX = xpos
		m.lastY = ypos
		m.first = false
		return 0, 0, false
	}

	dx = float32(xpos - m.lastX)
	dy = float32(m.lastY - ypos)
	m.lastX = xpos
	m.lastY = ypos
	return dx, dy, true
}

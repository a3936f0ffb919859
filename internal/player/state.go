package player

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MovementState is the vertical state of the character
type MovementState int

const (
	Grounded MovementState = iota
	Airborne
)

func (s MovementState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Airborne:
		return "airborne"
	default:
		return "unknown"
	}
}

// Settings are the tunables of the character controller
type Settings struct {
	MoveSpeed    float32
	JumpVelocity float32
	Gravity      float32 // negative, units/s^2
	GroundHeight float32
	BodyHeight   float32 // camera offset above the feet
}

// DefaultSettings returns the stock controller tuning
func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:    5.0,
		JumpVelocity: 7.0,
		Gravity:      -19.62,
		GroundHeight: 1.0,
		BodyHeight:   1.6,
	}
}

// Controller is a kinematic first-person character.
// It owns the feet position; the camera only ever mirrors it.
type Controller struct {
	Settings Settings

	FeetPos      mgl32.Vec3
	FeetVelocity mgl32.Vec3
	State        MovementState

	Camera *Camera
}

// NewController places the character on the ground at (x, z) and positions the camera
func NewController(settings Settings, camera *Camera, x, z float32) *Controller {
	c := &Controller{
		Settings: settings,
		FeetPos:  mgl32.Vec3{x, settings.GroundHeight, z},
		State:    Grounded,
		Camera:   camera,
	}
	c.syncCamera()
	return c
}

// EyePosition returns the feet position plus the body height
func (c *Controller) EyePosition() mgl32.Vec3 {
	return c.FeetPos.Add(mgl32.Vec3{0, c.Settings.BodyHeight, 0})
}

func (c *Controller) syncCamera() {
	if c.Camera != nil {
		c.Camera.Position = c.EyePosition()
	}
}

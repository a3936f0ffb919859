package player

import (
	"fpsandbox/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// Actions is the read side of the action map the controller needs
type Actions interface {
	IsPressed(action string) bool
}

// Update advances the character by dt seconds.
// Horizontal velocity is rebuilt from input every frame; vertical velocity
// carries over and is integrated with gravity (velocity first, then position).
func (c *Controller) Update(dt float32, actions Actions) {
	c.updateHorizontal(actions)

	// Jump
	if c.State == Grounded && actions.IsPressed(input.ActionJump) {
		c.FeetVelocity[1] = c.Settings.JumpVelocity
		c.State = Airborne
	}

	c.Integrate(dt)
}

// Integrate applies gravity, moves the feet and clamps them to the ground
func (c *Controller) Integrate(dt float32) {
	c.FeetVelocity[1] += c.Settings.Gravity * dt
	c.FeetPos = c.FeetPos.Add(c.FeetVelocity.Mul(dt))

	// Ground clamp
	if c.FeetPos[1] <= c.Settings.GroundHeight {
		c.FeetPos[1] = c.Settings.GroundHeight
		c.FeetVelocity[1] = 0
		c.State = Grounded
	} else {
		c.State = Airborne
	}

	c.syncCamera()
}

func (c *Controller) updateHorizontal(actions Actions) {
	c.FeetVelocity[0] = 0
	c.FeetVelocity[2] = 0
	if c.Camera == nil {
		return
	}

	// StraightFront is right x worldUp, which points away from the view
	// direction; forward input walks along its negation.
	forward := c.Camera.StraightFront().Mul(-1)
	right := c.Camera.Right()

	var dir mgl32.Vec3
	if actions.IsPressed(input.ActionMoveForward) {
		dir = dir.Add(forward)
	}
	if actions.IsPressed(input.ActionMoveBackward) {
		dir = dir.Sub(forward)
	}
	if actions.IsPressed(input.ActionMoveLeft) {
		dir = dir.Sub(right)
	}
	if actions.IsPressed(input.ActionMoveRight) {
		dir = dir.Add(right)
	}

	// Opposite keys cancel out
	if dir.Len() < 1e-6 {
		return
	}

	v := dir.Normalize().Mul(c.Settings.MoveSpeed)
	c.FeetVelocity[0] = v[0]
	c.FeetVelocity[2] = v[2]
}

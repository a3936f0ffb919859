package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

var worldUp = mgl32.Vec3{0, 1, 0}

func assertUnit(t *testing.T, name string, v mgl32.Vec3) {
	t.Helper()
	assert.InDelta(t, 1.0, v.Len(), tol, "%s is not unit length: %v", name, v)
}

func assertVecNear(t *testing.T, name string, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "%s[%d]: %v", name, i, got)
	}
}

func assertBasis(t *testing.T, c *Camera) {
	t.Helper()
	assertUnit(t, "front", c.Front())
	assertUnit(t, "right", c.Right())
	assertUnit(t, "up", c.Up())
	assertUnit(t, "straightFront", c.StraightFront())

	assert.InDelta(t, 0, c.Front().Dot(c.Right()), tol)
	assert.InDelta(t, 0, c.Front().Dot(c.Up()), tol)
	assert.InDelta(t, 0, c.Right().Dot(c.Up()), tol)
	assert.InDelta(t, 0, c.StraightFront()[1], tol)
}

func TestDefaultOrientationLooksDownNegativeZ(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, worldUp, DefaultYaw, DefaultPitch)

	assertVecNear(t, "front", mgl32.Vec3{0, 0, -1}, c.Front())
	assertVecNear(t, "right", mgl32.Vec3{1, 0, 0}, c.Right())
	assertVecNear(t, "up", mgl32.Vec3{0, 1, 0}, c.Up())
	// right x worldUp
	assertVecNear(t, "straightFront", mgl32.Vec3{0, 0, 1}, c.StraightFront())
	assert.Equal(t, float32(DefaultSensitivity), c.Sensitivity)
	assert.Equal(t, float32(DefaultFOV), c.FOV)
}

func TestPitchIsClamped(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, worldUp, DefaultYaw, 0)

	for i := 0; i < 100; i++ {
		c.ProcessMouseMovement(3, 500)
		assert.LessOrEqual(t, c.Pitch, float32(89))
		assertBasis(t, c)
	}
	assert.Equal(t, float32(89), c.Pitch)

	for i := 0; i < 100; i++ {
		c.ProcessMouseMovement(-7, -1e6)
		assert.GreaterOrEqual(t, c.Pitch, float32(-89))
		assertBasis(t, c)
	}
	assert.Equal(t, float32(-89), c.Pitch)

	c = NewCamera(mgl32.Vec3{}, worldUp, 0, 120)
	assert.Equal(t, float32(89), c.Pitch)
}

func TestBasisStaysOrthonormal(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 2, 3}, worldUp, 17, -33)
	deltas := [][2]float32{{10, 4}, {-250, 60}, {1234, -900}, {0.5, 0.25}, {-3, 2000}}
	for _, d := range deltas {
		c.ProcessMouseMovement(d[0], d[1])
		assertBasis(t, c)
	}
}

func TestProcessMouseMovementScalesBySensitivity(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, worldUp, DefaultYaw, 0)
	c.ProcessMouseMovement(100, 50)
	assert.InDelta(t, -80.0, c.Yaw, tol)
	assert.InDelta(t, 5.0, c.Pitch, tol)

	c.Sensitivity = 1
	c.ProcessMouseMovement(-10, -10)
	assert.InDelta(t, -90.0, c.Yaw, tol)
	assert.InDelta(t, -5.0, c.Pitch, tol)
}

func TestViewMatrixLooksAlongFront(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 2.6, 0}, worldUp, DefaultYaw, 0)
	view := c.ViewMatrix()

	// A point straight ahead lands on the negative view-space z axis
	ahead := view.Mul4x1(c.Position.Add(c.Front().Mul(5)).Vec4(1))
	assert.InDelta(t, 0, ahead[0], tol)
	assert.InDelta(t, 0, ahead[1], tol)
	assert.InDelta(t, -5, ahead[2], tol)

	// The eye maps to the origin
	eye := view.Mul4x1(c.Position.Vec4(1))
	assertVecNear(t, "eye", mgl32.Vec3{}, eye.Vec3())
}

func TestMouseTracker(t *testing.T) {
	m := NewMouseTracker()

	_, _, ok := m.Delta(400, 300)
	assert.False(t, ok)

	dx, dy, ok := m.Delta(410, 290)
	assert.True(t, ok)
	assert.Equal(t, float32(10), dx)
	// Cursor moved up the screen, dy is positive
	assert.Equal(t, float32(10), dy)

	m.Reset()
	_, _, ok = m.Delta(0, 0)
	assert.False(t, ok)
}

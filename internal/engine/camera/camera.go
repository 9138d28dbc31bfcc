// Package camera provides the free-flying viewer camera.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SpinAxis is the axis the displayed object spins around (normalized on use).
var SpinAxis = mgl32.Vec3{0.5, 1.0, 0.1}

// FlyCamera is a first-person camera plus the spin angle of the viewed object.
// Angles are in degrees.
type FlyCamera struct {
	X, Y, Z float32

	AngleX float32 // Yaw, around the Y axis
	AngleZ float32 // Pitch, around the X axis

	// Spin is the object rotation angle, kept in [0, 360).
	Spin float32
}

// New creates a camera at the given position looking down -Z.
func New(x, y, z float32) *FlyCamera {
	return &FlyCamera{X: x, Y: y, Z: z}
}

// forwardDelta returns the XZ offset of one forward step.
func (c *FlyCamera) forwardDelta(step float32) (dx, dz float32) {
	rad := -float64(c.AngleX) * math.Pi / 180.0
	return float32(float64(step) * math.Sin(rad)), float32(float64(step) * math.Cos(rad))
}

// strafeDelta returns the XZ offset of one strafe-left step.
func (c *FlyCamera) strafeDelta(step float32) (dx, dz float32) {
	rad := float64(c.AngleX) * math.Pi / 180.0
	return float32(float64(step) * math.Cos(rad)), float32(float64(step) * math.Sin(rad))
}

// MoveForward moves along the view direction on the XZ plane.
func (c *FlyCamera) MoveForward(step float32) {
	dx, dz := c.forwardDelta(step)
	c.X += dx
	c.Z -= dz
}

// MoveBackward undoes MoveForward with the same step and angle, up to
// float32 rounding of the position.
func (c *FlyCamera) MoveBackward(step float32) {
	dx, dz := c.forwardDelta(step)
	c.X -= dx
	c.Z += dz
}

// StrafeLeft moves sideways to the left of the view direction.
func (c *FlyCamera) StrafeLeft(step float32) {
	dx, dz := c.strafeDelta(step)
	c.X -= dx
	c.Z += dz
}

// StrafeRight undoes StrafeLeft with the same step and angle, up to
// float32 rounding of the position.
func (c *FlyCamera) StrafeRight(step float32) {
	dx, dz := c.strafeDelta(step)
	c.X += dx
	c.Z -= dz
}

// Lift moves the camera vertically; negative values sink.
func (c *FlyCamera) Lift(step float32) {
	c.Y += step
}

// Turn changes yaw by degrees; positive turns left.
func (c *FlyCamera) Turn(degrees float32) {
	c.AngleX += degrees
}

// Tilt changes pitch by degrees; positive looks up.
func (c *FlyCamera) Tilt(degrees float32) {
	c.AngleZ += degrees
}

// AdvanceSpin adds speed*dt degrees to the spin angle and wraps it into [0, 360).
func (c *FlyCamera) AdvanceSpin(dt, speed float32) {
	c.Spin += speed * dt
	if c.Spin >= 360 {
		c.Spin -= 360
		// More than one turn in a single step.
		if c.Spin >= 360 {
			c.Spin = float32(math.Mod(float64(c.Spin), 360))
		}
	}
	if c.Spin < 0 {
		c.Spin = float32(math.Mod(float64(c.Spin), 360)) + 360
		if c.Spin >= 360 {
			c.Spin = 0
		}
	}
}

// Position returns the camera position.
func (c *FlyCamera) Position() mgl32.Vec3 {
	return mgl32.Vec3{c.X, c.Y, c.Z}
}

// ViewMatrix returns the world-to-eye transform: pitch, then yaw, then the
// inverse camera translation.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	pitch := mgl32.HomogRotate3DX(mgl32.DegToRad(-c.AngleZ))
	yaw := mgl32.HomogRotate3DY(mgl32.DegToRad(-c.AngleX))
	return pitch.Mul4(yaw).Mul4(mgl32.Translate3D(-c.X, -c.Y, -c.Z))
}

// ModelMatrix returns the spin rotation applied to the viewed object.
func (c *FlyCamera) ModelMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3D(mgl32.DegToRad(c.Spin), SpinAxis.Normalize())
}

// Projection returns the fixed perspective frustum used by the viewer.
func Projection() mgl32.Mat4 {
	return mgl32.Frustum(-1, 1, -1, 1, 1, 100)
}

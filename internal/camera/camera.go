package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxPitch = 89

// FPSCamera is a yaw/pitch look camera. It does not move itself: the frame
// driver places it at the player's eye every frame.
type FPSCamera struct {
	Position  rl.Vector3
	Yaw       float32 // degrees, 0 looks down +X, -90 down -Z
	Pitch     float32 // degrees, clamped to ±89
	LookSpeed float32 // degrees per mouse pixel
	Fovy      float32
}

func New(pos rl.Vector3) *FPSCamera {
	return &FPSCamera{
		Position:  pos,
		Yaw:       -90,
		Pitch:     0,
		LookSpeed: 0.1,
		Fovy:      70,
	}
}

// Look applies a mouse delta in pixels. Moving the mouse up looks up.
func (c *FPSCamera) Look(dx, dy float32) {
	c.Yaw += dx * c.LookSpeed
	c.Pitch -= dy * c.LookSpeed
	c.clampPitch()
}

func (c *FPSCamera) clampPitch() {
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// ViewDirection is the unit vector the camera looks along.
func (c *FPSCamera) ViewDirection() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

// Directions returns the horizontal forward and right vectors used for
// walking. Both have zero Y and unit length.
func (c *FPSCamera) Directions() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Y: 0,
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Y: 0,
		Z: float32(math.Cos(yawRad)),
	}
	return
}

// LookAt turns the camera toward target.
func (c *FPSCamera) LookAt(target rl.Vector3) {
	d := rl.Vector3Subtract(target, c.Position)
	if rl.Vector3Length(d) == 0 {
		return
	}
	d = rl.Vector3Normalize(d)
	c.Pitch = float32(math.Asin(float64(d.Y)) * 180 / math.Pi)
	c.Yaw = float32(math.Atan2(float64(d.Z), float64(d.X)) * 180 / math.Pi)
	c.clampPitch()
}

func (c *FPSCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, c.ViewDirection()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

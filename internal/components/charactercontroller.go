package components

import rl "github.com/gen2brain/raylib-go/raylib"

// MaxTimeStep caps a single integration step so a frame spike cannot
// carry a character through a floor.
const MaxTimeStep = 0.1

const (
	groundedDrift = -0.1
	inputEpsilon  = 1e-4
)

// Tuning holds the movement constants of a CharacterController.
type Tuning struct {
	Gravity      float32 // downward acceleration, positive
	JumpStrength float32 // vertical speed at take-off
	WalkSpeed    float32
	RunSpeed     float32
	TerminalFall float32 // maximum fall speed, positive
}

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:      30,
		JumpStrength: 35,
		WalkSpeed:    30,
		RunSpeed:     60,
		TerminalFall: 50,
	}
}

// CharacterController integrates player velocity. It never looks at level
// geometry: the frame driver resolves the proposed position and reports
// ground and ceiling contacts back.
type CharacterController struct {
	Tuning Tuning

	Velocity    rl.Vector3
	Grounded    bool
	WasGrounded bool
}

// NewCharacterController creates a grounded controller at rest.
func NewCharacterController(t Tuning) *CharacterController {
	return &CharacterController{Tuning: t, Grounded: true, WasGrounded: true}
}

// Tick advances vertical velocity by dt and returns this frame's
// displacement.
func (c *CharacterController) Tick(dt float32) rl.Vector3 {
	if dt > MaxTimeStep {
		dt = MaxTimeStep
	}
	if dt < 0 {
		dt = 0
	}

	if !c.Grounded {
		c.Velocity.Y -= c.Tuning.Gravity * dt
		if c.Velocity.Y < -c.Tuning.TerminalFall {
			c.Velocity.Y = -c.Tuning.TerminalFall
		}
	} else if c.Velocity.Y < 0 {
		// Keeps the probe pressed into the floor so contact is re-detected.
		c.Velocity.Y = groundedDrift
	}

	return rl.Vector3Scale(c.Velocity, dt)
}

// ApplyMovementInput sets horizontal velocity from a direction. Only the XZ
// part of dir is used; a (near) zero direction stops the character at once.
func (c *CharacterController) ApplyMovementInput(dir rl.Vector3, running bool) {
	h := rl.Vector3{X: dir.X, Z: dir.Z}
	if rl.Vector3Length(h) <= inputEpsilon {
		c.Velocity.X = 0
		c.Velocity.Z = 0
		return
	}

	h = rl.Vector3Normalize(h)
	speed := c.CurrentSpeed(running)
	c.Velocity.X = h.X * speed
	c.Velocity.Z = h.Z * speed
}

// Jump is ignored while airborne.
func (c *CharacterController) Jump() bool {
	if !c.Grounded {
		return false
	}
	c.Velocity.Y = c.Tuning.JumpStrength
	c.Grounded = false
	return true
}

// OnGroundContact grounds the character unless it is still moving up.
func (c *CharacterController) OnGroundContact(surfaceY float32) {
	if c.Velocity.Y <= 0 {
		c.Velocity.Y = 0
		c.Grounded = true
	}
}

func (c *CharacterController) OnCeilingContact() {
	if c.Velocity.Y > 0 {
		c.Velocity.Y = 0
	}
}

// Bounce launches the character upward, e.g. off a stomped enemy.
func (c *CharacterController) Bounce(impulse float32) {
	c.Velocity.Y = impulse
	c.Grounded = false
}

// BeginFrame latches the grounded state so Landed can detect transitions.
func (c *CharacterController) BeginFrame() {
	c.WasGrounded = c.Grounded
}

// Landed reports an airborne to grounded transition since BeginFrame.
func (c *CharacterController) Landed() bool {
	return c.Grounded && !c.WasGrounded
}

func (c *CharacterController) CurrentSpeed(running bool) float32 {
	if running {
		return c.Tuning.RunSpeed
	}
	return c.Tuning.WalkSpeed
}

func (c *CharacterController) Reset() {
	c.Velocity = rl.Vector3{}
	c.Grounded = true
	c.WasGrounded = true
}
